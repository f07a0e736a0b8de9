package bot

import (
	"context"
	"fmt"

	"github.com/tgrouter/tgrouter/pkg/dispatcher"
	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
)

func NewUnsubscribe(client TelegramClient, subs Subscriptions) *dispatcher.Handler {
	return dispatcher.OnMessage(filters.Command("unsubscribe"), func(ctx context.Context, e *domain.Event) error {
		if err := subs.Unsubscribe(ctx, e.ChatID()); err != nil {
			return fmt.Errorf("unsubscribing: %w", err)
		}

		client.SendResponse(ctx, e.ChatID(), &domain.Response{Text: "Unsubscribed."})
		return nil
	})
}
