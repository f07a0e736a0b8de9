package bot

import (
	"context"
	"fmt"

	"github.com/tgrouter/tgrouter/pkg/dispatcher"
	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
)

func NewSubscribe(client TelegramClient, subs Subscriptions) *dispatcher.Handler {
	return dispatcher.OnMessage(filters.Command("subscribe"), func(ctx context.Context, e *domain.Event) error {
		if err := subs.Subscribe(ctx, e.ChatID()); err != nil {
			return fmt.Errorf("subscribing: %w", err)
		}

		client.SendResponse(ctx, e.ChatID(), &domain.Response{
			Text: "Subscribed. Say \"digest\" here to get one.",
		})
		return nil
	})
}
