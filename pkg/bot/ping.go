package bot

import (
	"context"
	"time"

	"github.com/tgrouter/tgrouter/pkg/dispatcher"
	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
)

func NewPing(client TelegramClient) *dispatcher.Handler {
	filter := filters.Command("ping").And(filters.Throttle(time.Minute))

	return dispatcher.OnMessage(filter, func(ctx context.Context, e *domain.Event) error {
		client.SendResponse(ctx, e.ChatID(), &domain.Response{
			ReplyToMessageID: e.ReplyTarget(),
			Text:             "pong",
		})
		return nil
	})
}
