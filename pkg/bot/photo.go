package bot

import (
	"context"
	"fmt"

	"github.com/tgrouter/tgrouter/pkg/dispatcher"
	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
)

func NewPhoto(client TelegramClient) *dispatcher.Handler {
	return dispatcher.OnMessage(filters.Photo(), func(ctx context.Context, e *domain.Event) error {
		msg := e.Message()

		text := fmt.Sprintf("A photo with %d size variants", len(msg.Photo))
		if msg.Caption != "" {
			text += fmt.Sprintf(", captioned %q", msg.Caption)
		}

		client.SendResponse(ctx, e.ChatID(), &domain.Response{
			ReplyToMessageID: e.ReplyTarget(),
			Text:             text + ".",
		})
		return nil
	})
}
