package bot

import (
	"context"

	"github.com/tgrouter/tgrouter/pkg/dispatcher"
	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
	"github.com/tgrouter/tgrouter/pkg/render"
)

// NewEcho repeats any plain text message back, rendered as markdown.
// Meant for a later dispatch group so command handlers win first.
func NewEcho(client TelegramClient) *dispatcher.Handler {
	filter := filters.Text().And(filters.Not(filters.Command()))

	return dispatcher.OnMessage(filter, func(ctx context.Context, e *domain.Event) error {
		client.SendResponse(ctx, e.ChatID(), &domain.Response{
			ReplyToMessageID: e.ReplyTarget(),
			Text:             render.TelegramHTML(e.Text()),
			HTML:             true,
		})
		return nil
	})
}
