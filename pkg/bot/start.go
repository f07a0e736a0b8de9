package bot

import (
	"context"

	"github.com/tgrouter/tgrouter/pkg/dispatcher"
	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
	"github.com/tgrouter/tgrouter/pkg/render"
)

const welcomeText = `*Hi!* I route updates through composable filters.

Try:

- /subscribe to opt this chat in, then say "digest"
- /menu to pick a topic with buttons
- /ping for a throttled reply, once a minute per chat
- any text gets echoed back
- a photo gets described back`

// NewStart greets on /start and /help. botUsername scopes targeted
// commands in group chats: /start@otherbot is left alone.
func NewStart(client TelegramClient, botUsername string) *dispatcher.Handler {
	filter := filters.CommandWithConfig(filters.CommandConfig{
		Names:       []string{"start", "help"},
		BotUsername: botUsername,
	})

	return dispatcher.OnMessage(filter, func(ctx context.Context, e *domain.Event) error {
		client.SendResponse(ctx, e.ChatID(), &domain.Response{
			Text: render.TelegramHTML(welcomeText),
			HTML: true,
		})
		return nil
	})
}
