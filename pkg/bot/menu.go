package bot

import (
	"context"
	"strings"

	"github.com/tgrouter/tgrouter/pkg/dispatcher"
	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
)

const topicCallbackPrefix = "topic:"

func NewMenu(client TelegramClient) *dispatcher.Handler {
	return dispatcher.OnMessage(filters.Command("menu"), func(ctx context.Context, e *domain.Event) error {
		client.SendResponse(ctx, e.ChatID(), &domain.Response{
			Text: "Pick a topic:",
			Keyboard: &domain.Keyboard{
				ButtonLabels:   []string{"go", "databases", "networking", "tooling"},
				CallbackPrefix: topicCallbackPrefix,
				ButtonsPerRow:  2,
			},
		})
		return nil
	})
}

// NewTopicChoice handles the button presses produced by NewMenu.
func NewTopicChoice(client TelegramClient) *dispatcher.Handler {
	return dispatcher.OnCallbackQuery(filters.CallbackData(topicCallbackPrefix), func(ctx context.Context, e *domain.Event) error {
		topic := strings.TrimPrefix(e.CallbackData(), topicCallbackPrefix)

		client.SendResponse(ctx, e.ChatID(), &domain.Response{
			Text: "Noted, you picked " + topic + ".",
		})
		return nil
	})
}
