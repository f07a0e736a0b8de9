package bot

import (
	"context"

	"github.com/tgrouter/tgrouter/pkg/dispatcher"
	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
	"github.com/tgrouter/tgrouter/pkg/render"
)

// NewDigest replies to "digest [topic]" in subscribed chats only. The
// topic comes from the regex submatch the filter recorded on the event.
// The callback stops propagation: a digest request is fully handled
// here and must not reach fallbacks in later groups.
func NewDigest(client TelegramClient, subs Subscriptions) *dispatcher.Handler {
	filter := Subscribed(subs).And(filters.Regex(`(?i)^digest(?:\s+(\S+))?$`))

	return dispatcher.OnMessage(filter, func(ctx context.Context, e *domain.Event) error {
		client.StartTyping(ctx, e.ChatID())

		topic := "general"
		if len(e.Matches) > 1 && e.Matches[1] != "" {
			topic = e.Matches[1]
		}

		text := "*Digest: " + topic + "*\n\nNothing new since you last asked."
		client.SendResponse(ctx, e.ChatID(), &domain.Response{
			ReplyToMessageID: e.ReplyTarget(),
			Text:             render.TelegramHTML(text),
			HTML:             true,
		})
		return dispatcher.StopPropagation
	})
}
