package bot

import (
	"context"

	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
)

// Subscribed is a custom filter backed by the subscription store:
// it passes only for chats that opted in via /subscribe.
func Subscribed(subs Subscriptions) filters.Filter {
	return filters.New("subscribed", func(ctx context.Context, e *domain.Event) (bool, error) {
		return subs.IsSubscribed(ctx, e.ChatID())
	})
}
