package bot

import (
	"context"

	"github.com/tgrouter/tgrouter/pkg/domain"
)

type TelegramClient interface {
	SendResponse(ctx context.Context, chatID int64, response *domain.Response)
	StartTyping(ctx context.Context, chatID int64)
}

type Subscriptions interface {
	Subscribe(ctx context.Context, chatID int64) error
	Unsubscribe(ctx context.Context, chatID int64) error
	IsSubscribed(ctx context.Context, chatID int64) (bool, error)
}
