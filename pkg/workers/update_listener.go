package workers

import (
	"context"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tgrouter/tgrouter/pkg/logger"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, update *tgbotapi.Update)
}

type TelegramClient interface {
	GetUpdates() tgbotapi.UpdatesChannel
	AcknowledgeCallback(ctx context.Context, callbackQueryID string)
}

type updateListener struct {
	client     TelegramClient
	dispatcher Dispatcher
	poolSize   int
	wg         sync.WaitGroup
}

// NewUpdateListener drains the client's updates channel and hands each
// update to the dispatcher, running at most poolSize updates
// concurrently.
func NewUpdateListener(client TelegramClient, dispatcher Dispatcher, poolSize int) *updateListener {
	if poolSize <= 0 {
		poolSize = 1
	}
	return &updateListener{
		client:     client,
		dispatcher: dispatcher,
		poolSize:   poolSize,
	}
}

func (u *updateListener) Name() string { return "update_listener" }

func (u *updateListener) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", u.Name())
	defer slog.Info("Worker stopped", "name", u.Name())

	updates := u.client.GetUpdates()
	sem := make(chan struct{}, u.poolSize)

	for {
		select {
		case <-ctx.Done():
			u.wg.Wait()
			return nil
		case update := <-updates:
			sem <- struct{}{}
			u.wg.Add(1)
			go func(update tgbotapi.Update) {
				defer u.wg.Done()
				defer func() { <-sem }()
				u.processUpdate(ctx, &update)
			}(update)
		}
	}
}

func (u *updateListener) processUpdate(ctx context.Context, update *tgbotapi.Update) {
	ctx = logger.ContextWithRequestID(ctx, int64(update.UpdateID))

	slog.InfoContext(ctx, "Processing update", "updateID", update.UpdateID)

	if update.CallbackQuery != nil {
		defer u.client.AcknowledgeCallback(ctx, update.CallbackQuery.ID)
	}

	u.dispatcher.Dispatch(ctx, update)
}
