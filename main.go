package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v9"

	"github.com/tgrouter/tgrouter/pkg/bot"
	"github.com/tgrouter/tgrouter/pkg/database"
	"github.com/tgrouter/tgrouter/pkg/dispatcher"
	"github.com/tgrouter/tgrouter/pkg/domain"
	"github.com/tgrouter/tgrouter/pkg/filters"
	"github.com/tgrouter/tgrouter/pkg/logger"
	"github.com/tgrouter/tgrouter/pkg/repository"
	"github.com/tgrouter/tgrouter/pkg/telegram"
	"github.com/tgrouter/tgrouter/pkg/workers"
)

type Config struct {
	TelegramBotToken          string  `env:"TELEGRAM_BOT_TOKEN,required"`
	TelegramAuthorizedUserIDs []int64 `env:"TELEGRAM_AUTHORIZED_USER_IDS" envSeparator:" "`
	UpdateListenerPoolSize    int     `env:"UPDATE_LISTENER_POOL_SIZE" envDefault:"10"`
	PgURL                     string  `env:"DATABASE_URL"`
	PgHost                    string  `env:"DB_HOST" envDefault:"localhost:65432"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	workerGroup, err := setupWorkers()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers() (workers.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	telegramClient, err := telegram.NewClient(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}

	db, err := database.NewPostgres(cfg.PgURL, cfg.PgHost)
	if err != nil {
		return nil, fmt.Errorf("creating db: %w", err)
	}

	subscriptions := repository.NewSubscriptionsRepository(db)

	d := dispatcher.New()

	// Group -1 gates everything: unauthorized senders are rejected
	// before any other group runs.
	if len(cfg.TelegramAuthorizedUserIDs) > 0 {
		authorized := filters.User(cfg.TelegramAuthorizedUserIDs...)
		reject := func(ctx context.Context, e *domain.Event) error {
			slog.WarnContext(ctx, "Unauthorized access attempt", "userID", e.SenderID())
			return dispatcher.StopPropagation
		}
		d.AddHandler(dispatcher.OnMessage(filters.Not(authorized), reject), -1)
		d.AddHandler(dispatcher.OnCallbackQuery(filters.Not(authorized), reject), -1)
	}

	for _, h := range []*dispatcher.Handler{
		bot.NewStart(telegramClient, telegramClient.Username()),
		bot.NewSubscribe(telegramClient, subscriptions),
		bot.NewUnsubscribe(telegramClient, subscriptions),
		bot.NewDigest(telegramClient, subscriptions),
		bot.NewMenu(telegramClient),
		bot.NewTopicChoice(telegramClient),
		bot.NewPing(telegramClient),
		bot.NewPhoto(telegramClient),
	} {
		d.AddHandler(h, 0)
	}

	// The echo fallback lives in a later group. Command handlers are
	// already excluded by echo's filter; the digest handler stops
	// propagation itself so digest requests don't get echoed too.
	d.AddHandler(bot.NewEcho(telegramClient), 1)

	var workerGroup workers.Group
	workerGroup = append(workerGroup,
		workers.NewUpdateListener(telegramClient, d, cfg.UpdateListenerPoolSize))

	return workerGroup, nil
}
