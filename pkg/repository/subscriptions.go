package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type subscriptionsRepository struct {
	db *sql.DB
}

func NewSubscriptionsRepository(db *sql.DB) *subscriptionsRepository {
	return &subscriptionsRepository{db: db}
}

func (s *subscriptionsRepository) Subscribe(ctx context.Context, chatID int64) error {
	const query = `
		INSERT INTO subscriptions (chat_id)
		VALUES ($1)
		ON CONFLICT (chat_id) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, chatID); err != nil {
		return fmt.Errorf("subscribing chat %d: %w", chatID, err)
	}
	return nil
}

func (s *subscriptionsRepository) Unsubscribe(ctx context.Context, chatID int64) error {
	const query = `DELETE FROM subscriptions WHERE chat_id = $1`

	if _, err := s.db.ExecContext(ctx, query, chatID); err != nil {
		return fmt.Errorf("unsubscribing chat %d: %w", chatID, err)
	}
	return nil
}

func (s *subscriptionsRepository) IsSubscribed(ctx context.Context, chatID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE chat_id = $1)`

	var subscribed bool
	if err := s.db.QueryRowContext(ctx, query, chatID).Scan(&subscribed); err != nil {
		return false, fmt.Errorf("checking subscription for chat %d: %w", chatID, err)
	}
	return subscribed, nil
}
