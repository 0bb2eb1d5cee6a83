package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omkar2446/LootDukan/pkg/logger"
)

type QuotaRepository interface {
	// CheckAndIncrement bumps the user's counter for the given calendar
	// day unless it already reached limit. Returns the new count and
	// whether the send is allowed; at the limit the stored count is left
	// unchanged. The upsert is a single atomic statement, so concurrent
	// sends from the same user cannot exceed the limit.
	CheckAndIncrement(ctx context.Context, userID uuid.UUID, day time.Time, limit int) (int, bool, error)
	Count(ctx context.Context, userID uuid.UUID, day time.Time) (int, error)
}

type quotaRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewQuotaRepository(db *pgxpool.Pool, log logger.Logger) QuotaRepository {
	return &quotaRepository{db: db, log: log}
}

func (r *quotaRepository) CheckAndIncrement(ctx context.Context, userID uuid.UUID, day time.Time, limit int) (int, bool, error) {
	query := `
		INSERT INTO daily_message_counts (user_id, message_date, message_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, message_date) DO UPDATE
		SET message_count = daily_message_counts.message_count + 1
		WHERE daily_message_counts.message_count < $3
		RETURNING message_count
	`

	var count int
	err := r.db.QueryRow(ctx, query, userID, day, limit).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict row exists and the WHERE guard rejected the
			// update: the user is at the limit.
			return limit, false, nil
		}
		r.log.Error("Failed to increment message quota", "error", err, "user_id", userID)
		return 0, false, fmt.Errorf("increment message quota: %w", err)
	}
	return count, true, nil
}

func (r *quotaRepository) Count(ctx context.Context, userID uuid.UUID, day time.Time) (int, error) {
	query := `
		SELECT message_count
		FROM daily_message_counts
		WHERE user_id = $1 AND message_date = $2
	`

	var count int
	err := r.db.QueryRow(ctx, query, userID, day).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		r.log.Error("Failed to read message quota", "error", err, "user_id", userID)
		return 0, fmt.Errorf("read message quota: %w", err)
	}
	return count, nil
}
