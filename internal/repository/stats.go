package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omkar2446/LootDukan/pkg/logger"
)

type StatsRepository interface {
	CountListingsByStatus(ctx context.Context, sellerID uuid.UUID) (map[string]int, error)
	CountMessagesSentOn(ctx context.Context, userID uuid.UUID, day time.Time) (int, error)
}

type statsRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewStatsRepository(db *pgxpool.Pool, log logger.Logger) StatsRepository {
	return &statsRepository{db: db, log: log}
}

func (r *statsRepository) CountListingsByStatus(ctx context.Context, sellerID uuid.UUID) (map[string]int, error) {
	query := `
		SELECT status, count(*)
		FROM products
		WHERE seller_id = $1
		GROUP BY status
	`

	rows, err := r.db.Query(ctx, query, sellerID)
	if err != nil {
		r.log.Error("Failed to count listings", "error", err, "seller_id", sellerID)
		return nil, fmt.Errorf("count listings: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan listing count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *statsRepository) CountMessagesSentOn(ctx context.Context, userID uuid.UUID, day time.Time) (int, error) {
	query := `
		SELECT coalesce(message_count, 0)
		FROM daily_message_counts
		WHERE user_id = $1 AND message_date = $2
	`

	var count int
	err := r.db.QueryRow(ctx, query, userID, day).Scan(&count)
	if err != nil {
		// No row means no messages today.
		return 0, nil
	}
	return count, nil
}
