package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omkar2446/LootDukan/internal/domain"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	// ListByRequest returns the full message history ordered by creation
	// time, insertion id as tiebreak.
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*domain.Message, error)
}

type messageRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewMessageRepository(db *pgxpool.Pool, log logger.Logger) MessageRepository {
	return &messageRepository{db: db, log: log}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (request_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.RequestID, message.SenderID, message.Body,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create message", "error", err, "request_id", message.RequestID)
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *messageRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*domain.Message, error) {
	query := `
		SELECT id, request_id, sender_id, body, created_at
		FROM messages
		WHERE request_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, requestID)
	if err != nil {
		r.log.Error("Failed to list messages", "error", err, "request_id", requestID)
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		message := &domain.Message{}
		err := rows.Scan(
			&message.ID, &message.RequestID, &message.SenderID,
			&message.Body, &message.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan message", "error", err)
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
