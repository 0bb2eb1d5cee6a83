package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omkar2446/LootDukan/internal/domain"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type ChatRequestRepository interface {
	// Upsert inserts the request if no row exists for its
	// (buyer, seller, product) triple and returns the stored row either
	// way. Repeated calls are idempotent and never touch an existing row.
	Upsert(ctx context.Context, request *domain.ChatRequest) (*domain.ChatRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatRequest, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatRequest, error)
	// UpdateStatus transitions a pending request to a terminal status.
	// Returns ErrInvalidState when the row is no longer pending.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CountForSeller(ctx context.Context, sellerID uuid.UUID, status string) (int, error)
}

type chatRequestRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewChatRequestRepository(db *pgxpool.Pool, log logger.Logger) ChatRequestRepository {
	return &chatRequestRepository{db: db, log: log}
}

func (r *chatRequestRepository) Upsert(ctx context.Context, request *domain.ChatRequest) (*domain.ChatRequest, error) {
	// DO NOTHING keeps the existing row (and its status) untouched; the
	// follow-up select returns whichever row won.
	insert := `
		INSERT INTO chat_requests (id, buyer_id, seller_id, product_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (buyer_id, seller_id, product_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, insert,
		request.ID, request.BuyerID, request.SellerID, request.ProductID,
		request.Status, request.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to upsert chat request", "error", err, "buyer_id", request.BuyerID)
		return nil, fmt.Errorf("upsert chat request: %w", err)
	}

	query := `
		SELECT id, buyer_id, seller_id, product_id, status, created_at
		FROM chat_requests
		WHERE buyer_id = $1 AND seller_id = $2 AND product_id = $3
	`

	stored := &domain.ChatRequest{}
	err = r.db.QueryRow(ctx, query, request.BuyerID, request.SellerID, request.ProductID).Scan(
		&stored.ID, &stored.BuyerID, &stored.SellerID, &stored.ProductID,
		&stored.Status, &stored.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to read back chat request", "error", err)
		return nil, fmt.Errorf("read chat request: %w", err)
	}
	return stored, nil
}

func (r *chatRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatRequest, error) {
	query := `
		SELECT id, buyer_id, seller_id, product_id, status, created_at
		FROM chat_requests
		WHERE id = $1
	`

	request := &domain.ChatRequest{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID, &request.BuyerID, &request.SellerID, &request.ProductID,
		&request.Status, &request.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get chat request", "error", err, "request_id", id)
		return nil, fmt.Errorf("get chat request: %w", err)
	}
	return request, nil
}

func (r *chatRequestRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatRequest, error) {
	query := `
		SELECT id, buyer_id, seller_id, product_id, status, created_at
		FROM chat_requests
		WHERE buyer_id = $1 OR seller_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list chat requests", "error", err, "user_id", userID)
		return nil, fmt.Errorf("list chat requests: %w", err)
	}
	defer rows.Close()

	var requests []*domain.ChatRequest
	for rows.Next() {
		request := &domain.ChatRequest{}
		err := rows.Scan(
			&request.ID, &request.BuyerID, &request.SellerID, &request.ProductID,
			&request.Status, &request.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan chat request", "error", err)
			return nil, fmt.Errorf("scan chat request: %w", err)
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *chatRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	// The pending guard makes the terminal transition race-safe: two
	// concurrent responses cannot both win.
	query := `
		UPDATE chat_requests
		SET status = $2
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update chat request status", "error", err, "request_id", id)
		return fmt.Errorf("update chat request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidState
	}
	return nil
}

func (r *chatRequestRepository) CountForSeller(ctx context.Context, sellerID uuid.UUID, status string) (int, error) {
	query := `SELECT count(*) FROM chat_requests WHERE seller_id = $1 AND status = $2`

	var count int
	if err := r.db.QueryRow(ctx, query, sellerID, status).Scan(&count); err != nil {
		r.log.Error("Failed to count chat requests", "error", err, "seller_id", sellerID)
		return 0, fmt.Errorf("count chat requests: %w", err)
	}
	return count, nil
}
