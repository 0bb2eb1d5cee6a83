package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omkar2446/LootDukan/internal/domain"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
}

type paymentRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewPaymentRepository(db *pgxpool.Pool, log logger.Logger) PaymentRepository {
	return &paymentRepository{db: db, log: log}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, seller_id, order_id, payment_id, amount_inr, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		payment.ID, payment.SellerID, payment.OrderID, payment.PaymentID,
		payment.AmountINR, payment.Status,
	).Scan(&payment.CreatedAt)

	if err != nil {
		r.log.Error("Failed to record payment", "error", err, "order_id", payment.OrderID)
		return fmt.Errorf("record payment: %w", err)
	}
	return nil
}
