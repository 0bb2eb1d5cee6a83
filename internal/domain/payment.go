package domain

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID        uuid.UUID `json:"id"`
	SellerID  uuid.UUID `json:"seller_id"`
	OrderID   string    `json:"order_id"`
	PaymentID string    `json:"payment_id"`
	AmountINR float64   `json:"amount_inr"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// GatewayOrder is the order record returned by the payment gateway when
// a checkout is initiated; the client feeds it to the checkout widget.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
