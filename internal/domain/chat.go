package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatRequest is a buyer's ask to converse with a seller about one
// product. At most one row exists per (buyer, seller, product); the
// status moves pending -> accepted|rejected and never transitions again.
type ChatRequest struct {
	ID        uuid.UUID `json:"id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	SellerID  uuid.UUID `json:"seller_id"`
	ProductID uuid.UUID `json:"product_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	ChatRequestPending  = "pending"
	ChatRequestAccepted = "accepted"
	ChatRequestRejected = "rejected"
)

// IsParty reports whether userID is the buyer or the seller of the request.
func (r *ChatRequest) IsParty(userID uuid.UUID) bool {
	return r.BuyerID == userID || r.SellerID == userID
}

// Message is one immutable entry in the log of an accepted chat request.
type Message struct {
	ID        int64     `json:"id"`
	RequestID uuid.UUID `json:"request_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// DailyMessageCount is the per-user, per-day outbound message counter.
// The date key is a calendar day in UTC; rows are never reset, they
// simply stop being read once the date passes.
type DailyMessageCount struct {
	ID           int64     `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	MessageDate  time.Time `json:"message_date"`
	MessageCount int       `json:"message_count"`
}

// RequestsByStatus partitions a user's chat requests for display.
type RequestsByStatus struct {
	Accepted []*ChatRequest `json:"accepted"`
	Pending  []*ChatRequest `json:"pending"`
	Rejected []*ChatRequest `json:"rejected"`
}
