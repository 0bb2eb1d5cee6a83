package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID        int64                  `json:"id"`
	EventTime time.Time              `json:"event_time"`
	ActorID   *uuid.UUID             `json:"actor_id,omitempty"`
	EventType string                 `json:"event_type"`
	EntityID  *uuid.UUID             `json:"entity_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
}

const (
	EventTypeChatRequestAccepted = "CHAT_REQUEST_ACCEPTED"
	EventTypeChatRequestRejected = "CHAT_REQUEST_REJECTED"
	EventTypePaymentVerified     = "PAYMENT_VERIFIED"
	EventTypePaymentRejected     = "PAYMENT_REJECTED"
	EventTypeProductApproved     = "PRODUCT_APPROVED"
	EventTypeProductRejected     = "PRODUCT_REJECTED"
	EventTypeUserRegistered      = "USER_REGISTERED"
)
