package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product covers both admin-curated affiliate deals (SellerID nil,
// AffiliateLink set) and paid seller listings from the marketplace.
type Product struct {
	ID              uuid.UUID  `json:"id"`
	SellerID        *uuid.UUID `json:"seller_id,omitempty"`
	Name            string     `json:"name"`
	Description     *string    `json:"description,omitempty"`
	ImageURL        *string    `json:"image_url,omitempty"`
	ImageURL2       *string    `json:"image_url2,omitempty"`
	ImageURL3       *string    `json:"image_url3,omitempty"`
	OriginalPrice   float64    `json:"original_price"`
	DiscountedPrice float64    `json:"discounted_price"`
	DiscountPercent int        `json:"discount_percent"`
	Category        string     `json:"category"`
	StoreName       string     `json:"store_name"`
	AffiliateLink   *string    `json:"affiliate_link,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

const (
	ProductStatusPending  = "pending"
	ProductStatusApproved = "approved"
	ProductStatusRejected = "rejected"
)
