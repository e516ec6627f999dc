package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Offer registers a user's interest in a product. Offers are immutable.
type Offer struct {
	ID        uuid.UUID       `json:"id"`
	OfferedAt time.Time       `json:"offered_at"`
	UserID    uuid.UUID       `json:"user_id"`
	ProductID uuid.UUID       `json:"product_id"`
	User      *OffererSummary `json:"user,omitempty"`
	Product   *OfferProduct   `json:"product,omitempty"`
}

type OffererSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type OfferProduct struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	SellerID uuid.UUID       `json:"seller_id"`
}

// CreateOfferRequest is used for creating a new offer
type CreateOfferRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

func (r *CreateOfferRequest) Normalize() {
	r.ProductID = strings.TrimSpace(r.ProductID)
}
