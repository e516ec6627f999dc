package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a listing published by a seller
type Product struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description,omitempty"` // Pointer for optional field
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url"` // absolute URL or /uploads/photos/<name>
	ImageUploaded bool            `json:"-"`         // stored by this service; only these are ever removed
	PublishedAt   time.Time       `json:"published_at"`
	SellerID      uuid.UUID       `json:"seller_id"`
	Seller        *SellerContact  `json:"seller,omitempty"`
}

// SellerContact is the abbreviated seller info embedded in product reads.
// Listings only carry the name.
type SellerContact struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`
}

// ProductSummary is embedded in user reads
type ProductSummary struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

// ProductFilter contains filter parameters for product listings
type ProductFilter struct {
	SellerID *uuid.UUID
}

// CreateProductRequest accepts JSON or multipart form bodies. The seller is
// never read from the body.
type CreateProductRequest struct {
	Title       string          `json:"title" validate:"required,min=3,max=100"`
	Description *string         `json:"description" validate:"omitempty,min=10,max=1000"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0,price"`
	Category    string          `json:"category" validate:"required,min=2,max=50"`
	ImageURL    *string         `json:"image_url" validate:"omitempty,url,max=500"`
}

func (r *CreateProductRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	trimPtr(r.Description)
	trimPtr(r.ImageURL)
	if r.ImageURL != nil && *r.ImageURL == "" {
		r.ImageURL = nil
	}
	if r.Description != nil && *r.Description == "" {
		r.Description = nil
	}
}

type UpdateProductRequest struct {
	Title       *string          `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string          `json:"description,omitempty" validate:"omitempty,min=10,max=1000"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gt=0,price"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,min=2,max=50"`
	ImageURL    *string          `json:"image_url,omitempty" validate:"omitempty,url,max=500"`
}

func (r *UpdateProductRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Description)
	trimPtr(r.Category)
	trimPtr(r.ImageURL)
}

// ProductChanges is the persisted form of a partial update
type ProductChanges struct {
	Title         *string
	Description   *string
	Price         *decimal.Decimal
	Category      *string
	ImageURL      *string
	ImageUploaded *bool // set together with ImageURL
}
