package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OfferRepository defines operations for offers
type OfferRepository interface {
	Create(ctx context.Context, userID, productID uuid.UUID) (*model.Offer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Offer, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.Offer, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Offer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type offerRepository struct {
	db DBTX
}

// NewOfferRepository creates a new OfferRepository
func NewOfferRepository(db DBTX) OfferRepository {
	return &offerRepository{db: db}
}

const offerSelect = `SELECT o.id, o.offered_at, o.user_id, o.product_id,
                            u.name, u.email,
                            p.title, p.price, p.seller_id`

const offerJoins = ` JOIN users u ON u.id = o.user_id JOIN products p ON p.id = o.product_id`

func scanOffer(row scanner) (*model.Offer, error) {
	o := &model.Offer{User: &model.OffererSummary{}, Product: &model.OfferProduct{}}
	err := row.Scan(
		&o.ID, &o.OfferedAt, &o.UserID, &o.ProductID,
		&o.User.Name, &o.User.Email,
		&o.Product.Title, &o.Product.Price, &o.Product.SellerID,
	)
	if err != nil {
		return nil, err
	}
	o.User.ID = o.UserID
	o.Product.ID = o.ProductID
	return o, nil
}

// Create records an offer and returns it with offerer and product summaries
func (r *offerRepository) Create(ctx context.Context, userID, productID uuid.UUID) (*model.Offer, error) {
	sql := `WITH o AS (
                INSERT INTO offers (user_id, product_id) VALUES ($1, $2)
                RETURNING id, offered_at, user_id, product_id
            ) ` + offerSelect + ` FROM o` + offerJoins
	offer, err := scanOffer(r.db.QueryRow(ctx, sql, userID, productID))
	if err != nil {
		if isForeignKeyViolation(err) || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReferenceMissing
		}
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	return offer, nil
}

// FindByID retrieves an offer with its summaries
func (r *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Offer, error) {
	sql := offerSelect + ` FROM offers o` + offerJoins + ` WHERE o.id = $1`
	offer, err := scanOffer(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find offer by ID: %w", err)
	}
	return offer, nil
}

// FindByProduct lists the offers made on a product, newest first
func (r *offerRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.Offer, error) {
	sql := offerSelect + ` FROM offers o` + offerJoins + ` WHERE o.product_id = $1 ORDER BY o.offered_at DESC`
	return r.list(ctx, sql, productID)
}

// FindByUser lists the offers a user made, newest first
func (r *offerRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Offer, error) {
	sql := offerSelect + ` FROM offers o` + offerJoins + ` WHERE o.user_id = $1 ORDER BY o.offered_at DESC`
	return r.list(ctx, sql, userID)
}

func (r *offerRepository) list(ctx context.Context, sql string, args ...interface{}) ([]model.Offer, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	offers := []model.Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer row: %w", err)
		}
		offers = append(offers, *o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offer rows: %w", err)
	}
	return offers, nil
}

// Delete removes an offer
func (r *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
