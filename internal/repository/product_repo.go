package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines operations for product listings
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	FindSummariesBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.ProductSummary, error)
	Update(ctx context.Context, id uuid.UUID, changes model.ProductChanges) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db DBTX
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `p.id, p.title, p.description, p.price, p.category, p.image_url, p.image_uploaded, p.published_at, p.seller_id`

const productReturning = `RETURNING id, title, description, price, category, image_url, image_uploaded, published_at, seller_id`

// scanProductWithContact reads productColumns followed by the seller's name, email and phone.
func scanProductWithContact(row scanner) (*model.Product, error) {
	p := &model.Product{Seller: &model.SellerContact{}}
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.ImageUploaded, &p.PublishedAt, &p.SellerID,
		&p.Seller.Name, &p.Seller.Email, &p.Seller.Phone,
	)
	if err != nil {
		return nil, err
	}
	p.Seller.ID = p.SellerID
	return p, nil
}

// Create inserts a product and fills in the generated fields and the seller contact
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	sql := `WITH p AS (
                INSERT INTO products (title, description, price, category, image_url, image_uploaded, seller_id)
                VALUES ($1, $2, $3, $4, $5, $6, $7)
                ` + productReturning + `
            )
            SELECT ` + productColumns + `, u.name, u.email, u.phone
            FROM p JOIN users u ON u.id = p.seller_id`
	created, err := scanProductWithContact(r.db.QueryRow(ctx, sql,
		product.Title, product.Description, product.Price, product.Category, product.ImageURL, product.ImageUploaded, product.SellerID))
	if err != nil {
		if isForeignKeyViolation(err) || errors.Is(err, pgx.ErrNoRows) {
			return ErrReferenceMissing
		}
		if isValueOutOfRange(err) {
			return ErrValueOutOfRange
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	*product = *created
	return nil
}

// FindByID retrieves a product with the seller's contact details
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	sql := `SELECT ` + productColumns + `, u.name, u.email, u.phone
            FROM products p JOIN users u ON u.id = p.seller_id
            WHERE p.id = $1`
	product, err := scanProductWithContact(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindAll lists products newest first, each carrying the seller's name
func (r *productRepository) FindAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	sql := `SELECT ` + productColumns + `, u.name
            FROM products p JOIN users u ON u.id = p.seller_id`
	var args []interface{}
	if filter.SellerID != nil {
		sql += ` WHERE p.seller_id = $1`
		args = append(args, *filter.SellerID)
	}
	sql += ` ORDER BY p.published_at DESC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p := model.Product{Seller: &model.SellerContact{}}
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.ImageUploaded, &p.PublishedAt, &p.SellerID,
			&p.Seller.Name,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		p.Seller.ID = p.SellerID
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// FindSummariesBySeller returns the short form of every product a user sells
func (r *productRepository) FindSummariesBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.ProductSummary, error) {
	sql := `SELECT id, title, price, image_url FROM products
            WHERE seller_id = $1 ORDER BY published_at DESC`
	rows, err := r.db.Query(ctx, sql, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query seller products: %w", err)
	}
	defer rows.Close()

	summaries := []model.ProductSummary{}
	for rows.Next() {
		var s model.ProductSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Price, &s.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan product summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product summaries: %w", err)
	}
	return summaries, nil
}

// Update applies the non-nil fields of changes. The seller never changes.
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, changes model.ProductChanges) (*model.Product, error) {
	sql := `WITH p AS (
                UPDATE products
                SET title = COALESCE($1, title),
                    description = COALESCE($2, description),
                    price = COALESCE($3, price),
                    category = COALESCE($4, category),
                    image_url = COALESCE($5, image_url),
                    image_uploaded = COALESCE($6, image_uploaded)
                WHERE id = $7
                ` + productReturning + `
            )
            SELECT ` + productColumns + `, u.name, u.email, u.phone
            FROM p JOIN users u ON u.id = p.seller_id`
	product, err := scanProductWithContact(r.db.QueryRow(ctx, sql,
		changes.Title, changes.Description, changes.Price, changes.Category, changes.ImageURL, changes.ImageUploaded, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isValueOutOfRange(err) {
			return nil, ErrValueOutOfRange
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete removes a product and, by cascade, its offers
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
