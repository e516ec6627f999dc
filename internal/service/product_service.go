package service

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ImageStore is the media storage behind product images
type ImageStore interface {
	// Owns reports whether ref points into the storage
	Owns(ref string) bool
	Remove(ctx context.Context, ref string) error
}

// ProductService defines operations for product listings
type ProductService interface {
	CreateProduct(ctx context.Context, sellerID uuid.UUID, req model.CreateProductRequest, uploadedRef string) (*model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	// Authorize fails unless callerID is the seller of an existing product
	Authorize(ctx context.Context, id, callerID uuid.UUID) error
	UpdateProduct(ctx context.Context, id, callerID uuid.UUID, req model.UpdateProductRequest, uploadedRef string) (*model.Product, error)
	DeleteProduct(ctx context.Context, id, callerID uuid.UUID) (*model.Product, error)
}

type productService struct {
	repo   repository.ProductRepository
	images ImageStore
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository, images ImageStore) ProductService {
	return &productService{repo: repo, images: images}
}

// CreateProduct publishes a listing for sellerID. An uploaded file takes
// precedence over an image_url in the request.
func (s *productService) CreateProduct(ctx context.Context, sellerID uuid.UUID, req model.CreateProductRequest, uploadedRef string) (*model.Product, error) {
	if err := s.checkImageURL(req.ImageURL); err != nil {
		return nil, err
	}

	imageURL := uploadedRef
	if imageURL == "" && req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	if imageURL == "" {
		return nil, ErrImageRequired
	}

	product := &model.Product{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		ImageURL:      imageURL,
		ImageUploaded: uploadedRef != "",
		SellerID:      sellerID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrReferenceMissing) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repository.ErrValueOutOfRange) {
			return nil, &validation.Error{Field: "price", Rule: "price"}
		}
		return nil, fmt.Errorf("failed to create product in repo: %w", err)
	}
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// findOwned loads a product and checks that callerID is its seller
func (s *productService) findOwned(ctx context.Context, id, callerID uuid.UUID) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.SellerID != callerID { // Only the seller can modify a listing
		return nil, ErrForbidden
	}
	return product, nil
}

func (s *productService) Authorize(ctx context.Context, id, callerID uuid.UUID) error {
	_, err := s.findOwned(ctx, id, callerID)
	return err
}

func (s *productService) UpdateProduct(ctx context.Context, id, callerID uuid.UUID, req model.UpdateProductRequest, uploadedRef string) (*model.Product, error) {
	existing, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkImageURL(req.ImageURL); err != nil {
		return nil, err
	}

	changes := model.ProductChanges{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
	if uploadedRef != "" {
		changes.ImageURL = &uploadedRef
	}
	if changes.ImageURL != nil {
		uploaded := uploadedRef != ""
		changes.ImageUploaded = &uploaded
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repository.ErrValueOutOfRange) {
			return nil, &validation.Error{Field: "price", Rule: "price"}
		}
		return nil, fmt.Errorf("failed to update product in repo: %w", err)
	}

	if updated.ImageURL != existing.ImageURL {
		s.removeImage(ctx, existing)
	}
	return updated, nil
}

// DeleteProduct removes the listing and then its stored image
func (s *productService) DeleteProduct(ctx context.Context, id, callerID uuid.UUID) (*model.Product, error) {
	existing, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product in repo: %w", err)
	}

	s.removeImage(ctx, existing)
	return existing, nil
}

// checkImageURL rejects caller supplied links into upload storage. Such a
// link would later be removed as if this product had uploaded it.
func (s *productService) checkImageURL(imageURL *string) error {
	if imageURL != nil && s.images.Owns(*imageURL) {
		return &validation.Error{Field: "image_url", Rule: "external"}
	}
	return nil
}

func (s *productService) removeImage(ctx context.Context, product *model.Product) {
	if !product.ImageUploaded || product.ImageURL == "" {
		return
	}
	if err := s.images.Remove(ctx, product.ImageURL); err != nil {
		log.Warn().Err(err).Str("ref", product.ImageURL).Msg("failed to remove product image")
	}
}
