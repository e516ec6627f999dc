package service

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/model"
	"marketplace/internal/repository"

	"github.com/google/uuid"
)

// OfferService defines operations for offers
type OfferService interface {
	CreateOffer(ctx context.Context, offererID, productID uuid.UUID) (*model.Offer, error)
	DeleteOffer(ctx context.Context, offerID, callerID uuid.UUID) error
	ListProductOffers(ctx context.Context, productID, callerID uuid.UUID) ([]model.Offer, error)
	ListUserOffers(ctx context.Context, userID, callerID uuid.UUID) ([]model.Offer, error)
}

type offerService struct {
	offerRepo   repository.OfferRepository
	productRepo repository.ProductRepository
}

// NewOfferService creates a new OfferService
func NewOfferService(offerRepo repository.OfferRepository, productRepo repository.ProductRepository) OfferService {
	return &offerService{offerRepo: offerRepo, productRepo: productRepo}
}

// CreateOffer records offererID's interest in a product they do not sell.
// Repeated offers on the same product are allowed.
func (s *offerService) CreateOffer(ctx context.Context, offererID, productID uuid.UUID) (*model.Offer, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for offer: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.SellerID == offererID {
		return nil, ErrSelfOffer
	}

	offer, err := s.offerRepo.Create(ctx, offererID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrReferenceMissing) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to create offer in repo: %w", err)
	}
	return offer, nil
}

// DeleteOffer is allowed for the offerer and for the seller of the product
func (s *offerService) DeleteOffer(ctx context.Context, offerID, callerID uuid.UUID) error {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return fmt.Errorf("failed to find offer for deletion: %w", err)
	}
	if offer == nil {
		return ErrOfferNotFound
	}
	isSeller := offer.Product != nil && offer.Product.SellerID == callerID
	if offer.UserID != callerID && !isSeller {
		return ErrForbidden
	}

	if err := s.offerRepo.Delete(ctx, offerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOfferNotFound
		}
		return fmt.Errorf("failed to delete offer in repo: %w", err)
	}
	return nil
}

// ListProductOffers shows a seller who is interested in their product
func (s *offerService) ListProductOffers(ctx context.Context, productID, callerID uuid.UUID) ([]model.Offer, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.SellerID != callerID {
		return nil, ErrForbidden
	}

	offers, err := s.offerRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product offers: %w", err)
	}
	return offers, nil
}

// ListUserOffers lists the offers a user made. Users only see their own.
func (s *offerService) ListUserOffers(ctx context.Context, userID, callerID uuid.UUID) ([]model.Offer, error) {
	if userID != callerID {
		return nil, ErrForbidden
	}
	offers, err := s.offerRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user offers: %w", err)
	}
	return offers, nil
}
