package handler

import (
	"context"

	"marketplace/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*model.User)
	return user, args.String(1), args.Error(2)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	args := m.Called(ctx, id)
	profile, _ := args.Get(0).(*model.UserProfile)
	return profile, args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	args := m.Called(ctx, id, req)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

type mockProductService struct{ mock.Mock }

func (m *mockProductService) CreateProduct(ctx context.Context, sellerID uuid.UUID, req model.CreateProductRequest, uploadedRef string) (*model.Product, error) {
	args := m.Called(ctx, sellerID, req, uploadedRef)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *mockProductService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *mockProductService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *mockProductService) Authorize(ctx context.Context, id, callerID uuid.UUID) error {
	return m.Called(ctx, id, callerID).Error(0)
}

func (m *mockProductService) UpdateProduct(ctx context.Context, id, callerID uuid.UUID, req model.UpdateProductRequest, uploadedRef string) (*model.Product, error) {
	args := m.Called(ctx, id, callerID, req, uploadedRef)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, id, callerID uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id, callerID)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

type mockOfferService struct{ mock.Mock }

func (m *mockOfferService) CreateOffer(ctx context.Context, offererID, productID uuid.UUID) (*model.Offer, error) {
	args := m.Called(ctx, offererID, productID)
	offer, _ := args.Get(0).(*model.Offer)
	return offer, args.Error(1)
}

func (m *mockOfferService) DeleteOffer(ctx context.Context, offerID, callerID uuid.UUID) error {
	return m.Called(ctx, offerID, callerID).Error(0)
}

func (m *mockOfferService) ListProductOffers(ctx context.Context, productID, callerID uuid.UUID) ([]model.Offer, error) {
	args := m.Called(ctx, productID, callerID)
	offers, _ := args.Get(0).([]model.Offer)
	return offers, args.Error(1)
}

func (m *mockOfferService) ListUserOffers(ctx context.Context, userID, callerID uuid.UUID) ([]model.Offer, error) {
	args := m.Called(ctx, userID, callerID)
	offers, _ := args.Get(0).([]model.Offer)
	return offers, args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
