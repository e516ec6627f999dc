package service

import (
	"context"
	"strings"

	"marketplace/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id uuid.UUID, changes model.UserChanges) (*model.User, error) {
	args := m.Called(ctx, id, changes)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *mockProductRepo) FindAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *mockProductRepo) FindSummariesBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.ProductSummary, error) {
	args := m.Called(ctx, sellerID)
	summaries, _ := args.Get(0).([]model.ProductSummary)
	return summaries, args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, id uuid.UUID, changes model.ProductChanges) (*model.Product, error) {
	args := m.Called(ctx, id, changes)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockOfferRepo struct{ mock.Mock }

func (m *mockOfferRepo) Create(ctx context.Context, userID, productID uuid.UUID) (*model.Offer, error) {
	args := m.Called(ctx, userID, productID)
	offer, _ := args.Get(0).(*model.Offer)
	return offer, args.Error(1)
}

func (m *mockOfferRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Offer, error) {
	args := m.Called(ctx, id)
	offer, _ := args.Get(0).(*model.Offer)
	return offer, args.Error(1)
}

func (m *mockOfferRepo) FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.Offer, error) {
	args := m.Called(ctx, productID)
	offers, _ := args.Get(0).([]model.Offer)
	return offers, args.Error(1)
}

func (m *mockOfferRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Offer, error) {
	args := m.Called(ctx, userID)
	offers, _ := args.Get(0).([]model.Offer)
	return offers, args.Error(1)
}

func (m *mockOfferRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// mockImageStore owns every reference under prefix
type mockImageStore struct {
	mock.Mock
	prefix string
}

func newMockImageStore() *mockImageStore {
	return &mockImageStore{prefix: "/uploads/"}
}

func (m *mockImageStore) Owns(ref string) bool {
	return ref != "" && strings.HasPrefix(ref, m.prefix)
}

func (m *mockImageStore) Remove(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

// chanNotifier reports every welcome message on sent
type chanNotifier struct {
	sent chan *model.User
	err  error
}

func newChanNotifier(err error) *chanNotifier {
	return &chanNotifier{sent: make(chan *model.User, 1), err: err}
}

func (n *chanNotifier) SendWelcome(_ context.Context, user *model.User) error {
	n.sent <- user
	return n.err
}
