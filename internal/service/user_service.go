package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/model"
	"marketplace/internal/notify"
	"marketplace/internal/repository"
	"marketplace/internal/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const notificationTimeout = 10 * time.Second

// UserService manages marketplace accounts
type UserService interface {
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.UserProfile, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	notifier    notify.Notifier
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, productRepo repository.ProductRepository, notifier notify.Notifier) UserService {
	return &userService{userRepo: userRepo, productRepo: productRepo, notifier: notifier}
}

func (s *userService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	sanitize(user)

	recipient := *user
	go s.sendWelcome(&recipient)

	return user, nil
}

// sendWelcome runs detached from the request; failures are logged and dropped.
func (s *userService) sendWelcome(user *model.User) {
	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()

	if err := s.notifier.SendWelcome(ctx, user); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("welcome notification failed")
	}
}

// GetUser returns the user together with summaries of the products they sell
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	var (
		user     *model.User
		products []model.ProductSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.userRepo.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.productRepo.FindSummariesBySeller(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if products == nil {
		products = []model.ProductSummary{}
	}
	return &model.UserProfile{User: *sanitize(user), Products: products}, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		sanitize(&users[i])
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	changes := model.UserChanges{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		changes.PasswordHash = &hashed
	}

	user, err := s.userRepo.Update(ctx, id, changes)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to update user in repository: %w", err)
	}
	return sanitize(user), nil
}

// DeleteUser removes the account and returns the record as it was
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for deletion: %w", err)
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to delete user in repository: %w", err)
	}
	return sanitize(existing), nil
}
