package service

import (
	"context"
	"fmt"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/utils"
)

// AuthService provides authentication related services
type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtUtil   *utils.JWTUtil
	dummyHash string
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) (AuthService, error) {
	// Compared against when the email is unknown so both failure paths cost one bcrypt check.
	dummyHash, err := utils.HashPassword("not-a-real-password")
	if err != nil {
		return nil, err
	}
	return &authService{
		userRepo:  userRepo,
		jwtUtil:   jwtUtil,
		dummyHash: dummyHash,
	}, nil
}

// Login authenticates a user and returns a JWT token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		utils.CheckPasswordHash(password, s.dummyHash)
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return sanitize(user), token, nil
}

// sanitize drops the password hash before a user leaves the service layer
func sanitize(u *model.User) *model.User {
	if u != nil {
		u.PasswordHash = ""
	}
	return u
}
