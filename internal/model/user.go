package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a marketplace account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserProfile is the single user read. Products is always present, empty
// when the user sells nothing.
type UserProfile struct {
	User
	Products []ProductSummary `json:"products"`
}

// CreateUserRequest is used for registering a new account
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Phone    string `json:"phone" validate:"required,phone"`
	Address  string `json:"address" validate:"required,min=5,max=255"`
}

// Normalize trims surrounding whitespace. Passwords are taken verbatim.
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
}

// UpdateUserRequest carries a partial update. Nil fields are left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,password"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Address  *string `json:"address,omitempty" validate:"omitempty,min=5,max=255"`
}

func (r *UpdateUserRequest) Normalize() {
	trimPtr(r.Name)
	trimPtr(r.Email)
	trimPtr(r.Phone)
	trimPtr(r.Address)
}

// LoginRequest holds login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// UserChanges is the persisted form of a partial update. PasswordHash is
// already hashed.
type UserChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Phone        *string
	Address      *string
}
