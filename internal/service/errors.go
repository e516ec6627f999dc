package service

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOfferNotFound      = errors.New("offer not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden: user does not have permission for this action")
	ErrSelfOffer          = fmt.Errorf("%w: sellers cannot make offers on their own products", ErrForbidden)
	ErrImageRequired      = errors.New("an image file or image_url is required")
)
