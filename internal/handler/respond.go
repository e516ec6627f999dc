package handler

import (
	"errors"
	"net/http"

	"marketplace/internal/media"
	"marketplace/internal/middleware"
	"marketplace/internal/service"
	"marketplace/internal/utils"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var errMissingIdentity = errors.New("authentication required")

// respondError maps service and validation errors to a status and a
// {"message": ...} body. Unknown errors are logged and reported as 500.
func respondError(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message": verr.Error(),
			"field":   verr.Field,
			"rule":    verr.Rule,
		})
		return
	}

	status := statusFor(err)
	switch {
	case status == http.StatusInternalServerError:
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("request failed")
		c.AbortWithStatusJSON(status, gin.H{"message": "internal server error"})
	case errors.Is(err, service.ErrInvalidCredentials):
		// same body for unknown email and wrong password
		c.AbortWithStatusJSON(status, gin.H{"message": service.ErrInvalidCredentials.Error()})
	default:
		c.AbortWithStatusJSON(status, gin.H{"message": err.Error()})
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrImageRequired),
		errors.Is(err, media.ErrTooManyFiles),
		errors.Is(err, media.ErrFileTooLarge),
		errors.Is(err, media.ErrUnsupportedType):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, utils.ErrInvalidToken),
		errors.Is(err, utils.ErrExpiredToken),
		errors.Is(err, errMissingIdentity):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOfferNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// getCallerID returns the verified identity. Handlers behind the auth
// middleware still fail closed when it is missing.
func getCallerID(c *gin.Context) (uuid.UUID, error) {
	id, ok := middleware.IdentityFrom(c.Request.Context())
	if !ok {
		return uuid.Nil, errMissingIdentity
	}
	return id, nil
}

// bindJSON decodes the body into req and validates it
func bindJSON(c *gin.Context, v *validation.Validator, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return validation.Malformed(err)
	}
	return v.Struct(req)
}
