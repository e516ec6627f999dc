package handler

import (
	"net/http"

	"marketplace/internal/model"
	"marketplace/internal/service"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service   service.AuthService
	validator *validation.Validator
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, v *validation.Validator) *AuthHandler {
	return &AuthHandler{service: s, validator: v}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		respondError(c, err)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{User: user, Token: token})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(public *gin.RouterGroup) {
	public.POST("/user/login", h.Login)
}
