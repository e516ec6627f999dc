package handler

import (
	"net/http"

	"marketplace/internal/model"
	"marketplace/internal/service"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles account requests
type UserHandler struct {
	service   service.UserService
	validator *validation.Validator
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService, v *validation.Validator) *UserHandler {
	return &UserHandler{service: s, validator: v}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := validation.ParseID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := selfID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req model.UpdateUserRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := selfID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.service.DeleteUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "user": user})
}

// selfID returns the :id path parameter when it names the caller's own
// account. Accounts are only changed by their owner.
func selfID(c *gin.Context) (uuid.UUID, error) {
	callerID, err := getCallerID(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := validation.ParseID("id", c.Param("id"))
	if err != nil {
		return uuid.Nil, err
	}
	if id != callerID {
		return uuid.Nil, service.ErrForbidden
	}
	return id, nil
}

// RegisterUserRoutes registers account routes. Only sign up is public.
func (h *UserHandler) RegisterUserRoutes(public, protected *gin.RouterGroup) {
	public.POST("/user", h.CreateUser)

	protected.GET("/user", h.ListUsers)
	protected.GET("/user/:id", h.GetUser)
	protected.PUT("/user/:id", h.UpdateUser)
	protected.DELETE("/user/:id", h.DeleteUser)
}
