package handler

import (
	"net/http"

	"marketplace/internal/model"
	"marketplace/internal/service"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

// OfferHandler handles offer requests
type OfferHandler struct {
	service   service.OfferService
	validator *validation.Validator
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(s service.OfferService, v *validation.Validator) *OfferHandler {
	return &OfferHandler{service: s, validator: v}
}

func (h *OfferHandler) CreateOffer(c *gin.Context) {
	callerID, err := getCallerID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req model.CreateOfferRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		respondError(c, err)
		return
	}
	productID, err := validation.ParseID("product_id", req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	offer, err := h.service.CreateOffer(c.Request.Context(), callerID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) DeleteOffer(c *gin.Context) {
	callerID, err := getCallerID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	id, err := validation.ParseID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.DeleteOffer(c.Request.Context(), id, callerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProductOffers shows the seller the offers on one of their products
func (h *OfferHandler) ListProductOffers(c *gin.Context) {
	callerID, err := getCallerID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	productID, err := validation.ParseID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	offers, err := h.service.ListProductOffers(c.Request.Context(), productID, callerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *OfferHandler) ListUserOffers(c *gin.Context) {
	callerID, err := getCallerID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	userID, err := validation.ParseID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	offers, err := h.service.ListUserOffers(c.Request.Context(), userID, callerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

// RegisterOfferRoutes registers offer routes. All of them need a caller.
func (h *OfferHandler) RegisterOfferRoutes(protected *gin.RouterGroup) {
	protected.POST("/ofertas", h.CreateOffer)
	protected.DELETE("/ofertas/:id", h.DeleteOffer)
	protected.GET("/produto/:id/ofertas", h.ListProductOffers)
	protected.GET("/user/:id/ofertas", h.ListUserOffers)
}
