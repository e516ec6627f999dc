package handler

import (
	"net/http"

	"marketplace/internal/middleware"
	"marketplace/internal/model"
	"marketplace/internal/service"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product listing requests
type ProductHandler struct {
	service   service.ProductService
	validator *validation.Validator
	upload    gin.HandlerFunc
}

// NewProductHandler creates a new ProductHandler. upload runs before the
// create and update handlers and stores the "imagem" file.
func NewProductHandler(s service.ProductService, v *validation.Validator, upload gin.HandlerFunc) *ProductHandler {
	return &ProductHandler{service: s, validator: v, upload: upload}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	sellerID, err := getCallerID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req model.CreateProductRequest
	if err := bindProduct(c, &req, createFromForm); err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondError(c, err)
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), sellerID, req, middleware.FirstUploadRef(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filter model.ProductFilter
	if raw := c.Query("vendedor_id"); raw != "" {
		sellerID, err := validation.ParseID("vendedor_id", raw)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.SellerID = &sellerID
	}

	products, err := h.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := validation.ParseID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
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

	var req model.UpdateProductRequest
	if err := bindProduct(c, &req, updateFromForm); err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondError(c, err)
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, callerID, req, middleware.FirstUploadRef(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
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

	product, err := h.service.DeleteProduct(c.Request.Context(), id, callerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully", "product": product})
}

// requireSeller stops the request unless the caller sells the product in
// the path. It runs ahead of the upload, so a refused request never stores
// a file and is refused whatever its body holds.
func (h *ProductHandler) requireSeller(c *gin.Context) {
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

	if err := h.service.Authorize(c.Request.Context(), id, callerID); err != nil {
		respondError(c, err)
		return
	}
	c.Next()
}

// RegisterProductRoutes registers product routes. Reads are public.
func (h *ProductHandler) RegisterProductRoutes(public, protected *gin.RouterGroup) {
	public.GET("/produto", h.ListProducts)
	public.GET("/produto/:id", h.GetProduct)

	protected.POST("/produto", h.upload, h.CreateProduct)
	protected.PUT("/produto/:id", h.requireSeller, h.upload, h.UpdateProduct)
	protected.DELETE("/produto/:id", h.DeleteProduct)
}

// bindProduct reads JSON bodies with gin and multipart forms with fromForm
func bindProduct[T any](c *gin.Context, req *T, fromForm func(*gin.Context, *T) error) error {
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		return fromForm(c, req)
	}
	if err := c.ShouldBindJSON(req); err != nil {
		return validation.Malformed(err)
	}
	return nil
}

func createFromForm(c *gin.Context, req *model.CreateProductRequest) error {
	req.Title = c.PostForm("title")
	req.Category = c.PostForm("category")
	req.Description = optionalFormValue(c, "description")
	req.ImageURL = optionalFormValue(c, "image_url")

	price, err := formDecimal(c, "price")
	if err != nil {
		return err
	}
	if price != nil {
		req.Price = *price
	}
	return nil
}

func updateFromForm(c *gin.Context, req *model.UpdateProductRequest) error {
	req.Title = optionalFormValue(c, "title")
	req.Description = optionalFormValue(c, "description")
	req.Category = optionalFormValue(c, "category")
	req.ImageURL = optionalFormValue(c, "image_url")

	price, err := formDecimal(c, "price")
	if err != nil {
		return err
	}
	req.Price = price
	return nil
}

func optionalFormValue(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}

// formDecimal parses a price sent as a form string. Absent means nil.
func formDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw, ok := c.GetPostForm(key)
	if !ok || raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &validation.Error{Field: key, Rule: "number"}
	}
	return &d, nil
}

