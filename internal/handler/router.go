package handler

import (
	"context"
	"net/http"
	"time"

	"marketplace/internal/media"
	"marketplace/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups everything NewRouter mounts
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Product *ProductHandler
	Offer   *OfferHandler
}

// RouterOptions configures the parts of the router that depend on deployment
type RouterOptions struct {
	// Auth guards every protected route
	Auth gin.HandlerFunc
	DB   Pinger
	// UploadsDir is served under /uploads when files are kept on disk
	UploadsDir string
}

// NewRouter wires the middleware stack and all routes
func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), cors())

	public := router.Group("")
	protected := router.Group("", opts.Auth)

	h.Auth.RegisterAuthRoutes(public)
	h.User.RegisterUserRoutes(public, protected)
	h.Product.RegisterProductRoutes(public, protected)
	h.Offer.RegisterOfferRoutes(protected)

	if opts.UploadsDir != "" {
		router.Static(media.PublicPrefix, opts.UploadsDir)
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if opts.DB != nil {
			if err := opts.DB.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	return router
}

// Simple CORS middleware (allow all)
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
