package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/logger"
	"marketplace/internal/media"
	"marketplace/internal/middleware"
	"marketplace/internal/notify"
	"marketplace/internal/repository"
	"marketplace/internal/service"
	"marketplace/internal/utils"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"))
	if envErr != nil {
		log.Info().Msg("No .env file found, relying on environment variables")
	}

	// --- Configuration ---
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load DB config")
	}
	if appCfg.GinMode != "" {
		gin.SetMode(appCfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := config.Migrate(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// --- Media storage ---
	store, servedDir, err := newStore(ctx, appCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up media storage")
	}
	ingestor := media.NewIngestor(store)

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(appCfg.JWTSecret, appCfg.JWTExpirationHours)
	validator := validation.New()

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	offerRepo := repository.NewOfferRepository(dbPool)

	// --- Initialize Services ---
	authService, err := service.NewAuthService(userRepo, jwtUtil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth service")
	}
	userService := service.NewUserService(userRepo, productRepo, newNotifier(appCfg))
	productService := service.NewProductService(productRepo, ingestor)
	offerService := service.NewOfferService(offerRepo, productRepo)

	// --- Initialize Handlers ---
	upload := middleware.UploadMiddleware(ingestor, "imagem", media.PhotoPolicy.Single())
	router := handler.NewRouter(handler.Handlers{
		Auth:    handler.NewAuthHandler(authService, validator),
		User:    handler.NewUserHandler(userService, validator),
		Product: handler.NewProductHandler(productService, validator, upload),
		Offer:   handler.NewOfferHandler(offerService, validator),
	}, handler.RouterOptions{
		Auth:       middleware.JWTAuthMiddleware(jwtUtil),
		DB:         dbPool,
		UploadsDir: servedDir,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + appCfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", appCfg.ServerPort).Str("storage", appCfg.StorageBackend).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// newStore picks the media backend. The returned directory is served under
// /uploads and is empty for object storage.
func newStore(ctx context.Context, cfg *config.AppConfig) (media.Store, string, error) {
	if cfg.StorageBackend == config.StorageS3 {
		client, err := media.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, "", err
		}
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Uploads will be stored in S3")
		return media.NewS3Store(client, cfg.S3.Bucket, cfg.S3.PublicBaseURL), "", nil
	}

	store, err := media.NewDiskStore(cfg.UploadsDir)
	if err != nil {
		return nil, "", err
	}
	log.Info().Str("dir", cfg.UploadsDir).Msg("Uploads will be stored on disk")
	return store, store.Root(), nil
}

func newNotifier(cfg *config.AppConfig) notify.Notifier {
	if cfg.SMTPEnabled() {
		return notify.NewSMTPNotifier(cfg.SMTP)
	}
	log.Info().Msg("SMTP_HOST not set, welcome messages are only logged")
	return notify.LogNotifier{}
}
