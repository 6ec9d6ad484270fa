package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/labstack/gommon/random"

	_ "planit/docs"
	"planit/internal/config"
	"planit/internal/handlers"
	"planit/internal/middleware"
	"planit/internal/repositories"
	"planit/internal/services"
	"planit/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// JWT configuration
	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.StoreBackend, err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	assets := openAssetStore(ctx, cfg)

	// Create services
	credentials := services.NewCredentialService(jwtSecret, cfg.TokenTTL, cfg.BcryptCost)
	userSvc := services.NewUserService(store, credentials)
	plannerSvc := services.NewPlannerService(store)
	vendorSvc := services.NewVendorService(store)
	assetSvc := services.NewAssetService(store, assets)

	router := &handlers.Router{
		Health:   handlers.NewHealthHandlers(store, assets, cfg.StoreBackend, version),
		Users:    handlers.NewUserHandlers(userSvc),
		Planners: handlers.NewPlannerHandlers(plannerSvc, assetSvc),
		Vendors:  handlers.NewVendorHandlers(vendorSvc, assetSvc),
		Auth:     middleware.JWTMiddleware(credentials, store),
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.ErrorHandler
	e.Logger.SetLevel(logLevel(cfg.LogLevel))

	// Middleware
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(echoMiddleware.BodyLimit("12M"))
	e.Use(middleware.VersionHeader(version))
	e.Use(middleware.AuditWrites())

	router.Register(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Planit API %s listening on %s (%s backend)", version, addr, cfg.StoreBackend)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}

// openStore connects the configured backend and prepares its schema.
func openStore(ctx context.Context, cfg config.Config) (repositories.ProfileStore, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		db, err := database.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		store := repositories.NewMongoStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		return store, nil
	default:
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store := repositories.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	}
}

// openAssetStore returns nil when uploads should fall back to mock URLs.
func openAssetStore(ctx context.Context, cfg config.Config) services.AssetStore {
	if !cfg.AssetStoreEnabled() {
		log.Println("MINIO_ENDPOINT not set, uploads will return mock URLs")
		return nil
	}
	assets, err := services.NewMinioAssetStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL, cfg.MinioBucket, cfg.PublicBaseURL())
	if err != nil {
		log.Printf("WARNING: Failed to initialize MinIO client, uploads will return mock URLs: %v", err)
		return nil
	}
	if err := assets.EnsureBucket(ctx); err != nil {
		log.Printf("WARNING: MinIO bucket %s unavailable, uploads will return mock URLs: %v", cfg.MinioBucket, err)
		return nil
	}
	return assets
}

func logLevel(level string) gommonlog.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return gommonlog.DEBUG
	case "warn", "warning":
		return gommonlog.WARN
	case "error":
		return gommonlog.ERROR
	case "off":
		return gommonlog.OFF
	default:
		return gommonlog.INFO
	}
}
