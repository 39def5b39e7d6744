package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/kiwimarket-backend/config"
	"github.com/ikkim/kiwimarket-backend/internal/app/controller"
	"github.com/ikkim/kiwimarket-backend/internal/app/repository"
	"github.com/ikkim/kiwimarket-backend/internal/app/service"
	"github.com/ikkim/kiwimarket-backend/internal/db"
	"github.com/ikkim/kiwimarket-backend/internal/middleware"
	"github.com/ikkim/kiwimarket-backend/internal/router"
	"github.com/ikkim/kiwimarket-backend/internal/scheduler"
	"github.com/ikkim/kiwimarket-backend/internal/storage"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"github.com/ikkim/kiwimarket-backend/pkg/redis"
	"github.com/ikkim/kiwimarket-backend/pkg/sms"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting KIWIMARKET Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations (reference data included)
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Near address cache (optional)
	var nearAddressCache service.Cache
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, near address cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			nearAddressCache = redis.NewCache(redis.GetClient(), "near_address", cfg.Redis.CacheTTL)
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Initialize repositories
	conn := db.GetDB()
	userRepo := repository.NewUserRepository(conn)
	fullAddressRepo := repository.NewFullAddressRepository(conn)
	addressRepo := repository.NewAddressRepository(conn)
	authSmsRepo := repository.NewAuthSmsRepository(conn)
	productRepo := repository.NewProductRepository(conn)
	commentRepo := repository.NewCommentRepository(conn)
	wishlistRepo := repository.NewWishlistRepository(conn)
	referenceRepo := repository.NewReferenceRepository(conn)

	// Initialize services
	tokens := service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.SessionExpiry)
	verificationService := service.NewVerificationService(
		authSmsRepo,
		userRepo,
		sms.NewSender(cfg.SMS),
		tokens,
		cfg.OTP.CodeTTL,
	)
	userService := service.NewUserService(userRepo, fullAddressRepo, productRepo, referenceRepo, tokens)
	addressService := service.NewAddressService(addressRepo, fullAddressRepo, nearAddressCache)
	productService := service.NewProductService(
		productRepo,
		commentRepo,
		wishlistRepo,
		addressRepo,
		referenceRepo,
		storage.NewS3Storage(cfg.S3),
	)

	// Start expired code purge job
	codeScheduler := scheduler.NewAuthCodeScheduler(verificationService, cfg.OTP.PurgeSpec)
	if err := codeScheduler.Start(); err != nil {
		logger.Fatal("Failed to start auth code scheduler", err)
	}
	defer codeScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		controller.NewAuthController(verificationService, userService),
		controller.NewAddressController(addressService),
		controller.NewUserController(userService, productService, cfg.Listing.StrictStatusChange),
		controller.NewProductController(productService),
		middleware.NewAuthMiddleware(cfg.JWT.Secret, userService),
		cfg,
	)
	engine, err := r.Setup()
	if err != nil {
		logger.Fatal("Failed to setup router", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
