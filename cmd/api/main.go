package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"asset-management-api/internal/auth"
	"asset-management-api/internal/config"
	"asset-management-api/internal/database"
	"asset-management-api/internal/handler"
	"asset-management-api/internal/middleware"
	"asset-management-api/internal/notification"
	"asset-management-api/internal/repository"
	"asset-management-api/internal/router"
	"asset-management-api/internal/service"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Skipping .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	logger := log.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	requestRepo := repository.NewAssetRequestRepository(db)
	consentRepo := repository.NewConsentFormRepository(db)
	terminationRepo := repository.NewTerminationRepository(db)

	// Initialize notification client
	notifier := notification.NewNotifierWithConfig(notification.Config{
		URL:            cfg.Notifier.URL,
		Timeout:        cfg.Notifier.Timeout,
		RetryAttempts:  cfg.Notifier.RetryAttempts,
		RetryDelay:     cfg.Notifier.RetryDelay,
		MaxPayloadSize: cfg.Notifier.MaxPayloadSize,
	})

	// Initialize session tokens and services
	tokens := auth.NewTokenManager(&cfg.Auth)
	authSvc := service.NewAuthService(userRepo, tokens, logger)
	requestSvc := service.NewRequestService(requestRepo, notifier, logger)
	consentSvc := service.NewConsentService(consentRepo, notifier, logger)
	terminationSvc := service.NewTerminationService(terminationRepo, assetRepo, notifier, logger)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authSvc, logger),
		User:        handler.NewUserHandler(userRepo, logger),
		Asset:       handler.NewAssetHandler(assetRepo, logger),
		Request:     handler.NewRequestHandler(requestSvc, logger),
		Consent:     handler.NewConsentHandler(consentSvc, logger),
		Termination: handler.NewTerminationHandler(terminationSvc, logger),
	}

	// Setup router with authentication and security configuration
	authMW := middleware.NewAuthMiddleware(tokens, userRepo, logger)
	r := router.NewRouter(handlers, authMW, cfg)

	// Initialize logging middleware
	loggingMW := middleware.NewLoggingMiddleware(logger)

	// Wrap router with logging middleware
	finalHandler := loggingMW.LogRequests(r)

	// Configure server with security settings
	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        finalHandler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Channel to listen for interrupt signal to gracefully shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %d with security features enabled", cfg.Port)
		log.Printf("Security: Rate limit=%d RPS, Burst=%d, CORS=%v, Timeout=%v",
			cfg.Security.RateLimitRPS,
			cfg.Security.RateLimitBurst,
			cfg.Security.EnableCORS,
			cfg.Security.RequestTimeout,
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Block until we receive a signal
	<-done
	log.Println("Server is shutting down...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Security.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	} else {
		log.Println("Server exited gracefully")
	}
}
