package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diagnosis/luxstay/pkg/config"
	"github.com/diagnosis/luxstay/pkg/events"
	"github.com/diagnosis/luxstay/pkg/logger"
	mw "github.com/diagnosis/luxstay/pkg/middleware"
	"github.com/diagnosis/luxstay/pkg/storage"
	"github.com/diagnosis/luxstay/services/storefront/internal/catalog"
	"github.com/diagnosis/luxstay/services/storefront/internal/handlers"
	"github.com/diagnosis/luxstay/services/storefront/internal/repository"
	"github.com/diagnosis/luxstay/services/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", "error", err)
	}
	cfg := config.Load()

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	eventBus, err := events.Open(cfg)
	if err != nil {
		logger.Error("Failed to connect to event bus", "driver", cfg.Events.Driver, "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	hotels, err := catalog.Load()
	if err != nil {
		logger.Error("Failed to load hotel catalog", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(store)
	sessionRepo := repository.NewSessionRepository(store)
	bookingRepo := repository.NewBookingRepository(store)
	shortlistRepo := repository.NewShortlistRepository(store)

	// Initialize services
	ids := service.NewIDGenerator(nil)
	authService := service.NewAuthService(userRepo, sessionRepo, eventBus, cfg, service.WithIDGenerator(ids))
	bookingService := service.NewBookingService(bookingRepo, hotels, eventBus, cfg, service.WithIDGenerator(ids))
	listingService := service.NewListingService(hotels, cfg)
	defer listingService.Close()
	shortlistService := service.NewShortlistService(shortlistRepo, hotels, cfg)

	if session, err := authService.RestoreSession(ctx); err != nil {
		logger.Warn("Failed to restore session", "error", err)
	} else if session != nil {
		logger.Info("Restored session", "user_id", session.User.ID, "username", session.User.Username)
	}

	h := handlers.New(authService, bookingService, listingService, shortlistService, cfg)

	r := chi.NewRouter()
	r.Use(mw.Recover)
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("storefront"))
	r.Use(mw.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	h.Routes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down storefront...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Storefront shutdown error", "error", err)
		}
	}()

	logger.Info("Starting storefront",
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
		"events", cfg.Events.Driver,
		"hotels", hotels.Len(),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Storefront error", "error", err)
		os.Exit(1)
	}
	<-done
}
