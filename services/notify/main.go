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
	"github.com/diagnosis/luxstay/services/notify/internal/mailer"
	"github.com/diagnosis/luxstay/services/notify/internal/notifier"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", "error", err)
	}
	cfg := config.Load()

	if cfg.Events.Driver == "" || cfg.Events.Driver == "none" {
		logger.Error("Notify service needs an event bus, set EVENTS_DRIVER to nats or amqp")
		os.Exit(1)
	}

	eventBus, err := events.Open(cfg)
	if err != nil {
		logger.Error("Failed to connect to event bus", "driver", cfg.Events.Driver, "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	m := mailer.New(cfg.Email.DevMode, cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	if err := notifier.New(m).Subscribe(eventBus); err != nil {
		logger.Error("Failed to subscribe to events", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("notify"))
	r.Use(mw.Logging)
	r.Use(mw.Health)

	port := os.Getenv("NOTIFY_PORT")
	if port == "" {
		port = "8086"
	}
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down notify service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Notify service shutdown error", "error", err)
		}
	}()

	logger.Info("Starting notify service", "port", port, "events", cfg.Events.Driver, "dev_mail", cfg.Email.DevMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Notify service error", "error", err)
		os.Exit(1)
	}
}
