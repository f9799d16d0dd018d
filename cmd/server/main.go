// cmd/server is the application entry point. It wires together all layers
// and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatherhall/gatherhall/internal/config"
	"github.com/gatherhall/gatherhall/internal/database"
	"github.com/gatherhall/gatherhall/internal/handler"
	"github.com/gatherhall/gatherhall/internal/jobs"
	"github.com/gatherhall/gatherhall/internal/middleware"
	"github.com/gatherhall/gatherhall/internal/notify"
	"github.com/gatherhall/gatherhall/internal/repository"
	"github.com/gatherhall/gatherhall/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Error("schema bootstrap failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("connected to postgres")

	// Notification gateway: real SMTP when configured, log-only otherwise.
	var mailer notify.Mailer
	if cfg.SMTP.Host != "" {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			From:     cfg.SMTP.From,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		})
	} else {
		logger.Warn("SMTP_HOST not set, notifications will be logged only")
		mailer = notify.NewLogMailer(logger)
	}
	dispatcher := notify.NewDispatcher(mailer, cfg.Notify.Timeout, logger)

	// Repositories and services.
	eventRepo := repository.NewEventRepository(pool)
	regRepo := repository.NewRegistrationRepository(pool)
	orgRepo := repository.NewOrganizationRepository(pool)

	eventSvc := service.NewEventService(eventRepo, logger)
	regSvc := service.NewRegistrationService(eventRepo, regRepo, orgRepo, dispatcher, logger)
	attSvc := service.NewAttendanceService(eventRepo, regRepo, orgRepo, dispatcher, logger)

	eventHandler := handler.NewEventHandler(eventSvc)
	regHandler := handler.NewRegistrationHandler(regSvc)
	attHandler := handler.NewAttendanceHandler(attSvc)

	// Background sweeper for events nobody reads past their date.
	sweeper := jobs.NewCompletionSweeper(eventRepo, cfg.Jobs.SweepInterval, logger)
	sweeper.Start()
	defer sweeper.Stop()

	// Router.
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS)

	r.Get("/health", handler.HealthCheck)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.List)
		r.Get("/{id}", eventHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth([]byte(cfg.Auth.Secret)))
			r.Post("/", eventHandler.Create)
			r.Post("/{id}/complete", eventHandler.Complete)
			r.Post("/{id}/register", regHandler.Register)
			r.Get("/{id}/registration-status", regHandler.Status)
			r.Get("/{id}/roster", regHandler.Roster)
			r.Patch("/{id}/registrations/{regID}/attendance", attHandler.Update)
		})
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
