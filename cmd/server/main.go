package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cesargomez89/jobtracker/internal/app"
	"github.com/cesargomez89/jobtracker/internal/backup"
	"github.com/cesargomez89/jobtracker/internal/config"
	"github.com/cesargomez89/jobtracker/internal/constants"
	httpapp "github.com/cesargomez89/jobtracker/internal/http"
	"github.com/cesargomez89/jobtracker/internal/logger"
	"github.com/cesargomez89/jobtracker/internal/store"
)

func main() {
	if err := config.LoadEnvFile(constants.DefaultEnvFile); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	settingsRepo := store.NewSettingsRepo(db)

	// Initialize Services
	employerService := app.NewEmployerService(db, appLogger.WithComponent("employers"))
	jobService := app.NewJobService(db, appLogger.WithComponent("jobs"))
	keywordService := app.NewKeywordService(db, appLogger.WithComponent("keywords"))

	exporter := backup.NewExporter(db, settingsRepo, appLogger)
	importer := backup.NewImporter(db, settingsRepo, appLogger)

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Routes
	h := httpapp.NewHandler(employerService, jobService, keywordService, exporter, importer, cfg.MaxImportBytes, appLogger)
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
		return
	}

	appLogger.Info("Server exiting")
}
