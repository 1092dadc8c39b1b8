package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/user/cafe-notion-service/internal/adapter/chromedp_extractor"
	"github.com/user/cafe-notion-service/internal/adapter/httpfetch"
	"github.com/user/cafe-notion-service/internal/adapter/notion"
	"github.com/user/cafe-notion-service/internal/adapter/session"
	"github.com/user/cafe-notion-service/internal/delivery/http/handler"
	"github.com/user/cafe-notion-service/internal/delivery/http/router"
	"github.com/user/cafe-notion-service/internal/usecase"
	"github.com/user/cafe-notion-service/pkg/config"
	"github.com/user/cafe-notion-service/pkg/logger"
	"github.com/user/cafe-notion-service/pkg/metrics"
)

func main() {
	// --- Configuration ---
	_ = godotenv.Load()
	cfg := config.Load()

	// --- Logger ---
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()
	slog.Info("Metrics initialized")

	// --- Adapters ---
	sessionStore := session.NewStore(cfg.SessionStatePath)
	extractorRepo := chromedp_extractor.NewExtractor(sessionStore, cfg)
	imageRepo := httpfetch.NewFetcher(sessionStore)
	publisherRepo := notion.NewPublisher(cfg)

	// --- Use Cases ---
	extractor := usecase.NewExtractUseCase(extractorRepo)
	saver := usecase.NewSaveUseCase(imageRepo, publisherRepo)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(extractor, saver)
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: httpRouter,
		// Extraction holds the connection open while the browser works, so
		// the write timeout must exceed the page load timeout.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.PageLoadTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
		os.Exit(1)
	}
}
