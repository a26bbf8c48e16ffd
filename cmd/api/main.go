package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/botornot/internal/adapters/model"
	"github.com/zatekoja/botornot/internal/api/handlers"
	"github.com/zatekoja/botornot/internal/api/routes"
	"github.com/zatekoja/botornot/internal/application/services"
	"github.com/zatekoja/botornot/internal/infrastructure/observability"
	"github.com/zatekoja/botornot/pkg/config"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env, cfg.App.LogLevel)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// No model, no server
	server, err := buildServer(cfg, metrics)
	if err != nil {
		log.Fatal().Err(err).Str("model_path", cfg.Model.Path).Msg("Failed to start prediction service")
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}

// buildServer loads the classifier and wires the HTTP stack around it.
// It fails when the model artifact is missing, corrupt or fit on other columns.
func buildServer(cfg *config.Config, metrics *observability.Metrics) (*http.Server, error) {
	classifier, err := model.Load(cfg.Model.Path)
	if err != nil {
		return nil, err
	}

	predictionService, err := services.NewPredictionService(classifier, metrics)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("model_type", classifier.ModelType()).
		Int("trees", classifier.TreeCount()).
		Str("path", cfg.Model.Path).
		Msg("Model loaded")

	router := routes.NewRouter(
		handlers.NewPredictionHandler(predictionService),
		cfg.CORS.AllowedOrigins,
		metrics,
	)

	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}, nil
}
