package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cypherlabdev/match-predictor-service/internal/aggregator"
	"github.com/cypherlabdev/match-predictor-service/internal/cache"
	"github.com/cypherlabdev/match-predictor-service/internal/clients"
	"github.com/cypherlabdev/match-predictor-service/internal/config"
	httpHandler "github.com/cypherlabdev/match-predictor-service/internal/handler/http"
	"github.com/cypherlabdev/match-predictor-service/internal/history"
	"github.com/cypherlabdev/match-predictor-service/internal/inference"
	"github.com/cypherlabdev/match-predictor-service/internal/messaging"
	"github.com/cypherlabdev/match-predictor-service/internal/prompt"
	"github.com/cypherlabdev/match-predictor-service/internal/service"
	"github.com/cypherlabdev/match-predictor-service/internal/store"
	"github.com/cypherlabdev/match-predictor-service/pkg/predictor"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting match-predictor-service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create Postgres store
	matchStore, err := store.New(ctx, store.Config{
		DSN:          cfg.Postgres.DSN,
		MaxConns:     cfg.Postgres.MaxConns,
		QueryTimeout: cfg.Postgres.QueryTimeout,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Postgres")
	}
	defer matchStore.Close()
	logger.Info().Msg("connected to Postgres")

	// Create Redis cache
	redisCache := cache.NewRedisCache(
		cache.RedisCacheConfig{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			BriefingTTL: cfg.Redis.BriefingTTL,
			PromptTTL:   cfg.Redis.PromptTTL,
		},
		logger,
	)
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	// Shared HTTP client for the advisory collaborators
	httpClient := clients.NewHTTPClient(clients.HTTPClientOptions{
		Timeout:        cfg.Collaborators.Timeout,
		RequestsPerSec: cfg.Collaborators.RequestsPerSec,
	})

	weatherClient := clients.NewWeatherClient(cfg.Collaborators.WeatherURL, httpClient, logger)
	searchClient := clients.NewSearchClient(
		cfg.Collaborators.SearchURL,
		cfg.Collaborators.SearchKey,
		cfg.Collaborators.SearchEngineID,
		httpClient,
		logger,
	)
	optimizerClient := clients.NewPromptOptimizerClient(cfg.Collaborators.PromptOptimizerURL, httpClient, logger)
	abtestClient := clients.NewABTestClient(cfg.Collaborators.ABTestingURL, httpClient, logger)

	// Create context aggregator
	contextAggregator := aggregator.New(
		matchStore,
		redisCache,
		weatherClient,
		searchClient,
		aggregator.Config{
			SubFetchTimeout: cfg.Pipeline.SubFetchTimeout,
			ContextBudget:   cfg.Pipeline.ContextBudget,
		},
		logger,
	)
	logger.Info().Msg("context aggregator initialized")

	// Create prompt selector
	promptSelector := prompt.New(
		optimizerClient,
		abtestClient,
		redisCache,
		cfg.Collaborators.Timeout,
		logger,
	)

	// Create inference client
	inferenceClient := inference.NewClient(inference.Config{
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		MaxTokens:   cfg.OpenAI.MaxTokens,
	}, logger)
	logger.Info().Str("model", cfg.OpenAI.Model).Msg("inference client initialized")

	// Create fallback predictor
	fallback := predictor.NewFallback(matchStore, cfg.Pipeline.FallbackTimeout, logger)

	// Create Kafka publisher for the backtesting topic
	publisher := messaging.NewKafkaPublisher(
		messaging.KafkaPublisherConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		},
		logger,
	)
	defer publisher.Close()

	// Create history recorder
	recorder := history.NewRecorder(matchStore, publisher, cfg.Pipeline.RecorderGrace, logger)

	// Create prediction service
	predictionService := service.NewPredictionService(
		contextAggregator,
		promptSelector,
		inferenceClient,
		fallback,
		recorder,
		cfg.Pipeline,
		logger,
	)
	logger.Info().Msg("prediction service initialized")

	// Initialize HTTP handler
	predictionHandler := httpHandler.NewPredictionHandler(predictionService, logger)

	// Setup HTTP server routes
	mux := http.NewServeMux()

	// Health and monitoring endpoints
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyHandler(w, r, redisCache, matchStore)
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Register API routes
	predictionHandler.RegisterRoutes(mux)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "match-predictor").Logger()
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 if service is ready to accept traffic
func readyHandler(w http.ResponseWriter, r *http.Request, cache *cache.RedisCache, store *store.Store) {
	if err := cache.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Redis unavailable"))
		return
	}

	if err := store.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Postgres unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
