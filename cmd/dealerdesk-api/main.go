// Package main provides the DealerDesk API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dealerdesk/dealerdesk/internal/assistant"
	"github.com/dealerdesk/dealerdesk/internal/cache"
	"github.com/dealerdesk/dealerdesk/internal/config"
	"github.com/dealerdesk/dealerdesk/internal/crm"
	"github.com/dealerdesk/dealerdesk/internal/embedding"
	"github.com/dealerdesk/dealerdesk/internal/inventory"
	"github.com/dealerdesk/dealerdesk/internal/knowledge"
	"github.com/dealerdesk/dealerdesk/internal/llm"
	"github.com/dealerdesk/dealerdesk/internal/observability"
	"github.com/dealerdesk/dealerdesk/internal/session"
	"github.com/dealerdesk/dealerdesk/internal/vector"
)

func main() {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("vector", cfg.Vector.Adapter).
		Str("cache", cfg.Cache.Driver).
		Msg("Starting DealerDesk API")

	deps, err := buildDependencies(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build dependencies")
	}

	router := NewRouter(logger, cfg, deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}

// Dependencies holds everything the router's handlers need.
type Dependencies struct {
	Inventory *inventory.Store
	Knowledge *knowledge.Base
	Assistant *assistant.Assistant
}

// buildDependencies loads the data stores and wires the chat pipeline.
func buildDependencies(cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	store, err := inventory.LoadStore(cfg.Data.InventoryPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	base, err := knowledge.LoadBase(cfg.Data.KnowledgeBasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}

	generator, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLMAPIKey(),
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		Retry: llm.RetryPolicy{
			Enabled:        cfg.LLM.Retry.Enabled,
			MaxRetries:     cfg.LLM.Retry.MaxRetries,
			InitialBackoff: cfg.LLM.Retry.InitialBackoff,
			MaxBackoff:     cfg.LLM.Retry.MaxBackoff,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create generation client: %w", err)
	}

	searcher, err := buildSearcher(cfg, logger)
	if err != nil {
		return nil, err
	}

	asst, err := assistant.New(assistant.Deps{
		Inventory:    store,
		Knowledge:    base,
		Sessions:     session.NewMemoryStore(),
		Generator:    generator,
		Searcher:     searcher,
		Appointments: crm.NewAppointmentStore(cfg.Data.AppointmentsPath),
		Leads:        crm.NewLeadStore(cfg.Data.LeadsPath),
		Logger:       logger.WithComponent("assistant"),
	}, assistant.Options{
		Temperature: cfg.LLM.Temperature,
		SearchTopK:  cfg.Vector.TopK,
	})
	if err != nil {
		return nil, fmt.Errorf("create assistant: %w", err)
	}

	return &Dependencies{
		Inventory: store,
		Knowledge: base,
		Assistant: asst,
	}, nil
}

// buildSearcher constructs the configured semantic search adapter. Adapter
// "off" returns nil, which the pipeline treats as "skip semantic context".
func buildSearcher(cfg *config.Config, logger *observability.Logger) (vector.Searcher, error) {
	if cfg.Vector.Adapter == "off" {
		return nil, nil
	}

	embedder, err := embedding.NewClient(embedding.Config{
		APIKey:    cfg.EmbeddingAPIKey(),
		Model:     cfg.Embedding.Model,
		BaseURL:   cfg.Embedding.BaseURL,
		Dimension: cfg.Embedding.Dimension,
		Timeout:   cfg.Embedding.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding client: %w", err)
	}

	var searcher vector.Searcher
	switch cfg.Vector.Adapter {
	case "pinecone":
		searcher, err = vector.NewPineconeSearcher(vector.PineconeConfig{
			Host:      cfg.Vector.Pinecone.Host,
			APIKey:    cfg.PineconeAPIKey(),
			Namespace: cfg.Vector.Pinecone.Namespace,
			Embedder:  embedder,
			MinScore:  cfg.Vector.MinScore,
			Timeout:   cfg.Vector.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("create pinecone searcher: %w", err)
		}
	case "memory":
		index, err := vector.LoadMemoryIndex(cfg.Vector.IndexPath, vector.MemoryConfig{
			Embedder: embedder,
			MinScore: cfg.Vector.MinScore,
		})
		if err != nil {
			return nil, fmt.Errorf("load vector index: %w", err)
		}
		searcher = index
	default:
		return nil, fmt.Errorf("unknown vector adapter: %s", cfg.Vector.Adapter)
	}

	cacheClient, err := buildCache(cfg, logger)
	if err != nil {
		return nil, err
	}
	return vector.NewCachedSearcher(searcher, cacheClient, cfg.Cache.TTL), nil
}

// buildCache constructs the snippet cache. A Redis connection failure falls
// back to the in-memory cache so the server still starts.
func buildCache(cfg *config.Config, logger *observability.Logger) (cache.Client, error) {
	if cfg.Cache.Driver == "redis" {
		client, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err == nil {
			return client, nil
		}
		logger.Warn().Err(err).Msg("Redis unavailable, falling back to memory cache")
	}
	return cache.NewMemoryClient(cfg.Cache.MaxEntries), nil
}
