package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens-go/internal/accounting"
	"github.com/ledgerlens/ledgerlens-go/internal/config"
	"github.com/ledgerlens/ledgerlens-go/internal/domain"
	"github.com/ledgerlens/ledgerlens-go/internal/handler"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/cache"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/client"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/memstore"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/observability"
	"github.com/ledgerlens/ledgerlens-go/internal/infra/resilience"
	"github.com/ledgerlens/ledgerlens-go/internal/insights"
	"github.com/ledgerlens/ledgerlens-go/internal/port"
	"github.com/ledgerlens/ledgerlens-go/internal/service"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("gemini_model", cfg.GeminiModel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "ledgerlens")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Store & derivation pipeline ---
	store := memstore.New()
	builder := accounting.NewStatementBuilder(domain.DefaultChart())

	// --- Cache ---
	insightsCache := cache.New[string](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("external-apis")

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	agentClient := client.NewNarrativeAgentClient(httpClient, cfg.AgentAPIURL, cb, resilienceCfg)

	var extractor port.DocumentExtractor
	gemini, err := client.NewGeminiExtractor(context.Background(), cfg.GeminiModel)
	if err != nil {
		logger.Warn("document extraction unavailable", zap.Error(err))
	} else {
		extractor = gemini
	}

	// --- Services ---
	ledgerSvc := service.NewLedgerService(store, builder, metrics, logger)
	importSvc := service.NewImportService(store, extractor, metrics, logger)
	exportSvc := service.NewExportService(store, builder, logger)
	insightsSvc := insights.NewService(store, builder, agentClient, insightsCache, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(ledgerSvc, importSvc, exportSvc, insightsSvc, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
