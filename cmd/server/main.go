// Package main is the entry point for the invacc API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"invacc/internal/domain/auth"
	"invacc/internal/domain/conversion"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/journal"
	"invacc/internal/domain/reports"
	"invacc/internal/domain/rules"
	v1 "invacc/internal/infrastructure/http/v1"
	"invacc/internal/infrastructure/http/v1/handlers"
	"invacc/internal/infrastructure/generation"
	"invacc/internal/infrastructure/metrics"
	"invacc/internal/infrastructure/resilience"
	"invacc/internal/infrastructure/seed"
	"invacc/internal/infrastructure/storage/memory"
	"invacc/pkg/logger"
	"invacc/pkg/numerator"
)

const version = "0.1.0"

func main() {
	cfg := loadConfig()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	log.Infow("starting invacc server", "env", cfg.Env, "version", version)

	if !cfg.development() {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Store ---
	store := memory.New()
	data, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		log.Fatalw("failed to load seed file", "path", cfg.SeedFile, "error", err)
	}
	if err := seed.Apply(ctx, store, data); err != nil {
		log.Fatalw("failed to apply seed data", "path", cfg.SeedFile, "error", err)
	}
	log.Infow("seed data loaded",
		"path", cfg.SeedFile,
		"documents", len(data.Documents),
		"rules", len(data.Rules),
		"warehouses", len(data.Warehouses),
	)

	// --- Metrics ---
	m := metrics.New(metrics.DefaultConfig())

	// --- Generation ---
	breakerCfg := resilience.DefaultCircuitBreakerConfig("genai")
	breakerCfg.Timeout = cfg.BreakerTimeout
	breakerCfg.FailureThreshold = uint32(cfg.BreakerMaxFailures)
	breaker := resilience.NewCircuitBreaker(breakerCfg, log, m)

	model := newModel(ctx, cfg, log)
	generator := generation.NewClient(model,
		generation.WithBreaker(breaker),
		generation.WithTimeout(cfg.GenAITimeout),
		generation.WithObserver(m),
		generation.WithLogger(log),
	)

	// --- Services ---
	documentService := inventory.NewService(store)
	ruleService := rules.NewService(store, store, store)
	journalService := journal.NewService(store, store, store)
	reportService := reports.NewService(store)
	conversionService := conversion.NewService(store, generator, store, numerator.New(), store, conversion.Options{
		MaxConcurrency: cfg.GenerationMaxConc,
		Observer:       m,
	})

	// --- JWT ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWTSecret))

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:       log,
		JWTValidator: jwtService,
		Metrics:      m,
		Documents:    documentService,
		Rules:        ruleService,
		Conversions:  conversionService,
		Journal:      journalService,
		Reports:      reportService,
		Catalogs:     store,
		AuditLog:     store,
		HealthChecks: map[string]handlers.Checker{"store": store.Ping},
		Version:      version,
	})

	// --- HTTP Server ---
	// WriteTimeout leaves room for one generation call per conversion request.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GenAITimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// newModel returns the Gemini model, or a model that always fails when no
// API key is configured so that browsing and rule editing still work.
func newModel(ctx context.Context, cfg config, log *logger.Logger) generation.Model {
	if cfg.GenAIAPIKey == "" {
		log.Warn("GENAI_API_KEY not set, conversions will fail with GENERATION_FAILURE")
		return generation.ModelFunc(func(context.Context, string) (string, error) {
			return "", errors.New("generation disabled: GENAI_API_KEY not set")
		})
	}

	model, err := generation.NewGeminiModel(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
	if err != nil {
		log.Fatalw("failed to create genai client", "error", err)
	}
	log.Infow("genai model configured", "model", cfg.GenAIModel, "timeout", cfg.GenAITimeout)
	return model
}
