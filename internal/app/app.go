package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"

	"github.com/dynastylab/rosterdoc/external/gridiron"
	"github.com/dynastylab/rosterdoc/internal/config"
	"github.com/dynastylab/rosterdoc/internal/domain/injury"
	"github.com/dynastylab/rosterdoc/internal/domain/valuation"
	cacherepo "github.com/dynastylab/rosterdoc/internal/infrastructure/repository/cache"
	"github.com/dynastylab/rosterdoc/internal/infrastructure/repository/memory"
	"github.com/dynastylab/rosterdoc/internal/infrastructure/repository/postgres"
	"github.com/dynastylab/rosterdoc/internal/interfaces/httpapi"
	basecache "github.com/dynastylab/rosterdoc/internal/platform/cache"
	"github.com/dynastylab/rosterdoc/internal/platform/logging"
	"github.com/dynastylab/rosterdoc/internal/platform/resilience"
	"github.com/dynastylab/rosterdoc/internal/usecase"
)

// NewHTTPServer wires repositories, services, and the router into a ready
// http.Server. The returned cleanup releases DB handles and must run on
// shutdown.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(context.Context) error, error) {
	injuryRepo, cleanup, err := newInjuryRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		injuryRepo = cacherepo.NewInjuryHistoryRepository(injuryRepo, basecache.NewStore(cfg.CacheTTL))
	}

	valuations := newValuationProvider(cfg)

	durabilitySvc := usecase.NewDurabilityService(injuryRepo)
	diagnosisSvc := usecase.NewDiagnosisService(valuations, durabilitySvc, cfg.DiagnosisWorkerCount)

	handler := httpapi.NewHandler(diagnosisSvc, durabilitySvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func newInjuryRepository(cfg config.Config, logger *slog.Logger) (injury.Repository, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	if cfg.DBURL == "" {
		logger.Info("injury history repository: in-memory seed data", "reason", "DB_URL empty")
		return memory.NewInjuryHistoryRepository(memory.SeedInjuryHistories()), noop, nil
	}

	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}

	logger.Info("injury history repository: postgres", "db_name", dbNameFromURL(cfg.DBURL))
	return postgres.NewInjuryHistoryRepository(db), func(context.Context) error { return db.Close() }, nil
}

func newValuationProvider(cfg config.Config) valuation.Provider {
	if !cfg.GridironEnabled {
		return memory.NewValuationProvider(memory.SeedDynastyValues(), memory.SeedSellWindows())
	}

	return gridiron.NewClient(gridiron.ClientConfig{
		BaseURL:    cfg.GridironBaseURL,
		APIKey:     cfg.GridironAPIKey,
		Timeout:    cfg.GridironTimeout,
		MaxRetries: cfg.GridironMaxRetries,
		Logger:     logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GridironCircuitEnabled,
			FailureThreshold: cfg.GridironCircuitFailureCount,
			OpenTimeout:      cfg.GridironCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GridironCircuitHalfOpenMax,
		},
	})
}
