package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/user/near-sql-indexer/internal/adapters"
	"github.com/user/near-sql-indexer/internal/cache"
	"github.com/user/near-sql-indexer/internal/config"
	"github.com/user/near-sql-indexer/internal/lineage"
	"github.com/user/near-sql-indexer/internal/logging"
	"github.com/user/near-sql-indexer/internal/metrics"
	"github.com/user/near-sql-indexer/internal/models"
	"github.com/user/near-sql-indexer/internal/orchestrator"
	"github.com/user/near-sql-indexer/internal/store"
	"github.com/user/near-sql-indexer/internal/stream"
)

// Exit codes, per spec.md §6.4.
const (
	exitOK           = 0
	exitConfigError  = 1
	exitStartupError = 2
	exitRuntimeError = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the indexer's YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return exitConfigError
	}

	logger := logging.Setup(cfg.Logging)
	logger.Info().Msg("starting near-sql-indexer")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()
	go serveMetrics(cfg.Metrics.Addr, m, logger)

	pool, err := store.Open(
		ctx, cfg.Database.URL, cfg.Database.MaxOpenConns,
		cfg.Database.RetryCount,
		time.Duration(cfg.Database.RetryBaseDelayMS)*time.Millisecond,
		time.Duration(cfg.Database.RetryMaxDelayMS)*time.Millisecond,
	)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open database pool")
		return exitStartupError
	}
	defer pool.Close()

	lineageCache := cache.New(cfg.Indexer.CacheCapacity)

	streamer, err := stream.NewS3Streamer(ctx, cfg.Source.Bucket, cfg.Source.Region, cfg.Source.StartBlockHeight, cfg.Source.MaxRequestsPerSecond, cfg.Source.Burst)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build block streamer")
		return exitStartupError
	}

	orch := buildOrchestrator(pool, lineageCache, cfg.Indexer.BatchChunkSize, cfg.Indexer.StrictMode, m, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info().Msg("shutdown signal received, cancelling in-flight block")
		cancel()
	}()

	if err := orch.Run(ctx, streamer); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("orchestrator exited with error")
		return exitRuntimeError
	}

	logger.Info().Msg("near-sql-indexer stopped gracefully")
	return exitOK
}

func serveMetrics(addr string, m *metrics.Metrics, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server stopped unexpectedly")
	}
}

// buildOrchestrator wires the shared pool and lineage cache into every
// per-table writer and adapter, then into the three-wave orchestrator.
func buildOrchestrator(pool *store.Pool, lineageCache *cache.LineageCache, chunkSize int, strictMode bool, m *metrics.Metrics, logger zerolog.Logger) *orchestrator.Orchestrator {
	resolver := &lineage.Resolver{Cache: lineageCache, Pool: pool, Metrics: m}

	return &orchestrator.Orchestrator{
		Blocks: &adapters.BlocksAdapter{Writer: store.NewWriter[models.Block](pool, chunkSize, m)},
		Chunks: &adapters.ChunksAdapter{Writer: store.NewWriter[models.Chunk](pool, chunkSize, m)},
		Transactions: &adapters.TransactionsAdapter{
			Writer: store.NewWriter[models.Transaction](pool, chunkSize, m),
			Cache:  lineageCache,
		},
		Receipts: &adapters.ReceiptsAdapter{
			Resolver:                resolver,
			StrictMode:              strictMode,
			ActionReceipts:          store.NewWriter[models.ActionReceipt](pool, chunkSize, m),
			DataReceipts:            store.NewWriter[models.DataReceipt](pool, chunkSize, m),
			ActionReceiptActions:    store.NewWriter[models.ActionReceiptAction](pool, chunkSize, m),
			ActionReceiptInputData:  store.NewWriter[models.ActionReceiptInputData](pool, chunkSize, m),
			ActionReceiptOutputData: store.NewWriter[models.ActionReceiptOutputData](pool, chunkSize, m),
		},
		Outcomes: &adapters.OutcomesAdapter{
			Outcomes: store.NewWriter[models.ExecutionOutcome](pool, chunkSize, m),
			Receipts: store.NewWriter[models.ExecutionOutcomeReceipt](pool, chunkSize, m),
			Cache:    lineageCache,
		},
		AccountChanges: &adapters.AccountChangesAdapter{Writer: store.NewWriter[models.AccountChange](pool, chunkSize, m)},
		Accounts:       &adapters.AccountsAdapter{Writer: store.NewWriter[models.Account](pool, chunkSize, m), Pool: pool},
		AccessKeys:     &adapters.AccessKeysAdapter{Writer: store.NewWriter[models.AccessKey](pool, chunkSize, m), Pool: pool},
		Metrics:        m,
		Logger:         logger,
	}
}
