// Package orchestrator drives one StreamerMessage at a time through the
// per-subsystem adapters in three dependency-ordered waves, the Go
// counterpart of original_source's try_join!/try_join_all! pipeline.
package orchestrator

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/user/near-sql-indexer/internal/adapters"
	"github.com/user/near-sql-indexer/internal/metrics"
	"github.com/user/near-sql-indexer/internal/nearview"
	"github.com/user/near-sql-indexer/internal/stream"
)

// Orchestrator owns the per-subsystem adapters and runs them in waves for
// every message the streamer delivers.
type Orchestrator struct {
	Blocks         *adapters.BlocksAdapter
	Chunks         *adapters.ChunksAdapter
	Transactions   *adapters.TransactionsAdapter
	Receipts       *adapters.ReceiptsAdapter
	Outcomes       *adapters.OutcomesAdapter
	AccountChanges *adapters.AccountChangesAdapter
	Accounts       *adapters.AccountsAdapter
	AccessKeys     *adapters.AccessKeysAdapter

	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// Run pulls messages one at a time from streamer's (unbuffered) channel and
// processes each to completion before pulling the next.
func (o *Orchestrator) Run(ctx context.Context, streamer stream.Streamer) error {
	msgs, errc := streamer.Messages(ctx)
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return <-errc
			}
			if err := o.ProcessMessage(ctx, msg); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ProcessMessage runs the three waves for a single block's stream message.
// The orchestrator's own log lines for this block carry a per-block run ID,
// the per-block counterpart of the teacher's per-request X-Request-ID
// tracing. The run ID is not passed to the adapters: log lines they emit
// (e.g. the lineage resolver's non-strict warning, written through the
// global logger) do not carry it.
func (o *Orchestrator) ProcessMessage(ctx context.Context, msg nearview.StreamerMessage) error {
	runID := uuid.New().String()
	logger := o.Logger.With().Str("run_id", runID).Uint64("block_height", msg.Block.Height).Logger()

	// Wave A: blocks, chunks, and transactions have no dependency on one
	// another, and transactions must land before receipts can resolve
	// lineage for this block's own locally-originated receipts.
	waveA, ctxA := errgroup.WithContext(ctx)
	waveA.Go(func() error { return o.Blocks.Write(ctxA, msg) })
	waveA.Go(func() error { return o.Chunks.Write(ctxA, msg) })
	waveA.Go(func() error { return o.Transactions.Write(ctxA, msg) })
	if err := waveA.Wait(); err != nil {
		return err
	}

	// Wave B: receipts depend on the lineage cache entries Wave A's
	// transactions adapter just seeded.
	resolved, err := o.Receipts.Write(ctx, msg)
	if err != nil {
		return err
	}

	// Wave C: execution outcomes depend on Wave B's resolved lineage map;
	// account changes, accounts, and access keys depend only on the raw
	// message and run alongside it.
	waveC, ctxC := errgroup.WithContext(ctx)
	waveC.Go(func() error { return o.Outcomes.Write(ctxC, msg, resolved) })
	waveC.Go(func() error { return o.AccountChanges.Write(ctxC, msg) })
	waveC.Go(func() error { return o.Accounts.Write(ctxC, msg) })
	waveC.Go(func() error { return o.AccessKeys.Write(ctxC, msg) })
	if err := waveC.Wait(); err != nil {
		return err
	}

	o.Metrics.BlocksProcessed.Inc()
	logger.Debug().Msg("block processed")
	return nil
}
