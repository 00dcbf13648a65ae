package adapters

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/user/near-sql-indexer/internal/cache"
	"github.com/user/near-sql-indexer/internal/models"
	"github.com/user/near-sql-indexer/internal/nearview"
	"github.com/user/near-sql-indexer/internal/store"
)

// OutcomesAdapter writes one ExecutionOutcome row (plus its produced-receipt
// fan-out edges) per outcome in the block, and propagates lineage forward:
// every receipt an outcome produces inherits the executing receipt's
// transaction hash, so a later block's lineage resolver can find it in the
// cache instead of falling back to the database.
type OutcomesAdapter struct {
	Outcomes *store.Writer[models.ExecutionOutcome]
	Receipts *store.Writer[models.ExecutionOutcomeReceipt]
	Cache    *cache.LineageCache
}

// Write takes the lineage map the receipts adapter resolved in the same
// block as a fast path (the common case of a receipt created and executed
// within one block), but that map is scoped to this message's own chunks —
// it says nothing about a receipt executed here that was *created* in an
// earlier block (delayed, postponed, or cross-shard receipts). For those,
// Write independently consults the lineage cache itself via
// Cache.TakeReceipt, mirroring original_source's execution_outcomes.rs
// doing its own cache_remove rather than trusting another adapter's result.
func (a *OutcomesAdapter) Write(ctx context.Context, msg nearview.StreamerMessage, resolved map[cache.ReceiptOrDataID]string) error {
	var (
		outcomeRows []models.ExecutionOutcome
		fanoutRows  []models.ExecutionOutcomeReceipt
	)

	for shardIndex, shard := range msg.Shards {
		for i, owr := range shard.ReceiptExecutionOutcomes {
			o := owr.ExecutionOutcome
			outcomeRows = append(outcomeRows, models.NewExecutionOutcome(o, msg.Block.Hash, int32(shardIndex), int32(i), shard.ShardID))
			fanoutRows = append(fanoutRows, models.NewExecutionOutcomeReceipts(o)...)

			txHash, ok := resolved[cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: o.ID}]
			if !ok {
				txHash, ok = a.Cache.TakeReceipt(o.ID)
			}
			if !ok {
				continue
			}
			for _, producedID := range o.Outcome.ReceiptIDs {
				a.Cache.Put(cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: producedID}, txHash)
			}
			for _, dataID := range owr.Receipt.OutputDataReceivers {
				a.Cache.Put(cache.ReceiptOrDataID{Kind: cache.KindDataID, ID: dataID.DataID}, txHash)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if len(outcomeRows) == 0 {
			return nil
		}
		return a.Outcomes.Insert(gctx, outcomeRows)
	})
	g.Go(func() error {
		if len(fanoutRows) == 0 {
			return nil
		}
		return a.Receipts.Insert(gctx, fanoutRows)
	})
	return g.Wait()
}
