package adapters

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/user/near-sql-indexer/internal/cache"
	"github.com/user/near-sql-indexer/internal/lineage"
	"github.com/user/near-sql-indexer/internal/models"
	"github.com/user/near-sql-indexer/internal/nearview"
	"github.com/user/near-sql-indexer/internal/store"
)

// ReceiptsAdapter resolves transaction lineage for every receipt included
// in the block's chunks, then writes the receipt rows plus their
// per-action/input-data/output-data children.
type ReceiptsAdapter struct {
	Resolver                *lineage.Resolver
	StrictMode              bool
	ActionReceipts          *store.Writer[models.ActionReceipt]
	DataReceipts            *store.Writer[models.DataReceipt]
	ActionReceiptActions    *store.Writer[models.ActionReceiptAction]
	ActionReceiptInputData  *store.Writer[models.ActionReceiptInputData]
	ActionReceiptOutputData *store.Writer[models.ActionReceiptOutputData]
}

// Write resolves lineage, writes every receipt-family row, and returns the
// resolved receipt/data id → transaction hash map so the outcomes adapter
// can propagate lineage forward to the receipts each outcome produces.
func (a *ReceiptsAdapter) Write(ctx context.Context, msg nearview.StreamerMessage) (map[cache.ReceiptOrDataID]string, error) {
	var allReceipts []nearview.ReceiptView
	type chunked struct {
		receipt   nearview.ReceiptView
		chunkHash string
		index     int32
	}
	var located []chunked

	for _, shard := range msg.Shards {
		if shard.Chunk == nil {
			continue
		}
		for i, r := range shard.Chunk.Receipts {
			allReceipts = append(allReceipts, r)
			located = append(located, chunked{receipt: r, chunkHash: shard.Chunk.Header.ChunkHash, index: int32(i)})
		}
	}
	if len(located) == 0 {
		return nil, nil
	}

	txHashes, err := a.Resolver.Resolve(ctx, a.StrictMode, allReceipts, msg.Block.Height)
	if err != nil {
		return nil, err
	}

	var (
		actionRows  []models.ActionReceipt
		dataRows    []models.DataReceipt
		actionArgs  []models.ActionReceiptAction
		inputRows   []models.ActionReceiptInputData
		outputRows  []models.ActionReceiptOutputData
	)

	for _, c := range located {
		key := receiptLookupKey(c.receipt)
		txHash, resolved := txHashes[key]
		if !resolved {
			// Non-strict mode already queued the block for rerun; skip the
			// row rather than write a partial one with no transaction hash.
			continue
		}

		if c.receipt.Kind == nearview.ReceiptKindData {
			dataRows = append(dataRows, models.NewDataReceipt(c.receipt, msg.Block.Hash, c.chunkHash, c.index, txHash))
			continue
		}

		actionRows = append(actionRows, models.NewActionReceipt(c.receipt, msg.Block.Hash, c.chunkHash, c.index, msg.Block.TimestampNS, txHash))
		actionArgs = append(actionArgs, models.NewActionReceiptActions(c.receipt, msg.Block.TimestampNS)...)
		inputRows = append(inputRows, models.NewActionReceiptInputData(c.receipt)...)
		outputRows = append(outputRows, models.NewActionReceiptOutputData(c.receipt)...)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if len(actionRows) == 0 {
			return nil
		}
		return a.ActionReceipts.Insert(gctx, actionRows)
	})
	g.Go(func() error {
		if len(dataRows) == 0 {
			return nil
		}
		return a.DataReceipts.Insert(gctx, dataRows)
	})
	g.Go(func() error {
		if len(actionArgs) == 0 {
			return nil
		}
		return a.ActionReceiptActions.Insert(gctx, actionArgs)
	})
	g.Go(func() error {
		if len(inputRows) == 0 {
			return nil
		}
		return a.ActionReceiptInputData.Insert(gctx, inputRows)
	})
	g.Go(func() error {
		if len(outputRows) == 0 {
			return nil
		}
		return a.ActionReceiptOutputData.Insert(gctx, outputRows)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return txHashes, nil
}

func receiptLookupKey(r nearview.ReceiptView) cache.ReceiptOrDataID {
	if r.Kind == nearview.ReceiptKindData {
		return cache.ReceiptOrDataID{Kind: cache.KindDataID, ID: r.DataID}
	}
	return cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: r.ReceiptID}
}
