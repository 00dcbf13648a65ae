package adapters

import (
	"context"

	"github.com/user/near-sql-indexer/internal/cache"
	"github.com/user/near-sql-indexer/internal/models"
	"github.com/user/near-sql-indexer/internal/nearview"
	"github.com/user/near-sql-indexer/internal/store"
)

// TransactionsAdapter writes one Transaction row per signed transaction in
// the block's chunks, and seeds the lineage cache so the receipt each
// transaction converts into resolves to this transaction's hash without a
// database round trip.
type TransactionsAdapter struct {
	Writer *store.Writer[models.Transaction]
	Cache  *cache.LineageCache
}

func (a *TransactionsAdapter) Write(ctx context.Context, msg nearview.StreamerMessage) error {
	var rows []models.Transaction
	for _, shard := range msg.Shards {
		if shard.Chunk == nil {
			continue
		}
		chunkHash := shard.Chunk.Header.ChunkHash
		for i, tx := range shard.Chunk.Transactions {
			receiptIDs := tx.Outcome.Outcome.ReceiptIDs
			var convertedInto string
			if len(receiptIDs) > 0 {
				convertedInto = receiptIDs[0]
			}

			row := models.NewTransaction(tx, msg.Block.Hash, chunkHash, msg.Block.TimestampNS, int32(i), convertedInto)
			rows = append(rows, row)

			if convertedInto != "" {
				a.Cache.Put(cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: convertedInto}, tx.Transaction.Hash)
			}
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return a.Writer.Insert(ctx, rows)
}
