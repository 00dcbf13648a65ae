package adapters

import (
	"context"

	"github.com/user/near-sql-indexer/internal/apperrors"
	"github.com/user/near-sql-indexer/internal/models"
	"github.com/user/near-sql-indexer/internal/nearview"
	"github.com/user/near-sql-indexer/internal/store"
)

// AccountChangesAdapter writes one append-only AccountChange row per
// StateChangeView the stream carries, in shard order.
type AccountChangesAdapter struct {
	Writer *store.Writer[models.AccountChange]
}

func (a *AccountChangesAdapter) Write(ctx context.Context, msg nearview.StreamerMessage) error {
	var rows []models.AccountChange
	var index int32
	for _, shard := range msg.Shards {
		for _, sc := range shard.StateChanges {
			row, ok := models.NewAccountChange(sc, msg.Block.Hash, msg.Block.TimestampNS, index)
			if !ok {
				// NotWritableToDisk/InitialState are genesis-only; seeing
				// either outside genesis replay means the stream is feeding
				// us something this indexer was never meant to process live.
				return apperrors.SchemaViolation("StateChangeCause")
			}
			rows = append(rows, row)
			index++
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return a.Writer.Insert(ctx, rows)
}
