// Package adapters turns one nearview.StreamerMessage into the row sets
// each table needs, and writes them via internal/store.Writer. One file per
// table family, grounded in original_source/src/db_adapters/*.rs.
package adapters

import (
	"context"

	"github.com/user/near-sql-indexer/internal/models"
	"github.com/user/near-sql-indexer/internal/nearview"
	"github.com/user/near-sql-indexer/internal/store"
)

// BlocksAdapter writes the single Block row for a stream message.
type BlocksAdapter struct {
	Writer *store.Writer[models.Block]
}

func (a *BlocksAdapter) Write(ctx context.Context, msg nearview.StreamerMessage) error {
	return a.Writer.Insert(ctx, []models.Block{models.NewBlock(msg.Block)})
}
