package adapters

import (
	"context"

	"github.com/user/near-sql-indexer/internal/models"
	"github.com/user/near-sql-indexer/internal/nearview"
	"github.com/user/near-sql-indexer/internal/store"
)

// ChunksAdapter writes one Chunk row per shard that carries a chunk.
type ChunksAdapter struct {
	Writer *store.Writer[models.Chunk]
}

func (a *ChunksAdapter) Write(ctx context.Context, msg nearview.StreamerMessage) error {
	rows := make([]models.Chunk, 0, len(msg.Shards))
	for _, shard := range msg.Shards {
		if shard.Chunk == nil {
			continue
		}
		rows = append(rows, models.NewChunk(shard.Chunk.Header, msg.Block.Hash))
	}
	if len(rows) == 0 {
		return nil
	}
	return a.Writer.Insert(ctx, rows)
}
