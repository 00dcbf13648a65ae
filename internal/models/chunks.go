package models

import "github.com/user/near-sql-indexer/internal/nearview"

// Chunk is one row of the chunks table: zero or more per block, unique by
// ChunkHash. Grounded in original_source/src/models/chunks.rs.
type Chunk struct {
	BlockHash string
	ChunkHash string
	ShardID   uint64
	Signature string
	GasLimit  uint64
	GasUsed   uint64
	Author    string
}

// NewChunk projects a chunk header into a row; blockHash comes from the
// enclosing block since the chunk view itself doesn't carry it.
func NewChunk(header nearview.ChunkHeaderView, blockHash string) Chunk {
	return Chunk{
		BlockHash: blockHash,
		ChunkHash: header.ChunkHash,
		ShardID:   header.ShardID,
		Signature: header.Signature,
		GasLimit:  header.GasLimit,
		GasUsed:   header.GasUsed,
		Author:    header.Author,
	}
}

func (c Chunk) AddArgs(args *[]any) {
	*args = append(*args, c.BlockHash, c.ChunkHash, c.ShardID, c.Signature, c.GasLimit, c.GasUsed, c.Author)
}

func (Chunk) TableName() string { return "chunks" }

func (Chunk) FieldCount() int { return 7 }
