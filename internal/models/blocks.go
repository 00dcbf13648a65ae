package models

import "github.com/user/near-sql-indexer/internal/nearview"

// Block is one row of the blocks table. Immutable; exactly one per stream
// message. Grounded in original_source/src/db_adapters/blocks.rs and
// models/blocks.rs (not retrieved directly, reconstructed from the call
// site's field list).
type Block struct {
	Height      uint64
	Hash        string
	PrevHash    string
	TimestampNS uint64
	TotalSupply string
	GasPrice    string
	Author      string
}

// NewBlock constructs the single Block row for a stream message.
func NewBlock(b nearview.BlockView) Block {
	return Block{
		Height:      b.Height,
		Hash:        b.Hash,
		PrevHash:    b.PrevHash,
		TimestampNS: b.TimestampNS,
		TotalSupply: amountString(b.TotalSupply),
		GasPrice:    amountString(b.GasPrice),
		Author:      b.Author,
	}
}

func (b Block) AddArgs(args *[]any) {
	*args = append(*args, b.Height, b.Hash, b.PrevHash, b.TimestampNS, b.TotalSupply, b.GasPrice, b.Author)
}

func (Block) TableName() string { return "blocks" }

func (Block) FieldCount() int { return 7 }
