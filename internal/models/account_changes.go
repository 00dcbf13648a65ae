package models

import "github.com/user/near-sql-indexer/internal/nearview"

// AccountChange is one row of the account_changes table, append-only: every
// StateChangeView the stream carries gets one row, in shard order. Grounded
// in original_source/src/db_adapters/account_changes.rs.
type AccountChange struct {
	AccountID            string
	BlockHash            string
	BlockTimestampNS     uint64
	IndexInBlock         int32
	CauseType            string
	CauseJSON            string
}

// NewAccountChange returns (row, ok); ok is false when the cause is one of
// the two genesis-only variants, which must never appear in a live stream
// and are surfaced by the caller as a schema violation instead of a row.
func NewAccountChange(sc nearview.StateChangeView, blockHash string, blockTimestampNS uint64, indexInBlock int32) (AccountChange, bool) {
	label, causeJSON, ok := MarshalCause(sc.Cause, sc.CausePayload)
	if !ok {
		return AccountChange{}, false
	}
	return AccountChange{
		AccountID:        sc.AccountID,
		BlockHash:        blockHash,
		BlockTimestampNS: blockTimestampNS,
		IndexInBlock:     indexInBlock,
		CauseType:        label,
		CauseJSON:        causeJSON,
	}, true
}

func (c AccountChange) AddArgs(args *[]any) {
	*args = append(*args, c.AccountID, c.BlockHash, c.BlockTimestampNS, c.IndexInBlock, c.CauseType, c.CauseJSON)
}

func (AccountChange) TableName() string { return "account_changes" }
func (AccountChange) FieldCount() int   { return 6 }
