package models

import (
	"encoding/json"

	"github.com/user/near-sql-indexer/internal/nearview"
)

// ExecutionOutcome is one row of the execution_outcomes table: the result
// of applying one receipt. Grounded in
// original_source/src/models/execution_outcomes.rs.
type ExecutionOutcome struct {
	ReceiptID       string
	BlockHash       string
	ChunkIndexInBlock int32
	IndexInChunk    int32
	GasBurnt        uint64
	TokensBurnt     string
	ExecutorAccount string
	Status          string
	ShardID         uint64
}

func NewExecutionOutcome(o nearview.ExecutionOutcomeWithIDView, blockHash string, chunkIndexInBlock, indexInChunk int32, shardID uint64) ExecutionOutcome {
	return ExecutionOutcome{
		ReceiptID:         o.ID,
		BlockHash:         blockHash,
		ChunkIndexInBlock: chunkIndexInBlock,
		IndexInChunk:      indexInChunk,
		GasBurnt:          o.Outcome.GasBurnt,
		TokensBurnt:       amountString(o.Outcome.TokensBurnt),
		ExecutorAccount:   o.Outcome.ExecutorID,
		Status:            PrintExecutionStatus(execStatusFromView(o.Outcome.Status)),
		ShardID:           shardID,
	}
}

func (e ExecutionOutcome) AddArgs(args *[]any) {
	*args = append(*args,
		e.ReceiptID, e.BlockHash, e.ChunkIndexInBlock, e.IndexInChunk,
		e.GasBurnt, e.TokensBurnt, e.ExecutorAccount, e.Status, e.ShardID,
	)
}

func (ExecutionOutcome) TableName() string { return "execution_outcomes" }
func (ExecutionOutcome) FieldCount() int   { return 9 }

// ExecutionOutcomeReceipt is one row per receipt produced by an outcome —
// the fan-out edges used to rebuild the receipt DAG.
type ExecutionOutcomeReceipt struct {
	ExecutedReceiptID  string
	IndexInExecutionOutcome int32
	ProducedReceiptID  string
}

func NewExecutionOutcomeReceipts(o nearview.ExecutionOutcomeWithIDView) []ExecutionOutcomeReceipt {
	rows := make([]ExecutionOutcomeReceipt, 0, len(o.Outcome.ReceiptIDs))
	for i, rid := range o.Outcome.ReceiptIDs {
		rows = append(rows, ExecutionOutcomeReceipt{
			ExecutedReceiptID:       o.ID,
			IndexInExecutionOutcome: int32(i),
			ProducedReceiptID:       rid,
		})
	}
	return rows
}

func (r ExecutionOutcomeReceipt) AddArgs(args *[]any) {
	*args = append(*args, r.ExecutedReceiptID, r.IndexInExecutionOutcome, r.ProducedReceiptID)
}

func (ExecutionOutcomeReceipt) TableName() string { return "execution_outcome_receipts" }
func (ExecutionOutcomeReceipt) FieldCount() int   { return 3 }

// stateChangeCausePayload mirrors the JSON shape original_source stores for
// the cause of an account/access-key/data state change.
type stateChangeCausePayload struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// MarshalCause projects a state-change cause to its closed label plus a
// JSON-encoded cause payload. ok is false for the two genesis-only
// variants, which the caller must treat as a schema violation.
func MarshalCause(kind nearview.StateChangeCauseKind, payload any) (label, json_ string, ok bool) {
	label, ok = causeKindLabel(kind)
	if !ok {
		return "", "", false
	}
	b, err := json.Marshal(stateChangeCausePayload{Type: label, Payload: payload})
	if err != nil {
		return label, "{}", true
	}
	return label, string(b), true
}

func causeKindLabel(k nearview.StateChangeCauseKind) (string, bool) {
	switch k {
	case nearview.StateChangeCauseTransactionProcessing:
		return StateChangeCauseTransactionProcessing, true
	case nearview.StateChangeCauseActionReceiptProcessingStarted:
		return StateChangeCauseActionReceiptProcessingStarted, true
	case nearview.StateChangeCauseActionReceiptGasReward:
		return StateChangeCauseActionReceiptGasReward, true
	case nearview.StateChangeCauseReceiptProcessing:
		return StateChangeCauseReceiptProcessing, true
	case nearview.StateChangeCausePostponedReceipt:
		return StateChangeCausePostponedReceipt, true
	case nearview.StateChangeCauseUpdatedDelayedReceipts:
		return StateChangeCauseUpdatedDelayedReceipts, true
	case nearview.StateChangeCauseValidatorAccountsUpdate:
		return StateChangeCauseValidatorAccountsUpdate, true
	case nearview.StateChangeCauseMigration:
		return StateChangeCauseMigration, true
	case nearview.StateChangeCauseResharding:
		return StateChangeCauseResharding, true
	default:
		return "", false
	}
}
