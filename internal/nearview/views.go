// Package nearview defines the read-only view types the indexer receives
// from the block feed, one per spec.md §6. These mirror the shape of
// near_indexer_primitives::views (see original_source/src/db_adapters and
// models for the call sites these were reconstructed from); the indexer
// never mutates them.
package nearview

import "github.com/holiman/uint256"

// StreamerMessage is one unit of the input stream: a block plus its shards.
type StreamerMessage struct {
	Block  BlockView
	Shards []ShardView
}

// BlockView is the chain-level record of a single block.
type BlockView struct {
	Height      uint64
	Hash        string
	PrevHash    string
	TimestampNS uint64
	TotalSupply *uint256.Int
	GasPrice    *uint256.Int
	Author      string
}

// ShardView carries one shard's chunk (if any), its transactions/receipts
// live inside Chunk, and the shard's state changes and execution outcomes.
type ShardView struct {
	ShardID                  uint64
	Chunk                    *ChunkView
	StateChanges             []StateChangeView
	ReceiptExecutionOutcomes []OutcomeWithReceipt
}

// ChunkHeaderView is the header portion of a chunk.
type ChunkHeaderView struct {
	ChunkHash string
	ShardID   uint64
	Signature string
	GasLimit  uint64
	GasUsed   uint64
	Author    string
}

// ChunkView is a chunk: header plus the transactions and receipts it
// contains.
type ChunkView struct {
	Header       ChunkHeaderView
	Transactions []IndexerTransactionWithOutcome
	Receipts     []ReceiptView
}

// IndexerTransactionWithOutcome pairs a signed transaction with the
// execution outcome produced by converting it into a receipt.
type IndexerTransactionWithOutcome struct {
	Transaction TransactionView
	Outcome     ExecutionOutcomeWithIDView
}

// TransactionView is a single signed transaction.
type TransactionView struct {
	Hash            string
	SignerID        string
	PublicKey       string
	Nonce           uint64
	ReceiverID      string
	Signature       string
}

// ReceiptKind discriminates the two ReceiptEnumView variants. Go has no sum
// types, so this is a closed tag rather than an interface — the indexer
// never needs open extension over receipt kinds.
type ReceiptKind int

const (
	ReceiptKindAction ReceiptKind = iota
	ReceiptKindData
)

// ReceiptView is a single receipt, either Action or Data shaped; only the
// fields for Kind are populated.
type ReceiptView struct {
	ReceiptID     string
	PredecessorID string
	ReceiverID    string
	Kind          ReceiptKind

	// Action-kind fields.
	SignerID             string
	SignerPublicKey      string
	GasPrice             *uint256.Int
	Actions              []ActionView
	InputDataIDs         []string
	OutputDataReceivers  []DataReceiverView

	// Data-kind fields.
	DataID string
	Data   []byte
}

// DataReceiverView names a receiver expecting a data receipt keyed by DataID.
type DataReceiverView struct {
	DataID     string
	ReceiverID string
}

// ActionKind enumerates the action variants a receipt's actions list may
// contain.
type ActionKind int

const (
	ActionKindCreateAccount ActionKind = iota
	ActionKindDeployContract
	ActionKindFunctionCall
	ActionKindTransfer
	ActionKindStake
	ActionKindAddKey
	ActionKindDeleteKey
	ActionKindDeleteAccount
)

// ActionView is a tagged action payload. Only the fields relevant to Kind
// are populated; everything else is zero.
type ActionView struct {
	Kind ActionKind

	// FunctionCall
	MethodName string
	Args       []byte
	Gas        uint64
	Deposit    *uint256.Int

	// Transfer
	TransferDeposit *uint256.Int

	// Stake
	StakeAmount    *uint256.Int
	StakePublicKey string

	// AddKey
	PublicKey string
	AccessKey AccessKeyView

	// DeleteKey
	DeleteKeyPublicKey string

	// DeleteAccount
	BeneficiaryID string

	// DeployContract
	CodeSHA256 string
}

// AccessKeyPermissionKind discriminates AccessKeyPermissionView.
type AccessKeyPermissionKind int

const (
	AccessKeyPermissionFunctionCall AccessKeyPermissionKind = iota
	AccessKeyPermissionFullAccess
)

// AccessKeyView describes a key's nonce and permission scope.
type AccessKeyView struct {
	Nonce      uint64
	Permission AccessKeyPermissionKind
	// FunctionCall-scoped fields, populated only when Permission is
	// AccessKeyPermissionFunctionCall.
	Allowance   *uint256.Int
	ReceiverID  string
	MethodNames []string
}

// ExecutionStatusKind discriminates ExecutionStatusView.
type ExecutionStatusKind int

const (
	ExecutionStatusUnknown ExecutionStatusKind = iota
	ExecutionStatusFailure
	ExecutionStatusSuccessValue
	ExecutionStatusSuccessReceiptID
)

// ExecutionOutcomeView is the result of executing one receipt.
type ExecutionOutcomeView struct {
	GasBurnt    uint64
	TokensBurnt *uint256.Int
	ExecutorID  string
	Status      ExecutionStatusKind
	ReceiptIDs  []string
}

// ExecutionOutcomeWithIDView pairs an outcome with the id/block-hash of the
// receipt it belongs to.
type ExecutionOutcomeWithIDView struct {
	ID        string
	BlockHash string
	Outcome   ExecutionOutcomeView
}

// OutcomeWithReceipt pairs an execution outcome with the full receipt view
// that produced it, as delivered per-shard by the stream.
type OutcomeWithReceipt struct {
	ExecutionOutcome ExecutionOutcomeWithIDView
	Receipt          ReceiptView
}

// StateChangeCauseKind discriminates StateChangeCauseView.
type StateChangeCauseKind int

const (
	StateChangeCauseTransactionProcessing StateChangeCauseKind = iota
	StateChangeCauseActionReceiptProcessingStarted
	StateChangeCauseActionReceiptGasReward
	StateChangeCauseReceiptProcessing
	StateChangeCausePostponedReceipt
	StateChangeCauseUpdatedDelayedReceipts
	StateChangeCauseValidatorAccountsUpdate
	StateChangeCauseMigration
	StateChangeCauseResharding
	// The two variants below are genesis-only; projecting them outside of
	// genesis replay is a SchemaViolation.
	StateChangeCauseNotWritableToDisk
	StateChangeCauseInitialState
)

// StateChangeView is one account-level state mutation with its cause.
type StateChangeView struct {
	AccountID string
	Cause     StateChangeCauseKind
	// CausePayload is a free-form JSON-able value describing the cause
	// (e.g. the receipt hash for ReceiptProcessing); stored verbatim.
	CausePayload any
}
