package models

import "github.com/user/near-sql-indexer/internal/nearview"

// Closed label sets. Every string written into an enum-typed column must
// come from one of these — see GLOSSARY in spec.md. Mirrors the PrintEnum
// trait in original_source/src/models/mod.rs, one function per enum.

// Execution status labels.
const (
	ExecutionStatusUnknown           = "UNKNOWN"
	ExecutionStatusFailure           = "FAILURE"
	ExecutionStatusSuccessValue      = "SUCCESS_VALUE"
	ExecutionStatusSuccessReceiptID  = "SUCCESS_RECEIPT_ID"
)

// ExecutionStatusView is the subset of the upstream status enum the
// projector needs to know about.
type ExecutionStatusView int

const (
	ExecutionStatusViewUnknown ExecutionStatusView = iota
	ExecutionStatusViewFailure
	ExecutionStatusViewSuccessValue
	ExecutionStatusViewSuccessReceiptID
)

// PrintExecutionStatus projects the upstream status to its closed label.
func PrintExecutionStatus(s ExecutionStatusView) string {
	switch s {
	case ExecutionStatusViewFailure:
		return ExecutionStatusFailure
	case ExecutionStatusViewSuccessValue:
		return ExecutionStatusSuccessValue
	case ExecutionStatusViewSuccessReceiptID:
		return ExecutionStatusSuccessReceiptID
	default:
		return ExecutionStatusUnknown
	}
}

// IsSuccess reports whether a status label indicates the receipt/outcome
// executed without failure.
func IsSuccess(label string) bool {
	return label == ExecutionStatusSuccessValue || label == ExecutionStatusSuccessReceiptID
}

// IsSuccessView reports whether an upstream execution status indicates
// success, straight off the ReceiptExecutionOutcomes view — the filter the
// accounts and access-keys adapters apply before looking at a receipt's
// actions at all, mirroring original_source/src/db_adapters/accounts.rs's
// get_successful_receipts.
func IsSuccessView(s nearview.ExecutionStatusKind) bool {
	return s == nearview.ExecutionStatusSuccessValue || s == nearview.ExecutionStatusSuccessReceiptID
}

// Receipt kind labels.
const (
	ReceiptKindAction = "ACTION"
	ReceiptKindData   = "DATA"
)

// Access-key permission labels.
const (
	AccessKeyPermissionFunctionCall = "FUNCTION_CALL"
	AccessKeyPermissionFullAccess   = "FULL_ACCESS"
)

// Action kinds.
const (
	ActionKindCreateAccount   = "CREATE_ACCOUNT"
	ActionKindDeployContract  = "DEPLOY_CONTRACT"
	ActionKindFunctionCall    = "FUNCTION_CALL"
	ActionKindTransfer        = "TRANSFER"
	ActionKindStake           = "STAKE"
	ActionKindAddKey          = "ADD_KEY"
	ActionKindDeleteKey       = "DELETE_KEY"
	ActionKindDeleteAccount   = "DELETE_ACCOUNT"
)

// State-change cause labels.
const (
	StateChangeCauseTransactionProcessing         = "TRANSACTION_PROCESSING"
	StateChangeCauseActionReceiptProcessingStarted = "ACTION_RECEIPT_PROCESSING_STARTED"
	StateChangeCauseActionReceiptGasReward         = "ACTION_RECEIPT_GAS_REWARD"
	StateChangeCauseReceiptProcessing              = "RECEIPT_PROCESSING"
	StateChangeCausePostponedReceipt               = "POSTPONED_RECEIPT"
	StateChangeCauseUpdatedDelayedReceipts         = "UPDATED_DELAYED_RECEIPTS"
	StateChangeCauseValidatorAccountsUpdate        = "VALIDATOR_ACCOUNTS_UPDATE"
	StateChangeCauseMigration                      = "MIGRATION"
	StateChangeCauseResharding                     = "RESHARDING"
)

// The two genesis-only StateChangeCauseView variants (NotWritableToDisk,
// InitialState) are never cased in causeKindLabel (execution_outcomes.go)
// and so fall through
// to its (ok=false) default — seeing either live is a SchemaViolation, per
// near_indexer_primitives::views::StateChangeCauseView's panic branch in
// original_source/src/models/enums.rs.
