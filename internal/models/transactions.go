package models

import "github.com/user/near-sql-indexer/internal/nearview"

// Transaction is one row of the transactions table. Grounded in
// original_source/src/models/transactions.rs.
type Transaction struct {
	Hash                         string
	BlockHash                    string
	ChunkHash                    string
	IndexInChunk                 int32
	BlockTimestampNS             uint64
	Signer                       string
	SignerPublicKey              string
	Nonce                        uint64
	Receiver                     string
	Signature                    string
	Status                       string
	ConvertedIntoReceiptID       string
	ReceiptConversionGasBurnt    uint64
	ReceiptConversionTokensBurnt string
}

// NewTransaction projects one transaction-with-outcome into a row.
// convertedIntoReceiptID is the first of Outcome.Outcome.ReceiptIDs, per
// original_source/src/db_adapters/transactions.rs's
// `receipt_ids.first().expect(...)`.
func NewTransaction(
	tx nearview.IndexerTransactionWithOutcome,
	blockHash, chunkHash string,
	blockTimestampNS uint64,
	indexInChunk int32,
	convertedIntoReceiptID string,
) Transaction {
	outcome := tx.Outcome.Outcome
	return Transaction{
		Hash:                         tx.Transaction.Hash,
		BlockHash:                    blockHash,
		ChunkHash:                    chunkHash,
		IndexInChunk:                 indexInChunk,
		BlockTimestampNS:             blockTimestampNS,
		Signer:                       tx.Transaction.SignerID,
		SignerPublicKey:              tx.Transaction.PublicKey,
		Nonce:                        tx.Transaction.Nonce,
		Receiver:                     tx.Transaction.ReceiverID,
		Signature:                    tx.Transaction.Signature,
		Status:                       PrintExecutionStatus(execStatusFromView(outcome.Status)),
		ConvertedIntoReceiptID:       convertedIntoReceiptID,
		ReceiptConversionGasBurnt:    outcome.GasBurnt,
		ReceiptConversionTokensBurnt: amountString(outcome.TokensBurnt),
	}
}

func execStatusFromView(s nearview.ExecutionStatusKind) ExecutionStatusView {
	switch s {
	case nearview.ExecutionStatusFailure:
		return ExecutionStatusViewFailure
	case nearview.ExecutionStatusSuccessValue:
		return ExecutionStatusViewSuccessValue
	case nearview.ExecutionStatusSuccessReceiptID:
		return ExecutionStatusViewSuccessReceiptID
	default:
		return ExecutionStatusViewUnknown
	}
}

func (t Transaction) AddArgs(args *[]any) {
	*args = append(*args,
		t.Hash, t.BlockHash, t.ChunkHash, t.IndexInChunk, t.BlockTimestampNS,
		t.Signer, t.SignerPublicKey, t.Nonce, t.Receiver, t.Signature,
		t.Status, t.ConvertedIntoReceiptID, t.ReceiptConversionGasBurnt, t.ReceiptConversionTokensBurnt,
	)
}

func (Transaction) TableName() string { return "transactions" }

func (Transaction) FieldCount() int { return 14 }
