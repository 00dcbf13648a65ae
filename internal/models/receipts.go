package models

import "github.com/user/near-sql-indexer/internal/nearview"

// ActionReceipt is one row of the action_receipts table. Grounded in
// original_source/src/models/receipts.rs's Receipt+ActionReceipt structs,
// widened to the full field list spec.md §3 calls for.
type ActionReceipt struct {
	ReceiptID                     string
	BlockHash                     string
	ChunkHash                     string
	IndexInChunk                  int32
	BlockTimestampNS               uint64
	Predecessor                   string
	Receiver                      string
	OriginatedFromTransactionHash string
	Signer                        string
	SignerPublicKey               string
	GasPrice                      string
}

// NewActionReceipt projects an Action-kind ReceiptView into a row.
// txHash is the lineage resolver's answer for this receipt.
func NewActionReceipt(r nearview.ReceiptView, blockHash, chunkHash string, indexInChunk int32, blockTimestampNS uint64, txHash string) ActionReceipt {
	return ActionReceipt{
		ReceiptID:                     r.ReceiptID,
		BlockHash:                     blockHash,
		ChunkHash:                     chunkHash,
		IndexInChunk:                  indexInChunk,
		BlockTimestampNS:              blockTimestampNS,
		Predecessor:                   r.PredecessorID,
		Receiver:                      r.ReceiverID,
		OriginatedFromTransactionHash: txHash,
		Signer:                        r.SignerID,
		SignerPublicKey:               r.SignerPublicKey,
		GasPrice:                      amountString(r.GasPrice),
	}
}

func (r ActionReceipt) AddArgs(args *[]any) {
	*args = append(*args,
		r.ReceiptID, r.BlockHash, r.ChunkHash, r.IndexInChunk, r.BlockTimestampNS,
		r.Predecessor, r.Receiver, r.OriginatedFromTransactionHash, r.Signer, r.SignerPublicKey, r.GasPrice,
	)
}

func (ActionReceipt) TableName() string { return "action_receipts" }
func (ActionReceipt) FieldCount() int   { return 11 }

// DataReceipt is one row of the data_receipts table.
type DataReceipt struct {
	ReceiptID                     string
	BlockHash                     string
	ChunkHash                     string
	IndexInChunk                  int32
	Predecessor                   string
	Receiver                      string
	OriginatedFromTransactionHash string
	DataID                        string
	Data                          []byte
}

// NewDataReceipt projects a Data-kind ReceiptView into a row.
func NewDataReceipt(r nearview.ReceiptView, blockHash, chunkHash string, indexInChunk int32, txHash string) DataReceipt {
	return DataReceipt{
		ReceiptID:                     r.ReceiptID,
		BlockHash:                     blockHash,
		ChunkHash:                     chunkHash,
		IndexInChunk:                  indexInChunk,
		Predecessor:                   r.PredecessorID,
		Receiver:                      r.ReceiverID,
		OriginatedFromTransactionHash: txHash,
		DataID:                        r.DataID,
		Data:                          r.Data,
	}
}

func (d DataReceipt) AddArgs(args *[]any) {
	*args = append(*args,
		d.ReceiptID, d.BlockHash, d.ChunkHash, d.IndexInChunk,
		d.Predecessor, d.Receiver, d.OriginatedFromTransactionHash, d.DataID, d.Data,
	)
}

func (DataReceipt) TableName() string { return "data_receipts" }
func (DataReceipt) FieldCount() int   { return 9 }

// ActionReceiptAction is one row per action inside an action receipt.
type ActionReceiptAction struct {
	ReceiptID                   string
	IndexInActionReceipt        int32
	ActionKind                  string
	Args                        string
	ReceiptPredecessor          string
	ReceiptReceiver             string
	ReceiptBlockTimestampNS     uint64
}

func NewActionReceiptActions(r nearview.ReceiptView, blockTimestampNS uint64) []ActionReceiptAction {
	rows := make([]ActionReceiptAction, 0, len(r.Actions))
	for i, a := range r.Actions {
		kind, args := ActionKindAndArgs(a)
		rows = append(rows, ActionReceiptAction{
			ReceiptID:               r.ReceiptID,
			IndexInActionReceipt:    int32(i),
			ActionKind:              kind,
			Args:                    args,
			ReceiptPredecessor:      r.PredecessorID,
			ReceiptReceiver:         r.ReceiverID,
			ReceiptBlockTimestampNS: blockTimestampNS,
		})
	}
	return rows
}

func (a ActionReceiptAction) AddArgs(args *[]any) {
	*args = append(*args,
		a.ReceiptID, a.IndexInActionReceipt, a.ActionKind, a.Args,
		a.ReceiptPredecessor, a.ReceiptReceiver, a.ReceiptBlockTimestampNS,
	)
}

func (ActionReceiptAction) TableName() string { return "action_receipt_actions" }
func (ActionReceiptAction) FieldCount() int   { return 7 }

// ActionReceiptInputData is one row per expected input data id.
type ActionReceiptInputData struct {
	InputToReceiptID string
	InputDataID      string
}

func NewActionReceiptInputData(r nearview.ReceiptView) []ActionReceiptInputData {
	rows := make([]ActionReceiptInputData, 0, len(r.InputDataIDs))
	for _, dataID := range r.InputDataIDs {
		rows = append(rows, ActionReceiptInputData{InputToReceiptID: r.ReceiptID, InputDataID: dataID})
	}
	return rows
}

func (d ActionReceiptInputData) AddArgs(args *[]any) {
	*args = append(*args, d.InputToReceiptID, d.InputDataID)
}

func (ActionReceiptInputData) TableName() string { return "action_receipt_input_data" }
func (ActionReceiptInputData) FieldCount() int   { return 2 }

// ActionReceiptOutputData is one row per declared output data receiver.
type ActionReceiptOutputData struct {
	OutputFromReceiptID string
	OutputDataID        string
	ReceiverID           string
}

func NewActionReceiptOutputData(r nearview.ReceiptView) []ActionReceiptOutputData {
	rows := make([]ActionReceiptOutputData, 0, len(r.OutputDataReceivers))
	for _, d := range r.OutputDataReceivers {
		rows = append(rows, ActionReceiptOutputData{
			OutputFromReceiptID: r.ReceiptID,
			OutputDataID:        d.DataID,
			ReceiverID:          d.ReceiverID,
		})
	}
	return rows
}

func (d ActionReceiptOutputData) AddArgs(args *[]any) {
	*args = append(*args, d.OutputFromReceiptID, d.OutputDataID, d.ReceiverID)
}

func (ActionReceiptOutputData) TableName() string { return "action_receipt_output_data" }
func (ActionReceiptOutputData) FieldCount() int   { return 3 }
