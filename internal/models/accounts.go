package models

// Account is one row of the accounts table. Unlike the append-only tables,
// an account_id has at most one row: create-then-delete within the same
// block collapses to a single row, grounded in
// original_source/src/db_adapters/accounts.rs's HashMap<AccountId, Account>
// accumulation (`.and_modify()` over the block's actions before the batch
// write). Rows with a non-nil CreatedByReceiptID are new this block and go
// through the batched INSERT IGNORE writer; rows with only a
// DeletedByReceiptID were created in an earlier block and must go through
// the adapter's conditional UPDATE path instead (spec.md §4.5).
type Account struct {
	AccountID            string
	CreatedAtBlockHeight uint64
	DeletedAtBlockHeight *uint64
	CreatedByReceiptID   *string
	DeletedByReceiptID   *string
}

// NewAccountCreate returns the row produced by a CreateAccount action or an
// implicit account creation (a Transfer action whose receiver_id is a
// 64-hex-character implicit account not yet seen).
func NewAccountCreate(accountID, receiptID string, blockHeight uint64) Account {
	return Account{AccountID: accountID, CreatedAtBlockHeight: blockHeight, CreatedByReceiptID: &receiptID}
}

// NewAccountDelete returns the row produced by a DeleteAccount action, not
// yet knowing whether the account was also created in this block.
func NewAccountDelete(accountID, receiptID string, blockHeight uint64) Account {
	return Account{AccountID: accountID, DeletedAtBlockHeight: &blockHeight, DeletedByReceiptID: &receiptID}
}

// IsNew reports whether this row represents an account created within the
// current block (goes to INSERT) versus one only touched by a delete this
// block (goes to conditional UPDATE against an existing row).
func (a Account) IsNew() bool { return a.CreatedByReceiptID != nil }

// Merge folds `next` (a later action on the same account_id within the same
// block) onto `a`, matching and_modify semantics: a later action's fields
// overwrite, earlier ones are kept when the later action doesn't set them.
func (a Account) Merge(next Account) Account {
	if next.CreatedByReceiptID != nil {
		a.CreatedByReceiptID = next.CreatedByReceiptID
		a.CreatedAtBlockHeight = next.CreatedAtBlockHeight
	}
	if next.DeletedByReceiptID != nil {
		a.DeletedByReceiptID = next.DeletedByReceiptID
		a.DeletedAtBlockHeight = next.DeletedAtBlockHeight
	}
	return a
}

func (a Account) AddArgs(args *[]any) {
	*args = append(*args,
		a.AccountID, a.CreatedAtBlockHeight, nullableUintArg(a.DeletedAtBlockHeight),
		nullableArg(a.CreatedByReceiptID), nullableArg(a.DeletedByReceiptID),
	)
}

func (Account) TableName() string { return "accounts" }
func (Account) FieldCount() int   { return 5 }

func nullableArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableUintArg(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}
