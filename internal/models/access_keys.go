package models

// AccessKey is one row of the access_keys table, keyed by
// (public_key, account_id); like Account, create-then-delete within one
// block collapses to a single row. Grounded in
// original_source/src/db_adapters/access_keys.rs. Rows with a non-nil
// CreatedByReceiptID are new this block and go through the batched writer;
// delete-only rows go through the adapter's conditional UPDATE path,
// ordered by LastUpdateBlockHeight (spec.md §4.5).
type AccessKey struct {
	PublicKey             string
	AccountID             string
	CreatedByReceiptID    *string
	DeletedByReceiptID    *string
	Permission            string
	LastUpdateBlockHeight uint64
}

func NewAccessKeyCreate(accountID, publicKey, permission, receiptID string, blockHeight uint64) AccessKey {
	return AccessKey{
		PublicKey:             publicKey,
		AccountID:             accountID,
		CreatedByReceiptID:    &receiptID,
		Permission:            permission,
		LastUpdateBlockHeight: blockHeight,
	}
}

func NewAccessKeyDelete(accountID, publicKey, receiptID string, blockHeight uint64) AccessKey {
	return AccessKey{
		PublicKey:             publicKey,
		AccountID:             accountID,
		DeletedByReceiptID:    &receiptID,
		Permission:            AccessKeyPermissionFullAccess,
		LastUpdateBlockHeight: blockHeight,
	}
}

// IsNew reports whether this row represents a key created within the
// current block (goes to INSERT) versus one only touched by a delete this
// block (goes to conditional UPDATE against an existing row).
func (k AccessKey) IsNew() bool { return k.CreatedByReceiptID != nil }

// Merge folds a later action on the same (public_key, account_id) pair
// within the same block onto the earlier one.
func (k AccessKey) Merge(next AccessKey) AccessKey {
	if next.CreatedByReceiptID != nil {
		k.CreatedByReceiptID = next.CreatedByReceiptID
		k.Permission = next.Permission
	}
	if next.DeletedByReceiptID != nil {
		k.DeletedByReceiptID = next.DeletedByReceiptID
	}
	k.LastUpdateBlockHeight = next.LastUpdateBlockHeight
	return k
}

func (k AccessKey) AddArgs(args *[]any) {
	*args = append(*args,
		k.PublicKey, k.AccountID, nullableArg(k.CreatedByReceiptID), nullableArg(k.DeletedByReceiptID),
		k.Permission, k.LastUpdateBlockHeight,
	)
}

func (AccessKey) TableName() string { return "access_keys" }
func (AccessKey) FieldCount() int   { return 6 }
