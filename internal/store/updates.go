package store

import "context"

// UpdateAccountDeleted marks an existing account row deleted, the Go
// counterpart of original_source/src/db_adapters/accounts.rs's
// delete_accounts_future. It only takes effect when the row isn't already
// marked deleted, so replaying a block is idempotent.
func (p *Pool) UpdateAccountDeleted(ctx context.Context, accountID string, deletedAtBlockHeight uint64, deletedByReceiptID string) error {
	return withRetry(ctx, p.RetryCount, p.RetryBaseDelay, p.RetryMaxDelay, func() error {
		_, err := p.DB.ExecContext(ctx, `
			UPDATE accounts SET deleted_at_block_height = ?, deleted_by_receipt_id = ?
			WHERE account_id = ? AND deleted_by_receipt_id IS NULL`,
			deletedAtBlockHeight, deletedByReceiptID, accountID)
		return err
	})
}

// UpdateAccessKeyDeleted marks an existing (public_key, account_id) row
// deleted, ordered by last_update_block_height so an out-of-order replay
// can't undo a later block's delete, mirroring access_keys.rs's
// update_access_keys.
func (p *Pool) UpdateAccessKeyDeleted(ctx context.Context, publicKey, accountID string, lastUpdateBlockHeight uint64, deletedByReceiptID string) error {
	return withRetry(ctx, p.RetryCount, p.RetryBaseDelay, p.RetryMaxDelay, func() error {
		_, err := p.DB.ExecContext(ctx, `
			UPDATE access_keys SET deleted_by_receipt_id = ?, last_update_block_height = ?
			WHERE public_key = ? AND account_id = ? AND last_update_block_height < ?`,
			deletedByReceiptID, lastUpdateBlockHeight, publicKey, accountID, lastUpdateBlockHeight)
		return err
	})
}

// DeleteAccessKeysForAccount marks every not-yet-deleted access key row for
// accountID deleted, for a DeleteAccount action that didn't otherwise touch
// the key this block — access_keys.rs's delete_access_keys_for_deleted_accounts.
func (p *Pool) DeleteAccessKeysForAccount(ctx context.Context, accountID string, lastUpdateBlockHeight uint64, deletedByReceiptID string) error {
	return withRetry(ctx, p.RetryCount, p.RetryBaseDelay, p.RetryMaxDelay, func() error {
		_, err := p.DB.ExecContext(ctx, `
			UPDATE access_keys SET deleted_by_receipt_id = ?, last_update_block_height = ?
			WHERE account_id = ? AND deleted_by_receipt_id IS NULL AND last_update_block_height < ?`,
			deletedByReceiptID, lastUpdateBlockHeight, accountID, lastUpdateBlockHeight)
		return err
	})
}
