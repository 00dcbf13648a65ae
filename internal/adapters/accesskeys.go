package adapters

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/user/near-sql-indexer/internal/models"
	"github.com/user/near-sql-indexer/internal/nearview"
	"github.com/user/near-sql-indexer/internal/store"
)

// AccessKeysAdapter folds every AddKey/DeleteKey action in the block into
// at most one row per (public_key, account_id), the same and_modify
// collapse AccountsAdapter applies, grounded in
// original_source/src/db_adapters/access_keys.rs. A DeleteAccount action
// marks every key tracked this block for the same account deleted, and
// separately drives a conditional UPDATE for any of that account's keys
// not otherwise touched this block.
type AccessKeysAdapter struct {
	Writer *store.Writer[models.AccessKey]
	Pool   *store.Pool
}

func (a *AccessKeysAdapter) Write(ctx context.Context, msg nearview.StreamerMessage) error {
	blockHeight := msg.Block.Height
	tracker := make(map[[2]string]models.AccessKey)
	deletedAccounts := make(map[string]string) // account_id -> receipt_id

	forEachSuccessfulActionReceipt(msg, func(r nearview.ReceiptView) {
		for _, action := range r.Actions {
			switch action.Kind {
			case nearview.ActionKindAddKey:
				permission := models.AccessKeyPermissionFullAccess
				if action.AccessKey.Permission == nearview.AccessKeyPermissionFunctionCall {
					permission = models.AccessKeyPermissionFunctionCall
				}
				row := models.NewAccessKeyCreate(r.ReceiverID, action.PublicKey, permission, r.ReceiptID, blockHeight)
				foldAccessKey(tracker, row)
			case nearview.ActionKindDeleteKey:
				row := models.NewAccessKeyDelete(r.ReceiverID, action.DeleteKeyPublicKey, r.ReceiptID, blockHeight)
				foldAccessKey(tracker, row)
			case nearview.ActionKindTransfer:
				if isImplicitAccountID(r.ReceiverID) {
					if pub, err := implicitAccountPublicKey(r.ReceiverID); err == nil {
						row := models.NewAccessKeyCreate(r.ReceiverID, pub, models.AccessKeyPermissionFullAccess, r.ReceiptID, blockHeight)
						foldAccessKey(tracker, row)
					}
				}
			case nearview.ActionKindDeleteAccount:
				deletedAccounts[r.ReceiverID] = r.ReceiptID
				for key, row := range tracker {
					if key[1] != r.ReceiverID {
						continue
					}
					receiptID := r.ReceiptID
					row.DeletedByReceiptID = &receiptID
					row.LastUpdateBlockHeight = blockHeight
					tracker[key] = row
				}
			}
		}
	})

	var toInsert, toUpdate []models.AccessKey
	for _, row := range tracker {
		if row.IsNew() {
			toInsert = append(toInsert, row)
		} else {
			toUpdate = append(toUpdate, row)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if len(toInsert) == 0 {
			return nil
		}
		return a.Writer.Insert(gctx, toInsert)
	})
	g.Go(func() error {
		for _, row := range toUpdate {
			if row.DeletedByReceiptID == nil {
				continue
			}
			if err := a.Pool.UpdateAccessKeyDeleted(gctx, row.PublicKey, row.AccountID, row.LastUpdateBlockHeight, *row.DeletedByReceiptID); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for accountID, receiptID := range deletedAccounts {
			if err := a.Pool.DeleteAccessKeysForAccount(gctx, accountID, blockHeight, receiptID); err != nil {
				return err
			}
		}
		return nil
	})
	return g.Wait()
}

func foldAccessKey(tracker map[[2]string]models.AccessKey, next models.AccessKey) {
	key := [2]string{next.PublicKey, next.AccountID}
	if existing, ok := tracker[key]; ok {
		tracker[key] = existing.Merge(next)
		return
	}
	tracker[key] = next
}

// implicitAccountPublicKey derives the full-access public key an implicit
// account is created with: the account_id is itself the hex encoding of the
// ED25519 public key, matching near_crypto::ED25519PublicKey::try_from's
// validation that the decoded bytes are exactly ed25519.PublicKeySize long.
func implicitAccountPublicKey(accountID string) (string, error) {
	raw, err := hex.DecodeString(accountID)
	if err != nil {
		return "", fmt.Errorf("adapters: decoding implicit account id %q: %w", accountID, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return "", fmt.Errorf("adapters: implicit account id %q decodes to %d bytes, want %d", accountID, len(raw), ed25519.PublicKeySize)
	}
	pub := ed25519.PublicKey(raw)
	return "ed25519:" + hex.EncodeToString(pub), nil
}
