package adapters

import (
	"context"
	"encoding/hex"

	"golang.org/x/sync/errgroup"

	"github.com/user/near-sql-indexer/internal/models"
	"github.com/user/near-sql-indexer/internal/nearview"
	"github.com/user/near-sql-indexer/internal/store"
)

// AccountsAdapter folds every account-affecting action in the block into at
// most one row per account_id, collapsing a create followed by a delete
// within the same block into a single inserted row (spec.md §9 decision 3),
// grounded in original_source/src/db_adapters/accounts.rs's in-memory
// HashMap<AccountId, Account> accumulation. A delete that targets an
// account created in an earlier block instead drives a conditional
// UPDATE against the existing row, per spec.md §4.5.
type AccountsAdapter struct {
	Writer *store.Writer[models.Account]
	Pool   *store.Pool
}

func (a *AccountsAdapter) Write(ctx context.Context, msg nearview.StreamerMessage) error {
	blockHeight := msg.Block.Height
	tracker := make(map[string]models.Account)

	forEachSuccessfulActionReceipt(msg, func(r nearview.ReceiptView) {
		for _, action := range r.Actions {
			switch action.Kind {
			case nearview.ActionKindCreateAccount:
				fold(tracker, models.NewAccountCreate(r.ReceiverID, r.ReceiptID, blockHeight))
			case nearview.ActionKindTransfer:
				if isImplicitAccountID(r.ReceiverID) {
					fold(tracker, models.NewAccountCreate(r.ReceiverID, r.ReceiptID, blockHeight))
				}
			case nearview.ActionKindDeleteAccount:
				fold(tracker, models.NewAccountDelete(r.ReceiverID, r.ReceiptID, blockHeight))
			}
		}
	})

	var toInsert, toUpdate []models.Account
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
			if err := a.Pool.UpdateAccountDeleted(gctx, row.AccountID, *row.DeletedAtBlockHeight, *row.DeletedByReceiptID); err != nil {
				return err
			}
		}
		return nil
	})
	return g.Wait()
}

func fold(tracker map[string]models.Account, next models.Account) {
	if existing, ok := tracker[next.AccountID]; ok {
		tracker[next.AccountID] = existing.Merge(next)
		return
	}
	tracker[next.AccountID] = next
}

// forEachSuccessfulActionReceipt visits every Action-kind receipt whose
// execution outcome succeeded, mirroring
// original_source/src/db_adapters/accounts.rs's get_successful_receipts
// filter applied before any action in the receipt is inspected. It walks
// shard.ReceiptExecutionOutcomes rather than shard.Chunk.Receipts, since
// that's the only view carrying the outcome status alongside the receipt.
func forEachSuccessfulActionReceipt(msg nearview.StreamerMessage, fn func(nearview.ReceiptView)) {
	for _, shard := range msg.Shards {
		for _, owr := range shard.ReceiptExecutionOutcomes {
			if !models.IsSuccessView(owr.ExecutionOutcome.Outcome.Status) {
				continue
			}
			if owr.Receipt.Kind == nearview.ReceiptKindAction {
				fn(owr.Receipt)
			}
		}
	}
}

// isImplicitAccountID reports whether id looks like a NEAR implicit
// account: a 64-character hex string (the hex encoding of an ED25519
// public key). Upper-case hex digits are accepted as well.
func isImplicitAccountID(id string) bool {
	if len(id) != 64 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
