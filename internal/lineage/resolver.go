// Package lineage resolves the transaction_hash that originated each
// receipt in a block, the Go counterpart of
// original_source/src/db_adapters/receipts.rs's find_tx_hashes_for_receipts.
package lineage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/user/near-sql-indexer/internal/apperrors"
	"github.com/user/near-sql-indexer/internal/cache"
	"github.com/user/near-sql-indexer/internal/metrics"
	"github.com/user/near-sql-indexer/internal/nearview"
	"github.com/user/near-sql-indexer/internal/store"
)

// Resolver answers "what transaction produced this receipt" for a batch of
// receipts in one block, consulting the lineage cache before three ordered
// database probes.
type Resolver struct {
	Cache *cache.LineageCache
	Pool  *store.Pool

	// Metrics is optional; when set, Resolve reports cache occupancy and
	// cache-miss counts against it.
	Metrics *metrics.Metrics
}

// Resolve returns a map from each resolved receipt's ReceiptOrDataID to
// its transaction hash. strict controls what happens to receipts that
// remain unresolved after all four steps: true returns ErrUnresolvedLineage,
// false records the block for out-of-process replay and drops those
// receipts from the result (spec.md §9 decision 1 — no partial row with a
// null tx hash).
func (r *Resolver) Resolve(ctx context.Context, strict bool, receipts []nearview.ReceiptView, blockHeight uint64) (map[cache.ReceiptOrDataID]string, error) {
	result := make(map[cache.ReceiptOrDataID]string, len(receipts))
	var pending []nearview.ReceiptView

	// Step 1: cache. Data receipts are consumed (removed); action receipts
	// are only peeked, since a single action receipt can be awaited by more
	// than one downstream lookup within the same block.
	for _, rcpt := range receipts {
		var (
			hit bool
			tx  string
		)
		switch rcpt.Kind {
		case nearview.ReceiptKindData:
			tx, hit = r.Cache.TakeData(rcpt.DataID)
		default:
			tx, hit = r.Cache.Get(cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: rcpt.ReceiptID})
		}
		if hit {
			result[receiptKey(rcpt)] = tx
		} else {
			pending = append(pending, rcpt)
		}
	}
	if r.Metrics != nil {
		r.Metrics.LineageCacheSize.Set(float64(r.Cache.Len()))
		if len(pending) > 0 {
			r.Metrics.LineageCacheMiss.Add(float64(len(pending)))
		}
	}
	if len(pending) == 0 {
		return result, nil
	}

	// Step 2: action_receipt_output_data — a remote receipt whose
	// originating output-data row was already written by an earlier block.
	if err := r.probeOutputData(ctx, pending, result); err != nil {
		return nil, err
	}
	pending = remaining(pending, result)
	if len(pending) == 0 {
		return result, nil
	}

	// Step 3: execution_outcome_receipts — the receipt was produced by
	// another receipt's execution, already persisted.
	if err := r.probeExecutionOutcomeReceipts(ctx, pending, result); err != nil {
		return nil, err
	}
	pending = remaining(pending, result)
	if len(pending) == 0 {
		return result, nil
	}

	// Step 4: transactions — the receipt is the direct conversion of a
	// signed transaction already persisted (cross-block resubmission).
	if err := r.probeTransactions(ctx, pending, result); err != nil {
		return nil, err
	}
	pending = remaining(pending, result)
	if len(pending) == 0 {
		return result, nil
	}

	if strict {
		return nil, apperrors.UnresolvedLineage(fmt.Sprintf("%d receipts", len(pending)), blockHeight)
	}

	log.Warn().Uint64("block_height", blockHeight).Int("unresolved", len(pending)).
		Msg("lineage unresolved in non-strict mode, queuing block for rerun")
	if err := r.Pool.InsertIgnoreBlocksToRerun(ctx, blockHeight); err != nil {
		return nil, err
	}
	if r.Metrics != nil {
		r.Metrics.RerunQueueDepth.Inc()
	}
	return result, nil
}

func receiptKey(r nearview.ReceiptView) cache.ReceiptOrDataID {
	if r.Kind == nearview.ReceiptKindData {
		return cache.ReceiptOrDataID{Kind: cache.KindDataID, ID: r.DataID}
	}
	return cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: r.ReceiptID}
}

func remaining(receipts []nearview.ReceiptView, resolved map[cache.ReceiptOrDataID]string) []nearview.ReceiptView {
	out := receipts[:0:0]
	for _, r := range receipts {
		if _, ok := resolved[receiptKey(r)]; !ok {
			out = append(out, r)
		}
	}
	return out
}

func idsOf(receipts []nearview.ReceiptView) []string {
	ids := make([]string, 0, len(receipts))
	for _, r := range receipts {
		if r.Kind == nearview.ReceiptKindData {
			ids = append(ids, r.DataID)
		} else {
			ids = append(ids, r.ReceiptID)
		}
	}
	return ids
}

func (r *Resolver) probeOutputData(ctx context.Context, receipts []nearview.ReceiptView, result map[cache.ReceiptOrDataID]string) error {
	ids := idsOf(receipts)
	query := fmt.Sprintf(`
		SELECT d.output_data_id, t.originated_from_transaction_hash
		FROM action_receipt_output_data d
		JOIN action_receipts t ON t.receipt_id = d.output_from_receipt_id
		WHERE d.output_data_id IN (%s)`, store.Placeholders(len(ids)))

	return r.Pool.QueryIn(ctx, query, ids, func(rows *sql.Rows) error {
		var dataID, txHash string
		if err := rows.Scan(&dataID, &txHash); err != nil {
			return err
		}
		result[cache.ReceiptOrDataID{Kind: cache.KindDataID, ID: dataID}] = txHash
		return nil
	})
}

func (r *Resolver) probeExecutionOutcomeReceipts(ctx context.Context, receipts []nearview.ReceiptView, result map[cache.ReceiptOrDataID]string) error {
	ids := idsOf(receipts)
	query := fmt.Sprintf(`
		SELECT o.produced_receipt_id, t.originated_from_transaction_hash
		FROM execution_outcome_receipts o
		JOIN action_receipts t ON t.receipt_id = o.executed_receipt_id
		WHERE o.produced_receipt_id IN (%s)`, store.Placeholders(len(ids)))

	return r.Pool.QueryIn(ctx, query, ids, func(rows *sql.Rows) error {
		var receiptID, txHash string
		if err := rows.Scan(&receiptID, &txHash); err != nil {
			return err
		}
		result[cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: receiptID}] = txHash
		return nil
	})
}

func (r *Resolver) probeTransactions(ctx context.Context, receipts []nearview.ReceiptView, result map[cache.ReceiptOrDataID]string) error {
	ids := idsOf(receipts)
	query := fmt.Sprintf(`
		SELECT converted_into_receipt_id, hash
		FROM transactions
		WHERE converted_into_receipt_id IN (%s)`, store.Placeholders(len(ids)))

	return r.Pool.QueryIn(ctx, query, ids, func(rows *sql.Rows) error {
		var receiptID, txHash string
		if err := rows.Scan(&receiptID, &txHash); err != nil {
			return err
		}
		result[cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: receiptID}] = txHash
		return nil
	})
}
