package store

import (
	"context"
	"database/sql"
	"strings"
)

// placeholders renders n `?` placeholders separated by commas, the same
// shape create_query_with_placeholders builds for a single IN(...) clause.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// QueryIn runs `query` with ids bound, in order, as its parameters — query
// must already contain a single IN (...) clause with len(ids) placeholders
// (see Placeholders) — and invokes scan for every returned row. Used by internal/lineage to probe
// action_receipt_output_data, execution_outcome_receipts, and transactions
// without hand-building a new IN clause per probe.
func (p *Pool) QueryIn(ctx context.Context, query string, ids []string, scan func(*sql.Rows) error) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return withRetry(ctx, p.RetryCount, p.RetryBaseDelay, p.RetryMaxDelay, func() error {
		rows, err := p.DB.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			if err := scan(rows); err != nil {
				return err
			}
		}
		return rows.Err()
	})
}

// Placeholders exposes placeholders for callers building a query string
// with Sprintf before calling QueryIn.
func Placeholders(n int) string { return placeholders(n) }

// InsertIgnoreBlocksToRerun records a block height for out-of-process
// replay when lineage can't be resolved in non-strict mode, matching
// original_source's `_blocks_to_rerun` fallback.
func (p *Pool) InsertIgnoreBlocksToRerun(ctx context.Context, blockHeight uint64) error {
	return withRetry(ctx, p.RetryCount, p.RetryBaseDelay, p.RetryMaxDelay, func() error {
		_, err := p.DB.ExecContext(ctx, "INSERT IGNORE INTO _blocks_to_rerun (block_height) VALUES (?)", blockHeight)
		return err
	})
}
