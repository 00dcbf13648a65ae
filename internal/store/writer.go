package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/user/near-sql-indexer/internal/apperrors"
	"github.com/user/near-sql-indexer/internal/metrics"
	"github.com/user/near-sql-indexer/internal/models"
)

// DefaultChunkSize is the row-count ceiling per INSERT statement
// (config batch_chunk_size), matching original_source/src/db_adapters/mod.rs's
// CHUNK_SIZE constant.
const DefaultChunkSize = 500

// Writer batches rows of one Record-implementing type into chunked
// INSERT IGNORE statements.
type Writer[T models.Record] struct {
	Pool      *Pool
	ChunkSize int

	// Metrics is optional; when set, every insert reports its row count
	// and latency against the table name.
	Metrics *metrics.Metrics
}

// NewWriter builds a Writer with chunkSize, falling back to
// DefaultChunkSize when chunkSize <= 0.
func NewWriter[T models.Record](pool *Pool, chunkSize int, m *metrics.Metrics) *Writer[T] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Writer[T]{Pool: pool, ChunkSize: chunkSize, Metrics: m}
}

// Insert writes rows in chunks of w.ChunkSize, each chunk its own
// INSERT IGNORE statement wrapped in withRetry. Per spec.md §4.2, an empty
// batch or a zero field count is a programmer error, not a no-op: callers
// must check for rows they have nothing to write before calling Insert,
// the same is_empty() guard original_source's db_adapters apply before
// ever reaching create_query_with_placeholders.
func (w *Writer[T]) Insert(ctx context.Context, rows []T) error {
	if len(rows) == 0 {
		return apperrors.BadInput("insert: rows is empty")
	}
	var zero T
	if zero.FieldCount() < 1 {
		return apperrors.BadInput("insert: field count < 1")
	}
	for start := 0; start < len(rows); start += w.ChunkSize {
		end := start + w.ChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := w.insertChunk(ctx, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer[T]) insertChunk(ctx context.Context, chunk []T) error {
	var zero T
	table := zero.TableName()
	query, args := buildInsert(table, zero.FieldCount(), chunk)

	start := time.Now()
	err := withRetry(ctx, w.Pool.RetryCount, w.Pool.RetryBaseDelay, w.Pool.RetryMaxDelay, func() error {
		_, err := w.Pool.DB.ExecContext(ctx, query, args...)
		return err
	})
	if w.Metrics != nil {
		w.Metrics.BatchInsertSeconds.WithLabelValues(table).Observe(time.Since(start).Seconds())
		if err == nil {
			w.Metrics.RowsInserted.WithLabelValues(table).Add(float64(len(chunk)))
		}
	}
	return err
}

// buildInsert renders `INSERT IGNORE INTO table VALUES (?, …), (?, …), …`,
// the same placeholder-list shape
// db_adapters/mod.rs::create_query_with_placeholders builds for its
// multi-row inserts.
func buildInsert[T models.Record](table string, fieldCount int, rows []T) (string, []any) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT IGNORE INTO %s VALUES ", table)

	args := make([]any, 0, len(rows)*fieldCount)
	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?,", fieldCount), ",") + ")"

	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(rowPlaceholder)
		row.AddArgs(&args)
	}
	return sb.String(), args
}
