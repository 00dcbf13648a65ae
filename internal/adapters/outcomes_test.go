package adapters

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/user/near-sql-indexer/internal/cache"
	"github.com/user/near-sql-indexer/internal/models"
	"github.com/user/near-sql-indexer/internal/nearview"
	"github.com/user/near-sql-indexer/internal/store"
)

// noopDriver is a minimal database/sql/driver.Driver that accepts every
// statement and reports success, so this adapter's Writer.Insert calls have
// somewhere to land without a live MySQL server.
type noopDriver struct{}

func (noopDriver) Open(name string) (driver.Conn, error) { return noopConn{}, nil }

type noopConn struct{}

func (noopConn) Prepare(query string) (driver.Stmt, error) { return noopStmt{}, nil }
func (noopConn) Close() error                              { return nil }
func (noopConn) Begin() (driver.Tx, error)                 { return nil, errors.New("transactions not supported") }

type noopStmt struct{}

func (noopStmt) Close() error  { return nil }
func (noopStmt) NumInput() int { return -1 }
func (noopStmt) Exec(args []driver.Value) (driver.Result, error) { return noopResult{}, nil }
func (noopStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errors.New("queries not supported")
}

type noopResult struct{}

func (noopResult) LastInsertId() (int64, error) { return 0, nil }
func (noopResult) RowsAffected() (int64, error)  { return 0, nil }

var registerNoopDriver sync.Once

func newNoopPool() *store.Pool {
	registerNoopDriver.Do(func() { sql.Register("noop-outcomes", noopDriver{}) })
	db, err := sql.Open("noop-outcomes", "")
	if err != nil {
		panic(err)
	}
	return &store.Pool{DB: db, RetryCount: 0, RetryBaseDelay: time.Millisecond, RetryMaxDelay: time.Millisecond}
}

// TestOutcomesAdapterResolvesLineageFromCacheAcrossMessages drives a receipt
// across two separate StreamerMessages: it is created (and its lineage
// cached) while processing one block, then executed while processing a
// later block whose own resolved-lineage map knows nothing about it. Write
// must fall back to the lineage cache itself rather than rely solely on the
// map the receipts adapter handed it for the current message.
func TestOutcomesAdapterResolvesLineageFromCacheAcrossMessages(t *testing.T) {
	pool := newNoopPool()
	lc := cache.New(10)
	a := &OutcomesAdapter{
		Outcomes: store.NewWriter[models.ExecutionOutcome](pool, store.DefaultChunkSize, nil),
		Receipts: store.NewWriter[models.ExecutionOutcomeReceipt](pool, store.DefaultChunkSize, nil),
		Cache:    lc,
	}

	// Block N: a transaction converts into receipt "r1" and the lineage
	// cache is seeded the way TransactionsAdapter.Write does it. r1 is not
	// executed in block N, so no outcome for it appears there, and it is
	// never re-listed in a later block's chunk.Receipts.
	lc.Put(cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: "r1"}, "txA")

	// Block N+1: r1 finally executes, producing receipt "r2". This block's
	// own ReceiptsAdapter.Write never saw r1 in its chunks, so the resolved
	// map it handed back has nothing for r1.
	msg := nearview.StreamerMessage{
		Block: nearview.BlockView{Height: 2, Hash: "bN1"},
		Shards: []nearview.ShardView{
			{
				ShardID: 0,
				ReceiptExecutionOutcomes: []nearview.OutcomeWithReceipt{
					{
						ExecutionOutcome: nearview.ExecutionOutcomeWithIDView{
							ID:        "r1",
							BlockHash: "bN1",
							Outcome:   nearview.ExecutionOutcomeView{ReceiptIDs: []string{"r2"}},
						},
						Receipt: nearview.ReceiptView{ReceiptID: "r1", Kind: nearview.ReceiptKindAction},
					},
				},
			},
		},
	}

	resolved := map[cache.ReceiptOrDataID]string{}
	if err := a.Write(context.Background(), msg, resolved); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if _, hit := lc.Get(cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: "r1"}); hit {
		t.Fatalf("r1's cache entry should have been consumed by TakeReceipt, not left behind")
	}

	txHash, hit := lc.Get(cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: "r2"})
	if !hit {
		t.Fatalf("r2 (produced by r1) should have inherited r1's transaction hash via the cache fallback")
	}
	if txHash != "txA" {
		t.Fatalf("r2's cached tx hash = %q, want txA", txHash)
	}
}

// TestOutcomesAdapterPrefersResolvedMapOverCache confirms the same-message
// resolved map still takes precedence as the fast path when it does have an
// entry, avoiding an unnecessary cache mutation for the common case of a
// receipt created and executed within one block.
func TestOutcomesAdapterPrefersResolvedMapOverCache(t *testing.T) {
	pool := newNoopPool()
	lc := cache.New(10)
	a := &OutcomesAdapter{
		Outcomes: store.NewWriter[models.ExecutionOutcome](pool, store.DefaultChunkSize, nil),
		Receipts: store.NewWriter[models.ExecutionOutcomeReceipt](pool, store.DefaultChunkSize, nil),
		Cache:    lc,
	}

	msg := nearview.StreamerMessage{
		Block: nearview.BlockView{Height: 1, Hash: "b1"},
		Shards: []nearview.ShardView{
			{
				ShardID: 0,
				ReceiptExecutionOutcomes: []nearview.OutcomeWithReceipt{
					{
						ExecutionOutcome: nearview.ExecutionOutcomeWithIDView{
							ID:      "r1",
							Outcome: nearview.ExecutionOutcomeView{ReceiptIDs: []string{"r2"}},
						},
						Receipt: nearview.ReceiptView{ReceiptID: "r1", Kind: nearview.ReceiptKindAction},
					},
				},
			},
		},
	}

	resolved := map[cache.ReceiptOrDataID]string{
		{Kind: cache.KindReceiptID, ID: "r1"}: "txB",
	}
	if err := a.Write(context.Background(), msg, resolved); err != nil {
		t.Fatalf("Write: %v", err)
	}

	txHash, hit := lc.Get(cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: "r2"})
	if !hit || txHash != "txB" {
		t.Fatalf("r2's cached tx hash = (%q, %v), want (txB, true)", txHash, hit)
	}
}
