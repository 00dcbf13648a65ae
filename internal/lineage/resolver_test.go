package lineage

import (
	"context"
	"testing"

	"github.com/user/near-sql-indexer/internal/cache"
	"github.com/user/near-sql-indexer/internal/nearview"
)

func TestResolveLocalReceiptFromCache(t *testing.T) {
	c := cache.New(10)
	c.Put(cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: "r1"}, "tx1")

	r := &Resolver{Cache: c}
	receipts := []nearview.ReceiptView{{ReceiptID: "r1", Kind: nearview.ReceiptKindAction}}

	got, err := r.Resolve(context.Background(), true, receipts, 100)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: "r1"}
	if got[want] != "tx1" {
		t.Fatalf("got[r1] = %q, want tx1", got[want])
	}
}

func TestResolveDataReceiptConsumesCacheEntry(t *testing.T) {
	c := cache.New(10)
	c.Put(cache.ReceiptOrDataID{Kind: cache.KindDataID, ID: "d1"}, "tx1")

	r := &Resolver{Cache: c}
	receipts := []nearview.ReceiptView{{DataID: "d1", Kind: nearview.ReceiptKindData}}

	got, err := r.Resolve(context.Background(), true, receipts, 100)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := cache.ReceiptOrDataID{Kind: cache.KindDataID, ID: "d1"}
	if got[want] != "tx1" {
		t.Fatalf("got[d1] = %q, want tx1", got[want])
	}
	if _, ok := c.Get(want); ok {
		t.Fatal("expected data-id cache entry to be consumed by Resolve")
	}
}
