// Package cache holds the bounded lineage cache the lineage resolver
// consults before falling back to the database. Grounded in the teacher's
// minis/07-generic-lru-cache for the shape of a capacity-bounded cache
// (mutex-guarded map + eviction), but backed by hashicorp/golang-lru/v2
// rather than a hand-rolled container/list: the bigger sibling in the
// retrieval pack, AKJUS-bsc-erigon, reaches for that library directly for
// the same kind of bounded lookup table, and there is no TTL requirement
// here to justify keeping the teacher's own list-based implementation.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ReceiptOrDataIDKind tags which half of the Rust ReceiptOrDataId sum type a
// key represents.
type ReceiptOrDataIDKind int

const (
	KindReceiptID ReceiptOrDataIDKind = iota
	KindDataID
)

// ReceiptOrDataID is the lineage cache's key: either a receipt_id or a
// data_id, tagged so the two id spaces never collide.
type ReceiptOrDataID struct {
	Kind ReceiptOrDataIDKind
	ID   string
}

// DefaultCapacity is the cache's default bound, mirroring the
// LRU_CACHE_CAPACITY constant in original_source/src/cache.rs.
const DefaultCapacity = 100_000

// LineageCache maps a receipt_id or data_id to the transaction_hash that
// originated it. One mutex guards the whole cache because the resolver
// needs compound read-then-conditionally-remove operations; golang-lru/v2
// is not safe for that composition on its own.
type LineageCache struct {
	mu   sync.Mutex
	lru  *lru.Cache[ReceiptOrDataID, string]
}

// New builds a lineage cache bounded to capacity entries. A non-positive
// capacity falls back to DefaultCapacity.
func New(capacity int) *LineageCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l, err := lru.New[ReceiptOrDataID, string](capacity)
	if err != nil {
		// Only returns an error for capacity <= 0, excluded above.
		panic(err)
	}
	return &LineageCache{lru: l}
}

// Put records that id originated from txHash.
func (c *LineageCache) Put(id ReceiptOrDataID, txHash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(id, txHash)
}

// Get looks up id without removing it.
func (c *LineageCache) Get(id ReceiptOrDataID) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Get(id)
}

// TakeReceipt returns and removes the cached tx hash for a receipt id, if
// present. Receipt lineage is consumed exactly once, mirroring
// original_source's `cache.remove(&ReceiptOrDataId::ReceiptId(...))`.
func (c *LineageCache) TakeReceipt(receiptID string) (string, bool) {
	return c.take(ReceiptOrDataID{Kind: KindReceiptID, ID: receiptID})
}

// TakeData returns and removes the cached tx hash for a data id, if present.
func (c *LineageCache) TakeData(dataID string) (string, bool) {
	return c.take(ReceiptOrDataID{Kind: KindDataID, ID: dataID})
}

func (c *LineageCache) take(id ReceiptOrDataID) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(id)
	if !ok {
		return "", false
	}
	c.lru.Remove(id)
	return v, true
}

// Len reports the number of entries currently cached.
func (c *LineageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
