package cache

import "testing"

func TestLineageCachePutGet(t *testing.T) {
	c := New(2)
	id := ReceiptOrDataID{Kind: KindReceiptID, ID: "r1"}
	c.Put(id, "tx1")

	got, ok := c.Get(id)
	if !ok || got != "tx1" {
		t.Fatalf("Get(r1) = (%q, %v), want (tx1, true)", got, ok)
	}
}

func TestLineageCacheTakeRemoves(t *testing.T) {
	c := New(4)
	c.Put(ReceiptOrDataID{Kind: KindReceiptID, ID: "r1"}, "tx1")

	got, ok := c.TakeReceipt("r1")
	if !ok || got != "tx1" {
		t.Fatalf("TakeReceipt(r1) = (%q, %v), want (tx1, true)", got, ok)
	}
	if _, ok := c.Get(ReceiptOrDataID{Kind: KindReceiptID, ID: "r1"}); ok {
		t.Fatal("expected r1 to be removed after TakeReceipt")
	}
}

func TestLineageCacheEvictsAtCapacity(t *testing.T) {
	c := New(2)
	c.Put(ReceiptOrDataID{Kind: KindReceiptID, ID: "r1"}, "tx1")
	c.Put(ReceiptOrDataID{Kind: KindReceiptID, ID: "r2"}, "tx2")
	c.Put(ReceiptOrDataID{Kind: KindReceiptID, ID: "r3"}, "tx3")

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get(ReceiptOrDataID{Kind: KindReceiptID, ID: "r1"}); ok {
		t.Fatal("expected r1 to have been evicted as least recently used")
	}
}

func TestLineageCacheReceiptAndDataIDsDontCollide(t *testing.T) {
	c := New(4)
	c.Put(ReceiptOrDataID{Kind: KindReceiptID, ID: "x"}, "tx-receipt")
	c.Put(ReceiptOrDataID{Kind: KindDataID, ID: "x"}, "tx-data")

	rv, _ := c.Get(ReceiptOrDataID{Kind: KindReceiptID, ID: "x"})
	dv, _ := c.Get(ReceiptOrDataID{Kind: KindDataID, ID: "x"})
	if rv == dv {
		t.Fatalf("expected distinct values for same ID under different kinds, got %q and %q", rv, dv)
	}
}
