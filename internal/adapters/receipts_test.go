package adapters

import (
	"context"
	"testing"

	"github.com/user/near-sql-indexer/internal/cache"
	"github.com/user/near-sql-indexer/internal/nearview"
)

func TestReceiptsAdapterWriteNoReceiptsIsNoop(t *testing.T) {
	a := &ReceiptsAdapter{}
	got, err := a.Write(context.Background(), nearview.StreamerMessage{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestReceiptLookupKey(t *testing.T) {
	action := nearview.ReceiptView{Kind: nearview.ReceiptKindAction, ReceiptID: "r1"}
	if got := receiptLookupKey(action); got != (cache.ReceiptOrDataID{Kind: cache.KindReceiptID, ID: "r1"}) {
		t.Errorf("receiptLookupKey(action) = %+v", got)
	}

	data := nearview.ReceiptView{Kind: nearview.ReceiptKindData, DataID: "d1"}
	if got := receiptLookupKey(data); got != (cache.ReceiptOrDataID{Kind: cache.KindDataID, ID: "d1"}) {
		t.Errorf("receiptLookupKey(data) = %+v", got)
	}
}
