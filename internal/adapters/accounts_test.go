package adapters

import (
	"testing"

	"github.com/user/near-sql-indexer/internal/models"
)

func TestFoldCollapsesCreateThenDeleteIntoOneRow(t *testing.T) {
	tracker := make(map[string]models.Account)
	fold(tracker, models.NewAccountCreate("alice.near", "r1", 100))
	fold(tracker, models.NewAccountDelete("alice.near", "r2", 101))

	if len(tracker) != 1 {
		t.Fatalf("len(tracker) = %d, want 1", len(tracker))
	}
	row := tracker["alice.near"]
	if !row.IsNew() {
		t.Fatalf("IsNew() = false, want true (created this block)")
	}
	if row.CreatedByReceiptID == nil || *row.CreatedByReceiptID != "r1" {
		t.Errorf("CreatedByReceiptID = %v, want r1", row.CreatedByReceiptID)
	}
	if row.DeletedByReceiptID == nil || *row.DeletedByReceiptID != "r2" {
		t.Errorf("DeletedByReceiptID = %v, want r2", row.DeletedByReceiptID)
	}
	if row.DeletedAtBlockHeight == nil || *row.DeletedAtBlockHeight != 101 {
		t.Errorf("DeletedAtBlockHeight = %v, want 101", row.DeletedAtBlockHeight)
	}
}

func TestFoldDeleteOnlyIsNotNew(t *testing.T) {
	tracker := make(map[string]models.Account)
	fold(tracker, models.NewAccountDelete("bob.near", "r9", 200))

	row := tracker["bob.near"]
	if row.IsNew() {
		t.Fatalf("IsNew() = true, want false (account created in an earlier block)")
	}
}

func TestIsImplicitAccountID(t *testing.T) {
	cases := map[string]bool{
		"alice.near": false,
		"caffd2127f0b00222d2b115699c431215a39d99ff0ec910a2987ac3ef8ee60a0": true,
		"xyz-xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx": false,
	}
	for id, want := range cases {
		if got := isImplicitAccountID(id); got != want {
			t.Errorf("isImplicitAccountID(%q) = %v, want %v", id, got, want)
		}
	}
}
