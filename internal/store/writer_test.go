package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/user/near-sql-indexer/internal/apperrors"
)

type fakeRecord struct {
	a string
	b int
}

func (f fakeRecord) AddArgs(args *[]any) { *args = append(*args, f.a, f.b) }
func (fakeRecord) TableName() string     { return "fakes" }
func (fakeRecord) FieldCount() int       { return 2 }

func TestBuildInsertSingleRow(t *testing.T) {
	query, args := buildInsert("fakes", 2, []fakeRecord{{a: "x", b: 1}})
	want := "INSERT IGNORE INTO fakes VALUES (?,?)"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if len(args) != 2 || args[0] != "x" || args[1] != 1 {
		t.Fatalf("args = %v, want [x 1]", args)
	}
}

func TestBuildInsertMultiRow(t *testing.T) {
	rows := []fakeRecord{{a: "x", b: 1}, {a: "y", b: 2}, {a: "z", b: 3}}
	query, args := buildInsert("fakes", 2, rows)
	if strings.Count(query, "(?,?)") != 3 {
		t.Fatalf("query = %q, want 3 row-placeholder groups", query)
	}
	if len(args) != 6 {
		t.Fatalf("len(args) = %d, want 6", len(args))
	}
}

func TestInsertEmptyRowsIsBadInput(t *testing.T) {
	w := &Writer[fakeRecord]{Pool: &Pool{}, ChunkSize: DefaultChunkSize}
	err := w.Insert(context.Background(), nil)
	if !errors.Is(err, apperrors.ErrBadInput) {
		t.Fatalf("Insert(nil) = %v, want ErrBadInput", err)
	}
}

func TestPlaceholders(t *testing.T) {
	cases := map[int]string{0: "", 1: "?", 3: "?,?,?"}
	for n, want := range cases {
		if got := Placeholders(n); got != want {
			t.Errorf("Placeholders(%d) = %q, want %q", n, got, want)
		}
	}
}
