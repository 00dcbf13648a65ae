// Package models holds the typed entities that mirror the relational
// schema (spec.md §3), each able to serialize itself as bound parameters
// for a batched INSERT. Grounded in original_source/src/models/*.rs: every
// struct there maps to one here, with add_to_args becoming AddArgs and
// field_count becoming FieldCount.
package models

import "github.com/holiman/uint256"

// Record is the capability set every row type implements: enough for
// internal/store.Writer to build and bind a batched insert without knowing
// the concrete type. Mirrors the "small trait-like capability set" design
// note in spec.md §9 (add_to_args, field_count, table_name).
type Record interface {
	AddArgs(args *[]any)
	TableName() string
	FieldCount() int
}

// amountString renders a u64/u128 amount as a decimal string with no
// precision loss — spec.md §4.1's numeric semantics. nil is treated as zero.
func amountString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
