/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pvalue

import (
	"testing"
)

func TestColumnsValidate(t *testing.T) {
	var (
		columns = NewColumns(
			Column{Name: "name", Type: TypeString},
			Column{Name: "count", Type: TypeInteger},
		)
	)

	// matching row
	if !columns.Validate(Row{String("a"), Integer(1)}) {
		t.Error("FAIL matching row rejected")
	}
	// Nil is valid at any position
	if !columns.Validate(Row{Nil, Nil}) {
		t.Error("FAIL all-Nil row rejected")
	}
	// wrong type at position 0
	if columns.Validate(Row{Integer(1), Integer(1)}) {
		t.Error("FAIL type-mismatched row accepted")
	}
	// wrong length
	if columns.Validate(Row{String("a")}) {
		t.Error("FAIL short row accepted")
	}
	if columns.Validate(Row{String("a"), Integer(1), Integer(2)}) {
		t.Error("FAIL long row accepted")
	}
}

func TestColumnsNames(t *testing.T) {
	var (
		columns = NewColumns(
			Column{Name: "a", Type: TypeString},
			Column{Name: "a", Type: TypeInteger}, // duplicate names allowed
			Column{Name: "b", Type: TypeNumber},
		)
		expected = []string{"a", "a", "b"}
	)

	names := columns.Names()
	if len(names) != len(expected) {
		t.Fatalf("FAIL names length: %d expected: %d", len(names), len(expected))
	}
	for i, name := range names {
		if name != expected[i] {
			t.Errorf("FAIL name %d: %q expected: %q", i, name, expected[i])
		}
	}
}
