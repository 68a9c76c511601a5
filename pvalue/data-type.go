/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package pvalue holds the typed scalar and tabular primitives shared by every
// data source and by the SQL engine bridge: [Value], [DataType], [Columns],
// [Row] and [Args].
package pvalue

// DataType is the tag of a [Value], obtainable in O(1) by [Value.Type].
type DataType uint8

const (
	// TypeNil is the type of the zero [Value] and of SQL NULL.
	TypeNil DataType = iota
	TypeString
	TypeInteger
	TypeNumber
	TypeBoolean
	TypeBytes
)

// String returns a lower-case name for t, used in debug logging and in
// invalid_type error messages.
func (t DataType) String() (s string) {
	switch t {
	case TypeNil:
		return "nil"
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeBytes:
		return "bytes"
	default:
		return "invalid-data-type"
	}
}
