/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package pcode is the structured error taxonomy shared by every component
// that can fail: data sources, the request/promise pipeline, the SQL engine
// bridge and the connection layer. An [Error] carries a numeric [Code]
// composed from a [Kind] base and a subcode, and round-trips through
// [Error.String] / [Parse] so it can survive being carried as a plain string
// through the embedded SQL engine's own error channel.
package pcode

// Kind is an abstract error label. Kind alone does not identify an error:
// combined with a subcode via [Code] it produces a globally distinct
// integer per concrete cause.
type Kind int32

const (
	// KindIndexParam: argument count or index out of range.
	KindIndexParam Kind = iota + 1
	// KindInvalidType: a row value does not match its declared column type.
	KindInvalidType
	// KindInvalid: malformed URL, unknown data source, schema-discovery failure.
	KindInvalid
	// KindInternal: unexpected host/OS failure from a producer.
	KindInternal
	// KindIOTimeout: the per-statement timeout fired.
	KindIOTimeout
	// KindOther: catch-all, including wrapped SQL-engine errors.
	KindOther
	// KindEngine is the base of the dense range reserved for one subcode per
	// sqlite3.ErrNo variant, see errmap.go.
	KindEngine
)

// codeShift composes codes as kind*codeShift + subcode.
// 1000 leaves ample room for subcodes without kinds colliding.
const codeShift = 1000

// String names k for debug output and panic messages; never used in
// round-tripped error text (that uses the numeric Code only).
func (k Kind) String() string {
	switch k {
	case KindIndexParam:
		return "index_param"
	case KindInvalidType:
		return "invalid_type"
	case KindInvalid:
		return "invalid"
	case KindInternal:
		return "internal"
	case KindIOTimeout:
		return "io_timeout"
	case KindOther:
		return "other"
	case KindEngine:
		return "engine"
	default:
		return "unknown_kind"
	}
}
