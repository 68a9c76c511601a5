/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pcode

import (
	"strconv"
	"strings"
)

// sep is the unit-separator byte prefixing a printed Error's message. It
// cannot appear in ordinary error text, so String/Parse round-trip
// unambiguously even through the SQL engine's plain-string error channel.
const sep = "\x1f"

// String prints e as "<code>\x1f<message>", the form carried through the
// SQL engine's own error channel and recovered by [Parse].
func (e *Error) String() string {
	return strconv.FormatInt(int64(e.code), 10) + sep + e.message
}

// Parse inverts [Error.String]: given a string previously produced by
// String, it recovers (code, message). ok is false if s does not have the
// expected "<code>\x1f<message>" shape — typically because s originated
// from the SQL engine's own internals rather than from a [pcode.Error] that
// passed through the engine's error channel.
func Parse(s string) (e *Error, ok bool) {
	i := strings.Index(s, sep)
	if i < 0 {
		return nil, false
	}
	code, err := strconv.ParseInt(s[:i], 10, 32)
	if err != nil {
		return nil, false
	}
	return FromCode(int32(code), s[i+len(sep):]), true
}
