/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pcode

import (
	"fmt"

	"github.com/beeql/beeql/perrors"
)

// Error is a (code, message) pair: the structured error value every
// producer, the request/promise pipeline and the SQL engine bridge use to
// report failure.
type Error struct {
	code    int32
	message string
}

// Code returns the numeric code of e: kind*codeShift + subcode.
func (e *Error) Code() int32 { return e.code }

// Message returns the human-readable message of e, without the code prefix.
func (e *Error) Message() string { return e.message }

// Kind recovers the [Kind] e.Code() was built from.
func (e *Error) Kind() Kind { return Kind(e.code / codeShift) }

// Sub recovers the subcode e.Code() was built from.
func (e *Error) Sub() int32 { return e.code % codeShift }

// Error implements the error interface.
func (e *Error) Error() string { return e.String() }

// New builds an Error of kind k, subcode 0, with message.
func New(k Kind, message string) *Error {
	return &Error{code: int32(k) * codeShift, message: message}
}

// Newf builds an Error of kind k, subcode 0, with a formatted message. Wraps
// the formatted error through [perrors.Errorf] first so a %w-chained cause
// contributes its own message text, matching how the rest of the repository
// builds errors.
func Newf(k Kind, format string, a ...any) *Error {
	return New(k, perrors.Errorf(format, a...).Error())
}

// NewSub builds an Error of kind k with an explicit subcode, used for the
// per-engine-variant range (KindEngine) and for index_param/invalid_type
// subkinds that want a stable, more specific code.
func NewSub(k Kind, sub int32, message string) *Error {
	return &Error{code: int32(k)*codeShift + sub, message: message}
}

// Code composes a raw numeric code from a kind and subcode.
func Code(k Kind, sub int32) int32 { return int32(k)*codeShift + sub }

// FromCode rebuilds an Error from an already-composed numeric code and a
// message, used by [Parse].
func FromCode(code int32, message string) *Error {
	return &Error{code: code, message: message}
}

var _ fmt.Stringer = (*Error)(nil)
