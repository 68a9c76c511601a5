/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pcode

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// sqliteResultCode names the numeric SQLite primary result codes (the
// values carried in sqlite3.Error.Code), used as subcodes in the KindEngine
// range so each engine error variant maps to one globally distinct pcode.
const (
	sqliteError     = 1
	sqliteInternal  = 2
	sqlitePerm      = 3
	sqliteAbort     = 4
	sqliteBusy      = 5
	sqliteLocked    = 6
	sqliteNoMem     = 7
	sqliteReadOnly  = 8
	sqliteInterrupt = 9
	sqliteIOErr     = 10
	sqliteCorrupt   = 11
	sqliteNotFound  = 12
	sqliteFull      = 13
	sqliteCantOpen  = 14
	sqliteProtocol  = 15
	sqliteEmpty     = 16
	sqliteSchema    = 17
	sqliteTooBig    = 18
	sqliteConstrain = 19
	sqliteMismatch  = 20
	sqliteMisuse    = 21
	sqliteNoLFS     = 22
	sqliteAuth      = 23
	sqliteFormat    = 24
	sqliteRange     = 25
	sqliteNotADB    = 26
)

// MapEngineError converts an error returned by go-sqlite3 into a [Error] in
// the KindEngine range: one subcode per sqlite3.Error.Code primary result
// code, so a round trip through the engine's own error channel always
// recovers a stable numeric code even for errors pcode did not originate.
//   - if err is already a [*Error] (it was printed by [Error.String] into the
//     engine's error channel and the caller already ran [Parse]), it is
//     returned unchanged
//   - if err does not carry a sqlite3.Error, it maps to KindOther, sub 0
func MapEngineError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return New(KindOther, err.Error())
	}
	return NewSub(KindEngine, int32(sqliteErr.Code), err.Error())
}
