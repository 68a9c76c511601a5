/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pvalue

import (
	"unicode/utf8"

	"github.com/beeql/beeql/pcode"
)

// ToEngine marshals v into the value universe understood by database/sql/driver
// and go-sqlite3: string, int64, float64, []byte or nil.
//   - Boolean marshals to int64 0 or 1: the engine has no boolean type
func (v Value) ToEngine() (engineValue any) {
	switch v.typ {
	case TypeNil:
		return nil
	case TypeString:
		return v.s
	case TypeInteger:
		return v.i
	case TypeNumber:
		return v.f
	case TypeBoolean:
		if v.b {
			return int64(1)
		}
		return int64(0)
	case TypeBytes:
		return v.by
	default:
		return nil
	}
}

// FromEngine converts an engine-produced driver value back to a [Value].
//   - null → Nil, integer → Integer, real → Number, text → String, blob → Bytes
//   - a Boolean originally committed by a producer returns as Integer: the
//     engine has no boolean storage class
//   - a malformed (non-UTF-8) text value yields an invalid_type [pcode.Error]
func FromEngine(engineValue any) (v Value, err error) {
	switch t := engineValue.(type) {
	case nil:
		v = Nil
	case int64:
		v = Integer(t)
	case float64:
		v = Number(t)
	case bool:
		// some drivers surface INTEGER columns from a boolean declared type as bool
		if t {
			v = Integer(1)
		} else {
			v = Integer(0)
		}
	case string:
		if !utf8.ValidString(t) {
			err = pcode.Newf(pcode.KindInvalidType, "engine text is not valid UTF-8")
			return
		}
		v = String(t)
	case []byte:
		v = Bytes(t)
	default:
		err = pcode.Newf(pcode.KindOther, "unrecognized engine value type %T", engineValue)
		return
	}
	return
}
