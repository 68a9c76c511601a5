/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package pbridge adapts [github.com/beeql/beeql/pdatasource.DataSource] and
// [github.com/beeql/beeql/pdatasource.ScalarFunc] producers into the
// go-sqlite3 ABI: [sqlite3.SQLiteConn.RegisterFunc] for scalar functions and
// [sqlite3.SQLiteConn.CreateModule] for table-valued functions.
package pbridge

import (
	"os"

	"github.com/mattn/go-sqlite3"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/pdatasource"
	"github.com/beeql/beeql/plog"
	"github.com/beeql/beeql/pvalue"
)

// debugLog traces worker and scalar invocations; silent unless [SetDebug].
var debugLog = plog.NewLog(os.Stderr)

// SetDebug enables code-located tracing of bridge activity: worker spawn,
// scalar invocation, cursor lifecycle.
func SetDebug(debug bool) { debugLog.SetDebug(debug) }

// RegisterScalar wires fn into conn as a scalar SQL function. The registered
// closure recovers panics and converts the recovered value to a KindOther
// [pcode.Error]: a caller never sees a panic cross the engine boundary.
func RegisterScalar(conn *sqlite3.SQLiteConn, fn *pdatasource.ScalarFunc) error {
	impl := func(args ...any) (result any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = pcode.Newf(pcode.KindOther, "scalar function %q panicked: %v", fn.Name, r)
			}
		}()
		if len(args) != fn.Arity {
			return nil, errForEngine(pcode.Newf(pcode.KindIndexParam,
				"function %s called with %d arguments, want %d", fn.Name, len(args), fn.Arity))
		}
		pargs := make(pvalue.Args, len(args))
		for i, a := range args {
			v, convErr := pvalue.FromEngine(a)
			if convErr != nil {
				return nil, convErr
			}
			pargs[i] = v
		}
		debugLog.Debug("pbridge: scalar %s called with %d args", fn.Name, len(pargs))
		v, callErr := fn.Func(pargs)
		if callErr != nil {
			return nil, errForEngine(callErr)
		}
		return v.ToEngine(), nil
	}
	return conn.RegisterFunc(fn.Name, impl, true)
}

// errForEngine prints err in the round-trippable (code,message) form so the
// caller can later recover the original [pcode.Error] via [pcode.Parse] from
// whatever string the engine surfaces the message as.
func errForEngine(err error) error {
	e := pcode.MapEngineError(err)
	return &roundTripError{e: e}
}

// roundTripError carries an [pcode.Error] while printing its round-trippable
// string form, so go-sqlite3 — which only ever sees a plain error — still
// hands the caller something [pcode.Parse]-able.
type roundTripError struct{ e *pcode.Error }

func (r *roundTripError) Error() string { return r.e.String() }
