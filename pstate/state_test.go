/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pstate

import (
	"testing"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/pvalue"
)

func TestStateTags(t *testing.T) {
	var (
		columns = pvalue.NewColumns(pvalue.Column{Name: "n", Type: pvalue.TypeInteger})
		row     = pvalue.Row{pvalue.Integer(1)}
		e       = pcode.New(pcode.KindInternal, "x")
	)

	if s := Ready(columns); s.Tag != TagReady || len(s.Columns) != 1 || s.IsTerminal() {
		t.Error("FAIL Ready state malformed")
	}
	if s := Process(row); s.Tag != TagProcess || len(s.Row) != 1 || s.IsTerminal() {
		t.Error("FAIL Process state malformed")
	}
	if s := Err(e); s.Tag != TagErr || s.Err != e || !s.IsTerminal() {
		t.Error("FAIL Err state malformed")
	}
	if Ok.Tag != TagOk || !Ok.IsTerminal() {
		t.Error("FAIL Ok state malformed")
	}
}
