/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pbridge

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/pdatasource"
	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pstmt"
	"github.com/beeql/beeql/pvalue"
)

// opEQ is SQLITE_INDEX_CONSTRAINT_EQ: the only operator the bridge accepts
// for binding a call-site literal to a data source's declared argument —
// table-valued function call syntax FROM name(a, b) desugars in SQLite to
// equality constraints against HIDDEN columns appended after the declared
// output columns (the same convention SQLite's own generate_series uses).
const opEQ = 2

// ChannelSize is the bounded-channel capacity the bridge gives every worker
// it spawns for a virtual-table cursor. Capacity 1 gives
// maximal backpressure; the bridge widens it for sources known to burst many
// small rows.
const ChannelSize = 1

// Module adapts a single [pdatasource.DataSource] into a go-sqlite3 virtual
// table module, registered eponymously under the data source's name so
// `FROM name(args…)` resolves without a prior CREATE VIRTUAL TABLE.
type Module struct {
	ds         pdatasource.DataSource
	timeoutFor func() time.Duration
}

// NewModule wraps ds. A virtual-table module is installed once per
// underlying engine handle (at go-sqlite3's ConnectHook time), before any
// particular statement's timeout is known; timeoutFor is therefore called
// once per cursor Filter — at the moment a query actually runs the virtual
// table — so the cursor's worker inherits whatever per-statement timeout
// is active on the connection right then.
func NewModule(ds pdatasource.DataSource, timeoutFor func() time.Duration) *Module {
	return &Module{ds: ds, timeoutFor: timeoutFor}
}

// Create implements sqlite3.Module. With [Module.EponymousOnlyModule] the
// engine never invokes it, but the interface requires it; a data source has
// no on-disk state to initialize, so it simply delegates to Connect.
func (m *Module) Create(c *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	return m.Connect(c, args)
}

// Connect implements sqlite3.Module, declaring the table's schema: the data
// source's declared output columns, followed by one HIDDEN column per
// declared argument so SQLite's table-valued-function desugaring can bind
// call-site literals to them (see opEQ above).
func (m *Module) Connect(c *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	columns := m.ds.Columns()
	argCols := m.ds.Args()
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s(", quoteIdent(m.ds.Name()))
	first := true
	for i, col := range columns {
		if !first {
			b.WriteString(", ")
		}
		first = false
		name := col.Name
		if name == "" {
			name = fmt.Sprintf("col%d", i)
		}
		fmt.Fprintf(&b, "%s %s", quoteIdent(name), sqlTypeOf(col.Type))
	}
	for i, col := range argCols {
		if !first {
			b.WriteString(", ")
		}
		first = false
		name := col.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		fmt.Fprintf(&b, "%s %s HIDDEN", quoteIdent(name), sqlTypeOf(col.Type))
	}
	b.WriteString(")")
	if err := c.DeclareVTab(b.String()); err != nil {
		return nil, pcode.Newf(pcode.KindInvalid, "declare vtab for %q: %w", m.ds.Name(), err)
	}
	return &vtab{module: m, outColumns: len(columns)}, nil
}

func sqlTypeOf(t pvalue.DataType) string {
	switch t {
	case pvalue.TypeInteger, pvalue.TypeBoolean:
		return "INTEGER"
	case pvalue.TypeNumber:
		return "REAL"
	case pvalue.TypeBytes:
		return "BLOB"
	default:
		return "TEXT"
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// vtab is the per-reference handle go-sqlite3 keeps for one resolved
// `FROM name(...)` reference. It is stateless beyond the declared schema:
// all per-call state lives on the [cursor] Filter spawns.
type vtab struct {
	module     *Module
	outColumns int
}

// BestIndex requests that every HIDDEN argument column usable with opEQ be
// bound; their Filter-time order becomes the data source's Args order.
func (v *vtab) BestIndex(cst []sqlite3.InfoConstraint, _ []sqlite3.InfoOrderBy) (*sqlite3.IndexResult, error) {
	used := make([]bool, len(cst))
	var order []int
	for i, c := range cst {
		if !c.Usable || c.Op != opEQ || c.Column < v.outColumns {
			continue
		}
		used[i] = true
		order = append(order, c.Column-v.outColumns)
	}
	return &sqlite3.IndexResult{
		Used:          used,
		IdxNum:        0,
		IdxStr:        encodeArgOrder(order),
		EstimatedCost: 1,
		EstimatedRows: 1,
	}, nil
}

// DestroyModule implements sqlite3.Module; a data source holds no
// module-wide state to release.
func (m *Module) DestroyModule() {}

// EponymousOnlyModule marks the module eponymous-only: FROM name(args…)
// resolves directly, and CREATE VIRTUAL TABLE using the module is refused
// by the engine.
func (m *Module) EponymousOnlyModule() {}

func (v *vtab) Open() (sqlite3.VTabCursor, error) {
	return &cursor{vtab: v}, nil
}

func (v *vtab) Disconnect() error { return nil }
func (v *vtab) Destroy() error    { return nil }

// encodeArgOrder prints the hidden-column argument indices SQLite will
// supply to Filter's vals, in the same order, so Filter can reconstruct a
// declared-Args-order []pvalue.Value without recomputing BestIndex's work.
func encodeArgOrder(order []int) string {
	var b strings.Builder
	for i, idx := range order {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", idx)
	}
	return b.String()
}

func decodeArgOrder(s string) (order []int) {
	if s == "" {
		return nil
	}
	for _, part := range strings.Split(s, ",") {
		i, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		order = append(order, i)
	}
	return
}

// cursor is the pull-style go-sqlite3 VTabCursor side of the bridge: the
// engine calls Next/EOF/Column; the bridge
// answers each call by reading the next [pstate.State] off the worker's
// channel via [pstmt.Response].
type cursor struct {
	vtab *vtab

	resp *pstmt.Response
	row  pvalue.Row
	eof  bool
}

// Filter spawns the worker goroutine that runs DataSource.Execute, having
// decoded vals (in BestIndex's declared order) into a declared-Args-order
// [pvalue.Args].
func (cur *cursor) Filter(_ int, idxStr string, vals []any) error {
	// the engine may re-filter an open cursor; abandon any previous worker
	if cur.resp != nil {
		cur.resp.Close()
		cur.resp = nil
	}
	cur.eof = false
	cur.row = nil

	order := decodeArgOrder(idxStr)
	argCols := cur.vtab.module.ds.Args()
	pargs := make(pvalue.Args, len(argCols))
	for i, raw := range vals {
		if i >= len(order) {
			break
		}
		v, err := pvalue.FromEngine(raw)
		if err != nil {
			return err
		}
		pargs[order[i]] = v
	}

	done := make(chan struct{})
	req, ch := preq.NewRequest(pargs, done, ChannelSize)
	resp := pstmt.NewResponse(ch, done, cur.vtab.module.timeoutFor())
	ds := cur.vtab.module.ds
	name := ds.Name()
	go func() {
		defer func() {
			if r := recover(); r != nil && !req.Terminated() {
				_ = req.Error(pcode.Newf(pcode.KindOther, "data source %q panicked: %v", name, r))
			}
		}()
		debugLog.Debug("pbridge: %s worker starting args=%v", name, pargs)
		if err := ds.Execute(req, pargs); err != nil {
			if !req.Terminated() {
				_ = req.Error(pcode.MapEngineError(err))
			}
			return
		}
		if !req.Terminated() {
			_ = req.Ok()
		}
	}()

	cur.resp = resp
	_, err := resp.Wait()
	if err != nil {
		cur.eof = true
		return errForEngine(err)
	}
	return cur.advance()
}

// advance pulls the next row, setting eof once the stream terminates.
func (cur *cursor) advance() error {
	row, err, ok := cur.resp.Next()
	if !ok {
		cur.eof = true
		cur.row = nil
		if err != nil {
			return errForEngine(err)
		}
		return nil
	}
	cur.row = row
	return nil
}

func (cur *cursor) Next() error {
	if cur.eof {
		return nil
	}
	return cur.advance()
}

func (cur *cursor) EOF() bool { return cur.eof }

func (cur *cursor) Column(c *sqlite3.SQLiteContext, col int) error {
	if col < 0 || col >= len(cur.row) {
		c.ResultNull()
		return nil
	}
	return writeResult(c, cur.row[col])
}

func writeResult(c *sqlite3.SQLiteContext, v pvalue.Value) error {
	switch v.Type() {
	case pvalue.TypeNil:
		c.ResultNull()
	case pvalue.TypeString:
		s, _ := v.AsString()
		c.ResultText(s)
	case pvalue.TypeInteger:
		i, _ := v.AsInteger()
		c.ResultInt64(i)
	case pvalue.TypeNumber:
		f, _ := v.AsNumber()
		c.ResultDouble(f)
	case pvalue.TypeBoolean:
		b, _ := v.AsBoolean()
		if b {
			c.ResultInt(1)
		} else {
			c.ResultInt(0)
		}
	case pvalue.TypeBytes:
		by, _ := v.AsBytes()
		c.ResultBlob(by)
	default:
		c.ResultNull()
	}
	return nil
}

func (cur *cursor) Rowid() (int64, error) { return 0, nil }

func (cur *cursor) Close() error {
	if cur.resp != nil {
		cur.resp.Close()
	}
	return nil
}
