/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pconn

import (
	"database/sql"
	"time"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pstmt"
	"github.com/beeql/beeql/pvalue"
)

// statementChannelSize is the bounded-channel capacity between the
// top-level query worker and the caller's [pstmt.Response]. Larger than
// [github.com/beeql/beeql/pbridge.ChannelSize] because the top-level result
// set is usually the one a caller wants to drain quickly rather than
// throttle.
const statementChannelSize = 8

// newStatement spawns the statement's worker goroutine: it acquires the
// connection's reentrant lock, prepares sqlText, runs the engine's own
// pull-loop, and republishes each row onto the caller's
// [preq.Request]/[pstmt.Response] pipeline, performing top-level schema
// discovery along the way.
func newStatement(c *Connection, sqlText string, timeout time.Duration) *Response {
	done := make(chan struct{})
	req, ch := preq.NewRequest(nil, done, statementChannelSize)
	resp := pstmt.NewResponse(ch, done, timeout)

	go func() {
		defer func() {
			if r := recover(); r != nil && !req.Terminated() {
				_ = req.Error(pcode.Newf(pcode.KindOther, "statement worker panicked: %v", r))
			}
		}()
		c.lock.Lock()
		defer c.lock.Unlock()
		c.currentTimeout = timeout
		runQuery(c, req, sqlText)
	}()

	return resp
}

func runQuery(c *Connection, req *preq.Request, sqlText string) {
	rows, err := c.db.Query(sqlText)
	if err != nil {
		_ = req.Error(engineQueryError(err))
		return
	}
	defer rows.Close()

	sqlCols, err := rows.ColumnTypes()
	if err != nil {
		_ = req.Error(pcode.Newf(pcode.KindInvalid, "read column metadata: %w", err))
		return
	}
	width := len(sqlCols)
	raw := make([]any, width)
	ptrs := make([]any, width)
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	// the engine declares column names up front but not types for computed
	// expressions: peek the first row to derive DataType from its values,
	// falling back to declared SQL types if the result set is empty
	if !rows.Next() {
		if err = rows.Err(); err != nil {
			_ = req.Error(engineQueryError(err))
			return
		}
		columns := declaredColumns(sqlCols)
		committer, commitErr := req.NewCommit(columns)
		if commitErr != nil {
			return
		}
		_ = committer.Ok()
		return
	}
	if err = rows.Scan(ptrs...); err != nil {
		_ = req.Error(pcode.Newf(pcode.KindInvalid, "scan row: %w", err))
		return
	}
	firstRow, columns, err := firstRowColumns(sqlCols, raw)
	if err != nil {
		_ = req.Error(err)
		return
	}
	committer, err := req.NewCommit(columns)
	if err != nil {
		return // consumer abandoned; nothing more to publish
	}
	if err = committer.CommitRow(firstRow); err != nil {
		_ = committer.Error(err.(*pcode.Error))
		return
	}

	for rows.Next() {
		if err = rows.Scan(ptrs...); err != nil {
			_ = committer.Error(pcode.Newf(pcode.KindInvalid, "scan row: %w", err))
			return
		}
		row := make(pvalue.Row, width)
		for i, v := range raw {
			if row[i], err = pvalue.FromEngine(v); err != nil {
				_ = committer.Error(err.(*pcode.Error))
				return
			}
		}
		if err = committer.CommitRow(row); err != nil {
			return // consumer abandoned
		}
	}
	if err = rows.Err(); err != nil {
		_ = committer.Error(engineQueryError(err))
		return
	}
	_ = committer.Ok()
}

func firstRowColumns(sqlCols []*sql.ColumnType, raw []any) (row pvalue.Row, columns pvalue.Columns, err error) {
	row = make(pvalue.Row, len(raw))
	columns = make(pvalue.Columns, len(raw))
	for i, v := range raw {
		val, convErr := pvalue.FromEngine(v)
		if convErr != nil {
			err = convErr.(*pcode.Error)
			return
		}
		row[i] = val
		columns[i] = pvalue.Column{Name: sqlCols[i].Name(), Type: val.Type()}
	}
	return
}

// declaredColumns maps the engine's declared SQL column types to
// [pvalue.DataType] by a fixed table, used only when a result set is empty.
func declaredColumns(sqlCols []*sql.ColumnType) pvalue.Columns {
	columns := make(pvalue.Columns, len(sqlCols))
	for i, col := range sqlCols {
		columns[i] = pvalue.Column{Name: col.Name(), Type: declaredType(col)}
	}
	return columns
}

func declaredType(col *sql.ColumnType) pvalue.DataType {
	switch col.DatabaseTypeName() {
	case "TEXT":
		return pvalue.TypeString
	case "INTEGER":
		return pvalue.TypeInteger
	case "REAL":
		return pvalue.TypeNumber
	case "BLOB":
		return pvalue.TypeBytes
	case "":
		return pvalue.TypeNil
	default:
		return pvalue.TypeNumber
	}
}

// engineQueryError recovers a [pcode.Error] the bridge round-tripped through
// the engine's own error string, falling back to
// [pcode.MapEngineError] for errors the engine originated itself.
func engineQueryError(err error) *pcode.Error {
	if parsed, ok := pcode.Parse(err.Error()); ok {
		return parsed
	}
	return pcode.MapEngineError(err)
}

// Response is the caller-facing stream of a top-level statement: schema,
// rows, and a terminal event, exactly [pstmt.Response].
type Response = pstmt.Response
