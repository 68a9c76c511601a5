/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pconn

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/pvalue"
)

func openAgent(t *testing.T) (c *Connection) {
	t.Helper()
	c, err := Open("sqlite:agent:default")
	if err != nil {
		t.Fatalf("FAIL Open: %s", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return
}

// collect drains resp to its terminal event.
func collect(t *testing.T, resp *Response) (columns pvalue.Columns, rows []pvalue.Row, err error) {
	t.Helper()
	if columns, err = resp.Wait(); err != nil {
		return
	}
	for {
		row, rowErr, ok := resp.Next()
		if !ok {
			err = nil
			if rowErr != nil {
				err = rowErr
			}
			return
		}
		rows = append(rows, row)
	}
}

func columnIndex(t *testing.T, columns pvalue.Columns, name string) (index int) {
	t.Helper()
	for i, col := range columns {
		if col.Name == name {
			return i
		}
	}
	t.Fatalf("FAIL no column %q in %v", name, columns)
	return -1
}

func writeFile(dir, name string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0600)
}

func TestOpenRejects(t *testing.T) {
	for _, url := range []string{"bogus:agent:default", "sqlite:bogus:default"} {
		_, err := Open(url)
		if err == nil {
			t.Errorf("FAIL Open accepted %q", url)
			continue
		}
		if cerr, ok := err.(*pcode.Error); !ok || cerr.Kind() != pcode.KindInvalid {
			t.Errorf("FAIL Open %q error: %v", url, err)
		}
	}
}

// a scalar select: schema is discovered by peeking the first row, so the
// column types come from the values, Nil included
func TestScalarSelect(t *testing.T) {
	c := openAgent(t)

	columns, rows, err := collect(t, c.NewStatement("SELECT 1, 'x', 1.5, NULL", 0))
	if err != nil {
		t.Fatalf("FAIL statement: %s", err)
	}
	expectedTypes := []pvalue.DataType{
		pvalue.TypeInteger, pvalue.TypeString, pvalue.TypeNumber, pvalue.TypeNil,
	}
	if len(columns) != len(expectedTypes) {
		t.Fatalf("FAIL column count: %d", len(columns))
	}
	for i, expected := range expectedTypes {
		if columns[i].Type != expected {
			t.Errorf("FAIL column %d type: %s expected: %s", i, columns[i].Type, expected)
		}
	}
	if len(rows) != 1 {
		t.Fatalf("FAIL row count: %d expected: 1", len(rows))
	}
	expectedRow := pvalue.Row{pvalue.Integer(1), pvalue.String("x"), pvalue.Number(1.5), pvalue.Nil}
	for i, v := range expectedRow {
		if !rows[0][i].Equal(v) {
			t.Errorf("FAIL row value %d: %s expected: %s", i, rows[0][i], v)
		}
	}
}

// an empty result set falls back to the engine's declared column types
func TestEmptyResultSchema(t *testing.T) {
	c := openAgent(t)

	columns, rows, err := collect(t, c.NewStatement("SELECT 1 AS n WHERE 1 = 0", 0))
	if err != nil {
		t.Fatalf("FAIL statement: %s", err)
	}
	if len(rows) != 0 {
		t.Fatalf("FAIL row count: %d expected: 0", len(rows))
	}
	if len(columns) != 1 || columns[0].Name != "n" {
		t.Errorf("FAIL columns: %v", columns)
	}
}

func TestHostBasic(t *testing.T) {
	c := openAgent(t)

	columns, rows, err := collect(t, c.NewStatement("SELECT * FROM host_basic()", 0))
	if err != nil {
		t.Fatalf("FAIL statement: %s", err)
	}
	if len(rows) != 1 {
		t.Fatalf("FAIL row count: %d expected: 1", len(rows))
	}
	row := rows[0]
	if core, ok := row[columnIndex(t, columns, "cpu_core")].AsInteger(); !ok || core < 1 {
		t.Errorf("FAIL cpu_core: %d %t", core, ok)
	}
	if memory, ok := row[columnIndex(t, columns, "memory")].AsInteger(); !ok || memory < 1 {
		t.Errorf("FAIL memory: %d %t", memory, ok)
	}
}

func TestHostnameScalar(t *testing.T) {
	c := openAgent(t)

	_, rows, err := collect(t, c.NewStatement("SELECT hostname()", 0))
	if err != nil {
		t.Fatalf("FAIL statement: %s", err)
	}
	if len(rows) != 1 {
		t.Fatalf("FAIL row count: %d", len(rows))
	}
	if host, ok := rows[0][0].AsString(); !ok || host == "" {
		t.Errorf("FAIL hostname: %q %t", host, ok)
	}
}

// WHERE clauses apply to virtual-table rows like any other
func TestFilterPassthrough(t *testing.T) {
	c := openAgent(t)
	dir := t.TempDir()
	for _, name := range []string{"data.txt", "cache.tmp", "more.txt"} {
		if err := writeFile(dir, name); err != nil {
			t.Fatal(err)
		}
	}

	sql := "SELECT name FROM filesystem('" + dir + "') WHERE name NOT LIKE '%tmp%'"
	_, rows, err := collect(t, c.NewStatement(sql, 0))
	if err != nil {
		t.Fatalf("FAIL statement: %s", err)
	}
	if len(rows) == 0 {
		t.Fatal("FAIL no rows")
	}
	for _, row := range rows {
		name, ok := row[0].AsString()
		if !ok {
			t.Fatalf("FAIL name column not a string: %v", row)
		}
		if strings.Contains(name, "tmp") {
			t.Errorf("FAIL filtered row leaked: %q", name)
		}
	}
}

// a producer sleeping past the per-statement timeout yields io_timeout and
// no rows
func TestStatementTimeout(t *testing.T) {
	c := openAgent(t)

	resp := c.NewStatement("SELECT * FROM shell('sleep 5')", 300*time.Millisecond)
	_, rows, err := collect(t, resp)
	if err == nil {
		t.Fatal("FAIL statement did not time out")
	}
	if len(rows) != 0 {
		t.Errorf("FAIL rows before timeout: %d", len(rows))
	}
	cerr, ok := err.(*pcode.Error)
	if !ok || cerr.Kind() != pcode.KindIOTimeout {
		t.Errorf("FAIL timeout error: %v", err)
	}
}

func TestUnknownTable(t *testing.T) {
	c := openAgent(t)

	_, _, err := collect(t, c.NewStatement("SELECT * FROM test()", 0))
	if err == nil {
		t.Fatal("FAIL unknown table accepted")
	}
	if !strings.Contains(err.Error(), "no such table: test") {
		t.Errorf("FAIL error message: %q", err.Error())
	}
}

// statements on one connection are serialized and independent
func TestSequentialStatements(t *testing.T) {
	c := openAgent(t)

	for i := 0; i < 3; i++ {
		_, rows, err := collect(t, c.NewStatement("SELECT 42", 0))
		if err != nil {
			t.Fatalf("FAIL statement %d: %s", i, err)
		}
		if len(rows) != 1 || !rows[0][0].Equal(pvalue.Integer(42)) {
			t.Errorf("FAIL statement %d rows: %v", i, rows)
		}
	}
}
