/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package dshost

import (
	"testing"

	"github.com/beeql/beeql/pdatasource"
	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pstmt"
	"github.com/beeql/beeql/pvalue"
)

func runSource(t *testing.T, ds pdatasource.DataSource) (columns pvalue.Columns, rows []pvalue.Row) {
	t.Helper()
	done := make(chan struct{})
	req, ch := preq.NewRequest(nil, done, 4)
	resp := pstmt.NewResponse(ch, done, 0)

	go func() { _ = ds.Execute(req, nil) }()

	columns, err := resp.Wait()
	if err != nil {
		t.Fatalf("FAIL %s Wait: %s", ds.Name(), err)
	}
	for {
		row, rowErr, ok := resp.Next()
		if !ok {
			if rowErr != nil {
				t.Fatalf("FAIL %s terminal: %s", ds.Name(), rowErr)
			}
			return
		}
		rows = append(rows, row)
	}
}

func TestHostBasicSource(t *testing.T) {
	columns, rows := runSource(t, HostBasicSource{})
	if len(rows) != 1 {
		t.Fatalf("FAIL row count: %d expected: 1", len(rows))
	}
	row := rows[0]
	if !columns.Validate(row) {
		t.Fatalf("FAIL row does not validate: %v", row)
	}
	// position 1 is cpu_core, position 4 is memory
	if core, ok := row[1].AsInteger(); !ok || core < 1 {
		t.Errorf("FAIL cpu_core: %d %t", core, ok)
	}
	if memory, ok := row[4].AsInteger(); !ok || memory < 1 {
		t.Errorf("FAIL memory: %d %t", memory, ok)
	}
}

func TestMemorySource(t *testing.T) {
	columns, rows := runSource(t, MemorySource{})
	if len(rows) != 1 {
		t.Fatalf("FAIL row count: %d expected: 1", len(rows))
	}
	if !columns.Validate(rows[0]) {
		t.Fatalf("FAIL row does not validate: %v", rows[0])
	}
	if total, ok := rows[0][0].AsInteger(); !ok || total < 1 {
		t.Errorf("FAIL total: %d %t", total, ok)
	}
}

func TestOSInfoSource(t *testing.T) {
	columns, rows := runSource(t, OSInfoSource{})
	if len(rows) != 1 {
		t.Fatalf("FAIL row count: %d expected: 1", len(rows))
	}
	if !columns.Validate(rows[0]) {
		t.Fatalf("FAIL row does not validate: %v", rows[0])
	}
	if osType, ok := rows[0][0].AsString(); !ok || osType == "" {
		t.Errorf("FAIL os_type: %q %t", osType, ok)
	}
}

func TestCPUUsageSource(t *testing.T) {
	columns, rows := runSource(t, CPUUsageSource{})
	if len(rows) != 1 {
		t.Fatalf("FAIL row count: %d expected: 1", len(rows))
	}
	row := rows[0]
	if !columns.Validate(row) {
		t.Fatalf("FAIL row does not validate: %v", row)
	}
	// fractions are within [0, 1]; iowait is the constant 0.0
	for i, col := range columns {
		f, ok := row[i].AsNumber()
		if !ok || f < 0 || f > 1 {
			t.Errorf("FAIL %s: %v", col.Name, row[i])
		}
	}
	if iowait, _ := row[3].AsNumber(); iowait != 0 {
		t.Errorf("FAIL iowait: %v expected: 0", iowait)
	}
}

func TestHostnameFunc(t *testing.T) {
	v, err := Hostname.Func(nil)
	if err != nil {
		t.Fatalf("FAIL hostname: %s", err)
	}
	if host, ok := v.AsString(); !ok || host == "" {
		t.Errorf("FAIL hostname value: %q %t", host, ok)
	}
}
