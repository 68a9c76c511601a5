/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package dshost

import (
	"github.com/elastic/go-sysinfo"

	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pvalue"
)

// MemoryInfo is a single row of host memory statistics, in bytes.
type MemoryInfo struct {
	Total     int64
	Used      int64
	Available int64
	Free      int64
}

func (MemoryInfo) Columns() pvalue.Columns {
	return pvalue.NewColumns(
		pvalue.Column{Name: "total", Type: pvalue.TypeInteger},
		pvalue.Column{Name: "used", Type: pvalue.TypeInteger},
		pvalue.Column{Name: "available", Type: pvalue.TypeInteger},
		pvalue.Column{Name: "free", Type: pvalue.TypeInteger},
	)
}

func (m MemoryInfo) ToRow() pvalue.Row {
	return pvalue.Row{
		pvalue.Integer(m.Total),
		pvalue.Integer(m.Used),
		pvalue.Integer(m.Available),
		pvalue.Integer(m.Free),
	}
}

// MemorySource is the memory data source.
type MemorySource struct{}

func (MemorySource) Name() string            { return "memory" }
func (MemorySource) Columns() pvalue.Columns { return MemoryInfo{}.Columns() }
func (MemorySource) Args() pvalue.Columns    { return nil }

func (MemorySource) Execute(req *preq.Request, _ pvalue.Args) error {
	promise, err := preq.Head[MemoryInfo](req)
	if err != nil {
		return err
	}
	host, err := sysinfo.Host()
	if err != nil {
		return promiseFail(promise, "elastic/go-sysinfo Host: %w", err)
	}
	mem, err := host.Memory()
	if err != nil {
		return promiseFail(promise, "elastic/go-sysinfo Memory: %w", err)
	}
	if err = promise.Commit(MemoryInfo{
		Total:     int64(mem.Total),
		Used:      int64(mem.Used),
		Available: int64(mem.Available),
		Free:      int64(mem.Free),
	}); err != nil {
		return err
	}
	return promise.Ok()
}
