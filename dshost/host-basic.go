/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package dshost is the host-telemetry pack: host_basic, cpu_usage,
// memory, os_info table-valued functions and the hostname() scalar
// function, all backed by github.com/elastic/go-sysinfo.
package dshost

import (
	"runtime"

	"github.com/elastic/go-sysinfo"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pvalue"
)

// HostBasic mirrors the original host_basic record: hostname, core count,
// CPU model, uptime in seconds, total memory in bytes.
type HostBasic struct {
	HostName string
	CPUCore  int64
	CPUModel string
	Uptime   int64
	Memory   int64
}

// Columns implements pvalue.TypedRow.
func (HostBasic) Columns() pvalue.Columns {
	return pvalue.NewColumns(
		pvalue.Column{Name: "host_name", Type: pvalue.TypeString},
		pvalue.Column{Name: "cpu_core", Type: pvalue.TypeInteger},
		pvalue.Column{Name: "cpu_model", Type: pvalue.TypeString},
		pvalue.Column{Name: "uptime", Type: pvalue.TypeInteger},
		pvalue.Column{Name: "memory", Type: pvalue.TypeInteger},
	)
}

// ToRow implements pvalue.TypedRow.
func (h HostBasic) ToRow() pvalue.Row {
	return pvalue.Row{
		pvalue.String(h.HostName),
		pvalue.Integer(h.CPUCore),
		pvalue.String(h.CPUModel),
		pvalue.Integer(h.Uptime),
		pvalue.Integer(h.Memory),
	}
}

// HostBasicSource is the host_basic data source: one row describing the
// local machine.
type HostBasicSource struct{}

func (HostBasicSource) Name() string           { return "host_basic" }
func (HostBasicSource) Columns() pvalue.Columns { return HostBasic{}.Columns() }
func (HostBasicSource) Args() pvalue.Columns    { return nil }

func (HostBasicSource) Execute(req *preq.Request, _ pvalue.Args) error {
	promise, err := preq.Head[HostBasic](req)
	if err != nil {
		return err
	}
	host, err := sysinfo.Host()
	if err != nil {
		return promiseFail(promise, "elastic/go-sysinfo Host: %w", err)
	}
	info := host.Info()
	mem, err := host.Memory()
	if err != nil {
		return promiseFail(promise, "elastic/go-sysinfo Memory: %w", err)
	}

	if err = promise.Commit(HostBasic{
		HostName: info.Hostname,
		CPUCore:  int64(runtime.NumCPU()),
		CPUModel: info.Architecture,
		Uptime:   int64(info.Uptime().Seconds()),
		Memory:   int64(mem.Total),
	}); err != nil {
		return err
	}
	return promise.Ok()
}

func promiseFail[T pvalue.TypedRow](promise *preq.Promise[T], format string, a ...any) error {
	cerr := pcode.Newf(pcode.KindInternal, format, a...)
	_ = promise.Error(cerr)
	return cerr
}
