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

// OSInfo is one os_info() row: platform family, version and hostname.
type OSInfo struct {
	OSType   string
	Version  string
	HostName string
}

func (OSInfo) Columns() pvalue.Columns {
	return pvalue.NewColumns(
		pvalue.Column{Name: "os_type", Type: pvalue.TypeString},
		pvalue.Column{Name: "version", Type: pvalue.TypeString},
		pvalue.Column{Name: "host_name", Type: pvalue.TypeString},
	)
}

func (o OSInfo) ToRow() pvalue.Row {
	return pvalue.Row{
		pvalue.String(o.OSType),
		pvalue.String(o.Version),
		pvalue.String(o.HostName),
	}
}

// OSInfoSource is the os_info data source.
type OSInfoSource struct{}

func (OSInfoSource) Name() string            { return "os_info" }
func (OSInfoSource) Columns() pvalue.Columns { return OSInfo{}.Columns() }
func (OSInfoSource) Args() pvalue.Columns    { return nil }

func (OSInfoSource) Execute(req *preq.Request, _ pvalue.Args) error {
	promise, err := preq.Head[OSInfo](req)
	if err != nil {
		return err
	}
	host, err := sysinfo.Host()
	if err != nil {
		return promiseFail(promise, "elastic/go-sysinfo Host: %w", err)
	}
	info := host.Info()
	osType := info.Architecture
	version := info.KernelVersion
	if info.OS != nil {
		osType = info.OS.Family
		version = info.OS.Version
	}
	if err = promise.Commit(OSInfo{
		OSType:   osType,
		Version:  version,
		HostName: info.Hostname,
	}); err != nil {
		return err
	}
	return promise.Ok()
}
