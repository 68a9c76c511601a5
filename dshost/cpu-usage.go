/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package dshost

import (
	"time"

	"github.com/elastic/go-sysinfo"

	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pvalue"
)

// sampleWindow is how long cpu_usage samples cumulative CPU time over
// before computing fractions, matching the 1-second window the original
// heim-based implementation used.
const sampleWindow = time.Second

// CPUUsage mirrors the original cpu_usage record.
//   - iowait is a constant 0.0: go-sysinfo's portable CPUTime has no iowait
//     counter, and inventing one per platform is not worth it
type CPUUsage struct {
	Idle   float64
	User   float64
	System float64
	IOWait float64
}

func (CPUUsage) Columns() pvalue.Columns {
	return pvalue.NewColumns(
		pvalue.Column{Name: "idle", Type: pvalue.TypeNumber},
		pvalue.Column{Name: "user", Type: pvalue.TypeNumber},
		pvalue.Column{Name: "system", Type: pvalue.TypeNumber},
		pvalue.Column{Name: "iowait", Type: pvalue.TypeNumber},
	)
}

func (u CPUUsage) ToRow() pvalue.Row {
	return pvalue.Row{
		pvalue.Number(u.Idle),
		pvalue.Number(u.User),
		pvalue.Number(u.System),
		pvalue.Number(u.IOWait),
	}
}

// CPUUsageSource is the cpu_usage data source: fractional idle/user/system
// time over a one-second sampling window.
type CPUUsageSource struct{}

func (CPUUsageSource) Name() string            { return "cpu_usage" }
func (CPUUsageSource) Columns() pvalue.Columns { return CPUUsage{}.Columns() }
func (CPUUsageSource) Args() pvalue.Columns    { return nil }

func (CPUUsageSource) Execute(req *preq.Request, _ pvalue.Args) error {
	promise, err := preq.Head[CPUUsage](req)
	if err != nil {
		return err
	}
	host, err := sysinfo.Host()
	if err != nil {
		return promiseFail(promise, "elastic/go-sysinfo Host: %w", err)
	}
	before, err := host.CPUTime()
	if err != nil {
		return promiseFail(promise, "elastic/go-sysinfo CPUTime: %w", err)
	}
	time.Sleep(sampleWindow)
	after, err := host.CPUTime()
	if err != nil {
		return promiseFail(promise, "elastic/go-sysinfo CPUTime: %w", err)
	}

	userDelta := (after.User - before.User).Seconds()
	systemDelta := (after.System - before.System).Seconds()
	idleDelta := (after.Idle - before.Idle).Seconds()
	total := userDelta + systemDelta + idleDelta
	if total <= 0 {
		return promiseFail(promise, "cpu sampling window produced no elapsed time")
	}

	if err = promise.Commit(CPUUsage{
		Idle:   idleDelta / total,
		User:   userDelta / total,
		System: systemDelta / total,
		IOWait: 0.0,
	}); err != nil {
		return err
	}
	return promise.Ok()
}
