/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package dshost

import "github.com/beeql/beeql/pdatasource"

// Sources returns every table-valued data source this pack contributes.
func Sources() []pdatasource.DataSource {
	return []pdatasource.DataSource{
		HostBasicSource{},
		CPUUsageSource{},
		OSInfoSource{},
		MemorySource{},
	}
}

// Scalars returns the scalar functions this pack contributes.
func Scalars() []*pdatasource.ScalarFunc {
	return []*pdatasource.ScalarFunc{Hostname}
}
