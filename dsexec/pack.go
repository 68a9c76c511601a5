/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package dsexec

import "github.com/beeql/beeql/pdatasource"

// Sources returns the data sources this pack contributes.
func Sources() []pdatasource.DataSource {
	return []pdatasource.DataSource{Source{}}
}
