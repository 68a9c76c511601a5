/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package dsssh

import "github.com/beeql/beeql/pdatasource"

// Sources returns the data sources this pack contributes, configured with
// profile.
func Sources(profile Profile) []pdatasource.DataSource {
	return []pdatasource.DataSource{
		RemoteShellSource{Profile: profile},
		RemoteFilesystemSource{Profile: profile},
	}
}
