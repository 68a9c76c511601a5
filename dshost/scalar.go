/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package dshost

import (
	"github.com/beeql/beeql/parlos"
	"github.com/beeql/beeql/pdatasource"
	"github.com/beeql/beeql/pvalue"
)

// Hostname is the hostname() scalar function, grounded on
// [parlos.ShortHostname] rather than re-deriving it via go-sysinfo, since a
// scalar function has no producer-thread identity and parlos already offers
// a direct os.Hostname wrapper for this.
var Hostname = &pdatasource.ScalarFunc{
	Name:  "hostname",
	Arity: 0,
	Func: func(_ pvalue.Args) (pvalue.Value, error) {
		return pvalue.String(parlos.ShortHostname()), nil
	},
}
