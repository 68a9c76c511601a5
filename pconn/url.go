/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package pconn is the per-URL session: it registers built-in data sources
// and scalar functions per scheme/pack, and spawns one worker goroutine per
// statement.
package pconn

import (
	"strings"

	"github.com/beeql/beeql/pcode"
)

// URL is a parsed connection string of the form "scheme:pack:profile", e.g.
// "sqlite:agent:default".
type URL struct {
	Scheme  string
	Pack    string
	Profile string
}

// ParseURL splits s into its three colon-delimited segments. Fewer than
// three segments, or an empty scheme, is [pcode.KindInvalid].
func ParseURL(s string) (u URL, err error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		err = pcode.Newf(pcode.KindInvalid, "malformed connection url %q: want scheme:pack[:profile]", s)
		return
	}
	u.Scheme = parts[0]
	u.Pack = parts[1]
	if len(parts) == 3 {
		u.Profile = parts[2]
	}
	return
}
