/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pconn

import (
	"github.com/beeql/beeql/dsexec"
	"github.com/beeql/beeql/dsfs"
	"github.com/beeql/beeql/dshost"
	"github.com/beeql/beeql/dsssh"
	"github.com/beeql/beeql/pcode"
)

// packLoader registers a URL scheme's pack/profile onto c.
type packLoader func(c *Connection, pack, profile string) error

// packLoaders dispatches the URL scheme segment; the current build targets
// go-sqlite3 exclusively, so "sqlite" is the only scheme.
var packLoaders = map[string]packLoader{
	"sqlite": loadSqlitePack,
}

// loadSqlitePack dispatches the pack segment: "agent" for host telemetry,
// shell and filesystem sources; "remote" for the SSH pack.
func loadSqlitePack(c *Connection, pack, profile string) error {
	switch pack {
	case "agent":
		return loadAgentPack(c)
	case "remote":
		return loadRemotePack(c, profile)
	default:
		return pcode.Newf(pcode.KindInvalid, "unknown connection pack %q", pack)
	}
}

func loadAgentPack(c *Connection) error {
	for _, ds := range dshost.Sources() {
		if err := c.registerSource(ds); err != nil {
			return err
		}
	}
	for _, ds := range dsfs.Sources() {
		if err := c.registerSource(ds); err != nil {
			return err
		}
	}
	for _, ds := range dsexec.Sources() {
		if err := c.registerSource(ds); err != nil {
			return err
		}
	}
	for _, fn := range dshost.Scalars() {
		c.registerScalar(fn)
	}
	return nil
}

func loadRemotePack(c *Connection, profile string) error {
	p, err := dsssh.ParseProfile(profile)
	if err != nil {
		return err
	}
	for _, ds := range dsssh.Sources(p) {
		if err := c.registerSource(ds); err != nil {
			return err
		}
	}
	return nil
}
