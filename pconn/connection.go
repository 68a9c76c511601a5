/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pconn

import (
	"database/sql"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/beeql/beeql/pbridge"
	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/pdatasource"
	"github.com/beeql/beeql/plog"
)

// debugLog traces connection and statement lifecycle; silent unless
// [SetDebug].
var debugLog = plog.NewLog(os.Stderr)

// SetDebug enables code-located tracing of connection opens and statement
// workers.
func SetDebug(debug bool) { debugLog.SetDebug(debug) }

// driverSeq makes every [Connection] register its own uniquely named
// database/sql driver: go-sqlite3's ConnectHook is global per driver name,
// and each Connection's pack of data sources/functions differs.
var driverSeq int64

// Connection is a per-URL session: it owns a registry of data sources and
// scalar functions selected by the URL's pack, an underlying *sql.DB opened
// read-only/in-memory/URI-enabled with a zero statement-cache size (each
// query is one-shot), and the [reentrantLock] serializing all
// engine entry points.
type Connection struct {
	url URL

	db        *sql.DB
	lock      *reentrantLock
	registry  *pdatasource.Registry
	scalars   []*pdatasource.ScalarFunc
	vtabNames []string

	// currentTimeout is the active statement's per-query timeout, read by
	// every virtual-table cursor's Filter while that statement's worker
	// goroutine holds c.lock (see pbridge.NewModule).
	currentTimeout time.Duration
}

// Open parses urlString, builds the engine handle with the pack named by
// its scheme/pack segments pre-registered, and returns a ready [Connection].
// Unknown scheme or pack is [pcode.KindInvalid].
func Open(urlString string) (conn *Connection, err error) {
	u, err := ParseURL(urlString)
	if err != nil {
		return nil, err
	}
	loader, ok := packLoaders[u.Scheme]
	if !ok {
		return nil, pcode.Newf(pcode.KindInvalid, "unknown connection scheme %q", u.Scheme)
	}

	c := &Connection{url: u, lock: newReentrantLock(), registry: pdatasource.NewRegistry()}
	if err = loader(c, u.Pack, u.Profile); err != nil {
		return nil, err
	}
	c.debugf("opening scheme=%s pack=%s sources=%s", u.Scheme, u.Pack, c.registry)

	driverName := fmt.Sprintf("beeql-sqlite3-%d", atomic.AddInt64(&driverSeq, 1))
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(sc *sqlite3.SQLiteConn) error {
			return c.install(sc)
		},
	})

	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared&_query_only=true", u.Pack, uuid.NewString())
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, pcode.Newf(pcode.KindInvalid, "open engine handle: %w", err)
	}
	db.SetMaxOpenConns(1) // one statement at a time per connection
	// prepared-statement cache size zero: each query is one-shot
	if _, err = db.Exec("PRAGMA cache_size = 0"); err != nil {
		_ = db.Close()
		return nil, pcode.Newf(pcode.KindInvalid, "initialize engine handle: %w", err)
	}
	c.db = db
	return c, nil
}

// install registers every scalar function and virtual-table module this
// Connection's pack selected, under sc — invoked once per underlying
// sqlite3 connection by go-sqlite3's ConnectHook.
func (c *Connection) install(sc *sqlite3.SQLiteConn) error {
	for _, fn := range c.scalars {
		if err := pbridge.RegisterScalar(sc, fn); err != nil {
			return err
		}
	}
	for _, name := range c.vtabNames {
		ds, ok := c.registry.Lookup(name)
		if !ok {
			continue
		}
		module := pbridge.NewModule(ds, c.timeoutForCurrentStatement)
		if err := sc.CreateModule(name, module); err != nil {
			return pcode.Newf(pcode.KindInvalid, "register virtual table %q: %w", name, err)
		}
	}
	return nil
}

// registerSource adds ds to the registry and marks it as a table-valued
// function the pack loader should install as a virtual table module.
func (c *Connection) registerSource(ds pdatasource.DataSource) error {
	if err := c.registry.Register(ds); err != nil {
		return err
	}
	c.vtabNames = append(c.vtabNames, ds.Name())
	return nil
}

// registerScalar adds fn to the scalar functions installed on every
// underlying sqlite3 connection.
func (c *Connection) registerScalar(fn *pdatasource.ScalarFunc) {
	c.scalars = append(c.scalars, fn)
}

// NewStatement prepares and begins executing sql, returning a [Response]
// streaming its output. timeout of 0 means no per-statement deadline.
func (c *Connection) NewStatement(sqlText string, timeout time.Duration) *Response {
	return newStatement(c, sqlText, timeout)
}

// Close releases the underlying engine handle. A Connection with an
// in-flight Statement must not be closed; callers drain or abandon
// Responses first.
func (c *Connection) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Connection) debugf(format string, a ...any) { debugLog.Debug("pconn: "+format, a...) }

// timeoutForCurrentStatement is the [pbridge.Module] timeoutFor callback:
// it reads the timeout the in-flight statement's worker goroutine set
// before issuing its query, safe because only that goroutine can be
// running engine callbacks while it holds c.lock.
func (c *Connection) timeoutForCurrentStatement() time.Duration { return c.currentTimeout }
