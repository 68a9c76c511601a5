/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package pdatasource declares the [DataSource] producer contract and the
// per-[github.com/beeql/beeql/pconn.Connection] name→producer [Registry].
package pdatasource

import (
	"fmt"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pvalue"
)

// DataSource is a named producer of rows, callable as a table-valued
// function from SQL. Implementations must be safe to invoke on a worker
// goroutine and must not rely on thread-local state they do not establish
// themselves.
type DataSource interface {
	// Name is the identifier the SQL engine binds FROM name(args…) to.
	Name() string
	// Columns is the declared output schema. For producers that cannot know
	// column types until the first row (virtual tables backed by a
	// template schema), this may be a template refined at execution time.
	Columns() pvalue.Columns
	// Args is the declared input argument schema, used for type-checking
	// literal arguments from a SQL call site before Execute runs.
	Args() pvalue.Columns
	// Execute runs the producer to completion against req. On success the
	// producer must have published exactly one Ready, any number of
	// Process, and exactly one terminal event.
	// If Execute returns an error without a terminal event
	// already published, the caller publishes Err on the producer's
	// behalf; if it returns nil without one, the caller publishes Ok.
	Execute(req *preq.Request, args pvalue.Args) error
}

// Registry maps a data-source name to its [DataSource]. One [Registry]
// backs one [github.com/beeql/beeql/pconn.Connection]; registration is
// one-shot per name.
type Registry struct {
	sources map[string]DataSource
}

// NewRegistry returns an empty Registry ready for Register calls.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]DataSource)}
}

// Register adds ds under ds.Name(). A duplicate name is a programmer error
// and returns a [pcode.Error] of [pcode.KindInternal] rather than panicking,
// so pack-loading code can surface it through the ordinary error path.
func (r *Registry) Register(ds DataSource) error {
	name := ds.Name()
	if _, exists := r.sources[name]; exists {
		return pcode.Newf(pcode.KindInternal, "data source %q registered twice", name)
	}
	r.sources[name] = ds
	return nil
}

// Lookup returns the DataSource registered under name, or ok false.
func (r *Registry) Lookup(name string) (ds DataSource, ok bool) {
	ds, ok = r.sources[name]
	return
}

// Names returns the registered data-source names, unordered.
func (r *Registry) Names() (names []string) {
	names = make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	return
}

// String implements fmt.Stringer for debug logging.
func (r *Registry) String() string {
	return fmt.Sprintf("pdatasource.Registry{%d sources}", len(r.sources))
}

// ScalarFunc is a pure-computation producer: (name, arity, closure). Arity
// is fixed and enforced by the SQL engine; mismatched call arities raise
// the engine's own wrong-number-of-arguments error.
type ScalarFunc struct {
	Name  string
	Arity int
	Func  func(args pvalue.Args) (pvalue.Value, error)
}
