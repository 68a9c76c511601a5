/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package preq

import (
	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/pvalue"
)

// Promise is the typed producer path: it enforces that every committed
// value's [pvalue.TypedRow.ToRow] produces a row matching
// [pvalue.TypedRow.Columns] in arity, via the bound [Committer]'s
// validation.
type Promise[T pvalue.TypedRow] struct {
	committer *Committer
}

// Head publishes Ready(T's columns) and returns a [Promise] whose Commit
// converts a T to a row using T.ToRow.
func Head[T pvalue.TypedRow](req *Request) (p *Promise[T], err error) {
	var zero T
	c, err := req.NewCommit(zero.Columns())
	if err != nil {
		return nil, err
	}
	return &Promise[T]{committer: c}, nil
}

// Commit converts value via ToRow and publishes it, validated against the
// schema Head published.
func (p *Promise[T]) Commit(value T) error {
	return p.committer.CommitRow(value.ToRow())
}

// Error publishes the terminal Err(e) event.
func (p *Promise[T]) Error(e *pcode.Error) error {
	return p.committer.Error(e)
}

// Ok publishes the terminal Ok event.
func (p *Promise[T]) Ok() error { return p.committer.Ok() }
