/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package preq

import (
	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/pstate"
	"github.com/beeql/beeql/pvalue"
)

// Committer is bound to the [pvalue.Columns] published by
// [Request.NewCommit]. Commit validates row events against those columns
// before they enter the channel; Err and Ok pass through unvalidated.
type Committer struct {
	req     *Request
	columns pvalue.Columns
}

// Columns returns the schema this Committer was bound to.
func (c *Committer) Columns() pvalue.Columns { return c.columns }

// Commit validates and publishes state. If state is a Process(row) event
// whose row does not validate against c.Columns(), an invalid_type error is
// returned and the event never enters the channel — the malformed row never
// becomes observable to the consumer.
func (c *Committer) Commit(state pstate.State) error {
	if state.Tag == pstate.TagProcess && !c.columns.Validate(state.Row) {
		return pcode.Newf(pcode.KindInvalidType,
			"row does not validate against committed columns: row=%v columns=%v", state.Row, c.columns)
	}
	return c.req.send(state)
}

// CommitRow is a convenience wrapper publishing Process(row).
func (c *Committer) CommitRow(row pvalue.Row) error { return c.Commit(pstate.Process(row)) }

// Error publishes the terminal Err(e) event.
func (c *Committer) Error(e *pcode.Error) error { return c.req.send(pstate.Err(e)) }

// Ok publishes the terminal Ok event.
func (c *Committer) Ok() error { return c.req.send(pstate.Ok) }
