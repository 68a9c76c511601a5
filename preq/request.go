/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package preq is the producer-side API of the streaming pipeline: [Request],
// [Committer] and [Promise] publish [pstate.State] events onto a bounded
// channel consumed by [github.com/beeql/beeql/pstmt].Response.
package preq

import (
	"github.com/google/uuid"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/pstate"
	"github.com/beeql/beeql/pvalue"
)

// DefaultChannelSize is the bounded-channel capacity used by [NewRequest]
// when a caller does not need a different value. Capacity 1 gives maximal
// backpressure; the bridge uses larger capacities for producers expected to
// burst many small rows.
const DefaultChannelSize = 1

// Request is the producer-side handle of one statement execution: the call
// [pvalue.Args], a send-handle to the bounded state channel, and whether
// [pvalue.Columns] has been published yet. A Request is owned by exactly
// one producer worker.
type Request struct {
	// ID correlates this request's debug log lines; not part of the wire
	// protocol.
	ID   string
	Args pvalue.Args

	ch             chan pstate.State
	done           <-chan struct{}
	readyPublished bool
	terminated     bool
}

// NewRequest creates a (Request, channel) pair. done is closed by the
// consumer when it abandons the stream (dropped Response, timeout); a
// subsequent send on the returned Request then fails. bufSize is the
// channel capacity; 0 or negative defaults to [DefaultChannelSize].
func NewRequest(args pvalue.Args, done <-chan struct{}, bufSize int) (req *Request, ch <-chan pstate.State) {
	if bufSize <= 0 {
		bufSize = DefaultChannelSize
	}
	stateCh := make(chan pstate.State, bufSize)
	req = &Request{
		ID:   uuid.NewString(),
		Args: args,
		ch:   stateCh,
		done: done,
	}
	return req, stateCh
}

// send publishes state, blocking if the channel is full (producer
// backpressure). If the consumer has abandoned the stream (done closed),
// send returns an error instead of blocking forever; the producer is
// expected to treat this as cancellation and return from execute.
func (r *Request) send(state pstate.State) error {
	select {
	case r.ch <- state:
		if state.IsTerminal() {
			r.terminated = true
		}
		return nil
	case <-r.done:
		return pcode.New(pcode.KindOther, "state channel abandoned by consumer")
	}
}

// Terminated reports whether a terminal event (Err or Ok) has already been
// published on this Request. A host invoking a producer
// uses this to decide whether it must publish a terminal event on the
// producer's behalf: Execute returning an error after already publishing
// Err must not cause a second terminal event to be sent.
func (r *Request) Terminated() bool { return r.terminated }

// NewCommit publishes Ready(columns) and returns a [Committer] bound to
// those columns. Fails if the channel has been abandoned.
func (r *Request) NewCommit(columns pvalue.Columns) (c *Committer, err error) {
	if err = r.send(pstate.Ready(columns)); err != nil {
		return nil, err
	}
	r.readyPublished = true
	return &Committer{req: r, columns: columns}, nil
}

// Commit is the untyped producer path: on the first call it derives
// [pvalue.Columns] from row (one unnamed column per value, typed by
// row[i].Type()) and publishes Ready, then publishes Process(row). On
// subsequent calls it publishes Process(row) only, without validation — the
// columns were defined by the first row.
func (r *Request) Commit(row pvalue.Row) (err error) {
	if !r.readyPublished {
		columns := make(pvalue.Columns, len(row))
		for i, v := range row {
			columns[i] = pvalue.Column{Type: v.Type()}
		}
		if err = r.send(pstate.Ready(columns)); err != nil {
			return
		}
		r.readyPublished = true
	}
	return r.send(pstate.Process(row))
}

// Error publishes the terminal Err(e) event.
func (r *Request) Error(e *pcode.Error) error {
	return r.send(pstate.Err(e))
}

// Ok publishes the terminal Ok event.
func (r *Request) Ok() error {
	return r.send(pstate.Ok)
}
