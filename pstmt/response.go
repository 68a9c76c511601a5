/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package pstmt is the consumer-side API of the streaming pipeline: a
// [Response] awaits [pstate.Ready], then pulls [pvalue.Row]s until a
// terminal event, enforcing a per-statement timeout.
package pstmt

import (
	"sync"
	"time"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/pstate"
	"github.com/beeql/beeql/pvalue"
)

// Response is the caller-owned end of one statement's event stream.
type Response struct {
	ch      <-chan pstate.State
	done    chan struct{}
	timeout time.Duration // 0 means no timeout

	closeOnce sync.Once

	columns    pvalue.Columns
	waited     bool
	terminated bool
	termErr    *pcode.Error
}

// NewResponse wraps ch (as produced by [github.com/beeql/beeql/preq.NewRequest])
// into a Response enforcing timeout. timeout of 0 disables the per-event
// deadline.
func NewResponse(ch <-chan pstate.State, done chan struct{}, timeout time.Duration) *Response {
	return &Response{ch: ch, done: done, timeout: timeout}
}

// Done returns the channel a producer's send selects on to detect
// abandonment; closed by [Response.Close] and by a firing timeout.
func (r *Response) Done() <-chan struct{} { return r.done }

// Close signals abandonment to the producer. Idempotent, safe to call
// multiple times or concurrently with iteration.
func (r *Response) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

// recv reads the next event off the channel, honoring the configured
// timeout. If the channel closes without a terminal event (producer
// abandonment), a broken-channel error is synthesized.
func (r *Response) recv() (state pstate.State, err error) {
	if r.timeout > 0 {
		timer := time.NewTimer(r.timeout)
		defer timer.Stop()
		select {
		case s, ok := <-r.ch:
			if !ok {
				return pstate.State{}, brokenChannelError()
			}
			return s, nil
		case <-timer.C:
			r.Close()
			return pstate.State{}, pcode.New(pcode.KindIOTimeout, "statement timed out waiting for next event")
		}
	}
	s, ok := <-r.ch
	if !ok {
		return pstate.State{}, brokenChannelError()
	}
	return s, nil
}

func brokenChannelError() *pcode.Error {
	return pcode.New(pcode.KindOther, "state channel closed without a terminal event")
}

// Wait blocks until the schema arrives or a terminal event precedes it. If
// an Err arrives before Ready, Wait surfaces it directly as err.
func (r *Response) Wait() (columns pvalue.Columns, err error) {
	if r.waited {
		return r.columns, nil
	}
	for {
		state, recvErr := r.recv()
		if recvErr != nil {
			r.setTerminal(pcode.MapEngineError(recvErr))
			return nil, recvErr
		}
		switch state.Tag {
		case pstate.TagReady:
			r.columns = state.Columns
			r.waited = true
			return r.columns, nil
		case pstate.TagErr:
			r.setTerminal(state.Err)
			return nil, state.Err
		case pstate.TagOk:
			r.setTerminal(nil)
			return nil, nil
		default:
			// a Process before Ready would violate the producer contract;
			// treat it as an internal error rather than silently dropping it
			internalErr := pcode.New(pcode.KindInternal, "process event received before ready")
			r.setTerminal(internalErr)
			return nil, internalErr
		}
	}
}

func (r *Response) setTerminal(err *pcode.Error) {
	r.terminated = true
	r.termErr = err
}

// Next pulls the next row. ok is false once the stream has terminated
// (successfully or with err set); callers must stop iterating when ok is
// false.
func (r *Response) Next() (row pvalue.Row, err error, ok bool) {
	if r.terminated {
		return nil, r.termErr, false
	}
	if !r.waited {
		if _, err = r.Wait(); err != nil {
			return nil, err, false
		}
		if r.terminated {
			return nil, r.termErr, false
		}
	}
	for {
		state, recvErr := r.recv()
		if recvErr != nil {
			mapped := pcode.MapEngineError(recvErr)
			r.setTerminal(mapped)
			return nil, mapped, false
		}
		switch state.Tag {
		case pstate.TagProcess:
			return state.Row, nil, true
		case pstate.TagErr:
			r.setTerminal(state.Err)
			return nil, state.Err, false
		case pstate.TagOk:
			r.setTerminal(nil)
			return nil, nil, false
		default:
			internalErr := pcode.New(pcode.KindInternal, "unexpected Ready after stream start")
			r.setTerminal(internalErr)
			return nil, internalErr, false
		}
	}
}
