/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package pstate defines [State], the tagged sum of events carried on the
// bounded channel between a data-source worker thread and its caller:
// schema publication, rows, errors and completion markers.
package pstate

import (
	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/pvalue"
)

// Tag identifies which variant of [State] is populated.
type Tag uint8

const (
	// TagReady: Columns is populated. Must be the first event on any
	// stream and occurs exactly once.
	TagReady Tag = iota + 1
	// TagProcess: Row is populated. Zero or more, each valid against the
	// preceding Ready.
	TagProcess
	// TagErr: Err is populated. Terminal.
	TagErr
	// TagOk: no payload. Terminal, successful completion.
	TagOk
)

// State is one element of a producer→consumer stream: [Ready], [Process],
// [Err] or [Ok]. Exactly one of Columns/Row/Err is meaningful, selected by
// Tag.
type State struct {
	Tag     Tag
	Columns pvalue.Columns
	Row     pvalue.Row
	Err     *pcode.Error
}

// Ready builds the schema-publication event.
func Ready(columns pvalue.Columns) State { return State{Tag: TagReady, Columns: columns} }

// Process builds a row event.
func Process(row pvalue.Row) State { return State{Tag: TagProcess, Row: row} }

// Err builds the error terminal event.
func Err(err *pcode.Error) State { return State{Tag: TagErr, Err: err} }

// Ok is the successful-completion terminal event.
var Ok = State{Tag: TagOk}

// IsTerminal reports whether s is Err or Ok: no further event follows it on
// a well-formed stream.
func (s State) IsTerminal() bool { return s.Tag == TagErr || s.Tag == TagOk }
