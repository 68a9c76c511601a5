/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package dsexec is the local shell-execution pack: the shell(cmd)
// table-valued function splits cmd with go-shellquote and runs it via
// [github.com/beeql/beeql/pexec.ExecBlocking], streaming one row per line
// of standard output.
package dsexec

import (
	"bufio"
	"context"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/pexec"
	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pvalue"
)

// Line is one shell() output row: the line's text and its zero-based index.
type Line struct {
	Text string
	Num  int64
}

func (Line) Columns() pvalue.Columns {
	return pvalue.NewColumns(
		pvalue.Column{Name: "line", Type: pvalue.TypeString},
		pvalue.Column{Name: "line_num", Type: pvalue.TypeInteger},
	)
}

func (l Line) ToRow() pvalue.Row {
	return pvalue.Row{pvalue.String(l.Text), pvalue.Integer(l.Num)}
}

// Source is the shell data source: one declared argument, the command
// line to split and execute.
type Source struct{}

func (Source) Name() string { return "shell" }
func (Source) Columns() pvalue.Columns {
	return Line{}.Columns()
}
func (Source) Args() pvalue.Columns {
	return pvalue.NewColumns(pvalue.Column{Name: "cmd", Type: pvalue.TypeString})
}

func (Source) Execute(req *preq.Request, args pvalue.Args) error {
	if len(args) == 0 {
		return reportIndexParam(req, "shell() requires a cmd argument")
	}
	cmdLine, ok := args[0].AsString()
	if !ok || cmdLine == "" {
		return reportIndexParam(req, "shell() cmd argument must be a non-empty string")
	}
	argv, err := shellquote.Split(cmdLine)
	if err != nil {
		cerr := pcode.Newf(pcode.KindInvalid, "split shell command %q: %w", cmdLine, err)
		_ = req.Error(cerr)
		return cerr
	}
	if len(argv) == 0 {
		return reportIndexParam(req, "shell() cmd argument split to no words")
	}

	committer, err := req.NewCommit(Line{}.Columns())
	if err != nil {
		return err
	}

	stdout, _, execErr := pexec.ExecBlocking(
		pexec.ExecBlockingClosedStdin, pexec.WantStdout, pexec.NoExecBlockingStderr,
		context.Background(), argv...,
	)
	if execErr != nil {
		cerr := pcode.Newf(pcode.KindInternal, "exec %q: %w", cmdLine, execErr)
		_ = committer.Error(cerr)
		return cerr
	}

	scanner := bufio.NewScanner(strings.NewReader(stdout.String()))
	var lineNum int64
	for scanner.Scan() {
		row := Line{Text: scanner.Text(), Num: lineNum}.ToRow()
		if err = committer.CommitRow(row); err != nil {
			return nil // consumer abandoned; nothing more to do
		}
		lineNum++
	}
	if err = scanner.Err(); err != nil {
		cerr := pcode.Newf(pcode.KindInternal, "read stdout: %w", err)
		_ = committer.Error(cerr)
		return cerr
	}
	return committer.Ok()
}

func reportIndexParam(req *preq.Request, message string) error {
	cerr := pcode.New(pcode.KindIndexParam, message)
	_ = req.Error(cerr)
	return cerr
}
