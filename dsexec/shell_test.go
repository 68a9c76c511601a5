/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package dsexec

import (
	"testing"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pstmt"
	"github.com/beeql/beeql/pvalue"
)

func runShell(t *testing.T, args pvalue.Args) (rows []pvalue.Row, err error) {
	t.Helper()
	done := make(chan struct{})
	req, ch := preq.NewRequest(args, done, 4)
	resp := pstmt.NewResponse(ch, done, 0)

	go func() { _ = Source{}.Execute(req, args) }()

	if _, err = resp.Wait(); err != nil {
		return
	}
	for {
		row, rowErr, ok := resp.Next()
		if !ok {
			err = rowErr
			return
		}
		rows = append(rows, row)
	}
}

func TestShell(t *testing.T) {
	rows, err := runShell(t, pvalue.Args{pvalue.String("printf 'one\\ntwo\\n'")})
	if err != nil {
		t.Fatalf("FAIL execute: %s", err)
	}
	if len(rows) != 2 {
		t.Fatalf("FAIL row count: %d expected: 2", len(rows))
	}
	// line text and zero-based line numbers in order
	for i, expected := range []string{"one", "two"} {
		text, _ := rows[i][0].AsString()
		num, _ := rows[i][1].AsInteger()
		if text != expected || num != int64(i) {
			t.Errorf("FAIL row %d: %q %d", i, text, num)
		}
	}
}

func TestShellQuoting(t *testing.T) {
	// shellquote keeps the quoted argument as one word
	rows, err := runShell(t, pvalue.Args{pvalue.String("echo 'hello world'")})
	if err != nil {
		t.Fatalf("FAIL execute: %s", err)
	}
	if len(rows) != 1 {
		t.Fatalf("FAIL row count: %d", len(rows))
	}
	if text, _ := rows[0][0].AsString(); text != "hello world" {
		t.Errorf("FAIL line: %q", text)
	}
}

func TestShellBadArgs(t *testing.T) {
	for _, args := range []pvalue.Args{
		nil,
		{pvalue.Nil},
		{pvalue.String("")},
		{pvalue.Integer(1)},
	} {
		_, err := runShell(t, args)
		if err == nil {
			t.Errorf("FAIL args %v accepted", args)
			continue
		}
		if cerr, ok := err.(*pcode.Error); !ok || cerr.Kind() != pcode.KindIndexParam {
			t.Errorf("FAIL args %v error: %v", args, err)
		}
	}
}

func TestShellCommandFailure(t *testing.T) {
	_, err := runShell(t, pvalue.Args{pvalue.String("/no/such/binary")})
	if err == nil {
		t.Fatal("FAIL missing binary accepted")
	}
	if cerr, ok := err.(*pcode.Error); !ok || cerr.Kind() != pcode.KindInternal {
		t.Errorf("FAIL error kind: %v", err)
	}
}
