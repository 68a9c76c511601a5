/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package dsssh

import (
	"bufio"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pvalue"
)

// Line is one remote_shell() output row: the line text and its index.
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

// RemoteShellSource is the remote_shell(host, cmd) data source: it dials
// host over SSH using the pack's [Profile] and streams the command's
// standard output one line per row.
type RemoteShellSource struct {
	Profile Profile
}

func (RemoteShellSource) Name() string { return "remote_shell" }
func (RemoteShellSource) Columns() pvalue.Columns {
	return Line{}.Columns()
}
func (RemoteShellSource) Args() pvalue.Columns {
	return pvalue.NewColumns(
		pvalue.Column{Name: "host", Type: pvalue.TypeString},
		pvalue.Column{Name: "cmd", Type: pvalue.TypeString},
	)
}

func (s RemoteShellSource) Execute(req *preq.Request, args pvalue.Args) error {
	host, cmd, err := hostAndCmd(args)
	if err != nil {
		_ = req.Error(err)
		return err
	}

	committer, commitErr := req.NewCommit(Line{}.Columns())
	if commitErr != nil {
		return commitErr
	}

	client, dialErr := dial(host, s.Profile)
	if dialErr != nil {
		cerr := pcode.Newf(pcode.KindInternal, "dial %q: %w", host, dialErr)
		_ = committer.Error(cerr)
		return cerr
	}
	defer client.Close()

	session, sessErr := client.NewSession()
	if sessErr != nil {
		cerr := pcode.Newf(pcode.KindInternal, "open ssh session to %q: %w", host, sessErr)
		_ = committer.Error(cerr)
		return cerr
	}
	defer session.Close()

	output, runErr := session.Output(cmd)
	if runErr != nil {
		cerr := pcode.Newf(pcode.KindInternal, "remote command %q on %q: %w", cmd, host, runErr)
		_ = committer.Error(cerr)
		return cerr
	}

	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	var lineNum int64
	for scanner.Scan() {
		row := Line{Text: scanner.Text(), Num: lineNum}.ToRow()
		if commitErr := committer.CommitRow(row); commitErr != nil {
			return nil // consumer abandoned
		}
		lineNum++
	}
	return committer.Ok()
}

func hostAndCmd(args pvalue.Args) (host, cmd string, err *pcode.Error) {
	if len(args) < 2 {
		return "", "", pcode.New(pcode.KindIndexParam, "remote_shell(host, cmd) requires 2 arguments")
	}
	h, ok := args[0].AsString()
	if !ok || h == "" {
		return "", "", pcode.New(pcode.KindIndexParam, "remote_shell host argument must be a non-empty string")
	}
	c, ok := args[1].AsString()
	if !ok || c == "" {
		return "", "", pcode.New(pcode.KindIndexParam, "remote_shell cmd argument must be a non-empty string")
	}
	return h, c, nil
}

// dial opens an SSH connection to host (bare hostname or host:port) using
// p's key-based auth. Host key verification is intentionally permissive
// (InsecureIgnoreHostKey): this pack targets already-trusted fleet hosts
// reached over a private network, the same trust model the original
// implementation assumed; pinning host keys is left as a caller extension.
func dial(host string, p Profile) (*ssh.Client, error) {
	addr := host
	if !strings.Contains(host, ":") {
		addr = fmt.Sprintf("%s:%d", host, p.Port)
	}
	config, err := p.clientConfig(ssh.InsecureIgnoreHostKey())
	if err != nil {
		return nil, err
	}
	return ssh.Dial("tcp", addr, config)
}
