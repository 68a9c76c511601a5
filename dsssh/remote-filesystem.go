/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package dsssh

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pvalue"
)

// RemoteEntry is one remote_filesystem() row: the same shape as
// [github.com/beeql/beeql/dsfs.Entry], but sourced from a remote `ls -la`
// over the SSH session rather than a local directory walk.
type RemoteEntry struct {
	Name  string
	IsDir bool
	Size  int64
}

func (RemoteEntry) Columns() pvalue.Columns {
	return pvalue.NewColumns(
		pvalue.Column{Name: "name", Type: pvalue.TypeString},
		pvalue.Column{Name: "is_dir", Type: pvalue.TypeBoolean},
		pvalue.Column{Name: "size", Type: pvalue.TypeInteger},
	)
}

func (e RemoteEntry) ToRow() pvalue.Row {
	return pvalue.Row{pvalue.String(e.Name), pvalue.Boolean(e.IsDir), pvalue.Integer(e.Size)}
}

// RemoteFilesystemSource is the remote_filesystem(host, path) data source:
// it lists path on host over SSH via `ls -la`, one session per call like
// [RemoteShellSource].
type RemoteFilesystemSource struct {
	Profile Profile
}

func (RemoteFilesystemSource) Name() string { return "remote_filesystem" }
func (RemoteFilesystemSource) Columns() pvalue.Columns {
	return RemoteEntry{}.Columns()
}
func (RemoteFilesystemSource) Args() pvalue.Columns {
	return pvalue.NewColumns(
		pvalue.Column{Name: "host", Type: pvalue.TypeString},
		pvalue.Column{Name: "path", Type: pvalue.TypeString},
	)
}

func (s RemoteFilesystemSource) Execute(req *preq.Request, args pvalue.Args) error {
	if len(args) < 2 {
		cerr := pcode.New(pcode.KindIndexParam, "remote_filesystem(host, path) requires 2 arguments")
		_ = req.Error(cerr)
		return cerr
	}
	host, ok := args[0].AsString()
	if !ok || host == "" {
		cerr := pcode.New(pcode.KindIndexParam, "remote_filesystem host argument must be a non-empty string")
		_ = req.Error(cerr)
		return cerr
	}
	path, ok := args[1].AsString()
	if !ok || path == "" {
		path = "."
	}

	committer, commitErr := req.NewCommit(RemoteEntry{}.Columns())
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

	output, runErr := session.Output(fmt.Sprintf("ls -la %s", shellQuote(path)))
	if runErr != nil {
		cerr := pcode.Newf(pcode.KindInternal, "list %q on %q: %w", path, host, runErr)
		_ = committer.Error(cerr)
		return cerr
	}

	for _, entry := range parseLsLines(string(output)) {
		if commitErr := committer.CommitRow(entry.ToRow()); commitErr != nil {
			return nil // consumer abandoned
		}
	}
	return committer.Ok()
}

// shellQuote wraps path in single quotes for the remote `ls` invocation,
// escaping any embedded single quote the POSIX-shell way.
func shellQuote(path string) string {
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

// parseLsLines parses `ls -la` output into [RemoteEntry] rows, skipping the
// leading "total N" line and the "." / ".." entries. This is a best-effort
// parse of a human-oriented format; it is not expected to handle every
// locale or ls variant.
func parseLsLines(output string) (entries []RemoteEntry) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "total ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 9 {
			continue
		}
		name := strings.Join(fields[8:], " ")
		if name == "." || name == ".." {
			continue
		}
		size, _ := strconv.ParseInt(fields[4], 10, 64)
		entries = append(entries, RemoteEntry{
			Name:  name,
			IsDir: strings.HasPrefix(fields[0], "d"),
			Size:  size,
		})
	}
	return
}
