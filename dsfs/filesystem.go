/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package dsfs is the filesystem listing pack: the filesystem() table-valued
// function walks a directory tree and streams one row per entry.
package dsfs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/beeql/beeql/pcode"
	"github.com/beeql/beeql/preq"
	"github.com/beeql/beeql/pvalue"
)

// Entry is one filesystem() row: name, full path, whether it is a
// directory, size in bytes and modification time as a Unix timestamp.
type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime int64
}

func (Entry) Columns() pvalue.Columns {
	return pvalue.NewColumns(
		pvalue.Column{Name: "name", Type: pvalue.TypeString},
		pvalue.Column{Name: "path", Type: pvalue.TypeString},
		pvalue.Column{Name: "is_dir", Type: pvalue.TypeBoolean},
		pvalue.Column{Name: "size", Type: pvalue.TypeInteger},
		pvalue.Column{Name: "mod_time", Type: pvalue.TypeInteger},
	)
}

func (e Entry) ToRow() pvalue.Row {
	return pvalue.Row{
		pvalue.String(e.Name),
		pvalue.String(e.Path),
		pvalue.Boolean(e.IsDir),
		pvalue.Integer(e.Size),
		pvalue.Integer(e.ModTime),
	}
}

// Source is the filesystem data source. It declares one optional argument,
// the root directory to walk; an absent or Nil argument defaults to ".".
type Source struct {
	// MaxDepth bounds recursion; 0 means unbounded. Present so a host
	// embedding this pack can cap traversal cost; the default pack loader
	// leaves it at 0.
	MaxDepth int
}

func (Source) Name() string { return "filesystem" }
func (Source) Columns() pvalue.Columns {
	return Entry{}.Columns()
}
func (Source) Args() pvalue.Columns {
	return pvalue.NewColumns(pvalue.Column{Name: "path", Type: pvalue.TypeString})
}

func (s Source) Execute(req *preq.Request, args pvalue.Args) error {
	root := "."
	if len(args) > 0 {
		if v, ok := args[0].AsString(); ok && v != "" {
			root = v
		}
	}

	committer, err := req.NewCommit(s.Columns())
	if err != nil {
		return err
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if s.MaxDepth > 0 && depth(root, path) > s.MaxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		row := Entry{
			Name:    d.Name(),
			Path:    path,
			IsDir:   d.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime().Unix(),
		}.ToRow()
		return committer.CommitRow(row)
	})
	if walkErr != nil {
		cerr := pcode.Newf(pcode.KindInternal, "walk %q: %w", root, walkErr)
		_ = committer.Error(cerr)
		return cerr
	}
	return committer.Ok()
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	if rel == "." {
		return 0
	}
	return strings.Count(rel, string(os.PathSeparator)) + 1
}
