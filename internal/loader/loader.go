// Package loader reads schema sources for a generation run.
package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idlbridge/idlbridge/internal/errors"
)

// Source is the raw text of one schema file.
type Source struct {
	// Path is the absolute, cleaned path the text was read from.
	Path string
	// RelPath is Path relative to the root directory, slash-separated.
	RelPath string
	// Text is the file content.
	Text string
}

// Dir returns the slash-separated directory of the source relative to the
// root directory, "." for files placed directly in the root.
func (s Source) Dir() string {
	return filepath.ToSlash(filepath.Dir(filepath.FromSlash(s.RelPath)))
}

// Loader reads schema files relative to a root directory.
type Loader struct {
	root    string
	workers int
}

// New returns a Loader resolving relative paths against root. workers caps
// the number of concurrent reads; zero or less means no limit.
func New(root string, workers int) (*Loader, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.InputRead(err, "resolve root directory %s", root)
	}
	return &Loader{root: abs, workers: workers}, nil
}

// Root returns the absolute root directory.
func (l *Loader) Root() string {
	return l.root
}

// ReadAll reads every path and returns the sources in input order, one per
// path. If any single read fails the whole call fails and no sources are
// returned.
//
// Parameters:
//   - ctx: Stops launching further reads once a read has failed.
//   - paths: Schema paths, absolute or relative to the root directory.
//
// Returns:
//   - []Source: The sources, index-aligned with paths.
//   - error: An InputReadError naming the first path that failed.
func (l *Loader) ReadAll(ctx context.Context, paths []string) ([]Source, error) {
	sources := make([]Source, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if l.workers > 0 {
		g.SetLimit(l.workers)
	}

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := l.read(p)
			if err != nil {
				return err
			}
			sources[i] = src
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

func (l *Loader) read(p string) (Source, error) {
	abs := p
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(l.root, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(l.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Source{}, errors.WithHintf(
			errors.InputRead(err, "schema %s is outside the root directory %s", p, l.root),
			"schema paths are resolved against the root directory %s", l.root)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return Source{}, errors.WithHintf(
			errors.InputRead(err, "read schema %s", p),
			"schema paths are resolved against the root directory %s", l.root)
	}

	return Source{
		Path:    abs,
		RelPath: filepath.ToSlash(rel),
		Text:    string(data),
	}, nil
}
