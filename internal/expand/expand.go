// Package expand turns a selection of files and directories into the flat
// list of candidate files that classification runs over.
package expand

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"

	"github.com/kamusis/sfd-cli/internal/logging"
)

// Options controls which files an expansion yields.
type Options struct {
	// Extensions lists the deployable extensions (".cls") collected from
	// selected directories.
	Extensions []string
	// Skip lists extensions dropped even when a file is selected directly.
	Skip []string
	// Ignore holds doublestar patterns, relative to each selected directory,
	// for files that are never collected.
	Ignore []string
}

// Expander walks selections through a billy filesystem.
type Expander struct {
	fs      billy.Filesystem
	opts    Options
	include string
	prune   []string
	skip    map[string]bool
	log     *logging.Logger
}

// New builds an Expander. Patterns in opts.Ignore are checked up front.
func New(fs billy.Filesystem, opts Options, log *logging.Logger) (*Expander, error) {
	for _, p := range opts.Ignore {
		if _, err := doublestar.Match(p, "x"); err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
	}
	var prune []string
	for _, p := range opts.Ignore {
		if dirPattern, ok := strings.CutSuffix(p, "/**"); ok && dirPattern != "" {
			prune = append(prune, dirPattern)
		}
	}
	skip := make(map[string]bool, len(opts.Skip))
	for _, ext := range opts.Skip {
		skip[strings.ToLower(ext)] = true
	}
	return &Expander{
		fs:      fs,
		opts:    opts,
		include: includePattern(opts.Extensions),
		prune:   prune,
		skip:    skip,
		log:     logging.OrNop(log).WithComponent("expand"),
	}, nil
}

// includePattern builds "**/*.{cls,trigger,...}" from the extension list.
func includePattern(exts []string) string {
	names := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimPrefix(strings.ToLower(e), ".")
		if e != "" {
			names = append(names, e)
		}
	}
	if len(names) == 1 {
		return "**/*." + names[0]
	}
	return "**/*.{" + strings.Join(names, ",") + "}"
}

// Expand stats every selected path and returns the candidate files with
// forward slashes. Directories are walked concurrently; results keep the
// order of the selection. The first stat or walk failure aborts the batch.
// Files reachable from two selected directories appear twice.
func (e *Expander) Expand(ctx context.Context, selection []string) ([]string, error) {
	results := make([][]string, len(selection))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range selection {
		g.Go(func() error {
			files, err := e.expandOne(ctx, p)
			if err != nil {
				return err
			}
			results[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []string
	for _, files := range results {
		out = append(out, files...)
	}
	return out, nil
}

func (e *Expander) expandOne(ctx context.Context, p string) ([]string, error) {
	info, err := e.fs.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", p, err)
	}
	if !info.IsDir() {
		if e.skip[strings.ToLower(filepath.Ext(p))] {
			e.log.Debug().Str("path", p).Msg("skipping non-deployable file")
			return nil, nil
		}
		return []string{filepath.ToSlash(p)}, nil
	}
	return e.walk(ctx, p)
}

// walk lists dir itself through Stat semantics so a selected directory that
// is a symlink is followed, then walks each child. Results stay under dir.
func (e *Expander) walk(ctx context.Context, dir string) ([]string, error) {
	children, err := e.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot walk %s: %w", dir, err)
	}

	var out []string
	visit := func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		// Dot-files and dot-directories are never collected.
		if strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if e.prunable(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !e.matches(rel) {
			return nil
		}
		out = append(out, filepath.ToSlash(path))
		return nil
	}

	for _, child := range children {
		if strings.HasPrefix(child.Name(), ".") {
			continue
		}
		if err := util.Walk(e.fs, filepath.Join(dir, child.Name()), visit); err != nil {
			return nil, fmt.Errorf("cannot walk %s: %w", dir, err)
		}
	}
	return out, nil
}

// prunable reports whether every file below the directory rel is ignored,
// which holds when an ignore pattern of the form "<dir pattern>/**" matches
// rel itself.
func (e *Expander) prunable(rel string) bool {
	for _, p := range e.prune {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func (e *Expander) matches(rel string) bool {
	if ok, _ := doublestar.Match(e.include, rel); !ok {
		return false
	}
	for _, p := range e.opts.Ignore {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	return true
}
