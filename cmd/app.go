package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/kamusis/sfd-cli/internal/config"
	"github.com/kamusis/sfd-cli/internal/expand"
	"github.com/kamusis/sfd-cli/internal/logging"
	"github.com/kamusis/sfd-cli/internal/manifest"
	"github.com/kamusis/sfd-cli/internal/named"
	"github.com/kamusis/sfd-cli/internal/project"
	"github.com/kamusis/sfd-cli/internal/selection"
)

// app bundles the collaborators a command needs for one project.
type app struct {
	layout     project.Layout
	cfg        *config.Config
	log        *logging.Logger
	fs         billy.Filesystem
	selections *selection.FileStore
	builder    *manifest.Builder
	named      *named.Store
}

// newApp resolves the project root, loads its config and wires the engine.
func newApp() (*app, error) {
	layout, err := project.Resolve(flagProject)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(layout)
	if err != nil {
		return nil, err
	}

	level, format := cfg.Log.Level, cfg.Log.Format
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagLogFormat != "" {
		format = flagLogFormat
	}
	log := logging.New(logging.Options{Level: level, Format: format, Output: stderr})

	fs := project.OS()
	exp, err := expand.New(fs, expand.Options{
		Extensions: cfg.DeployableExtensions,
		Skip:       cfg.SkipExtensions,
		Ignore:     cfg.Ignore,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	sel := selection.NewFileStore(layout.SelectionFile())
	builder := manifest.NewBuilder(manifest.Options{
		Filesystem: fs,
		Layout:     layout,
		Expander:   exp,
		APIVersion: cfg.APIVersion,
		Logger:     log,
	})
	return &app{
		layout:     layout,
		cfg:        cfg,
		log:        log,
		fs:         fs,
		selections: sel,
		builder:    builder,
		named: named.NewStore(named.Options{
			Filesystem: fs,
			Layout:     layout,
			Builder:    builder,
			Selections: sel,
			Logger:     log,
		}),
	}, nil
}

// absPaths resolves command-line paths against the working directory so the
// stored selection does not depend on where sfd is invoked from later.
func absPaths(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve %s: %w", a, err)
		}
		out = append(out, abs)
	}
	return out, nil
}

// display shortens p to a root-relative path when it lies inside the project.
func (a *app) display(p string) string {
	rel, err := filepath.Rel(a.layout.Root, a.layout.Abs(p))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return filepath.ToSlash(rel)
}
