// Package manifest classifies a selection into metadata types and renders
// the package.xml deployment descriptor.
package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/kamusis/sfd-cli/internal/classify"
	"github.com/kamusis/sfd-cli/internal/config"
	"github.com/kamusis/sfd-cli/internal/expand"
	"github.com/kamusis/sfd-cli/internal/logging"
	"github.com/kamusis/sfd-cli/internal/project"
)

// Result is a rendered manifest.
type Result struct {
	Path  string // where XML was written; empty for Assemble-only callers
	XML   string
	Types *TypeMap
	Files []string // candidate files the types were derived from
}

// Options configures a Builder. Filesystem and Expander are required.
type Options struct {
	Filesystem billy.Filesystem
	Layout     project.Layout
	Expander   *expand.Expander
	Classifier *classify.Classifier // defaults to the built-in rule table
	APIVersion string               // defaults to config.DefaultAPIVersion
	Logger     *logging.Logger
}

// Builder turns selections into package.xml documents.
type Builder struct {
	fs         billy.Filesystem
	layout     project.Layout
	expander   *expand.Expander
	classifier *classify.Classifier
	version    string
	log        *logging.Logger
}

// NewBuilder creates a Builder from opts.
func NewBuilder(opts Options) *Builder {
	b := &Builder{
		fs:         opts.Filesystem,
		layout:     opts.Layout,
		expander:   opts.Expander,
		classifier: opts.Classifier,
		version:    opts.APIVersion,
		log:        logging.OrNop(opts.Logger).WithComponent("manifest"),
	}
	if b.classifier == nil {
		b.classifier = classify.New()
	}
	if b.version == "" {
		b.version = config.DefaultAPIVersion
	}
	return b
}

// Assemble expands and classifies selection and renders the document without
// writing it. Relative entries resolve against the project root.
func (b *Builder) Assemble(ctx context.Context, selection []string) (*Result, error) {
	if len(selection) == 0 {
		return nil, ErrEmptySelection
	}

	paths := make([]string, len(selection))
	for i, p := range selection {
		paths[i] = b.layout.Abs(p)
	}

	tCollect := time.Now()
	files, err := b.expander.Expand(ctx, paths)
	if err != nil {
		return nil, err
	}
	collectDur := time.Since(tCollect)

	tClassify := time.Now()
	types := b.fold(files)
	classifyDur := time.Since(tClassify)

	if types.Len() == 0 {
		b.log.Warn().Int("files", len(files)).Strs("paths", files).Msg("no recognizable metadata types")
		return nil, &NoRecognizedTypesError{Files: files}
	}

	b.log.Debug().
		Dur("collect", collectDur).
		Dur("classify", classifyDur).
		Int("files", len(files)).
		Int("types", types.Len()).
		Msg("selection classified")

	return &Result{
		XML:   Render(types, b.version),
		Types: types,
		Files: files,
	}, nil
}

func (b *Builder) fold(files []string) *TypeMap {
	types := NewTypeMap()
	for _, f := range files {
		r := b.classifier.Classify(f)
		switch r.Outcome {
		case classify.Matched:
			types.Add(r.Type, r.Member)
			b.log.Debug().Str("path", f).Str("type", r.Type).Str("member", r.Member).Str("rule", r.Rule).Msg("classified")
		case classify.Skipped:
			b.log.Debug().Str("path", f).Str("rule", r.Rule).Msg("skipping companion file")
		default:
			b.log.Debug().Str("path", f).Str("ext", filepath.Ext(f)).Msg("no metadata type match")
		}
	}
	return types
}

// Build assembles selection and overwrites <root>/.sf-deployer/package.xml
// with the result.
func (b *Builder) Build(ctx context.Context, selection []string) (*Result, error) {
	start := time.Now()
	res, err := b.Assemble(ctx, selection)
	if err != nil {
		return nil, err
	}

	path := b.layout.DefaultManifest()
	tWrite := time.Now()
	if err := b.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := util.WriteFile(b.fs, path, []byte(res.XML), 0o644); err != nil {
		return nil, fmt.Errorf("cannot write manifest %s: %w", path, err)
	}
	res.Path = path

	b.log.Info().
		Str("path", path).
		Strs("types", res.Types.Types()).
		Int("files", len(res.Files)).
		Dur("write", time.Since(tWrite)).
		Dur("total", time.Since(start)).
		Msg("manifest written")
	return res, nil
}
