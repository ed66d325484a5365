// Package named saves and restores named snapshots of a selection together
// with the manifest rendered from it.
//
// A named manifest is the package.xml document prefixed by three comment
// lines:
//
//	<!-- SF Deployer Named Manifest: <name> -->
//	<!-- Created: <ISO-8601 timestamp> -->
//	<!-- Selected Paths: <JSON array of the selection> -->
package named

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/kamusis/sfd-cli/internal/logging"
	"github.com/kamusis/sfd-cli/internal/manifest"
	"github.com/kamusis/sfd-cli/internal/project"
	"github.com/kamusis/sfd-cli/internal/selection"
)

// timestampLayout matches JavaScript's Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// maxMissingLogged caps how many missing paths a load logs individually.
const maxMissingLogged = 5

var (
	unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	headerNameRe    = regexp.MustCompile(`<!-- SF Deployer Named Manifest: (.+?) -->`)
	headerCreatedRe = regexp.MustCompile(`<!-- Created: (.+?) -->`)
	selectedPathsRe = regexp.MustCompile(`<!-- Selected Paths: (.+?) -->`)
)

// Builder renders and writes the default manifest for a selection.
type Builder interface {
	Build(ctx context.Context, selection []string) (*manifest.Result, error)
}

// Options configures a Store. Every field except Logger and Now is required.
type Options struct {
	Filesystem billy.Filesystem
	Layout     project.Layout
	Builder    Builder
	Selections selection.Store
	Logger     *logging.Logger
	Now        func() time.Time
}

// Store persists named manifests under <root>/.sf-deployer/.
type Store struct {
	fs         billy.Filesystem
	layout     project.Layout
	builder    Builder
	selections selection.Store
	log        *logging.Logger
	now        func() time.Time
}

// NewStore creates a Store from opts.
func NewStore(opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		fs:         opts.Filesystem,
		layout:     opts.Layout,
		builder:    opts.Builder,
		selections: opts.Selections,
		log:        logging.OrNop(opts.Logger).WithComponent("named"),
		now:        now,
	}
}

// Saved describes a written named manifest.
type Saved struct {
	Path string
	XML  string // full file content, header included
}

// Loaded is the outcome of restoring a named manifest.
type Loaded struct {
	Name                string
	Path                string
	XML                 string
	Selections          []string // as recorded in the header
	ValidatedSelections []string // recorded paths that still exist
	Missing             []string // recorded paths that no longer exist
}

// Summary renders the one-line result shown to users.
func (l *Loaded) Summary() string {
	if len(l.Missing) > 0 {
		return fmt.Sprintf("Loaded manifest %q with %d/%d valid files (%d missing)",
			l.Name, len(l.ValidatedSelections), len(l.Selections), len(l.Missing))
	}
	return fmt.Sprintf("Loaded manifest %q with %d selections", l.Name, len(l.ValidatedSelections))
}

// Sanitize replaces every character outside [A-Za-z0-9._-] with '_'.
func Sanitize(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// escapeComment keeps free text from closing the surrounding XML comment.
func escapeComment(s string) string {
	return strings.ReplaceAll(s, "--", "- -")
}

// ensureWithin fails unless target resolves strictly below dir. It is
// enforced independently of Sanitize.
func ensureWithin(dir, target string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", dir, err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", target, err)
	}
	if !strings.HasPrefix(absTarget, absDir+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, target)
	}
	return nil
}

// Save builds sel, which also rewrites the default package.xml, and stores
// the result under <name>.xml with the selection embedded in its header.
func (s *Store) Save(ctx context.Context, sel []string, name string) (*Saved, error) {
	if len(sel) == 0 {
		return nil, fmt.Errorf("no files selected to save: %w", manifest.ErrEmptySelection)
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	dir := s.layout.StateDir()
	path := filepath.Join(dir, Sanitize(name)+".xml")
	if err := ensureWithin(dir, path); err != nil {
		return nil, err
	}

	res, err := s.builder.Build(ctx, sel)
	if err != nil {
		return nil, err
	}

	selJSON, err := encodeSelection(sel)
	if err != nil {
		return nil, err
	}
	content := fmt.Sprintf("<!-- SF Deployer Named Manifest: %s -->\n<!-- Created: %s -->\n<!-- Selected Paths: %s -->\n%s",
		escapeComment(name),
		s.now().UTC().Format(timestampLayout),
		selJSON,
		res.XML,
	)

	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	if err := util.WriteFile(s.fs, path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("cannot write named manifest %s: %w", path, err)
	}

	s.log.Info().Str("name", name).Str("path", path).Int("selections", len(sel)).Msg("saved named manifest")
	return &Saved{Path: path, XML: content}, nil
}

func encodeSelection(sel []string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(sel); err != nil {
		return "", fmt.Errorf("cannot encode selection: %w", err)
	}
	// "--" only occurs inside string literals; the unicode escape keeps the
	// comment well-formed and decodes back to the same path.
	return strings.ReplaceAll(strings.TrimSuffix(buf.String(), "\n"), "--", `-\u002d`), nil
}

// Manifest is a named manifest as read from disk.
type Manifest struct {
	Name       string    // from the header; the requested name when absent
	Created    time.Time // zero when the header is absent or malformed
	Path       string
	XML        string
	Selections []string // recorded selection, blank entries removed
}

// Inspect reads and parses a named manifest without touching the selection.
// It tries <name>.xml first and then the bare name.
func (s *Store) Inspect(name string) (*Manifest, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	dir := s.layout.StateDir()
	sanitized := Sanitize(name)
	var (
		path string
		data []byte
	)
	for _, try := range []string{
		filepath.Join(dir, sanitized+".xml"),
		filepath.Join(dir, sanitized),
	} {
		if err := ensureWithin(dir, try); err != nil {
			return nil, err
		}
		b, err := util.ReadFile(s.fs, try)
		if err != nil {
			continue
		}
		path, data = try, b
		break
	}
	if path == "" {
		return nil, fmt.Errorf("%w: %q", ErrManifestNotFound, name)
	}

	content := string(data)
	if !strings.Contains(content, "<Package") || !strings.Contains(content, "</Package>") {
		return nil, fmt.Errorf("%w: %q", ErrManifestCorrupt, name)
	}

	m := &Manifest{
		Name:       name,
		Path:       path,
		XML:        content,
		Selections: s.parseSelections(content),
	}
	if sm := headerNameRe.FindStringSubmatch(content); sm != nil {
		m.Name = sm[1]
	}
	if sm := headerCreatedRe.FindStringSubmatch(content); sm != nil {
		if t, err := time.Parse(time.RFC3339Nano, sm[1]); err == nil {
			m.Created = t
		}
	}
	return m, nil
}

// Load reads a named manifest, re-checks every recorded path against the
// filesystem, and makes the surviving paths the active selection.
func (s *Store) Load(name string) (*Loaded, error) {
	m, err := s.Inspect(name)
	if err != nil {
		return nil, err
	}

	validated, missing := s.Revalidate(m.Selections)

	if len(missing) > 0 {
		shown := missing
		if len(shown) > maxMissingLogged {
			shown = shown[:maxMissingLogged]
		}
		ev := s.log.Warn().Str("name", name).Int("missing", len(missing)).Strs("paths", shown)
		if extra := len(missing) - len(shown); extra > 0 {
			ev = ev.Int("more", extra)
		}
		ev.Msg("named manifest references missing paths")
	}

	if err := s.selections.Set(validated); err != nil {
		return nil, fmt.Errorf("cannot update selection: %w", err)
	}

	l := &Loaded{
		Name:                name,
		Path:                m.Path,
		XML:                 m.XML,
		Selections:          m.Selections,
		ValidatedSelections: validated,
		Missing:             missing,
	}
	s.log.Info().Str("path", m.Path).Msg(l.Summary())
	return l, nil
}

// parseSelections extracts the JSON selection from the header. A header that
// does not parse yields an empty selection.
func (s *Store) parseSelections(content string) []string {
	out := []string{}
	m := selectedPathsRe.FindStringSubmatch(content)
	if m == nil {
		return out
	}
	var raw []any
	if err := json.Unmarshal([]byte(m[1]), &raw); err != nil {
		s.log.Warn().Err(err).Msg("could not parse selected paths from manifest header, falling back to empty selection")
		return out
	}
	for _, v := range raw {
		if p, ok := v.(string); ok && strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// Revalidate splits recorded into paths that exist and paths that do not.
// Relative entries resolve against the project root.
func (s *Store) Revalidate(recorded []string) (validated, missing []string) {
	validated = []string{}
	missing = []string{}
	for _, p := range recorded {
		if _, err := s.fs.Stat(s.layout.Abs(p)); err != nil {
			missing = append(missing, p)
			continue
		}
		validated = append(validated, p)
	}
	return validated, missing
}

// List returns the sorted names of saved manifests, excluding the default
// package.xml. A missing manifests directory yields an empty list.
func (s *Store) List() ([]string, error) {
	dir := s.layout.StateDir()
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", dir, err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xml") || e.Name() == project.DefaultManifestName {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".xml"))
	}
	sort.Strings(names)
	return names, nil
}
