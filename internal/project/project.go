// Package project locates the Salesforce project root and exposes the paths
// sfd reads and writes under it.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

const (
	// MarkerFile identifies the root of an sfdx project.
	MarkerFile = "sfdx-project.json"
	// StateDirName is the per-project directory holding manifests and state.
	StateDirName = ".sf-deployer"
	// DefaultManifestName is the unnamed manifest rewritten by every build.
	DefaultManifestName = "package.xml"
	// SelectionFileName persists the active selection.
	SelectionFileName = "selection.json"
	// EnvRoot overrides root discovery.
	EnvRoot = "SFD_PROJECT_ROOT"
)

// Layout describes the on-disk paths of one project.
type Layout struct {
	Root string
}

// StateDir returns <root>/.sf-deployer.
func (l Layout) StateDir() string {
	return filepath.Join(l.Root, StateDirName)
}

// DefaultManifest returns <root>/.sf-deployer/package.xml.
func (l Layout) DefaultManifest() string {
	return filepath.Join(l.StateDir(), DefaultManifestName)
}

// SelectionFile returns <root>/.sf-deployer/selection.json.
func (l Layout) SelectionFile() string {
	return filepath.Join(l.StateDir(), SelectionFileName)
}

// Abs resolves p against the project root when it is relative.
func (l Layout) Abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.Root, p)
}

// Resolve picks the project root: explicit wins, then $SFD_PROJECT_ROOT, then
// the nearest ancestor of the working directory holding sfdx-project.json,
// then the working directory itself.
func Resolve(explicit string) (Layout, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvRoot)
	}
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return Layout{}, fmt.Errorf("cannot resolve project root %s: %w", explicit, err)
		}
		return Layout{Root: abs}, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return Layout{}, fmt.Errorf("cannot determine working directory: %w", err)
	}
	if root, ok := findMarker(wd); ok {
		return Layout{Root: root}, nil
	}
	return Layout{Root: wd}, nil
}

func findMarker(dir string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, MarkerFile)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// OS returns a billy filesystem over the host filesystem that accepts
// absolute paths as well as paths relative to the working directory.
func OS() billy.Filesystem {
	return osfs.New("")
}
