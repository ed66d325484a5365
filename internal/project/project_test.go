package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutPaths(t *testing.T) {
	l := Layout{Root: filepath.FromSlash("/work/proj")}

	assert.Equal(t, filepath.FromSlash("/work/proj/.sf-deployer"), l.StateDir())
	assert.Equal(t, filepath.FromSlash("/work/proj/.sf-deployer/package.xml"), l.DefaultManifest())
	assert.Equal(t, filepath.FromSlash("/work/proj/.sf-deployer/selection.json"), l.SelectionFile())
	assert.Equal(t, filepath.FromSlash("/work/proj/force-app/a.cls"), l.Abs("force-app/a.cls"))
	assert.Equal(t, filepath.FromSlash("/elsewhere/a.cls"), l.Abs(filepath.FromSlash("/elsewhere/a.cls")))
}

func TestResolve_Explicit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvRoot, "")

	l, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, l.Root)
}

func TestResolve_Env(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvRoot, dir)

	l, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, dir, l.Root)
}

func TestResolve_FindsMarkerInAncestor(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "force-app", "main", "default")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, MarkerFile), []byte("{}"), 0o644))
	t.Setenv(EnvRoot, "")
	t.Chdir(nested)

	l, err := Resolve("")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(l.Root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOS_ReadsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("hi"), 0o644))

	data, err := util.ReadFile(OS(), p)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}
