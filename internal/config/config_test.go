package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/sfd-cli/internal/project"
)

// isolateEnv clears the SFD_* keys a test may touch and restores them afterwards.
func isolateEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func newLayout(t *testing.T) project.Layout {
	t.Helper()
	return project.Layout{Root: t.TempDir()}
}

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "60.0", cfg.APIVersion)
	assert.Contains(t, cfg.DeployableExtensions, ".cls")
	assert.Equal(t, []string{".txt", ".md", ".log"}, cfg.SkipExtensions)
	assert.Contains(t, cfg.Ignore, "**/node_modules/**")
}

func TestValidate_Rejects(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIVersion = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.DeployableExtensions = nil
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Log.Format = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	isolateEnv(t, "SFD_API_VERSION", "SFD_LOG_LEVEL")
	l := newLayout(t)

	cfg, err := Load(l)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	isolateEnv(t, "SFD_API_VERSION", "SFD_LOG_LEVEL")
	l := newLayout(t)

	want := DefaultConfig()
	want.APIVersion = "61.0"
	want.SkipExtensions = []string{".txt"}
	require.NoError(t, Save(l, want))

	_, err := os.Stat(filepath.Join(l.Root, ".sf-deployer", "sfd.yaml"))
	require.NoError(t, err)

	got, err := Load(l)
	require.NoError(t, err)
	assert.Equal(t, "61.0", got.APIVersion)
	assert.Equal(t, []string{".txt"}, got.SkipExtensions)
	assert.Equal(t, want.Ignore, got.Ignore)
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolateEnv(t, "SFD_API_VERSION", "SFD_LOG_LEVEL")
	l := newLayout(t)
	require.NoError(t, os.MkdirAll(l.StateDir(), 0o755))
	require.NoError(t, os.WriteFile(Path(l), []byte("api_version: [\n"), 0o644))

	_, err := Load(l)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateEnv(t, "SFD_API_VERSION", "SFD_LOG_LEVEL")
	l := newLayout(t)
	cfg := DefaultConfig()
	cfg.APIVersion = "59.0"
	require.NoError(t, Save(l, cfg))
	t.Setenv("SFD_API_VERSION", "62.0")
	t.Setenv("SFD_LOG_LEVEL", "debug")

	got, err := Load(l)
	require.NoError(t, err)
	assert.Equal(t, "62.0", got.APIVersion)
	assert.Equal(t, "debug", got.Log.Level)
}

func TestLoad_DotEnvFillsUnsetKeys(t *testing.T) {
	isolateEnv(t, "SFD_API_VERSION", "SFD_LOG_LEVEL")
	l := newLayout(t)
	require.NoError(t, os.MkdirAll(l.StateDir(), 0o755))
	require.NoError(t, os.WriteFile(DotEnvPath(l), []byte("# comment\nSFD_API_VERSION=58.0\nSFD_LOG_LEVEL=\n"), 0o600))

	got, err := Load(l)
	require.NoError(t, err)
	assert.Equal(t, "58.0", got.APIVersion)
	assert.Equal(t, "info", got.Log.Level)
}

func TestLoad_RealEnvBeatsDotEnv(t *testing.T) {
	isolateEnv(t, "SFD_API_VERSION", "SFD_LOG_LEVEL")
	l := newLayout(t)
	require.NoError(t, os.MkdirAll(l.StateDir(), 0o755))
	require.NoError(t, os.WriteFile(DotEnvPath(l), []byte("SFD_API_VERSION=58.0\n"), 0o600))
	t.Setenv("SFD_API_VERSION", "63.0")

	got, err := Load(l)
	require.NoError(t, err)
	assert.Equal(t, "63.0", got.APIVersion)
}

func TestLoadDotEnv_NotExist(t *testing.T) {
	m, err := LoadDotEnv(newLayout(t))
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestEnsureDotEnvTemplate(t *testing.T) {
	l := newLayout(t)
	require.NoError(t, os.MkdirAll(l.StateDir(), 0o755))

	created, err := EnsureDotEnvTemplate(l)
	require.NoError(t, err)
	assert.True(t, created)

	m, err := LoadDotEnv(l)
	require.NoError(t, err)
	assert.Contains(t, m, "SFD_API_VERSION")

	created, err = EnsureDotEnvTemplate(l)
	require.NoError(t, err)
	assert.False(t, created)
}
