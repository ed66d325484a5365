package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/sfd-cli/internal/project"
)

// FileName is the project config file inside .sf-deployer/.
const FileName = "sfd.yaml"

// DefaultAPIVersion is written into every manifest's <version> element.
const DefaultAPIVersion = "60.0"

// ErrInvalidConfig indicates a config value that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Config is the in-memory representation of .sf-deployer/sfd.yaml.
type Config struct {
	APIVersion           string    `yaml:"api_version" mapstructure:"api_version"`
	DeployableExtensions []string  `yaml:"deployable_extensions" mapstructure:"deployable_extensions"`
	SkipExtensions       []string  `yaml:"skip_extensions" mapstructure:"skip_extensions"`
	Ignore               []string  `yaml:"ignore" mapstructure:"ignore"`
	Log                  LogConfig `yaml:"log" mapstructure:"log"`
}

// Path returns the absolute path to <root>/.sf-deployer/sfd.yaml.
func Path(l project.Layout) string {
	return filepath.Join(l.StateDir(), FileName)
}

// DefaultConfig returns the config written by sfd init.
func DefaultConfig() *Config {
	return &Config{
		APIVersion: DefaultAPIVersion,
		DeployableExtensions: []string{
			".cls", ".trigger", ".xml", ".page", ".app",
			".cmp", ".component", ".js", ".ts", ".html", ".css",
		},
		SkipExtensions: []string{".txt", ".md", ".log"},
		Ignore: []string{
			"**/node_modules/**",
			"**/.git/**",
			"**/coverage/**",
			"**/dist/**",
			"**/out/**",
			"**/__tests__/**",
		},
		Log: LogConfig{Level: "info", Format: "pretty"},
	}
}

// Validate reports the first unusable value.
func (c *Config) Validate() error {
	if c.APIVersion == "" {
		return fmt.Errorf("%w: api_version must not be empty", ErrInvalidConfig)
	}
	if len(c.DeployableExtensions) == 0 {
		return fmt.Errorf("%w: deployable_extensions must list at least one extension", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "", "pretty", "json":
	default:
		return fmt.Errorf("%w: log.format must be pretty or json, got %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Save marshals cfg and writes it to .sf-deployer/sfd.yaml.
func Save(l project.Layout, cfg *Config) error {
	path := Path(l)
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
