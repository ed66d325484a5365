package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/kamusis/sfd-cli/internal/project"
)

// DotEnvPath returns the absolute path to the project's .sf-deployer/.env.
func DotEnvPath(l project.Layout) string {
	return filepath.Join(l.StateDir(), ".env")
}

// LoadDotEnv reads .sf-deployer/.env and returns its key/value pairs.
// A missing file yields an empty map.
func LoadDotEnv(l project.Layout) (map[string]string, error) {
	p := DotEnvPath(l)
	m, err := godotenv.Read(p)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", p, err)
	}
	return m, nil
}

// applyDotEnv exports non-empty dotenv values that are not already set in the
// process environment.
func applyDotEnv(l project.Layout) error {
	m, err := LoadDotEnv(l)
	if err != nil {
		return err
	}
	for k, v := range m {
		if v == "" {
			continue
		}
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("cannot export %s: %w", k, err)
		}
	}
	return nil
}

// EnsureDotEnvTemplate creates .sf-deployer/.env if it does not already exist.
func EnsureDotEnvTemplate(l project.Layout) (bool, error) {
	p := DotEnvPath(l)
	if _, err := os.Stat(p); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}

	body := "" +
		"# Overrides for sfd.yaml; real environment variables take precedence.\n" +
		"SFD_API_VERSION=\n" +
		"SFD_LOG_LEVEL=\n"

	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		return false, fmt.Errorf("cannot write dotenv template %s: %w", p, err)
	}
	return true, nil
}
