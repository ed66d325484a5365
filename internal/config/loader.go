package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/kamusis/sfd-cli/internal/project"
)

// EnvPrefix is the prefix of environment overrides (SFD_API_VERSION, ...).
const EnvPrefix = "SFD"

// Load reads .sf-deployer/sfd.yaml if present, applies .sf-deployer/.env and
// SFD_* environment overrides on top of the defaults, and validates the result.
func Load(l project.Layout) (*Config, error) {
	if err := applyDotEnv(l); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	path := Path(l)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("cannot stat config %s: %w", path, err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("api_version", d.APIVersion)
	v.SetDefault("deployable_extensions", d.DeployableExtensions)
	v.SetDefault("skip_extensions", d.SkipExtensions)
	v.SetDefault("ignore", d.Ignore)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}
