// Package config resolves the bootstrap settings from defaults, an optional
// YAML file, the environment and command line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultAddress is the Temporal frontend address used when none is set.
	DefaultAddress = "localhost:7233"
	// DefaultNamespace is the Temporal namespace used when none is set.
	DefaultNamespace = "default"
)

// Config holds the bootstrap configuration.
type Config struct {
	Temporal struct {
		Address   string `mapstructure:"address"`
		Namespace string `mapstructure:"namespace"`
	} `mapstructure:"temporal"`
	Log struct {
		Debug bool `mapstructure:"debug"`
		// Format is "json", "terminal" or empty to pick based on the output.
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Telemetry struct {
		DisableTracing bool `mapstructure:"disable_tracing"`
		DisableMetrics bool `mapstructure:"disable_metrics"`
	} `mapstructure:"telemetry"`
}

// Flag names bound by Load when present in the flag set.
const (
	FlagAddress   = "address"
	FlagNamespace = "namespace"
	FlagDebug     = "debug"
)

var flagKeys = map[string]string{
	FlagAddress:   "temporal.address",
	FlagNamespace: "temporal.namespace",
	FlagDebug:     "log.debug",
}

// Load reads the configuration. path names an optional YAML file; flags may be
// nil. Environment variables are the upper-cased keys with dots replaced by
// underscores, e.g. TEMPORAL_NAMESPACE. Empty values fall back to defaults.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("temporal.address", DefaultAddress)
	v.SetDefault("temporal.namespace", DefaultNamespace)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.format", "")
	v.SetDefault("telemetry.disable_tracing", false)
	v.SetDefault("telemetry.disable_metrics", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Temporal.Address == "" {
		cfg.Temporal.Address = DefaultAddress
	}
	if cfg.Temporal.Namespace == "" {
		cfg.Temporal.Namespace = DefaultNamespace
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "", "json", "terminal":
	default:
		return fmt.Errorf("invalid log format %q: must be json or terminal", c.Log.Format)
	}
	if strings.ContainsAny(c.Temporal.Namespace, " \t\n") {
		return errors.New("temporal namespace must not contain whitespace")
	}
	return nil
}
