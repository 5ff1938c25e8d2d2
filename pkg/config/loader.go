package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotpatch/pkg/errors"
	"github.com/arthur-debert/dotpatch/pkg/logging"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Keys shared by the koanf tree, flag names and environment variables
const (
	KeyDirectory = "directory"
	KeyTarget    = "target"
	KeyLogLevel  = "log-level"

	// EnvPrefix prefixes the environment variables read by Load
	EnvPrefix = "DOTPATCH_"

	// DefaultDirectory is the patch root used when nothing else is configured
	DefaultDirectory = "patches"

	// DefaultLogLevel is the log level used when nothing else is configured
	DefaultLogLevel = "info"
)

// Config is the configuration of a single run
type Config struct {
	Directory string `koanf:"directory"`
	Target    string `koanf:"target"`
	LogLevel  string `koanf:"log-level"`
}

// Defaults returns the built-in configuration values
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		KeyDirectory: DefaultDirectory,
		KeyTarget:    HomeDirectory(),
		KeyLogLevel:  DefaultLogLevel,
	}
}

// HomeDirectory returns the value of HOME, falling back to os.UserHomeDir.
// It returns "" when neither is available.
func HomeDirectory() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// envKey maps DOTPATCH_LOG_LEVEL to log-level
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
}

// Load builds the run configuration. flags may be nil; when given, only
// flags set on the command line override defaults and environment.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 3. Command line
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flags")
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Directory) == "" {
		return errors.New(errors.ErrInvalidInput, "patch directory must not be empty").
			WithDetail("key", KeyDirectory)
	}
	if strings.TrimSpace(c.Target) == "" {
		return errors.New(errors.ErrInvalidInput, "target directory must not be empty; set --target or HOME").
			WithDetail("key", KeyTarget)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
