package config

import (
	"testing"

	"github.com/arthur-debert/dotpatch/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP(KeyDirectory, "d", DefaultDirectory, "")
	flags.String(KeyTarget, "/flag-default-is-ignored", "")
	flags.String(KeyLogLevel, DefaultLogLevel, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, &Config{Directory: "patches", Target: "/home/tester", LogLevel: "info"}, cfg)
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "/home/tester", cfg.Target)
	assert.Equal(t, "patches", cfg.Directory)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("DOTPATCH_DIRECTORY", "/srv/patches")
	t.Setenv("DOTPATCH_LOG_LEVEL", "debug")

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "/srv/patches", cfg.Directory)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/home/tester", cfg.Target)
}

func TestLoad_FlagsWin(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("DOTPATCH_DIRECTORY", "/srv/patches")

	cfg, err := Load(newFlags(t, "-d", "mine", "--target", "/tmp/out", "--log-level", "trace"))
	require.NoError(t, err)
	assert.Equal(t, &Config{Directory: "mine", Target: "/tmp/out", LogLevel: "trace"}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"empty directory", []string{"--directory", ""}},
		{"unknown log level", []string{"--log-level", "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", "/home/tester")
			_, err := Load(newFlags(t, tt.args...))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		})
	}
}

func TestValidate_MissingTarget(t *testing.T) {
	cfg := &Config{Directory: "patches", LogLevel: "info"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, KeyTarget, errors.GetErrorDetails(err)["key"])
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log-level", envKey("DOTPATCH_LOG_LEVEL"))
	assert.Equal(t, "target", envKey("DOTPATCH_TARGET"))
}
