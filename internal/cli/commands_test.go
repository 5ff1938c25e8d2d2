package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotpatch/pkg/errors"
	"github.com/arthur-debert/dotpatch/pkg/pipeline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	source string
	target string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	env := testEnv{
		source: filepath.Join(root, "patches"),
		target: filepath.Join(root, "home"),
	}
	require.NoError(t, os.MkdirAll(env.source, 0755))
	require.NoError(t, os.MkdirAll(env.target, 0755))
	return env
}

func (e testEnv) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(e.source, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// captureLogs runs fn with the global logger and os.Stderr redirected and
// returns everything both received. The global level starts at debug so a
// line logged before the logger is configured is not filtered out.
func captureLogs(t *testing.T, fn func()) string {
	t.Helper()

	origStderr, origLogger, origLevel := os.Stderr, log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		os.Stderr = origStderr
		log.Logger = origLogger
		zerolog.SetGlobalLevel(origLevel)
	})

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	var early bytes.Buffer
	log.Logger = zerolog.New(&early)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	fn()

	os.Stderr = origStderr
	require.NoError(t, w.Close())
	stderr, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	return early.String() + string(stderr)
}

func TestRootCmd_FlagDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cmd := NewRootCmd()
	flags := cmd.Flags()

	directory, err := flags.GetString("directory")
	require.NoError(t, err)
	assert.Equal(t, "patches", directory)

	target, err := flags.GetString("target")
	require.NoError(t, err)
	assert.Equal(t, home, target)

	level, err := flags.GetString("log-level")
	require.NoError(t, err)
	assert.Equal(t, "info", level)

	assert.NotNil(t, flags.ShorthandLookup("d"))
}

func TestRootCmd_AssemblesTargets(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "dot-foo.d/000", "hello")
	env.write(t, "dot-foo.d/001", "world")
	env.write(t, "dot-bar.json.d/000", `{"foo": "bar"}`)
	env.write(t, "dot-bar.json.d/001", `{"baz": "qux"}`)

	out, err := execute(t, "--directory", env.source, "--target", env.target, "--log-level", "error")
	require.NoError(t, err)

	text, err := os.ReadFile(filepath.Join(env.target, ".foo"))
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", string(text))

	doc, err := os.ReadFile(filepath.Join(env.target, ".bar.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"foo": "bar", "baz": "qux"}`, string(doc))

	assert.Contains(t, out, "updated")
	assert.Contains(t, out, filepath.Join(env.target, ".foo"))
	assert.Contains(t, out, "2 fragments")
}

func TestRootCmd_LogLevelErrorHidesDebugOutput(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "dot-foo.json.d/000", `{"a": 1}`)

	var err error
	logs := captureLogs(t, func() {
		_, err = execute(t, "--directory", env.source, "--target", env.target, "--log-level", "error")
	})
	require.NoError(t, err)

	assert.NotContains(t, logs, "Configuration loaded")
	assert.NotContains(t, logs, `"level":"debug"`)
	assert.NotContains(t, logs, "DBG")
	assert.NotContains(t, logs, "INF")
}

func TestRootCmd_LogLevelDebugShowsConfiguration(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "dot-foo.d/000", "hello")

	var err error
	logs := captureLogs(t, func() {
		_, err = execute(t, "--directory", env.source, "--target", env.target, "--log-level", "debug")
	})
	require.NoError(t, err)

	assert.Contains(t, logs, "DBG")
	assert.Contains(t, logs, "Configuration loaded")
	assert.NotContains(t, logs, `"level":"debug"`)
}

func TestRootCmd_TargetFromEnvironment(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("HOME", env.target)
	env.write(t, "dot-vimrc.d/000", "set number")

	_, err := execute(t, "-d", env.source, "--log-level", "error")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(env.target, ".vimrc"))
	require.NoError(t, err)
	assert.Equal(t, "set number", string(content))
}

func TestRootCmd_ReportsFailuresAfterAllTargets(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "dot-a.json.d/000", `{"broken": }`)
	env.write(t, "dot-b.d/000", "still written")

	out, err := execute(t, "--directory", env.source, "--target", env.target, "--log-level", "error")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParse))
	assert.Contains(t, out, "failed")

	content, readErr := os.ReadFile(filepath.Join(env.target, ".b"))
	require.NoError(t, readErr)
	assert.Equal(t, "still written", string(content))
}

func TestRootCmd_MissingPatchRoot(t *testing.T) {
	env := newTestEnv(t)

	_, err := execute(t, "--directory", filepath.Join(env.source, "nope"), "--target", env.target, "--log-level", "error")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirList))
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	env := newTestEnv(t)

	_, err := execute(t, "--directory", env.source, "--target", env.target, "--log-level", "chatty")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRootCmd_RejectsArguments(t *testing.T) {
	newTestEnv(t)
	_, err := execute(t, "extra")
	assert.Error(t, err)
}

func TestRootCmd_HasNoVersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	assert.Nil(t, cmd.Flags().Lookup("version"))

	_, err := execute(t, "--version")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dotpatch version dev")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, &pipeline.Result{Targets: []pipeline.TargetResult{
		{Target: "/h/.a", Changed: true, Fragments: 1},
		{Target: "/h/.b"},
		{PatchDir: "/p/.d", Err: errors.New(errors.ErrInvalidInput, "bad")},
	}})

	out := buf.String()
	assert.Contains(t, out, "/h/.a (1 fragment)")
	assert.Contains(t, out, "unchanged")
	assert.Contains(t, out, "/p/.d")
}
