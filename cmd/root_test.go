package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/drengskapur/gatherfiles/pkg/gather"
	"github.com/drengskapur/gatherfiles/pkg/version"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

type fakeClipboard struct {
	text  string
	calls int
	err   error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type testApp struct {
	*App
	clip   *fakeClipboard
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestApp returns an App whose working directory is cwd.
func newTestApp(cwd string) *testApp {
	clip := &fakeClipboard{}
	app := NewApp(clip)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	app.Stdout = stdout
	app.Stderr = stderr
	app.Getwd = func() (string, error) { return cwd, nil }
	return &testApp{App: app, clip: clip, stdout: stdout, stderr: stderr}
}

func (ta *testApp) execute(args ...string) error {
	return ta.Execute(context.Background(), args)
}

// setupRepo creates a repository (with a .git directory) holding files.
func setupRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	repo := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))
	for path, content := range files {
		full := filepath.Join(repo, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return repo
}

const docsConfig = `
version: 1
presets:
  docs:
    include: ["doc/**/*.md"]
    exclude: ["doc/internal/**"]
  missing:
    include: ["nonexistent/**/*.xyz"]
`

func TestRoot_CopiesRepositoryRoot(t *testing.T) {
	repo := setupRepo(t, map[string]string{
		"README.md":   "# hi\n",
		"src/main.rs": "fn main() {}\n",
	})
	ta := newTestApp(filepath.Join(repo, "src"))

	require.NoError(t, ta.execute())
	assert.Equal(t, 1, ta.clip.calls)
	assert.Equal(t, "-------\n# README.md\n\n# hi\n\n-------\n# src/main.rs\n\nfn main() {}\n\n", ta.clip.text)
	assert.Empty(t, ta.stdout.String())
	assert.Contains(t, ta.stderr.String(), "Copied 64 chars from 2 files (root "+repo+") in ")
}

func TestRoot_PresetToStdout(t *testing.T) {
	repo := setupRepo(t, map[string]string{
		".gather-files.yaml": docsConfig,
		"doc/a.md":           "a\n",
		"doc/internal/b.md":  "b\n",
		"main.go":            "package main\n",
	})
	ta := newTestApp(repo)

	require.NoError(t, ta.execute("docs", "--stdout"))
	assert.Equal(t, "-------\n# doc/a.md\n\na\n\n", ta.stdout.String())
	assert.Zero(t, ta.clip.calls)
	assert.Contains(t, ta.stderr.String(), "Printed 23 chars from 1 files (preset 'docs')")
}

func TestRoot_RelativePathTarget(t *testing.T) {
	repo := setupRepo(t, map[string]string{
		"README.md":    "root",
		"pkg/util.go":  "package pkg",
		"pkg/util2.go": "package pkg",
	})
	ta := newTestApp(repo)

	require.NoError(t, ta.execute("pkg", "--stdout"))
	assert.Equal(t, "-------\n# pkg/util.go\n\npackage pkg\n\n-------\n# pkg/util2.go\n\npackage pkg\n\n", ta.stdout.String())
	assert.Contains(t, ta.stderr.String(), "(path "+filepath.Join(repo, "pkg")+")")
}

func TestRoot_OutputFile(t *testing.T) {
	repo := setupRepo(t, map[string]string{"a.txt": "a"})
	out := filepath.Join(t.TempDir(), "blob.txt")
	ta := newTestApp(repo)

	require.NoError(t, ta.execute("--output", out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "-------\n# a.txt\n\na\n\n", string(data))
	assert.Contains(t, ta.stderr.String(), "Wrote 20 chars from 1 files (root "+repo+") to "+out+" in ")
	assert.Zero(t, ta.clip.calls)
}

func TestRoot_List(t *testing.T) {
	repo := setupRepo(t, map[string]string{
		".gather-files.yaml": docsConfig,
		"doc/a.md":           "a",
		"doc/guide/b.md":     "b",
	})
	ta := newTestApp(repo)

	require.NoError(t, ta.execute("docs", "--list"))
	assert.Equal(t, filepath.ToSlash(repo)+"/\n└── doc/\n    ├── guide/\n    │   └── b.md\n    └── a.md\n", ta.stdout.String())
	assert.Equal(t, "2 files (preset 'docs').\n", ta.stderr.String())
	assert.Zero(t, ta.clip.calls)
}

func TestRoot_Errors(t *testing.T) {
	repo := setupRepo(t, map[string]string{
		".gather-files.yaml": docsConfig,
		"doc/a.md":           "a",
	})

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown preset", []string{"nope"}, gather.ErrPresetNotFound},
		{"preset without matches", []string{"missing"}, gather.ErrNoMatches},
		{"missing config", []string{"docs", "--config", "other.yaml"}, gather.ErrPresetNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(repo)
			err := ta.execute(tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, ta.clip.calls)
		})
	}
}

func TestRoot_ClipboardFailure(t *testing.T) {
	repo := setupRepo(t, map[string]string{"a.txt": "a"})
	ta := newTestApp(repo)
	cause := errors.New("no clipboard utility found")
	ta.clip.err = cause

	err := ta.execute()
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, ta.stderr.String(), "Copied")
}

func TestRoot_SkipBinary(t *testing.T) {
	repo := setupRepo(t, map[string]string{
		"logo.png": "\x89PNG",
		"main.go":  "package main\n",
	})

	ta := newTestApp(repo)
	require.NoError(t, ta.execute("--stdout", "--skip-binary"))
	assert.Equal(t, "-------\n# main.go\n\npackage main\n\n", ta.stdout.String())

	ta = newTestApp(repo)
	require.NoError(t, ta.execute("--list"))
	assert.Contains(t, ta.stdout.String(), "logo.png")

	ta = newTestApp(repo)
	err := ta.execute("logo.png", "--skip-binary")
	assert.ErrorIs(t, err, gather.ErrEmptyResult)
}

func TestRoot_FlagValidation(t *testing.T) {
	repo := setupRepo(t, map[string]string{"a.txt": "a"})

	assert.Error(t, newTestApp(repo).execute("--stdout", "--list"))
	assert.Error(t, newTestApp(repo).execute("a.txt", "b.txt"))
}

func TestRoot_OutsideRepositoryUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("n\n"), 0644))
	ta := newTestApp(dir)

	require.NoError(t, ta.execute("--stdout"))
	assert.Equal(t, "-------\n# notes.txt\n\nn\n\n", ta.stdout.String())
}

func TestPresets(t *testing.T) {
	repo := setupRepo(t, map[string]string{
		".gather-files.yaml": `
version: 1
presets:
  rust:
    base: crates
    include: ["**/*.rs", "Cargo.toml"]
  docs:
    include: ["doc/**/*.md"]
    exclude: ["doc/internal/**"]
`,
	})
	ta := newTestApp(repo)

	require.NoError(t, ta.execute("presets"))
	assert.Equal(t,
		"docs  doc/**/*.md (exclude doc/internal/**)\n"+
			"rust  **/*.rs, Cargo.toml (base crates)\n",
		ta.stdout.String())
}

func TestPresets_NoConfig(t *testing.T) {
	repo := setupRepo(t, nil)
	ta := newTestApp(repo)

	require.NoError(t, ta.execute("presets"))
	assert.Empty(t, ta.stdout.String())
	assert.Contains(t, ta.stderr.String(), "No config file at "+filepath.Join(repo, ".gather-files.yaml"))
}

func TestVersion(t *testing.T) {
	ta := newTestApp(t.TempDir())
	require.NoError(t, ta.execute("version", "--short"))
	assert.Equal(t, version.Version+"\n", ta.stdout.String())

	ta = newTestApp(t.TempDir())
	require.NoError(t, ta.execute("version"))
	assert.Equal(t, version.Get().String()+"\n", ta.stdout.String())
}

func TestRoundElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{1234567 * time.Nanosecond, 1230 * time.Microsecond},
		{2345678901 * time.Nanosecond, 2350 * time.Millisecond},
		{4567 * time.Nanosecond, 4570 * time.Nanosecond},
		{900 * time.Nanosecond, 900 * time.Nanosecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roundElapsed(tt.in), tt.in.String())
	}
}
