package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NikitaCOEUR/paramcomplete/internal/completion"
	"github.com/NikitaCOEUR/paramcomplete/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
log_level: debug
replacements:
  players: "@players"
static:
  players: "alice|bob"
  colors:
    - red
    - green
commands:
  - name: give
    aliases: [g]
    completion: "%players @colors"
    parameters:
      - name: sender
        injected: true
      - name: target
      - name: color
      - name: amount
        completion: "range:=1-3"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNew(t *testing.T) {
	l := New()
	assert.NotNil(t, l)
	assert.NotNil(t, l.parsedCache)
}

func TestLoader_LoadYAML(t *testing.T) {
	path := writeFile(t, ".paramcomplete.yml", sampleYAML)

	m, err := New().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", m.LogLevel)
	assert.Equal(t, "@players", m.Replacements["players"])
	require.Len(t, m.Commands, 1)

	cmd := m.Commands[0]
	assert.Equal(t, "give", cmd.Name)
	assert.Equal(t, []string{"g"}, cmd.Aliases)
	assert.Equal(t, "%players @colors", cmd.Completion)
	require.Len(t, cmd.Parameters, 4)
	assert.True(t, cmd.Parameters[0].Injected)
	assert.Equal(t, "range:=1-3", cmd.Parameters[3].Completion)

	static := m.StaticCompletions()
	assert.Equal(t, []string{"alice", "bob"}, static["players"])
	assert.Equal(t, []string{"red", "green"}, static["colors"])
}

func TestLoader_LoadTOML(t *testing.T) {
	path := writeFile(t, ".paramcomplete.toml", `
log_level = "info"

[replacements]
players = "@players"

[static]
colors = ["red", "green"]

[[commands]]
name = "paint"
completion = "@colors"

[[commands.parameters]]
name = "color"
`)

	m, err := New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", m.LogLevel)
	require.Len(t, m.Commands, 1)
	assert.Equal(t, "paint", m.Commands[0].Name)
	require.Len(t, m.Commands[0].Parameters, 1)
	assert.Equal(t, []string{"red", "green"}, m.StaticCompletions()["colors"])
}

func TestLoader_LoadJSON(t *testing.T) {
	path := writeFile(t, ".paramcomplete.json", `{
  "static": {"units": "s|m|h"},
  "commands": [
    {"name": "wait", "completion": "@range:=1-2 @units", "parameters": [{"name": "n"}, {"name": "unit"}]}
  ]
}`)

	m, err := New().Load(path)
	require.NoError(t, err)
	require.Len(t, m.Commands, 1)
	assert.Equal(t, "@range:=1-2 @units", m.Commands[0].Completion)
	assert.Equal(t, []string{"s", "m", "h"}, m.StaticCompletions()["units"])
}

func TestLoader_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := New().Load(filepath.Join(t.TempDir(), "none.yml"))
		require.Error(t, err)
		var cfgErr *derrors.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "manifest.ini", "x=1")
		_, err := New().Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config format")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeFile(t, "bad.yml", "commands: [[[")
		_, err := New().Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load manifest")
	})
}

func TestLoader_Cache(t *testing.T) {
	path := writeFile(t, "m.yml", sampleYAML)
	l := New()

	first, err := l.Load(path)
	require.NoError(t, err)
	second, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)

	// a rewrite with a newer mtime invalidates the cache
	require.NoError(t, os.WriteFile(path, []byte("commands: []\n"), 0644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	third, err := l.Load(path)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Empty(t, third.Commands)
}

func TestLoader_Hash(t *testing.T) {
	path := writeFile(t, "m.yml", sampleYAML)
	l := New()

	uncached, err := l.Hash(path)
	require.NoError(t, err)
	assert.Len(t, uncached, 64)

	_, err = l.Load(path)
	require.NoError(t, err)
	cached, err := l.Hash(path)
	require.NoError(t, err)
	assert.Equal(t, uncached, cached)

	_, err = l.Hash(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestManifest_StaticTrailingPipeDropped(t *testing.T) {
	m := &Manifest{Static: map[string]interface{}{
		"colors": "red|green|",
		"sizes":  []interface{}{"s", ""},
	}}

	static := m.StaticCompletions()
	assert.Equal(t, []string{"red", "green"}, static["colors"])
	assert.Equal(t, []string{"s", ""}, static["sizes"])

	got, err := completion.NewResolver(m.Registry()).Complete(
		&completion.Command{Name: "paint", Completion: "@colors", Parameters: []completion.Parameter{{Name: "color"}}},
		nil, []string{""}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green"}, got)
}

func TestManifest_BuildsWorkingResolver(t *testing.T) {
	m, err := Parse("m.yml", []byte(sampleYAML))
	require.NoError(t, err)

	resolver := completion.NewResolver(m.Registry(), completion.WithReplacer(m.BuildReplacements()))

	cmd, err := m.Command("GIVE")
	require.NoError(t, err)
	assert.Equal(t, "give", cmd.Name)
	assert.Len(t, cmd.Parameters, 4)

	got, err := resolver.Complete(cmd, nil, []string{""}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, got)

	got, err = resolver.Complete(cmd, nil, []string{"bob", ""}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green"}, got)

	got, err = resolver.Complete(cmd, nil, []string{"bob", "red", "2"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestManifest_CommandByAlias(t *testing.T) {
	m, err := Parse("m.yml", []byte(sampleYAML))
	require.NoError(t, err)

	cmd, err := m.Command("g")
	require.NoError(t, err)
	assert.Equal(t, "give", cmd.Name)

	_, err = m.Command("take")
	require.Error(t, err)
	var notFound *derrors.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "command", notFound.Resource)
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", FindConfig(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".paramcomplete.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".paramcomplete.yml"), []byte(""), 0644))
	assert.Equal(t, filepath.Join(dir, ".paramcomplete.yml"), FindConfig(dir))
}
