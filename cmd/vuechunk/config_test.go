package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mx-llm/vuechunk/pkg/extractor"
	"github.com/mx-llm/vuechunk/pkg/scanner"
)

// chdir switches the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, defaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProjectConfig_MissingDefault(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := loadProjectConfig("")
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadProjectConfig_MissingExplicit(t *testing.T) {
	_, err := loadProjectConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadProjectConfig_Valid(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir, `root: ./src
out: build/chunks.json
include:
  - "components/**/*.vue"
exclude:
  - "**/legacy/**"
markers:
  Component: component
  Options: component
  Emit: emits-event
parser_pool_size: 2
`)

	cfg, err := loadProjectConfig("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "./src", cfg.Root)
	assert.Equal(t, "build/chunks.json", cfg.Out)
	assert.Equal(t, []string{"components/**/*.vue"}, cfg.Include)
	assert.Equal(t, []string{"**/legacy/**"}, cfg.Exclude)
	assert.Equal(t, "emits-event", cfg.Markers["Emit"])
	assert.Equal(t, 2, cfg.ParserPoolSize)
}

func TestLoadProjectConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "root: [unclosed\n")
	_, err := loadProjectConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestResolveSettings_Defaults(t *testing.T) {
	settings, err := resolveSettings(nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, ".", settings.Root)
	assert.Equal(t, scanner.DefaultOutputFile, settings.Out)
	assert.Equal(t, scanner.DefaultScanConfig(), settings.Options.Scan)
	assert.Equal(t, extractor.DefaultMarkers(), settings.Options.Markers)
	assert.Equal(t, 0, settings.Options.ParserPoolSize)
}

func TestResolveSettings_ConfigValues(t *testing.T) {
	cfg := &ProjectConfig{
		Root:           "app",
		Out:            "out.json",
		Include:        []string{"**/*.vue"},
		Exclude:        []string{},
		Markers:        map[string]string{"Component": "component", "Notify": "emits-event"},
		ParserPoolSize: 3,
	}
	settings, err := resolveSettings(cfg, "", "")
	require.NoError(t, err)
	assert.Equal(t, "app", settings.Root)
	assert.Equal(t, "out.json", settings.Out)
	assert.Empty(t, settings.Options.Scan.Exclude, "an explicit empty exclude list disables the defaults")
	assert.Equal(t, extractor.MarkerEmitsEvent, settings.Options.Markers.Kind("Notify"))
	assert.Equal(t, extractor.MarkerNone, settings.Options.Markers.Kind("Emit"))
	assert.Equal(t, 3, settings.Options.ParserPoolSize)
}

func TestResolveSettings_FlagsOverrideConfig(t *testing.T) {
	cfg := &ProjectConfig{Root: "app", Out: "out.json"}
	settings, err := resolveSettings(cfg, "other", "elsewhere.json")
	require.NoError(t, err)
	assert.Equal(t, "other", settings.Root)
	assert.Equal(t, "elsewhere.json", settings.Out)
}

func TestResolveSettings_Invalid(t *testing.T) {
	tests := map[string]*ProjectConfig{
		"bad include":   {Include: []string{"[oops"}},
		"bad exclude":   {Exclude: []string{"{a,b"}},
		"unknown kind":  {Markers: map[string]string{"Component": "component", "X": "widget"}},
		"no component":  {Markers: map[string]string{"Emit": "emits-event"}},
		"negative pool": {ParserPoolSize: -1},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := resolveSettings(cfg, "", "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestResolveSnapshotPath(t *testing.T) {
	assert.Equal(t, "flag.json", resolveSnapshotPath("flag.json", &ProjectConfig{Out: "cfg.json"}))
	assert.Equal(t, "cfg.json", resolveSnapshotPath("", &ProjectConfig{Out: "cfg.json"}))
	assert.Equal(t, scanner.DefaultOutputFile, resolveSnapshotPath("", nil))
}
