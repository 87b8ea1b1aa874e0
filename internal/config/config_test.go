package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
name: mycli
version: 1.2.0
language: rust
commands:
  build:
    description: Build the project
    options:
      release: Build with optimizations
  test: Run the test suite
options:
  verbose: Verbose output
scripts:
  fmt: cargo fmt
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "goobits.yaml", sampleYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, filepath.Dir(path), cfg.Dir)
	assert.Equal(t, "mycli", cfg.Name())
	assert.Equal(t, "rust", cfg.Language())
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "goobits.ini", "name=x")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "goobits.yaml"))
	assert.Error(t, err)
}

func TestLoadBytes_JSON(t *testing.T) {
	cfg, err := LoadBytes("config.json", []byte(`{"name": "jsoncli", "language": "nodejs"}`))
	require.NoError(t, err)

	assert.Equal(t, "jsoncli", cfg.Name())
	assert.Equal(t, "nodejs", cfg.Language())
}

func TestLoadBytes_TOML(t *testing.T) {
	cfg, err := LoadBytes("config.toml", []byte("name = \"tomlcli\"\nlanguage = \"python\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "tomlcli", cfg.Name())
	assert.Equal(t, "python", cfg.Language())
}

func TestConfig_Keys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "goobits.yaml", sampleYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"commands", "language", "name", "options", "scripts", "version"}, cfg.Keys())
}

func TestConfig_Commands(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "goobits.yaml", sampleYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"build", "test"}, cfg.Commands())
}

func TestConfig_Options(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "goobits.yaml", sampleYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Global and per-command options, flag form, sorted
	assert.Equal(t, []string{"--release", "--verbose"}, cfg.Options())
}

func TestConfig_NoCommands(t *testing.T) {
	cfg, err := LoadBytes("min.yaml", []byte("name: min\n"))
	require.NoError(t, err)

	assert.Nil(t, cfg.Commands())
	assert.Nil(t, cfg.Options())
}

func TestCandidatePaths(t *testing.T) {
	paths := CandidatePaths("/work")

	require.GreaterOrEqual(t, len(paths), 2)
	assert.Equal(t, filepath.Join("/work", "goobits.yaml"), paths[0])
	assert.Equal(t, filepath.Join("/work", ".goobits.yml"), paths[1])
}

func TestDiscover_FindsProjectConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "goobits.yaml", sampleYAML)

	cfg := Discover(dir)
	require.NotNil(t, cfg)
	assert.Equal(t, "mycli", cfg.Name())
}

func TestDiscover_PrefersFirstCandidate(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "goobits.yaml", "name: primary\n")
	writeConfig(t, dir, ".goobits.yml", "name: secondary\n")

	cfg := Discover(dir)
	require.NotNil(t, cfg)
	assert.Equal(t, "primary", cfg.Name())
}

func TestDiscover_SkipsUnparseable(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "goobits.yaml", "{invalid: [yaml")
	writeConfig(t, dir, ".goobits.yml", "name: fallback\n")

	cfg := Discover(dir)
	require.NotNil(t, cfg)
	assert.Equal(t, "fallback", cfg.Name())
}

func TestDiscover_NothingFound(t *testing.T) {
	assert.Nil(t, Discover(t.TempDir()))
}
