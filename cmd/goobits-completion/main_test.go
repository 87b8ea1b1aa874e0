package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with stdout redirected and returns what it printed
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	return buf.String(), runErr
}

// runApp executes a fresh app instance and returns its stdout
func runApp(t *testing.T, historyPath string, args ...string) (string, error) {
	t.Helper()
	return captureStdout(t, func() error {
		app := newApp(historyPath)
		return app.Run(context.Background(), append([]string{"goobits-completion"}, args...))
	})
}

func TestDefaultHistoryPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	assert.Equal(t, filepath.Join("/custom/data", "goobits", "history"), defaultHistoryPath())
}

func TestDefaultHistoryPath_FallsBackToHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "goobits", "history"), defaultHistoryPath())
}

func TestApp_ShellCompletionEnabled(t *testing.T) {
	app := newApp(filepath.Join(t.TempDir(), "history"))
	assert.True(t, app.EnableShellCompletion)
}

func TestApp_SchemaToStdout(t *testing.T) {
	out, err := runApp(t, filepath.Join(t.TempDir(), "history"), "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "$schema")
	assert.Contains(t, out, "Goobits Configuration")
}

func TestApp_SchemaToFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "schema.json")

	_, err := runApp(t, filepath.Join(dir, "history"), "schema", "-o", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "$schema")
}

func TestApp_Validate(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "goobits.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("name: mycli\nlanguage: rust\n"), 0644))

	out, err := runApp(t, filepath.Join(dir, "history"), "validate", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestApp_ValidateFailure(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "goobits.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("language: golang\n"), 0644))

	out, err := runApp(t, filepath.Join(dir, "history"), "validate", configPath)
	assert.Error(t, err)
	assert.Contains(t, out, "error")
}

func TestApp_HistoryRoundTrip(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history")

	_, err := runApp(t, historyPath, "history", "add", "build --release")
	require.NoError(t, err)

	out, err := runApp(t, historyPath, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "build --release")

	_, err = runApp(t, historyPath, "history", "clear")
	require.NoError(t, err)

	out, err = runApp(t, historyPath, "history", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestApp_Complete(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history")

	_, err := runApp(t, historyPath, "history", "add", "build --release")
	require.NoError(t, err)

	out, err := runApp(t, historyPath, "complete", "--word", "build", "--line", "build")
	require.NoError(t, err)
	assert.Contains(t, out, "build --release")
}
