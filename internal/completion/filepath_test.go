package completion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func TestFilePathProvider_CanProvide(t *testing.T) {
	p := NewFilePathProvider()

	tests := []struct {
		name string
		ctx  *Context
		want bool
	}{
		{"path separator", &Context{Word: "src/main"}, true},
		{"dot prefix", &Context{Word: "./run"}, true},
		{"home prefix", &Context{Word: "~/projects"}, true},
		{"file command", &Context{Command: "cat", Word: "x"}, true},
		{"file keyword in recent args", &Context{Word: "x", Args: []string{"tool", "--input", "x"}}, true},
		{"keyword outside recent args", &Context{Word: "x", Args: []string{"--input", "a", "b", "x"}}, false},
		{"analyzer flag", &Context{Word: "x", Metadata: map[string]interface{}{"is_file_context": true}}, true},
		{"plain word", &Context{Command: "deploy", Word: "x", Metadata: map[string]interface{}{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ctx.Metadata == nil {
				tt.ctx.Metadata = map[string]interface{}{}
			}
			assert.Equal(t, tt.want, p.CanProvide(tt.ctx))
		})
	}
}

func TestFilePathProvider_EmptyWordListsCwd(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "main.rs", "Cargo.toml", ".gitignore")

	p := NewFilePathProvider()
	got, err := p.Complete(context.Background(), &Context{Word: "", Cwd: dir})
	require.NoError(t, err)

	// Dotfiles hidden, case-insensitive order
	assert.Equal(t, []string{"Cargo.toml", "main.rs"}, got)
}

func TestFilePathProvider_DirectoriesFirstWithSeparator(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "zeta.txt", "src/mod.rs")

	p := NewFilePathProvider()
	got, err := p.Complete(context.Background(), &Context{Word: "", Cwd: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/", "zeta.txt"}, got)
}

func TestFilePathProvider_PrefixMatch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "main.rs", "makefile", "Cargo.toml")

	p := NewFilePathProvider()
	got, err := p.Complete(context.Background(), &Context{Word: "ma", Cwd: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"main.rs", "makefile"}, got)
}

func TestFilePathProvider_DotfilesOnExplicitRequest(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, ".gitignore", ".gitattributes", "main.rs")

	p := NewFilePathProvider()
	got, err := p.Complete(context.Background(), &Context{Word: ".git", Cwd: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{".gitattributes", ".gitignore"}, got)
}

func TestFilePathProvider_Subdirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "src/main.rs", "src/lib.rs", "src/other.txt")

	p := NewFilePathProvider()
	got, err := p.Complete(context.Background(), &Context{Word: "src/l", Cwd: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/lib.rs"}, got)
}

func TestFilePathProvider_MissingDirectory(t *testing.T) {
	p := NewFilePathProvider()
	got, err := p.Complete(context.Background(), &Context{Word: "nosuch/x", Cwd: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilePathProvider_CategoryFilter(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "app.js", "notes.md", "lib/x")

	p := NewFilePathProvider()
	got, err := p.Complete(context.Background(), &Context{
		Command: "npm",
		Word:    "",
		Cwd:     dir,
	})
	require.NoError(t, err)

	// Source filter drops non-source files; directories always pass
	assert.Equal(t, []string{"lib/", "app.js"}, got)
}

func TestFilePathProvider_ConfigFilter(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "settings.yaml", "app.py", "data.json")

	p := NewFilePathProvider()
	got, err := p.Complete(context.Background(), &Context{
		Command: "tool",
		Args:    []string{"tool", "--config"},
		Word:    "",
		Cwd:     dir,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"data.json", "settings.yaml"}, got)
}

func TestSortPaths(t *testing.T) {
	paths := []string{"b.txt", "A.txt", "zdir/", "adir/"}
	sortPaths(paths)
	assert.Equal(t, []string{"adir/", "zdir/", "A.txt", "b.txt"}, paths)
}
