package completion

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// fileFilters maps a file category to the extensions offered when the
// context hints at that category
var fileFilters = map[string][]string{
	"config":   {".yaml", ".yml", ".json", ".toml", ".ini"},
	"source":   {".py", ".js", ".ts", ".rs", ".go", ".java", ".cpp", ".c"},
	"data":     {".csv", ".json", ".xml", ".sqlite", ".db"},
	"document": {".md", ".txt", ".pdf", ".doc", ".docx"},
	"image":    {".png", ".jpg", ".jpeg", ".gif", ".svg"},
	"archive":  {".zip", ".tar", ".gz", ".bz2", ".7z"},
}

// fileCommands are commands that typically take a file argument
var fileCommands = map[string]bool{
	"cat": true, "less": true, "more": true, "head": true, "tail": true,
	"edit": true, "vi": true, "vim": true, "nano": true, "code": true,
	"open": true, "cp": true, "mv": true, "rm": true, "chmod": true,
	"chown": true, "diff": true, "grep": true, "find": true, "locate": true,
	"file": true, "stat": true,
}

// FilePathProvider completes filesystem paths with context-aware extension
// filtering. Directories sort before files and get a trailing separator.
type FilePathProvider struct {
	Base
}

// NewFilePathProvider creates a file path provider
func NewFilePathProvider() *FilePathProvider {
	p := &FilePathProvider{}
	p.init(PriorityFilePath)
	return p
}

// CanProvide fires on path-like words, file-oriented commands, arguments
// mentioning files, or an analyzer-set file context flag
func (p *FilePathProvider) CanProvide(c *Context) bool {
	if strings.Contains(c.Word, "/") ||
		strings.HasPrefix(c.Word, ".") ||
		strings.HasPrefix(c.Word, "~") {
		return true
	}

	if fileCommands[c.Command] {
		return true
	}

	if len(c.Args) > 0 {
		tail := c.Args
		if len(tail) > 2 {
			tail = tail[len(tail)-2:]
		}
		recent := strings.ToLower(strings.Join(tail, " "))
		for _, keyword := range []string{"file", "path", "input", "output", "config", "load", "save"} {
			if strings.Contains(recent, keyword) {
				return true
			}
		}
	}

	isFile, _ := c.Metadata["is_file_context"].(bool)
	return isFile
}

// Complete lists matching directory entries
func (p *FilePathProvider) Complete(_ context.Context, c *Context) ([]string, error) {
	word := c.Word

	// Empty input: show the working directory, dotfiles excluded
	if word == "" {
		return listDirectory(c.Cwd), nil
	}

	if strings.HasPrefix(word, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			word = filepath.Join(home, strings.TrimPrefix(word, "~"))
		}
	}

	// Split into the directory to search and the partial entry name
	var searchDir, prefix, partial string
	if idx := strings.LastIndex(word, "/"); idx >= 0 {
		prefix = word[:idx+1]
		partial = word[idx+1:]
		if strings.HasPrefix(word, "/") {
			searchDir = prefix
		} else {
			searchDir = filepath.Join(c.Cwd, prefix)
		}
	} else {
		searchDir = c.Cwd
		partial = word
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		// Missing or unreadable directory contributes nothing
		return nil, nil
	}

	var completions []string
	for _, entry := range entries {
		name := entry.Name()

		// Hidden entries only when explicitly asked for
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(partial, ".") {
			continue
		}
		if !strings.HasPrefix(name, partial) {
			continue
		}

		completion := prefix + name
		if entry.IsDir() {
			completion += "/"
		}
		completions = append(completions, completion)
	}

	completions = filterByCategory(c, completions)
	sortPaths(completions)
	return completions, nil
}

// listDirectory returns the visible entries of a directory, directories
// first with a trailing separator
func listDirectory(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}

	completions := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			name += "/"
		}
		completions = append(completions, name)
	}

	sortPaths(completions)
	return completions
}

// filterByCategory narrows file results to the extension set hinted at by
// the command or arguments; directories always pass
func filterByCategory(c *Context, completions []string) []string {
	command := strings.ToLower(c.Command)
	argsText := strings.ToLower(strings.Join(c.Args, " "))

	expected := make(map[string]bool)
	addCategory := func(category string) {
		for _, ext := range fileFilters[category] {
			expected[ext] = true
		}
	}

	if strings.Contains(command, "config") || strings.Contains(argsText, "config") {
		addCategory("config")
	}
	for _, lang := range []string{"python", "node", "npm", "cargo", "rust"} {
		if strings.Contains(command, lang) {
			addCategory("source")
			break
		}
	}
	if strings.Contains(argsText, "data") || command == "load" || command == "import" || command == "export" {
		addCategory("data")
	}

	if len(expected) == 0 {
		return completions
	}

	filtered := make([]string, 0, len(completions))
	for _, completion := range completions {
		if strings.HasSuffix(completion, "/") {
			filtered = append(filtered, completion)
			continue
		}
		ext := strings.ToLower(filepath.Ext(completion))
		if expected[ext] {
			filtered = append(filtered, completion)
		}
	}
	return filtered
}

// sortPaths orders directories before files, then case-insensitively
func sortPaths(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		iDir := strings.HasSuffix(paths[i], "/")
		jDir := strings.HasSuffix(paths[j], "/")
		if iDir != jDir {
			return iDir
		}
		return strings.ToLower(paths[i]) < strings.ToLower(paths[j])
	})
}
