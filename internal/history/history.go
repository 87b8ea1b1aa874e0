// Package history provides a persistent store for interactive session history.
package history

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultMaxEntries bounds the number of persisted history lines
const DefaultMaxEntries = 1000

// Store manages a plain-text history file, one command line per entry,
// ordered oldest to newest.
type Store struct {
	mu    sync.RWMutex
	path  string
	lines []string
	max   int
}

// New creates or loads a history store backed by the given file
func New(path string) (*Store, error) {
	s := &Store{
		path: path,
		max:  DefaultMaxEntries,
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Lines returns a copy of the history, oldest first
func (s *Store) Lines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of history entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.lines)
}

// Append adds a line to the history and persists it. Blank lines are
// ignored; consecutive duplicates are collapsed.
func (s *Store) Append(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.lines); n > 0 && s.lines[n-1] == line {
		return nil
	}

	s.lines = append(s.lines, line)
	if len(s.lines) > s.max {
		s.lines = s.lines[len(s.lines)-s.max:]
	}

	return s.persist()
}

// Clear removes all history entries and persists the empty state
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	return s.persist()
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// load reads history lines from disk
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	s.lines = lines
	return nil
}

// persist writes history lines to disk
func (s *Store) persist() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var b strings.Builder
	for _, line := range s.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	return os.WriteFile(s.path, []byte(b.String()), 0600)
}
