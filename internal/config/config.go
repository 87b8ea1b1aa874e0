// Package config handles discovery and parsing of goobits configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// CandidateNames contains project-local configuration file names
// (in order of preference).
var CandidateNames = []string{
	"goobits.yaml",
	".goobits.yml",
}

// UserConfigPath returns the path of the user-level configuration file.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".goobits", "config.yaml")
}

// CandidatePaths returns the ordered list of config paths searched for the
// given working directory. Project-local files come before the user config.
func CandidatePaths(cwd string) []string {
	paths := make([]string, 0, len(CandidateNames)+1)
	for _, name := range CandidateNames {
		paths = append(paths, filepath.Join(cwd, name))
	}
	if user := UserConfigPath(); user != "" {
		paths = append(paths, user)
	}
	return paths
}

// Config represents a parsed goobits configuration file
type Config struct {
	Path string // Source file, empty when loaded from bytes
	Dir  string // Directory of the source file

	k *koanf.Koanf
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), parser); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &Config{
		Path: path,
		Dir:  filepath.Dir(path),
		k:    k,
	}, nil
}

// LoadBytes parses configuration content held in memory. The name is only
// used to pick a parser by extension.
func LoadBytes(name string, content []byte) (*Config, error) {
	parser, err := parserFor(name)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), parser); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &Config{k: k}, nil
}

// Discover returns the first existing, parseable config for the given
// working directory, or nil when none is found. Parse failures are treated
// the same as a missing file.
func Discover(cwd string) *Config {
	for _, path := range CandidatePaths(cwd) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := Load(path)
		if err != nil {
			continue
		}
		return cfg
	}
	return nil
}

// parserFor picks a koanf parser based on file extension
func parserFor(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Map returns the raw configuration tree
func (c *Config) Map() map[string]interface{} {
	if c == nil || c.k == nil {
		return map[string]interface{}{}
	}
	return c.k.Raw()
}

// Name returns the CLI name declared by the config
func (c *Config) Name() string {
	return c.k.String("name")
}

// Language returns the target language declared by the config
func (c *Config) Language() string {
	return c.k.String("language")
}

// Keys returns the sorted top-level keys of the configuration
func (c *Config) Keys() []string {
	raw := c.Map()
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Commands returns the sorted names of commands declared under "commands"
func (c *Config) Commands() []string {
	if c == nil || c.k == nil {
		return nil
	}
	sub, ok := c.k.Get("commands").(map[string]interface{})
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sub))
	for name := range sub {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options returns the sorted flag names declared under "options", both
// global and per-command, rendered in --flag form.
func (c *Config) Options() []string {
	if c == nil || c.k == nil {
		return nil
	}

	seen := make(map[string]bool)
	collect := func(v interface{}) {
		opts, ok := v.(map[string]interface{})
		if !ok {
			return
		}
		for name := range opts {
			seen["--"+name] = true
		}
	}

	collect(c.k.Get("options"))
	if commands, ok := c.k.Get("commands").(map[string]interface{}); ok {
		for _, cmd := range commands {
			if cmdMap, ok := cmd.(map[string]interface{}); ok {
				collect(cmdMap["options"])
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
