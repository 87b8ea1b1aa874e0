package completion

import (
	"context"
	"sort"
	"strings"
)

// commonConfigKeys are keys common to goobits configs, offered even when no
// config file is loaded
var commonConfigKeys = []string{
	"name", "version", "description", "author", "license",
	"dependencies", "scripts", "commands", "options",
	"language", "runtime", "build", "test", "deploy",
}

// configIndicators mark commands/arguments that suggest configuration intent
var configIndicators = map[string]bool{
	"config": true, "set": true, "get": true, "key": true, "value": true,
}

// ConfigKeyProvider completes keys of the discovered configuration,
// including dot-notation paths into nested maps.
type ConfigKeyProvider struct {
	Base
}

// NewConfigKeyProvider creates a config key provider
func NewConfigKeyProvider() *ConfigKeyProvider {
	p := &ConfigKeyProvider{}
	p.init(PriorityConfigKey)
	return p
}

// CanProvide fires when a config is loaded or the command line suggests
// configuration intent
func (p *ConfigKeyProvider) CanProvide(c *Context) bool {
	if len(c.Config) > 0 {
		return true
	}
	if configIndicators[c.Command] {
		return true
	}
	for _, arg := range c.Args {
		lower := strings.ToLower(arg)
		for indicator := range configIndicators {
			if strings.Contains(lower, indicator) {
				return true
			}
		}
	}
	return false
}

// Complete returns matching keys, deduplicated and sorted
func (p *ConfigKeyProvider) Complete(_ context.Context, c *Context) ([]string, error) {
	seen := make(map[string]bool)
	add := func(key string) {
		if !seen[key] {
			seen[key] = true
		}
	}

	for _, key := range configKeys(c.Config, c.Word) {
		add(key)
	}

	lowerWord := strings.ToLower(c.Word)
	for _, key := range commonConfigKeys {
		if strings.HasPrefix(key, lowerWord) {
			add(key)
		}
	}

	completions := make([]string, 0, len(seen))
	for key := range seen {
		completions = append(completions, key)
	}
	sort.Strings(completions)
	return completions, nil
}

// configKeys returns the top-level keys matching the prefix plus
// dot-notation paths into nested maps
func configKeys(cfg map[string]interface{}, prefix string) []string {
	var keys []string
	for key, value := range cfg {
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			continue
		}
		keys = append(keys, key)
		if nested, ok := value.(map[string]interface{}); ok {
			keys = append(keys, nestedKeys(nested, key+".")...)
		}
	}
	return keys
}

func nestedKeys(cfg map[string]interface{}, prefix string) []string {
	var keys []string
	for key, value := range cfg {
		full := prefix + key
		keys = append(keys, full)
		if nested, ok := value.(map[string]interface{}); ok {
			keys = append(keys, nestedKeys(nested, full+".")...)
		}
	}
	return keys
}
