// Package status collects and renders completion engine diagnostics.
package status

import (
	"os"

	"github.com/goobits/completion/internal/completion"
	"github.com/goobits/completion/internal/config"
	"github.com/goobits/completion/internal/history"
	"github.com/goobits/completion/pkg/version"
)

// ProviderInfo describes one registered provider
type ProviderInfo struct {
	Name     string
	Priority int
	Enabled  bool
}

// Data aggregates everything the status view renders
type Data struct {
	Version    string
	CurrentDir string

	ConfigPath  string // empty when no config was discovered
	ConfigName  string
	ConfigLang  string
	CandidateLs []string

	HistoryPath  string
	HistoryCount int

	Providers []ProviderInfo
	Analyzers int

	CacheSize int
	CacheMax  int
	Enabled   bool
}

// Collect gathers status data from the registry, the config discovery
// chain, and the history store
func Collect(reg *completion.Registry, store *history.Store) (*Data, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	data := &Data{
		Version:     version.Version,
		CurrentDir:  cwd,
		CandidateLs: config.CandidatePaths(cwd),
	}

	if cfg := config.Discover(cwd); cfg != nil {
		data.ConfigPath = cfg.Path
		data.ConfigName = cfg.Name()
		data.ConfigLang = cfg.Language()
	}

	if store != nil {
		data.HistoryPath = store.Path()
		data.HistoryCount = store.Len()
	}

	stats := reg.Stats()
	data.Analyzers = stats.Analyzers
	data.CacheSize = stats.CacheSize
	data.CacheMax = stats.CacheMax
	data.Enabled = stats.Enabled

	for _, p := range reg.Providers() {
		data.Providers = append(data.Providers, ProviderInfo{
			Name:     completion.ProviderName(p),
			Priority: p.Priority(),
			Enabled:  p.Enabled(),
		})
	}

	return data, nil
}
