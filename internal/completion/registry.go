package completion

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/goobits/completion/internal/config"
	"github.com/goobits/completion/internal/logger"
)

// Registry orchestrates completion providers and context analyzers. It owns
// a bounded result cache and applies a per-language reordering strategy.
// One registry serves the whole session; contexts are built per call.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	analyzers []analyzerEntry
	enabled   bool

	cache *resultCache
	log   *logger.Logger

	// Session wiring, set via options
	history  func() []string
	commands []string
	options  []string
	workdir  string
}

type analyzerEntry struct {
	name string
	fn   Analyzer
}

// Stats describes the registry state for status reporting
type Stats struct {
	Providers        int
	EnabledProviders int
	Analyzers        int
	CacheSize        int
	CacheMax         int
	Enabled          bool
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the registry logger
func WithLogger(log *logger.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// WithHistorySource wires a history supplier; it is consulted once per
// completion call when building the context
func WithHistorySource(source func() []string) Option {
	return func(r *Registry) { r.history = source }
}

// WithCommands seeds the known command set of the CLI
func WithCommands(commands []string) Option {
	return func(r *Registry) { r.commands = commands }
}

// WithOptions seeds the known option set of the CLI
func WithOptions(options []string) Option {
	return func(r *Registry) { r.options = options }
}

// WithCacheSize bounds the result cache
func WithCacheSize(max int) Option {
	return func(r *Registry) { r.cache = newResultCache(max) }
}

// WithWorkdir fixes the working directory instead of using os.Getwd
func WithWorkdir(dir string) Option {
	return func(r *Registry) { r.workdir = dir }
}

// WithDefaultProviders registers the standard provider set: file paths,
// environment variables, config keys, and history
func WithDefaultProviders() Option {
	return func(r *Registry) {
		r.RegisterProvider(NewFilePathProvider())
		r.RegisterProvider(NewEnvVarProvider())
		r.RegisterProvider(NewConfigKeyProvider())
		r.RegisterProvider(NewHistoryProvider())
	}
}

// NewRegistry creates a completion registry with the built-in analyzers
// registered. Providers are added via options or RegisterProvider.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		enabled: true,
		cache:   newResultCache(DefaultCacheSize),
		log:     logger.New("warn", os.Stderr),
	}

	// Built-in analyzers run in registration order
	r.RegisterAnalyzer("command", r.commandAnalyzer)
	r.RegisterAnalyzer("file", fileAnalyzer)
	r.RegisterAnalyzer("config", configAnalyzer)

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RegisterProvider adds a provider and keeps the list sorted by priority,
// highest first, stable on ties
func (r *Registry) RegisterProvider(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.providers {
		if existing == p {
			return
		}
	}

	r.providers = append(r.providers, p)
	sort.SliceStable(r.providers, func(i, j int) bool {
		return r.providers[i].Priority() > r.providers[j].Priority()
	})

	r.log.Debug().Str("provider", ProviderName(p)).Int("priority", p.Priority()).Msg("Registered completion provider")
}

// UnregisterProvider removes a provider
func (r *Registry) UnregisterProvider(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.providers {
		if existing == p {
			r.providers = append(r.providers[:i], r.providers[i+1:]...)
			r.log.Debug().Str("provider", ProviderName(p)).Msg("Unregistered completion provider")
			return
		}
	}
}

// RegisterAnalyzer adds a named context analyzer. Analyzers run in
// registration order when a context is built.
func (r *Registry) RegisterAnalyzer(name string, fn Analyzer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.analyzers {
		if existing.name == name {
			r.analyzers[i].fn = fn
			return
		}
	}
	r.analyzers = append(r.analyzers, analyzerEntry{name: name, fn: fn})
}

// Providers returns a snapshot of the registered providers in priority order
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Enable turns the registry on
func (r *Registry) Enable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = true
}

// Disable turns the registry off; Complete returns no candidates
func (r *Registry) Disable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = false
}

// IsEnabled reports whether the registry is enabled
func (r *Registry) IsEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

// ClearCache drops all cached results
func (r *Registry) ClearCache() {
	r.cache.clear()
}

// Stats returns registry statistics
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enabled := 0
	for _, p := range r.providers {
		if p.Enabled() {
			enabled++
		}
	}

	return Stats{
		Providers:        len(r.providers),
		EnabledProviders: enabled,
		Analyzers:        len(r.analyzers),
		CacheSize:        r.cache.len(),
		CacheMax:         r.cache.max,
		Enabled:          r.enabled,
	}
}

// Complete returns ordered completion candidates for the partial word on
// the given line. It never fails: provider and analyzer errors are logged
// and treated as empty contributions.
func (r *Registry) Complete(ctx context.Context, word, line string, lang Language) []string {
	if !r.IsEnabled() {
		return []string{}
	}

	key := cacheKey(lang, word, line)
	if cached, ok := r.cache.get(key); ok {
		r.log.Debug().Str("key", key).Msg("Completion cache hit")
		return cached
	}

	c := r.buildContext(word, line, lang)

	// Sequential provider pass, highest priority first
	var merged []string
	for _, p := range r.Providers() {
		if !p.Enabled() || !p.CanProvide(c) {
			continue
		}

		candidates, err := p.Complete(ctx, c)
		if err != nil {
			r.log.Warn().Str("provider", ProviderName(p)).Err(err).Msg("Completion provider failed")
			continue
		}
		merged = append(merged, candidates...)
	}

	reordered := strategyFor(lang)(merged)
	unique := dedupe(reordered)

	r.cache.put(key, unique)
	return unique
}

// buildContext assembles the per-request context and runs analyzers in
// registration order
func (r *Registry) buildContext(word, line string, lang Language) *Context {
	args := strings.Fields(line)
	command := ""
	if len(args) > 0 {
		command = args[0]
	}

	cwd := r.workdir
	if cwd == "" {
		cwd, _ = os.Getwd()
	}

	c := &Context{
		Command:  command,
		Word:     word,
		Args:     args,
		Cwd:      cwd,
		Env:      environMap(),
		Commands: make(map[string]bool),
		Options:  make(map[string]bool),
		Metadata: make(map[string]interface{}),
		Language: lang,
		Config:   make(map[string]interface{}),
	}

	if r.history != nil {
		c.History = r.history()
	}

	r.mu.RLock()
	analyzers := make([]analyzerEntry, len(r.analyzers))
	copy(analyzers, r.analyzers)
	r.mu.RUnlock()

	for _, a := range analyzers {
		if err := a.fn(c); err != nil {
			r.log.Warn().Str("analyzer", a.name).Err(err).Msg("Context analyzer failed")
		}
	}

	return c
}

// commandAnalyzer seeds the context with the session's known commands and
// options
func (r *Registry) commandAnalyzer(c *Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cmd := range r.commands {
		c.Commands[cmd] = true
	}
	for _, opt := range r.options {
		c.Options[opt] = true
	}
	return nil
}

// fileAnalyzer flags contexts where an argument asks for a file
func fileAnalyzer(c *Context) error {
	isFile := false
	for _, arg := range c.Args {
		if strings.HasPrefix(arg, "-f") || strings.HasPrefix(arg, "--file") {
			isFile = true
			break
		}
	}
	c.Metadata["is_file_context"] = isFile
	return nil
}

// configAnalyzer loads the first discoverable goobits config. A missing or
// unparseable config is not an error.
func configAnalyzer(c *Context) error {
	cfg := config.Discover(c.Cwd)
	if cfg == nil {
		return nil
	}

	c.Config = cfg.ExpandedMap()
	for _, cmd := range cfg.Commands() {
		c.Commands[cmd] = true
	}
	for _, opt := range cfg.Options() {
		c.Options[opt] = true
	}
	return nil
}

func cacheKey(lang Language, word, line string) string {
	return string(lang) + ":" + word + ":" + line
}

// dedupe removes duplicates keeping the first occurrence, so the
// highest-priority provider's placement wins on collision
func dedupe(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	unique := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		unique = append(unique, candidate)
	}
	return unique
}
