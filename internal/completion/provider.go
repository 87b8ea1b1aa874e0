package completion

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Default provider priorities. Higher runs earlier; ties keep registration
// order.
const (
	PriorityRankedHistory = 85
	PriorityFilePath      = 80
	PriorityFuzzy         = 75
	PriorityEnvVar        = 70
	PriorityConfigKey     = 60
	PriorityHistory       = 40
)

// Provider is a pluggable completion strategy. CanProvide must be a cheap,
// side-effect-free predicate; Complete does the real work and reports
// failures through its error, never by panicking.
type Provider interface {
	// Priority orders providers, highest first
	Priority() int
	// Enabled reports whether the provider participates in completion
	Enabled() bool
	// SetEnabled toggles the provider without unregistering it
	SetEnabled(enabled bool)
	// CanProvide reports whether the provider applies to the context
	CanProvide(c *Context) bool
	// Complete returns candidates for the context, in provider order
	Complete(ctx context.Context, c *Context) ([]string, error)
}

// Base carries the priority and enabled state shared by all providers.
// Embed it by pointer-receiver convention: providers are used as pointers.
type Base struct {
	mu       sync.RWMutex
	priority int
	enabled  bool
}

// init sets the base state: the given priority, enabled. Called by provider
// constructors; Base carries a mutex and must not be copied.
func (b *Base) init(priority int) {
	b.priority = priority
	b.enabled = true
}

// Priority returns the provider priority
func (b *Base) Priority() int {
	return b.priority
}

// Enabled reports whether the provider is enabled
func (b *Base) Enabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.enabled
}

// SetEnabled toggles the provider
func (b *Base) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

// ProviderName derives a short name from the provider's concrete type
func ProviderName(p Provider) string {
	name := fmt.Sprintf("%T", p)
	name = strings.TrimPrefix(name, "*completion.")
	return strings.TrimSuffix(name, "Provider")
}
