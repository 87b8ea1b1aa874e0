package completion

import "sync"

// DefaultCacheSize bounds the number of cached completion results
const DefaultCacheSize = 1000

// resultCache is a bounded cache of completion results keyed by
// (language, word, line). Entries have no time-based expiry: they live
// until evicted by size, which keeps repeated identical queries
// deterministic within a session. When the bound is exceeded the oldest
// half of the entries is dropped by insertion order.
type resultCache struct {
	mu      sync.Mutex
	entries map[string][]string
	order   []string
	max     int
}

func newResultCache(max int) *resultCache {
	if max <= 0 {
		max = DefaultCacheSize
	}
	return &resultCache{
		entries: make(map[string][]string),
		max:     max,
	}
}

func (rc *resultCache) get(key string) ([]string, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	values, ok := rc.entries[key]
	return values, ok
}

func (rc *resultCache) put(key string, values []string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if _, exists := rc.entries[key]; !exists {
		rc.order = append(rc.order, key)
	}
	rc.entries[key] = values

	if len(rc.entries) <= rc.max {
		return
	}

	// Bulk FIFO eviction: drop the oldest half rather than tracking
	// recency per entry
	evict := rc.max / 2
	if evict < 1 {
		evict = 1
	}
	for _, old := range rc.order[:evict] {
		delete(rc.entries, old)
	}
	rc.order = append([]string(nil), rc.order[evict:]...)
}

func (rc *resultCache) len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}

func (rc *resultCache) clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries = make(map[string][]string)
	rc.order = nil
}
