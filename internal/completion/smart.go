package completion

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goobits/completion/internal/timing"
)

const (
	// smartBudget is the per-call latency target; expensive smart features
	// only run while elapsed time stays under smartBudgetFraction of it
	smartBudget         = 8 * time.Millisecond
	smartBudgetFraction = 0.7
	// smartMaxResults caps the final smart candidate list
	smartMaxResults = 15
	// smartRecentWindow is how many unique recent commands feed the ranking
	smartRecentWindow = 10
)

// fastFuzzyVocabulary is the reduced per-language pool used by the engine's
// in-budget fuzzy pass (the full pool lives in FuzzyProvider)
var fastFuzzyVocabulary = map[Language][]string{
	LangPython: {"pytest", "pip"},
	LangNodeJS: {"npm", "node"},
	LangRust:   {"cargo", "clippy"},
}

var fastFuzzyCommon = []string{"build", "test", "install", "help", "version"}

// smartContext is the ephemeral state of one smart completion call
type smartContext struct {
	commandFrequency map[string]int
	recentCommands   []string
}

// Smart extends the registry with fuzzy matching and history-based ranking
// under a fixed latency budget. The two smart providers are registered
// lazily on the first smart call.
type Smart struct {
	*Registry

	registerOnce sync.Once

	budget       time.Duration
	maxResults   int
	fuzzy        bool
	smartHistory bool
}

// NewSmart wraps a registry with smart completion features
func NewSmart(r *Registry) *Smart {
	return &Smart{
		Registry:     r,
		budget:       smartBudget,
		maxResults:   smartMaxResults,
		fuzzy:        true,
		smartHistory: true,
	}
}

// Complete returns smart completion candidates. Base registry results come
// first; fuzzy matches and history ranking are applied only while the call
// is within its latency budget, trading completeness for bounded latency
// under load.
func (s *Smart) Complete(ctx context.Context, word, line string, lang Language) []string {
	timer := timing.NewTimer()

	s.registerOnce.Do(func() {
		s.RegisterProvider(NewRankedHistoryProvider())
		s.RegisterProvider(NewFuzzyProvider())
	})

	// Smart results live in their own cache namespace, separate from the
	// base registry's keys
	key := "smart:" + cacheKey(lang, word, line)
	if cached, ok := s.cache.get(key); ok {
		s.log.Debug().Str("key", key).Msg("Smart completion cache hit")
		return cached
	}

	results := s.Registry.Complete(ctx, word, line, lang)
	timer.Mark("base")

	gate := time.Duration(float64(s.budget) * smartBudgetFraction)
	if timer.Elapsed() < gate {
		sc := s.buildSmartContext()

		if s.fuzzy && len(word) >= fuzzyMinQueryLength {
			results = append(results, fastFuzzyMatches(word, lang)...)
			timer.Mark("fuzzy")
		}
		if s.smartHistory {
			results = rankByHistory(results, sc)
			timer.Mark("rank")
		}
	} else {
		s.log.Debug().Dur("elapsed", timer.Elapsed()).Msg("Smart features skipped, over budget")
	}

	unique := dedupeCapped(results, s.maxResults)

	s.cache.put(key, unique)
	s.log.Debug().Str("timings", timer.Summary()).Int("count", len(unique)).Msg("Smart completion done")
	return unique
}

// buildSmartContext derives frequency and recency data from the session
// history
func (s *Smart) buildSmartContext() *smartContext {
	sc := &smartContext{
		commandFrequency: make(map[string]int),
	}

	if s.history == nil {
		return sc
	}
	lines := s.history()

	for _, line := range lines {
		sc.commandFrequency[line]++
	}

	seen := make(map[string]bool)
	for i := len(lines) - 1; i >= 0 && len(sc.recentCommands) < smartRecentWindow; i-- {
		line := lines[i]
		if seen[line] {
			continue
		}
		seen[line] = true
		sc.recentCommands = append(sc.recentCommands, line)
	}

	return sc
}

// fastFuzzyMatches is the engine's cheap substring pass over a small fixed
// pool; exact prefix matches are left to other providers
func fastFuzzyMatches(word string, lang Language) []string {
	lower := strings.ToLower(word)

	var matches []string
	for _, group := range [][]string{fastFuzzyCommon, fastFuzzyVocabulary[lang]} {
		for _, candidate := range group {
			if strings.HasPrefix(candidate, lower) {
				continue
			}
			if strings.Contains(candidate, lower) {
				matches = append(matches, candidate)
				if len(matches) >= 3 {
					return matches
				}
			}
		}
	}
	return matches
}

// rankByHistory moves candidates seen in history to the front, ordered by
// frequency plus a recency bonus; the rest keep their relative order
func rankByHistory(candidates []string, sc *smartContext) []string {
	recencyIndex := make(map[string]int, len(sc.recentCommands))
	for i, line := range sc.recentCommands {
		recencyIndex[line] = i
	}

	type scored struct {
		candidate string
		score     int
	}
	var fromHistory []scored
	var others []string

	for _, candidate := range candidates {
		freq, ok := sc.commandFrequency[candidate]
		if !ok {
			others = append(others, candidate)
			continue
		}

		score := freq
		if idx, recent := recencyIndex[candidate]; recent {
			score += smartRecentWindow - idx
		}
		fromHistory = append(fromHistory, scored{candidate, score})
	}

	sort.SliceStable(fromHistory, func(i, j int) bool {
		return fromHistory[i].score > fromHistory[j].score
	})

	ranked := make([]string, 0, len(candidates))
	for _, s := range fromHistory {
		ranked = append(ranked, s.candidate)
	}
	return append(ranked, others...)
}

// dedupeCapped removes duplicates keeping first occurrence, stopping at max
func dedupeCapped(candidates []string, max int) []string {
	seen := make(map[string]bool, len(candidates))
	unique := make([]string, 0, max)
	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		unique = append(unique, candidate)
		if len(unique) >= max {
			break
		}
	}
	return unique
}
