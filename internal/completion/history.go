package completion

import (
	"context"
	"sort"
	"strings"
)

// HistoryProvider offers past command lines matching the current word,
// most recent first. It is the low-priority fallback of the default set.
type HistoryProvider struct {
	Base
	maxSuggestions int
}

// NewHistoryProvider creates a history provider
func NewHistoryProvider() *HistoryProvider {
	p := &HistoryProvider{maxSuggestions: 10}
	p.init(PriorityHistory)
	return p
}

// CanProvide fires whenever history exists
func (p *HistoryProvider) CanProvide(c *Context) bool {
	return len(c.History) > 0
}

// Complete returns matching history lines, newest first, deduplicated
func (p *HistoryProvider) Complete(_ context.Context, c *Context) ([]string, error) {
	seen := make(map[string]bool)
	var completions []string

	for i := len(c.History) - 1; i >= 0; i-- {
		line := c.History[i]
		if !strings.HasPrefix(line, c.Word) || line == c.Word {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		completions = append(completions, line)
		if len(completions) >= p.maxSuggestions {
			break
		}
	}

	return completions, nil
}

// RankedHistoryProvider scores matching history lines by recency, summing
// scores of repeated lines, and returns the best few. Registered only by
// the smart engine.
type RankedHistoryProvider struct {
	Base
	maxSuggestions int
}

// NewRankedHistoryProvider creates a ranked history provider
func NewRankedHistoryProvider() *RankedHistoryProvider {
	p := &RankedHistoryProvider{maxSuggestions: 8}
	p.init(PriorityRankedHistory)
	return p
}

// CanProvide fires when history exists and at least one character is typed
func (p *RankedHistoryProvider) CanProvide(c *Context) bool {
	return len(c.History) > 0 && len(c.Word) >= 1
}

// Complete scores each matching line by max(0, 10 - 0.1*distance) from the
// most recent entry and returns the top entries by total score
func (p *RankedHistoryProvider) Complete(_ context.Context, c *Context) ([]string, error) {
	word := strings.ToLower(c.Word)

	scores := make(map[string]float64)
	var order []string // first-match order, newest first, for stable ties

	for i := len(c.History) - 1; i >= 0; i-- {
		line := c.History[i]
		if !strings.HasPrefix(strings.ToLower(line), word) {
			continue
		}

		distance := len(c.History) - 1 - i
		bonus := 10 - 0.1*float64(distance)
		if bonus < 0 {
			bonus = 0
		}

		if _, exists := scores[line]; !exists {
			order = append(order, line)
		}
		scores[line] += bonus
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if len(order) > p.maxSuggestions {
		order = order[:p.maxSuggestions]
	}
	return order, nil
}
