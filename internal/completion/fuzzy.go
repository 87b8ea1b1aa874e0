package completion

import (
	"context"
	"sort"
	"strings"
)

const (
	fuzzyMinQueryLength  = 2
	fuzzySubstringScore  = 0.8
	fuzzyOverlapScore    = 0.6
	fuzzyOverlapFraction = 0.6
)

// commonFuzzyTerms is the language-agnostic part of the fuzzy candidate pool
var commonFuzzyTerms = []string{"build", "test", "install", "config", "help", "version"}

// fuzzyVocabulary holds a small per-language command vocabulary
var fuzzyVocabulary = map[Language][]string{
	LangPython: {"pytest", "pip", "poetry", "black", "mypy"},
	LangNodeJS: {"npm", "yarn", "node", "tsc", "webpack"},
	LangRust:   {"cargo", "rustc", "clippy", "fmt", "doc"},
}

// FuzzyProvider suggests non-prefix matches from the known command pool via
// substring containment or character-set overlap. Registered only by the
// smart engine.
type FuzzyProvider struct {
	Base
	maxSuggestions int
}

// NewFuzzyProvider creates a fuzzy match provider
func NewFuzzyProvider() *FuzzyProvider {
	p := &FuzzyProvider{maxSuggestions: 5}
	p.init(PriorityFuzzy)
	return p
}

// CanProvide fires once the query is long enough to be meaningful
func (p *FuzzyProvider) CanProvide(c *Context) bool {
	return len(c.Word) >= fuzzyMinQueryLength
}

// Complete scores the candidate pool and returns the top matches. Exact
// prefix matches are excluded: other providers already cover them.
func (p *FuzzyProvider) Complete(_ context.Context, c *Context) ([]string, error) {
	word := strings.ToLower(c.Word)

	type match struct {
		candidate string
		score     float64
	}
	var matches []match

	for _, candidate := range fuzzyPool(c) {
		lower := strings.ToLower(candidate)
		if strings.HasPrefix(lower, word) {
			continue
		}

		switch {
		case strings.Contains(lower, word):
			matches = append(matches, match{candidate, fuzzySubstringScore})
		case hasCharacterOverlap(word, lower):
			matches = append(matches, match{candidate, fuzzyOverlapScore})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > p.maxSuggestions {
		matches = matches[:p.maxSuggestions]
	}

	completions := make([]string, len(matches))
	for i, m := range matches {
		completions[i] = m.candidate
	}
	return completions, nil
}

// fuzzyPool builds a deterministic candidate list: known commands first,
// then common terms, then the language vocabulary
func fuzzyPool(c *Context) []string {
	known := make([]string, 0, len(c.Commands))
	for cmd := range c.Commands {
		known = append(known, cmd)
	}
	sort.Strings(known)

	pool := make([]string, 0, len(known)+len(commonFuzzyTerms)+8)
	seen := make(map[string]bool)
	for _, group := range [][]string{known, commonFuzzyTerms, fuzzyVocabulary[c.Language]} {
		for _, candidate := range group {
			if seen[candidate] {
				continue
			}
			seen[candidate] = true
			pool = append(pool, candidate)
		}
	}
	return pool
}

// hasCharacterOverlap reports whether the query and candidate share at
// least 60% of the query's distinct characters
func hasCharacterOverlap(query, candidate string) bool {
	if len(query) < 2 || len(candidate) < 2 {
		return false
	}

	queryChars := make(map[rune]bool)
	for _, r := range query {
		queryChars[r] = true
	}
	candidateChars := make(map[rune]bool)
	for _, r := range candidate {
		candidateChars[r] = true
	}

	overlap := 0
	for r := range queryChars {
		if candidateChars[r] {
			overlap++
		}
	}

	threshold := float64(len(queryChars)) * fuzzyOverlapFraction
	if threshold < 2 {
		threshold = 2
	}
	return float64(overlap) >= threshold
}
