package completion

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmart_LazyProviderRegistration(t *testing.T) {
	r := testRegistry(t)
	s := NewSmart(r)

	assert.Empty(t, r.Providers())

	s.Complete(context.Background(), "bu", "cmd bu", LangOther)

	providers := r.Providers()
	require.Len(t, providers, 2)
	assert.IsType(t, &RankedHistoryProvider{}, providers[0])
	assert.IsType(t, &FuzzyProvider{}, providers[1])

	// Registration happens once
	s.Complete(context.Background(), "te", "cmd te", LangOther)
	assert.Len(t, r.Providers(), 2)
}

func TestSmart_SeparateCacheNamespace(t *testing.T) {
	r := testRegistry(t)
	r.RegisterProvider(newStubProvider(50, "alpha"))
	s := NewSmart(r)

	base := r.Complete(context.Background(), "al", "cmd al", LangOther)
	require.Equal(t, []string{"alpha"}, base)
	require.Equal(t, 1, r.Stats().CacheSize)

	s.Complete(context.Background(), "al", "cmd al", LangOther)

	// Same word and line, but smart results occupy their own cache entry
	// (the smart call also populates the base entry it builds on)
	assert.Equal(t, 2, r.Stats().CacheSize)
}

func TestSmart_HistoryRanking(t *testing.T) {
	r := testRegistry(t, WithHistorySource(func() []string {
		return []string{"beta", "beta", "gamma"}
	}))
	r.RegisterProvider(newStubProvider(50, "alpha", "beta"))
	s := NewSmart(r)

	got := s.Complete(context.Background(), "a", "cmd a", LangOther)
	require.NotEmpty(t, got)

	// "beta" is in history, so it ranks before "alpha"
	assert.Equal(t, "beta", got[0])
}

func TestSmart_BudgetSkipsExpensiveFeatures(t *testing.T) {
	r := testRegistry(t, WithHistorySource(func() []string {
		return []string{"beta", "beta"}
	}))
	r.RegisterProvider(newStubProvider(50, "alpha", "beta"))
	s := NewSmart(r)
	s.budget = 0

	got := s.Complete(context.Background(), "a", "cmd a", LangOther)

	// With no budget left, history ranking is skipped and base order holds
	assert.Equal(t, []string{"alpha", "beta"}, got)
}

func TestSmart_CapsResults(t *testing.T) {
	var many []string
	for i := 0; i < 30; i++ {
		many = append(many, fmt.Sprintf("candidate-%02d", i))
	}

	r := testRegistry(t)
	r.RegisterProvider(newStubProvider(50, many...))
	s := NewSmart(r)

	got := s.Complete(context.Background(), "ca", "cmd ca", LangOther)
	assert.Len(t, got, smartMaxResults)
}

func TestSmart_CacheHit(t *testing.T) {
	r := testRegistry(t)
	p := newStubProvider(50, "before")
	r.RegisterProvider(p)
	s := NewSmart(r)

	first := s.Complete(context.Background(), "be", "cmd be", LangOther)
	p.results = []string{"after"}
	second := s.Complete(context.Background(), "be", "cmd be", LangOther)

	assert.Equal(t, first, second)
}

func TestBuildSmartContext(t *testing.T) {
	r := testRegistry(t, WithHistorySource(func() []string {
		return []string{"build", "test", "build", "deploy"}
	}))
	s := NewSmart(r)

	sc := s.buildSmartContext()

	assert.Equal(t, 2, sc.commandFrequency["build"])
	assert.Equal(t, 1, sc.commandFrequency["test"])

	// Unique recent commands, newest first
	assert.Equal(t, []string{"deploy", "build", "test"}, sc.recentCommands)
}

func TestBuildSmartContext_NoHistory(t *testing.T) {
	s := NewSmart(testRegistry(t))

	sc := s.buildSmartContext()
	assert.Empty(t, sc.commandFrequency)
	assert.Empty(t, sc.recentCommands)
}

func TestFastFuzzyMatches(t *testing.T) {
	// Substring matches only, prefix matches excluded
	got := fastFuzzyMatches("uild", LangOther)
	assert.Equal(t, []string{"build"}, got)

	got = fastFuzzyMatches("build", LangOther)
	assert.Empty(t, got)

	// Language vocabulary participates
	got = fastFuzzyMatches("argo", LangRust)
	assert.Contains(t, got, "cargo")
}

func TestFastFuzzyMatches_Cap(t *testing.T) {
	// "s" appears inside test, install, version and the vocabulary
	got := fastFuzzyMatches("s", LangPython)
	assert.Len(t, got, 3)
}

func TestRankByHistory(t *testing.T) {
	sc := &smartContext{
		commandFrequency: map[string]int{"beta": 3, "gamma": 1},
		recentCommands:   []string{"gamma", "beta"},
	}

	got := rankByHistory([]string{"alpha", "beta", "gamma"}, sc)

	// beta: freq 3 + recency 9 = 12; gamma: freq 1 + recency 10 = 11
	assert.Equal(t, []string{"beta", "gamma", "alpha"}, got)
}

func TestDedupeCapped(t *testing.T) {
	got := dedupeCapped([]string{"a", "b", "a", "c", "d"}, 3)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
