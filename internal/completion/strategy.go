package completion

import "strings"

// reorderStrategy stable-partitions candidates so language-relevant items
// come first, preserving relative order inside each partition
type reorderStrategy func([]string) []string

func strategyFor(lang Language) reorderStrategy {
	switch lang {
	case LangPython:
		return pythonStrategy
	case LangNodeJS:
		return nodejsStrategy
	case LangTypeScript:
		return typescriptStrategy
	case LangRust:
		return rustStrategy
	default:
		return identityStrategy
	}
}

// prioritize moves items matching the predicate before the rest, keeping
// relative order within both groups
func prioritize(candidates []string, relevant func(string) bool) []string {
	priority := make([]string, 0, len(candidates))
	others := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if relevant(candidate) {
			priority = append(priority, candidate)
		} else {
			others = append(others, candidate)
		}
	}
	return append(priority, others...)
}

func pythonStrategy(candidates []string) []string {
	known := map[string]bool{"install": true, "build": true, "test": true, "lint": true}
	return prioritize(candidates, func(s string) bool {
		return strings.HasSuffix(s, ".py") || strings.HasPrefix(s, "--") || known[s]
	})
}

func nodejsStrategy(candidates []string) []string {
	known := map[string]bool{"install": true, "start": true, "test": true, "build": true}
	return prioritize(candidates, func(s string) bool {
		return strings.HasSuffix(s, ".js") || strings.HasSuffix(s, ".json") || known[s]
	})
}

func typescriptStrategy(candidates []string) []string {
	known := map[string]bool{"compile": true, "type-check": true, "build": true}
	return prioritize(candidates, func(s string) bool {
		return strings.HasSuffix(s, ".ts") || strings.HasSuffix(s, ".tsx") || strings.HasSuffix(s, ".d.ts") || known[s]
	})
}

func rustStrategy(candidates []string) []string {
	known := map[string]bool{"build": true, "test": true, "check": true, "clippy": true, "fmt": true}
	return prioritize(candidates, func(s string) bool {
		return strings.HasSuffix(s, ".rs") || s == "Cargo.toml" || known[s]
	})
}

func identityStrategy(candidates []string) []string {
	return candidates
}
