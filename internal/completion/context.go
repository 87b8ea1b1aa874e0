// Package completion provides context-aware, ranked completion for
// goobits-generated CLIs. A registry orchestrates pluggable providers over
// an immutable per-request context; a smart engine layers fuzzy matching and
// history ranking on top within a fixed latency budget.
package completion

import (
	"os"
	"strings"
)

// Language identifies the target language of the CLI being completed
type Language string

// Supported languages. Anything else reorders with the identity strategy.
const (
	LangPython     Language = "python"
	LangNodeJS     Language = "nodejs"
	LangTypeScript Language = "typescript"
	LangRust       Language = "rust"
	LangOther      Language = "other"
)

// ParseLanguage normalizes a language tag. Unknown tags map to LangOther.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LangPython:
		return LangPython
	case LangNodeJS:
		return LangNodeJS
	case LangTypeScript:
		return LangTypeScript
	case LangRust:
		return LangRust
	default:
		return LangOther
	}
}

// Context is the per-request snapshot used to compute candidates. It is
// built once per completion call, enriched by analyzers, and discarded.
type Context struct {
	// Command is the first token of the line
	Command string
	// Word is the partial token under completion. It is the trailing token
	// of the line when the caller is mid-token, empty otherwise.
	Word string
	// Args are all whitespace-separated tokens of the line
	Args []string
	// Cwd is the working directory of the request
	Cwd string
	// Env is a snapshot of the process environment
	Env map[string]string
	// History holds past command lines, oldest first
	History []string
	// Commands and Options are the known commands/flags of the CLI
	Commands map[string]bool
	Options  map[string]bool
	// Metadata is populated by analyzers
	Metadata map[string]interface{}
	// Language is the target language of the CLI
	Language Language
	// Config is the discovered goobits configuration, empty when none found
	Config map[string]interface{}
}

// Analyzer enriches a context before providers run. Analyzer errors are
// logged by the registry and never abort the completion call.
type Analyzer func(*Context) error

// environMap snapshots the process environment
func environMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if idx := strings.Index(kv, "="); idx >= 0 {
			env[kv[:idx]] = kv[idx+1:]
		}
	}
	return env
}
