package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategy_Python(t *testing.T) {
	candidates := []string{"readme.md", "main.py", "--verbose", "install", "other"}
	got := pythonStrategy(candidates)
	assert.Equal(t, []string{"main.py", "--verbose", "install", "readme.md", "other"}, got)
}

func TestStrategy_NodeJS(t *testing.T) {
	candidates := []string{"main.rs", "app.js", "package.json", "start", "other"}
	got := nodejsStrategy(candidates)
	assert.Equal(t, []string{"app.js", "package.json", "start", "main.rs", "other"}, got)
}

func TestStrategy_TypeScript(t *testing.T) {
	candidates := []string{"app.js", "index.ts", "types.d.ts", "compile", "view.tsx"}
	got := typescriptStrategy(candidates)
	assert.Equal(t, []string{"index.ts", "types.d.ts", "compile", "view.tsx", "app.js"}, got)
}

func TestStrategy_Rust(t *testing.T) {
	candidates := []string{"readme.md", "main.rs", "Cargo.toml", "clippy", "other"}
	got := rustStrategy(candidates)
	assert.Equal(t, []string{"main.rs", "Cargo.toml", "clippy", "readme.md", "other"}, got)
}

func TestStrategy_PreservesRelativeOrder(t *testing.T) {
	candidates := []string{"z.py", "a.md", "a.py", "z.md"}
	got := pythonStrategy(candidates)
	// Stable partition: order inside each group is unchanged
	assert.Equal(t, []string{"z.py", "a.py", "a.md", "z.md"}, got)
}

func TestStrategyFor(t *testing.T) {
	candidates := []string{"b.rs", "a.txt"}

	got := strategyFor(LangRust)(candidates)
	assert.Equal(t, []string{"b.rs", "a.txt"}, got)

	// Unknown languages keep the input order
	got = strategyFor(LangOther)(candidates)
	assert.Equal(t, candidates, got)
	got = strategyFor(Language("cobol"))(candidates)
	assert.Equal(t, candidates, got)
}
