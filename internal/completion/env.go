package completion

import (
	"context"
	"sort"
	"strings"
)

// commonEnvVars is the allow-list of names offered even when not present in
// the live environment
var commonEnvVars = map[string]bool{
	"PATH": true, "HOME": true, "USER": true, "SHELL": true, "PWD": true,
	"OLDPWD": true, "LANG": true, "LC_ALL": true, "TERM": true,
	"EDITOR": true, "PAGER": true, "PYTHONPATH": true, "NODE_PATH": true,
	"CARGO_HOME": true, "RUSTUP_HOME": true,
	"GOOBITS_CONFIG": true, "GOOBITS_HOME": true,
}

// envCommands are commands that operate on the environment
var envCommands = map[string]bool{
	"env": true, "export": true, "set": true, "unset": true, "printenv": true,
}

// EnvVarProvider completes environment variable names, preserving the $ or
// ${ decoration of the word under completion.
type EnvVarProvider struct {
	Base
}

// NewEnvVarProvider creates an environment variable provider
func NewEnvVarProvider() *EnvVarProvider {
	p := &EnvVarProvider{}
	p.init(PriorityEnvVar)
	return p
}

// CanProvide fires on $-prefixed words, environment commands, or arguments
// mentioning env
func (p *EnvVarProvider) CanProvide(c *Context) bool {
	if strings.HasPrefix(c.Word, "$") {
		return true
	}
	if envCommands[c.Command] {
		return true
	}
	for _, arg := range c.Args {
		if strings.Contains(strings.ToLower(arg), "env") {
			return true
		}
	}
	return false
}

// Complete returns matching variable names, allow-listed names first
func (p *EnvVarProvider) Complete(_ context.Context, c *Context) ([]string, error) {
	var prefix, partial, suffix string
	switch {
	case strings.HasPrefix(c.Word, "${"):
		prefix, partial, suffix = "${", c.Word[2:], "}"
	case strings.HasPrefix(c.Word, "$"):
		prefix, partial = "$", c.Word[1:]
	default:
		partial = c.Word
	}
	partial = strings.ToUpper(partial)

	available := make(map[string]bool, len(c.Env)+len(commonEnvVars))
	for name := range c.Env {
		available[name] = true
	}
	for name := range commonEnvVars {
		available[name] = true
	}

	completions := make([]string, 0, len(available))
	for name := range available {
		if strings.HasPrefix(name, partial) {
			completions = append(completions, prefix+name+suffix)
		}
	}

	sort.Slice(completions, func(i, j int) bool {
		iName := stripDecoration(completions[i])
		jName := stripDecoration(completions[j])
		iCommon := commonEnvVars[iName]
		jCommon := commonEnvVars[jName]
		if iCommon != jCommon {
			return iCommon
		}
		return iName < jName
	})

	return completions, nil
}

func stripDecoration(name string) string {
	name = strings.TrimPrefix(name, "${")
	name = strings.TrimPrefix(name, "$")
	return strings.TrimSuffix(name, "}")
}
