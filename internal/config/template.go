package config

import (
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateData exposes the variables available to config value templates
type templateData struct {
	ConfigDir  string
	WorkingDir string
}

// expandTemplate renders template syntax in a config value. Values without
// template markers are returned as-is, and so is the original value on any
// render error: a broken template must not make the config unusable.
func (c *Config) expandTemplate(value string) string {
	if !strings.Contains(value, "{{") {
		return value
	}

	tmpl, err := template.New("value").Funcs(sprig.TxtFuncMap()).Parse(value)
	if err != nil {
		return value
	}

	cwd, _ := os.Getwd()
	data := templateData{
		ConfigDir:  c.Dir,
		WorkingDir: cwd,
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return value
	}

	return b.String()
}

// ExpandedMap returns the configuration tree with template syntax rendered
// in every string value.
func (c *Config) ExpandedMap() map[string]interface{} {
	raw := c.Map()
	expanded := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		expanded[key] = c.expandValue(value)
	}
	return expanded
}

func (c *Config) expandValue(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return c.expandTemplate(v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, nested := range v {
			out[key] = c.expandValue(nested)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, nested := range v {
			out[i] = c.expandValue(nested)
		}
		return out
	default:
		return value
	}
}
