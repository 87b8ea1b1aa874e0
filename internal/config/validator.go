package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Validate validates a config file: syntax, schema, and semantic checks
func Validate(path string) (*ValidationResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	cfg, err := Load(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("Failed to parse config: %v", err),
		})
		return result, nil
	}

	// Commands and scripts must not collide: the generated CLI exposes both
	// under a single namespace
	scripts, _ := cfg.k.Get("scripts").(map[string]interface{})
	for _, name := range cfg.Commands() {
		if _, exists := scripts[name]; exists {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "commands/" + name,
				Message: fmt.Sprintf("Name conflict: '%s' is defined as both a command and a script", name),
			})
		}
	}

	for name, body := range scripts {
		script, ok := body.(string)
		if ok && strings.TrimSpace(script) == "" {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "scripts/" + name,
				Message: "Script body is empty",
			})
		}
	}

	return result, nil
}
