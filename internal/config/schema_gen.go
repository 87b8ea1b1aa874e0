//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
)

// SchemaConfig represents the root configuration for schema generation
type SchemaConfig struct {
	Name         string                  `json:"name,omitempty" jsonschema:"minLength=1,description=Name of the generated CLI"`
	Version      string                  `json:"version,omitempty" jsonschema:"description=CLI version string"`
	Description  string                  `json:"description,omitempty" jsonschema:"description=Short description of the CLI"`
	Language     string                  `json:"language,omitempty" jsonschema:"enum=python,enum=nodejs,enum=typescript,enum=rust,enum=other,description=Target language of the generated CLI"`
	Commands     map[string]CommandValue `json:"commands,omitempty" jsonschema:"description=Commands exposed by the CLI"`
	Options      map[string]OptionValue  `json:"options,omitempty" jsonschema:"description=Global options available on every command"`
	Scripts      map[string]string       `json:"scripts,omitempty" jsonschema:"description=Named scripts runnable through the CLI"`
	Dependencies map[string]string       `json:"dependencies,omitempty" jsonschema:"description=Language-level dependencies of the generated CLI"`
}

// CommandValue represents either a simple description string or a full command config
type CommandValue struct {
	Simple  string         `json:"-"`
	Complex *CommandConfig `json:"-"`
}

// CommandConfig represents a command with arguments and per-command options
type CommandConfig struct {
	Description string                 `json:"description,omitempty"`
	Args        []string               `json:"args,omitempty"`
	Options     map[string]OptionValue `json:"options,omitempty"`
}

// OptionValue represents either a simple description string or a full option config
type OptionValue struct {
	Simple  string        `json:"-"`
	Complex *OptionConfig `json:"-"`
}

// OptionConfig represents a typed option
type OptionConfig struct {
	Description string      `json:"description,omitempty"`
	Type        string      `json:"type,omitempty" jsonschema:"enum=string,enum=bool,enum=int,enum=float,enum=path"`
	Default     interface{} `json:"default,omitempty"`
	Required    bool        `json:"required,omitempty"`
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

// JSONSchema implements custom schema generation for CommandValue
func (CommandValue) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{
				Type:        "string",
				MinLength:   uint64Ptr(1),
				Description: "Simple command: description only",
			},
			{
				Ref: "#/$defs/CommandConfig",
			},
		},
	}
}

// JSONSchema implements custom schema generation for OptionValue
func (OptionValue) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{
				Type:        "string",
				Description: "Simple option: description only",
			},
			{
				Ref: "#/$defs/OptionConfig",
			},
		},
	}
}

func main() {
	r := &jsonschema.Reflector{
		DoNotReference:             false,
		ExpandedStruct:             false,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&SchemaConfig{})

	// Add definitions referenced via $ref
	commandConfigSchema := r.ReflectFromType(reflect.TypeOf(CommandConfig{}))
	optionConfigSchema := r.ReflectFromType(reflect.TypeOf(OptionConfig{}))

	if def, ok := commandConfigSchema.Definitions["CommandConfig"]; ok {
		schema.Definitions["CommandConfig"] = def
	}
	if def, ok := optionConfigSchema.Definitions["OptionConfig"]; ok {
		schema.Definitions["OptionConfig"] = def
	}

	// Commands and options use patternProperties to constrain key names
	if schemaConfig, ok := schema.Definitions["SchemaConfig"]; ok {
		namePattern := "^[a-zA-Z_][a-zA-Z0-9_-]*$"

		if commands, ok := schemaConfig.Properties.Get("commands"); ok {
			commands.PatternProperties = map[string]*jsonschema.Schema{
				namePattern: commands.AdditionalProperties,
			}
			commands.AdditionalProperties = jsonschema.FalseSchema
		}

		if options, ok := schemaConfig.Properties.Get("options"); ok {
			options.PatternProperties = map[string]*jsonschema.Schema{
				namePattern: options.AdditionalProperties,
			}
			options.AdditionalProperties = jsonschema.FalseSchema
		}
	}

	// Use draft-07 for IDE compatibility
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.ID = "https://raw.githubusercontent.com/goobits/completion/main/schema/goobits.schema.json"
	schema.Title = "Goobits Configuration"
	schema.Description = "Configuration file for a goobits-generated CLI"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling schema: %v\n", err)
		os.Exit(1)
	}

	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Schema generated: %s\n", outputPath)
}
