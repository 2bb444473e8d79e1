// Package config loads the CLI driver's novalang.yaml / .novalangrc
// configuration (recursion-depth limit, color, telemetry verbosity) and
// validates both the config document and, when a host registers a native
// function with an argument schema, the shape of the arguments passed to it
// at call time (SPEC_FULL.md §2 "Configuration").
//
// Grounded in the teacher's core/types/validation.go and
// core/types/validation_config.go: compile a santhosh-tekuri/jsonschema/v5
// schema once, validate a decoded document against it, surface a wrapped
// error. NovaLang applies the same recipe to its own config shape instead of
// decorator parameters.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Config is the CLI driver's tunable surface. Every field has a sane
// zero-value default so an absent config file behaves like an empty one.
type Config struct {
	// MaxCallDepth bounds user-function recursion before the evaluator
	// raises a "stack overflow" RuntimeError instead of exhausting the Go
	// call stack (spec.md §5, SPEC_FULL.md §4).
	MaxCallDepth int `yaml:"maxCallDepth"`
	// Color is loaded and validated from the config file. The CLI does not
	// read it: color output is decided by --no-color, NO_COLOR and whether
	// stdout is a terminal.
	Color bool `yaml:"color"`
	// Telemetry is a verbosity level, one of "silent", "normal", or
	// "verbose". It is loaded and validated; no CLI output reads it.
	Telemetry string `yaml:"telemetry"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{MaxCallDepth: 512, Color: true, Telemetry: "normal"}
}

// configSchemaJSON is the embedded JSON Schema novalang.yaml / .novalangrc
// documents are validated against before being unmarshaled into Config.
const configSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "maxCallDepth": {"type": "integer", "minimum": 1, "maximum": 100000},
    "color": {"type": "boolean"},
    "telemetry": {"type": "string", "enum": ["silent", "normal", "verbose"]}
  }
}`

var compiledConfigSchema = compileSchema("novalang-config.json", configSchemaJSON)

func compileSchema(resource, schemaJSON string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resource, strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("config: invalid embedded schema %s: %v", resource, err))
	}
	schema, err := compiler.Compile(resource)
	if err != nil {
		panic(fmt.Sprintf("config: failed to compile embedded schema %s: %v", resource, err))
	}
	return schema
}

// Load reads and validates a novalang.yaml / .novalangrc document at path,
// returning Default() merged over by whatever fields the file sets.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if doc == nil {
		return Default(), nil
	}

	if err := compiledConfigSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("config: %s failed validation: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// ValidateArgs validates a native function call's arguments against an
// optional JSON Schema attached to object.NativeFunction.Schema
// (SPEC_FULL.md §2 "Configuration": "the shape of the arguments passed to it
// at call time"). schema may be nil or any value json.Marshal can round-trip
// into a JSON Schema document; args is validated as a JSON array.
func ValidateArgs(schema any, args []any) error {
	if schema == nil {
		return nil
	}
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("config: marshal arg schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("native-args.json", strings.NewReader(string(schemaBytes))); err != nil {
		return fmt.Errorf("config: invalid arg schema: %w", err)
	}
	compiled, err := compiler.Compile("native-args.json")
	if err != nil {
		return fmt.Errorf("config: compile arg schema: %w", err)
	}
	if err := compiled.Validate(any(args)); err != nil {
		return fmt.Errorf("argument validation failed: %w", err)
	}
	return nil
}
