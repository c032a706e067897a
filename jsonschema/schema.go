// Package jsonschema is a minimal JSON Schema representation used by the
// completer. It carries only the attributes the core actually reads:
// structure, defaults, required sets, and pattern rules. Formats, numeric
// bounds, and enum constraints are accepted (so documents round-trip) but
// never interpreted.
package jsonschema

import (
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Schema is the raw, unresolved JSON Schema document as authored by a
// caller. A Schema is resolved into an effective view (see
// internal/schema) before the parser or completer ever reads it.
type Schema struct {
	// Core
	Type    Types `json:"type,omitempty" yaml:"type,omitempty"`
	Format  string `json:"format,omitempty" yaml:"format,omitempty"`
	Default any    `json:"default,omitempty" yaml:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	PatternProperties    map[string]*Schema `json:"patternProperties,omitempty" yaml:"patternProperties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *AdditionalProps    `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array. Items is either a single schema (list form) or a tuple of
	// schemas (one per index); see ItemsSchema.UnmarshalJSON.
	Items    *ItemsSchema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int         `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int         `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// Composition
	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`

	// Self-reference. Only "#" is recognised; on a property or items
	// sub-schema anything else resolves to an empty schema (see
	// derefOrEmpty in internal/schema).
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Passed through with no enforcement (see spec §6 "Unsupported").
	Minimum   *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Enum      []any    `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// Parse decodes a JSON Schema document using goccy/go-json.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseYAML decodes the same document shape from YAML.
func ParseYAML(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
