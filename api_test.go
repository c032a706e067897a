package jexpand

import (
	"reflect"
	"testing"

	js "github.com/relvacode/jexpand/jsonschema"
)

func mustSchema(t *testing.T, doc string) *js.Schema {
	t.Helper()
	s, err := js.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	return s
}

// TestExpandBoundaries exercises the ten exact boundary cases.
func TestExpandBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		schema string
		input  string
		want   any
	}{
		{
			"trailing-quote-preserved",
			`{"type":"object","properties":{"name":{"type":"string","default":"Unknown"},"age":{"type":"integer","default":0},"active":{"type":"boolean","default":true}}}`,
			`{"name":"John"`,
			map[string]any{"name": "John", "age": float64(0), "active": true},
		},
		{
			"trailing-comma",
			`{"type":"object","properties":{"name":{"type":"string","default":"Unknown"},"age":{"type":"integer","default":0},"active":{"type":"boolean","default":true}}}`,
			`{"name":"John",`,
			map[string]any{"name": "John", "age": float64(0), "active": true},
		},
		{
			"dangling-colon",
			`{"type":"object","properties":{"name":{"type":"string","default":"Unknown"},"age":{"type":"integer","default":0},"active":{"type":"boolean","default":true}}}`,
			`{"name":`,
			map[string]any{"name": "Unknown", "age": float64(0), "active": true},
		},
		{
			"unambiguous-partial-key",
			`{"properties":{"temperature":{"type":"number","default":20},"humidity":{"type":"number","default":50}}}`,
			`{"temp`,
			map[string]any{"temperature": float64(20), "humidity": float64(50)},
		},
		{
			"ambiguous-partial-key",
			`{"properties":{"temperature":{"type":"number","default":20},"humidity":{"type":"number","default":50},"temp":{"type":"number","default":99}}}`,
			`{"te`,
			nil,
		},
		{
			"incomplete-array",
			`{"properties":{"items":{"type":"array","items":{"type":"string"}}}}`,
			`{"items":["a","b","c"`,
			map[string]any{"items": []any{"a", "b", "c"}},
		},
		{
			"double-comma",
			`{"type":"object"}`,
			`{"a":1,,"b":2}`,
			nil,
		},
		{
			"extra-closing-brace",
			`{"type":"object"}`,
			`{"a":1}}}`,
			nil,
		},
		{
			"partial-bool-literal",
			`{"type":"boolean"}`,
			`tr`,
			true,
		},
		{
			"number-dangling-exponent",
			`{"type":"object","properties":{"p":{"type":"number"}}}`,
			`{"p":1.23e`,
			map[string]any{"p": float64(1.23)},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			schema := mustSchema(t, c.schema)
			got := Expand(schema, []byte(c.input))
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("Expand(%q) = %#v, want %#v", c.input, got, c.want)
			}
		})
	}
}

func TestExpandEmptyInput(t *testing.T) {
	schema := mustSchema(t, `{"type":"object","default":{"a":1}}`)
	got := Expand(schema, nil)
	want := map[string]any{"a": float64(1)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand(nil) = %#v, want %#v", got, want)
	}
}

func TestExpandEmptyInputTypeDefault(t *testing.T) {
	schema := mustSchema(t, `{"type":"array"}`)
	got := Expand(schema, []byte("   "))
	want := []any{}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand(whitespace) = %#v, want %#v", got, want)
	}
}

// TestExpandPrimitiveRoundTrip checks the round-trip property for
// primitives with no default: a complete serialized value decodes back to
// itself (spec §8 "Round-trips").
func TestExpandPrimitiveRoundTrip(t *testing.T) {
	cases := []struct {
		schema string
		input  string
		want   any
	}{
		{`{"type":"string"}`, `"hello"`, "hello"},
		{`{"type":"number"}`, `42.5`, float64(42.5)},
		{`{"type":"boolean"}`, `false`, false},
		{`{"type":"null"}`, `null`, nil},
	}
	for _, c := range cases {
		schema := mustSchema(t, c.schema)
		got := Expand(schema, []byte(c.input))
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("Expand(%q) = %#v, want %#v", c.input, got, c.want)
		}
	}
}

func TestExpandRequiredNeverSynthesized(t *testing.T) {
	schema := mustSchema(t, `{"type":"object","required":["name"],"properties":{"name":{"type":"string","default":"Unknown"}}}`)
	got := Expand(schema, []byte(`{`))
	want := map[string]any{}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand(%q) = %#v, want %#v", "{", got, want)
	}
}

func TestExpandAdditionalPropertiesStripped(t *testing.T) {
	schema := mustSchema(t, `{"type":"object","properties":{"a":{"type":"number"}},"additionalProperties":false}`)
	got := Expand(schema, []byte(`{"a":1,"b":2}`))
	want := map[string]any{"a": float64(1)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand = %#v, want %#v", got, want)
	}
}
