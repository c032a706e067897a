package schema

import (
	"testing"

	js "github.com/relvacode/jexpand/jsonschema"
)

func TestResolveAllOfMerge(t *testing.T) {
	raw, err := js.Parse([]byte(`{
		"allOf": [
			{"properties":{"a":{"type":"string"}},"required":["a"],"default":{"a":"x"}},
			{"properties":{"b":{"type":"number"}},"required":["b"],"default":{"b":1},"additionalProperties":false}
		]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	eff := Resolve(raw)
	if !eff.AllOfMerged {
		t.Fatalf("expected AllOfMerged")
	}
	if _, ok := eff.Properties["a"]; !ok {
		t.Fatalf("expected property a from first allOf member")
	}
	if _, ok := eff.Properties["b"]; !ok {
		t.Fatalf("expected property b from second allOf member")
	}
	if !eff.IsRequired("a") || !eff.IsRequired("b") {
		t.Fatalf("expected required set-union of a and b")
	}
	if eff.DefaultValue.(map[string]any)["b"] != float64(1) {
		t.Fatalf("expected last-wins default, got %#v", eff.DefaultValue)
	}
	if eff.AdditionalPropertiesAllowed {
		t.Fatalf("expected additionalProperties:false from allOf member to apply")
	}
}

func TestAdditionalPropertiesDefaultsToAllowed(t *testing.T) {
	raw, _ := js.Parse([]byte(`{"type":"object"}`))
	eff := Resolve(raw)
	if !eff.AdditionalPropertiesAllowed {
		t.Fatalf("expected additionalProperties to default to allowed")
	}
}

func TestPatternPropertiesMatch(t *testing.T) {
	raw, err := js.Parse([]byte(`{"patternProperties":{"^x-":{"type":"string"}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	eff := Resolve(raw)
	if !eff.MatchesAnyPattern("x-foo") {
		t.Fatalf("expected x-foo to match pattern")
	}
	if eff.MatchesAnyPattern("foo") {
		t.Fatalf("did not expect foo to match pattern")
	}
}

func TestInvalidPatternDegradesSilently(t *testing.T) {
	raw, err := js.Parse([]byte(`{"patternProperties":{"(unterminated":{"type":"string"}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	eff := Resolve(raw)
	if eff.MatchesAnyPattern("anything") {
		t.Fatalf("expected invalid pattern to never match")
	}
}

func TestUniquePrefixMatch(t *testing.T) {
	names := []string{"temperature", "humidity"}
	if got, ok := UniquePrefixMatch(names, "temp"); !ok || got != "temperature" {
		t.Fatalf("got %q, %v", got, ok)
	}
	if _, ok := UniquePrefixMatch([]string{"temperature", "temp"}, "te"); ok {
		t.Fatalf("expected ambiguous prefix to fail")
	}
	if _, ok := UniquePrefixMatch(names, ""); ok {
		t.Fatalf("expected empty partial to never match")
	}
}

func TestSelfReferentialItems(t *testing.T) {
	raw, err := js.Parse([]byte(`{"type":"array","items":{"$ref":"#"}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	eff := Resolve(raw)
	if !eff.ItemsSelfRef {
		t.Fatalf("expected ItemsSelfRef")
	}
	if eff.ItemSchemaAt(0) == nil {
		t.Fatalf("expected empty-schema fallback, not nil")
	}
}

func TestItemSchemaAtTupleOverflow(t *testing.T) {
	raw, err := js.Parse([]byte(`{"items":[{"type":"string"},{"type":"number"}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	eff := Resolve(raw)
	if eff.ItemSchemaAt(0).Type.First() != "string" {
		t.Fatalf("expected tuple index 0 to be string")
	}
	if eff.ItemSchemaAt(1).Type.First() != "number" {
		t.Fatalf("expected tuple index 1 to be number")
	}
	overflow := eff.ItemSchemaAt(2)
	if len(overflow.Type) != 0 {
		t.Fatalf("expected empty schema past tuple length, got %#v", overflow)
	}
}

func TestKeyRecognized(t *testing.T) {
	raw, _ := js.Parse([]byte(`{"properties":{"temperature":{},"temp":{}}}`))
	eff := Resolve(raw)
	if eff.KeyRecognized("te", true) {
		t.Fatalf("expected ambiguous prefix to be unrecognised")
	}
	if !eff.KeyRecognized("temp", false) {
		t.Fatalf("expected exact match to be recognised")
	}
}
