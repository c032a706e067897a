// Package complete folds a parse tree produced by internal/parser against
// an effective schema to produce the final JSON value, or nil if the
// prefix was unrecoverable (spec §4.3).
package complete

import (
	"strconv"
	"strings"

	js "github.com/relvacode/jexpand/jsonschema"
	"github.com/relvacode/jexpand/internal/schema"
	"github.com/relvacode/jexpand/internal/tree"
)

// Complete folds node against raw's effective schema. A nil node is the
// empty-input case (spec §6): "the Completer is called with a null tree
// and returns the schema's own default".
func Complete(node *tree.Node, raw *js.Schema) any {
	eff := schema.Resolve(raw)
	if node == nil {
		return DefaultFor(eff, true)
	}

	switch node.Kind {
	case tree.KindObject:
		return completeObject(node, eff)
	case tree.KindArray:
		return completeArray(node, eff)
	case tree.KindString:
		return node.Text
	case tree.KindNumber:
		return completeNumber(node.Text)
	case tree.KindBool:
		return node.Bool
	case tree.KindNull:
		return nil
	default:
		return nil
	}
}

// completeObject implements spec §4.3 "Object completion" plus the
// garbage-object and empty-object-with-default special cases.
func completeObject(node *tree.Node, eff *schema.Effective) any {
	if isGarbageObject(node, eff) {
		return nil
	}
	if len(node.Object) == 0 && eff.HasDefault {
		// "the schema's default verbatim (no further property-default
		// merging)" — preserves caller intent that {} means "use default".
		return eff.DefaultValue
	}

	result := make(map[string]any, len(node.Object))
	for _, entry := range node.Object {
		if entry.Key == nil {
			continue
		}
		key := *entry.Key
		propRaw := eff.PropertySchema(key)
		propEff := schema.Resolve(propRaw)

		switch {
		case entry.Value != nil:
			result[key] = completeEntryValue(entry.Value, propRaw, propEff, eff.IsRequired(key))
		case entry.HasColon:
			result[key] = DefaultFor(propEff, !eff.IsRequired(key))
		default:
			// dangling partial key with no colon: skip (spec §4.3 step 3).
		}
	}

	out := fillDefaults(eff, result)
	stripAdditionalProperties(eff, out)
	return out
}

// completeEntryValue applies the open-question "preserve null if permitted"
// rule (spec §9): a present, parsed `null` is kept as-is when the
// sub-schema's type list allows null or declares no type constraint at
// all; otherwise it is replaced by the sub-schema's default.
func completeEntryValue(valueNode *tree.Node, propRaw *js.Schema, propEff *schema.Effective, required bool) any {
	val := Complete(valueNode, propRaw)
	if valueNode.Kind != tree.KindNull {
		return val
	}
	if len(propEff.Types) == 0 || propEff.Types.Has("null") {
		return val
	}
	return DefaultFor(propEff, !required)
}

// fillDefaults implements spec §4.3 steps 4-5: when the schema carries an
// object default, deep-merge it under the parsed result (parsed values
// win), then — with or without an object default — fill in every missing
// non-required declared property that has an explicit sub-schema default.
// Required properties are never synthesized.
func fillDefaults(eff *schema.Effective, result map[string]any) map[string]any {
	var merged map[string]any
	if eff.HasDefault {
		m := deepMerge(eff.DefaultValue, result)
		obj, ok := m.(map[string]any)
		if !ok {
			obj = result
		}
		merged = obj
	} else {
		merged = result
	}

	for name, propRaw := range eff.Properties {
		if eff.IsRequired(name) {
			continue
		}
		if _, present := merged[name]; present {
			continue
		}
		propEff := schema.Resolve(propRaw)
		if propEff.HasDefault {
			merged[name] = propEff.DefaultValue
		}
	}
	return merged
}

// stripAdditionalProperties implements spec §4.3 "Additional-properties
// policy": remove keys that are neither a declared property nor a
// patternProperties match, when additionalProperties is explicitly false.
func stripAdditionalProperties(eff *schema.Effective, out map[string]any) {
	if eff.AdditionalPropertiesAllowed {
		return
	}
	for key := range out {
		if eff.IsKnownKey(key) {
			continue
		}
		delete(out, key)
	}
}

// isGarbageObject implements the malformed-prefix sentinel of spec §4.3: a
// non-empty object whose every entry is both unrecognised and colonless.
func isGarbageObject(node *tree.Node, eff *schema.Effective) bool {
	if len(node.Object) == 0 {
		return false
	}
	for _, entry := range node.Object {
		if entry.HasColon {
			return false
		}
		key := ""
		if entry.Key != nil {
			key = *entry.Key
		}
		if eff.KeyRecognized(key, entry.RawPartial) {
			return false
		}
	}
	return true
}

func completeArray(node *tree.Node, eff *schema.Effective) any {
	out := make([]any, 0, len(node.Array))
	for i, el := range node.Array {
		itemRaw := eff.ItemSchemaAt(i)
		out = append(out, Complete(el, itemRaw))
	}
	return out
}

// completeNumber implements spec §4.3 "Primitive completion / Number":
// strip a dangling fraction/exponent marker, resolve a lone "-" to 0, and
// otherwise parse the slice, defaulting to 0 on any parse failure.
func completeNumber(text string) any {
	s := text
	switch {
	case s == "-":
		return float64(0)
	case strings.HasSuffix(s, "."):
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "e"), strings.HasSuffix(s, "E"):
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "e+"), strings.HasSuffix(s, "e-"),
		strings.HasSuffix(s, "E+"), strings.HasSuffix(s, "E-"):
		s = s[:len(s)-2]
	}
	if s == "" || s == "-" {
		return float64(0)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return float64(0)
	}
	return v
}
