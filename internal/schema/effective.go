// Package schema resolves a raw jsonschema.Schema into the effective view
// the parser and completer actually consume: flattened allOf, compiled
// patternProperties, a required set, and the self-reference sentinel for
// items (spec §4.2).
package schema

import (
	"regexp"

	js "github.com/relvacode/jexpand/jsonschema"
)

// Effective is a resolved, read-only view over a raw schema. It exposes
// only the attributes the core uses; "is key required" and "find pattern
// match" are plain methods on this concrete record, with no polymorphic
// schema hierarchy or interface dispatch (spec §9 "Schema as data, not
// polymorphism").
type Effective struct {
	Raw *js.Schema

	Properties map[string]*js.Schema
	patterns   []compiledPattern
	Required   map[string]struct{}

	AdditionalPropertiesAllowed bool
	additionalPropertiesSet     bool

	// Items is nil for non-array schemas, the single raw items schema for
	// the list form, or (via ItemsTuple) positional schemas for the tuple
	// form. ItemsSelfRef marks a "$ref": "#" sentinel inside items: the
	// completer must not recurse into its default expansion (spec §4.2,
	// §9 "Cyclic defaults").
	Items        *js.Schema
	ItemsTuple   []*js.Schema
	ItemsSelfRef bool

	Types        js.Types
	DefaultValue any
	HasDefault   bool

	AllOfMerged bool
}

type compiledPattern struct {
	source string
	re     *regexp.Regexp
	schema *js.Schema
}

// Resolve flattens allOf (left-to-right union of properties, set-union of
// required, last-wins default) and passes anyOf/oneOf through unchanged —
// callers receive the raw schema and use only its surface properties
// (spec §4.2). A nil input resolves to the empty schema.
func Resolve(raw *js.Schema) *Effective {
	if raw == nil {
		raw = &js.Schema{}
	}

	eff := &Effective{
		Raw:        raw,
		Properties: map[string]*js.Schema{},
		Required:   map[string]struct{}{},
		Types:      raw.Type,
	}

	merge(eff, raw)

	if len(raw.AllOf) > 0 {
		eff.AllOfMerged = true
		for _, sub := range raw.AllOf {
			if sub == nil {
				continue
			}
			merge(eff, sub)
		}
	}

	compilePatterns(eff)
	resolveItems(eff)

	if !eff.additionalPropertiesSet {
		// additionalProperties unset ⇒ allowed by default (JSON Schema
		// semantics); only an explicit `false` turns the policy on.
		eff.AdditionalPropertiesAllowed = true
	}

	return eff
}

// merge folds one raw schema's surface into eff using left-to-right union
// for properties, set-union for required, and last-wins for default — the
// same rule applied once for the base schema and once per allOf member.
func merge(eff *Effective, s *js.Schema) {
	for k, v := range s.Properties {
		eff.Properties[k] = v
	}
	for _, r := range s.Required {
		eff.Required[r] = struct{}{}
	}
	if s.Default != nil {
		eff.DefaultValue = s.Default
		eff.HasDefault = true
	}
	if len(s.Type) > 0 {
		eff.Types = s.Type
	}
	if s.AdditionalProperties != nil {
		eff.AdditionalPropertiesAllowed = s.AdditionalProperties.Allowed
		eff.additionalPropertiesSet = true
	}
}

func compilePatterns(eff *Effective) {
	for pattern, sub := range eff.Raw.PatternProperties {
		re, err := regexp.Compile(pattern)
		if err != nil {
			// An invalid pattern degrades to "never matches" rather than
			// aborting resolution — the core never rejects schemas for
			// semantic problems, mirroring its stance on prefixes.
			continue
		}
		eff.patterns = append(eff.patterns, compiledPattern{source: pattern, re: re, schema: sub})
	}
	for _, sub := range eff.Raw.AllOf {
		if sub == nil {
			continue
		}
		for pattern, ps := range sub.PatternProperties {
			re, err := regexp.Compile(pattern)
			if err != nil {
				continue
			}
			eff.patterns = append(eff.patterns, compiledPattern{source: pattern, re: re, schema: ps})
		}
	}
}

func resolveItems(eff *Effective) {
	items := eff.Raw.Items
	if items == nil {
		return
	}
	if items.Single != nil {
		if items.Single.Ref == "#" {
			eff.ItemsSelfRef = true
			return
		}
		eff.Items = items.Single
		return
	}
	eff.ItemsTuple = items.Tuple
}

// derefOrEmpty implements spec §4.2's fallback for any $ref other than the
// exact self-reference "#": treated as an empty schema.
func derefOrEmpty(s *js.Schema) *js.Schema {
	if s == nil {
		return &js.Schema{}
	}
	if s.Ref != "" && s.Ref != "#" {
		return &js.Schema{}
	}
	return s
}

// PropertySchema resolves the sub-schema for a known (complete) key:
// properties[k] first, else the first pattern whose regex matches k, else
// the empty schema (spec §4.3 step "Resolve property schema").
func (e *Effective) PropertySchema(key string) *js.Schema {
	if e == nil {
		return &js.Schema{}
	}
	if s, ok := e.Properties[key]; ok && s != nil {
		return derefOrEmpty(s)
	}
	for _, p := range e.patterns {
		if p.re.MatchString(key) {
			return derefOrEmpty(p.schema)
		}
	}
	return &js.Schema{}
}

// IsKnownKey reports whether key is either a declared property or matches a
// pattern property — used by the completer's garbage-object sentinel (via
// KeyRecognized) and by its additional-properties stripping.
func (e *Effective) IsKnownKey(key string) bool {
	if e == nil {
		return false
	}
	if _, ok := e.Properties[key]; ok {
		return true
	}
	for _, p := range e.patterns {
		if p.re.MatchString(key) {
			return true
		}
	}
	return false
}

// MatchesAnyPattern reports whether key matches any patternProperties
// regex, independent of whether it is also a declared property.
func (e *Effective) MatchesAnyPattern(key string) bool {
	if e == nil {
		return false
	}
	for _, p := range e.patterns {
		if p.re.MatchString(key) {
			return true
		}
	}
	return false
}

// IsRequired reports whether key is in the schema's required set.
func (e *Effective) IsRequired(key string) bool {
	if e == nil {
		return false
	}
	_, ok := e.Required[key]
	return ok
}

// PropertyNames returns the declared property names, used by the parser's
// unique-prefix partial-key disambiguation (spec §4.1).
func (e *Effective) PropertyNames() []string {
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.Properties))
	for k := range e.Properties {
		names = append(names, k)
	}
	return names
}

// UniquePrefixMatch implements the parser's partial-key rule: given a
// partial p and the schema's property-name set, if exactly one property
// starts with p, return it. Matching is case-sensitive and purely
// prefix-based (spec §4.1 "Partial-key matching").
func UniquePrefixMatch(names []string, partial string) (string, bool) {
	if partial == "" {
		return "", false
	}
	match := ""
	count := 0
	for _, n := range names {
		if len(n) >= len(partial) && n[:len(partial)] == partial {
			match = n
			count++
			if count > 1 {
				return "", false
			}
		}
	}
	if count == 1 {
		return match, true
	}
	return "", false
}

// KeyRecognized reports whether key would resolve to a concrete sub-schema
// by any means the parser itself uses: an exact property name, a pattern
// match, or — for a partial key (bare, or quoted and cut off before its
// closing quote) — being the unique prefix of exactly one property. The completer's garbage-object
// sentinel (spec §4.3) needs this broader notion; IsKnownKey alone would
// wrongly treat an unambiguous dangling partial key as unrecognised.
func (e *Effective) KeyRecognized(key string, rawPartial bool) bool {
	if e.IsKnownKey(key) {
		return true
	}
	if rawPartial {
		_, ok := UniquePrefixMatch(e.PropertyNames(), key)
		return ok
	}
	return false
}

// ItemSchemaAt resolves the schema used to parse/complete array element i:
// the tuple schema at index i when in tuple form and i is within range,
// the single items schema in list form, or the empty schema when neither
// applies (tuple overflow, or no items declared at all) — spec §6 "Items".
func (e *Effective) ItemSchemaAt(i int) *js.Schema {
	if e == nil {
		return &js.Schema{}
	}
	if len(e.ItemsTuple) > 0 {
		if i < len(e.ItemsTuple) && e.ItemsTuple[i] != nil {
			return derefOrEmpty(e.ItemsTuple[i])
		}
		return &js.Schema{}
	}
	if e.Items != nil {
		return derefOrEmpty(e.Items)
	}
	return &js.Schema{}
}
