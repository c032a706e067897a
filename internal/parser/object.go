package parser

import (
	js "github.com/relvacode/jexpand/jsonschema"
	"github.com/relvacode/jexpand/internal/schema"
	"github.com/relvacode/jexpand/internal/tree"
)

// isKeyStop reports whether b is one of the characters a bare (unquoted)
// partial key stops at.
// Per the data-model invariant (spec §3), a partial key never contains any
// of these.
func isKeyStop(b byte) bool {
	return b == ':' || b == ',' || b == '}' || b == '"' || isJSONWhitespace(b)
}

// parseObject implements spec §4.1 "Object parsing".
func (p *parser) parseObject(eff *schema.Effective) (*tree.Node, error) {
	start := p.s.pos()
	p.s.advance() // consume '{'

	node := &tree.Node{Kind: tree.KindObject, Start: start}

	for {
		p.s.skipWhitespace()
		if p.s.atEnd() {
			return node, nil // incomplete: no closing brace observed
		}
		b, _ := p.s.peek()
		if b == '}' {
			end := p.s.pos()
			p.s.advance()
			node.End = &end
			return node, nil
		}

		entry, stop, err := p.parseObjectEntry(eff)
		if err != nil {
			return nil, err
		}
		node.Object = append(node.Object, entry)
		if stop {
			// step 7: current is neither ',' nor '}' — incomplete, not malformed.
			return node, nil
		}
		// current byte is ',': consumed inside parseObjectEntry's comma
		// handling (step 6), which also applies the double-comma check.
	}
}

// parseObjectEntry parses one key[:value] pair (spec §4.1 steps 2-6) and
// reports whether the caller should stop the enclosing loop (current byte
// is neither ',' nor '}', i.e. EOF or a dangling fragment).
func (p *parser) parseObjectEntry(eff *schema.Effective) (tree.ObjectEntry, bool, error) {
	var entry tree.ObjectEntry

	key, rawPartial, closed, err := p.parseObjectKey()
	if err != nil {
		return entry, false, err
	}
	entry.Key = &key
	entry.RawPartial = rawPartial
	if !closed {
		// string key never closed, or bare partial ran to EOF without
		// hitting a stop character: the object is incomplete here.
		return entry, true, nil
	}

	p.s.skipWhitespace()
	if p.s.atEnd() {
		return entry, true, nil
	}
	if b, _ := p.s.peek(); b == ':' {
		entry.HasColon = true
		p.s.advance()
		p.s.skipWhitespace()
	}

	if entry.HasColon {
		if p.s.atEnd() {
			return entry, true, nil
		}
		if b, _ := p.s.peek(); b != ',' && b != '}' {
			subRaw := propertySubSchema(eff, key, rawPartial)
			val, err := p.parseValueForRawSchema(subRaw)
			if err != nil {
				return entry, false, err
			}
			entry.Value = val
			// Disambiguate the stored key to the full property name once
			// a sub-schema has been chosen via unique-prefix matching
			// (spec §4.1 "Partial-key completion is attempted here").
			if rawPartial {
				if resolved, ok := schema.UniquePrefixMatch(eff.PropertyNames(), key); ok {
					*entry.Key = resolved
				}
			}
		}
	}

	p.s.skipWhitespace()
	if p.s.atEnd() {
		return entry, true, nil
	}
	b, _ := p.s.peek()
	if b == ',' {
		p.s.advance()
		p.s.skipWhitespace()
		if nb, ok := p.s.peek(); ok && nb == ',' {
			return entry, false, errMalformed
		}
		return entry, false, nil
	}
	if b != '}' {
		return entry, true, nil
	}
	return entry, false, nil
}

// parseObjectKey implements step 2: a quoted string key via the string
// sub-parser, or a bare partial key scanned up to the first stop
// character. closed reports whether the key was fully captured (a closed
// quoted string, or a bare partial that hit a stop character). rawPartial
// reports whether the key is eligible for unique-prefix disambiguation —
// the GLOSSARY's "partial key" is any key that never reached a closing
// `"`, which includes a quoted key truncated by EOF, not only the
// unquoted bare-scan path.
func (p *parser) parseObjectKey() (key string, rawPartial bool, closed bool, err error) {
	b, ok := p.s.peek()
	if !ok {
		return "", false, false, errMalformed
	}
	if b == '"' {
		node, serr := p.parseString()
		if serr != nil {
			return "", false, false, serr
		}
		return node.Text, !node.Closed, node.Closed, nil
	}
	if b == '}' || !isIdentStart(b) {
		// Anything except '"', '}', or an identifier start introducing a
		// partial key is a hard syntax error (spec §4.1 malformed list).
		return "", false, false, errMalformed
	}

	start := p.s.off
	for {
		cb, cok := p.s.peek()
		if !cok {
			// ran to EOF before any stop character: dangling partial key.
			return string(p.s.src[start:p.s.off]), true, false, nil
		}
		if isKeyStop(cb) {
			partial := string(p.s.src[start:p.s.off])
			if partial == "" {
				return "", true, false, nil
			}
			return partial, true, true, nil
		}
		p.s.advance()
	}
}

// propertySubSchema resolves the raw sub-schema used to parse an entry's
// value: properties[key] (with unique-prefix disambiguation when key came
// from a bare partial), else the schema for a pattern match, else the
// empty schema (spec §4.1 step 4).
func propertySubSchema(eff *schema.Effective, key string, rawPartial bool) *js.Schema {
	if s, ok := eff.Properties[key]; ok && s != nil {
		return s
	}
	if rawPartial {
		if resolved, ok := schema.UniquePrefixMatch(eff.PropertyNames(), key); ok {
			if s, ok := eff.Properties[resolved]; ok && s != nil {
				return s
			}
		}
	}
	return eff.PropertySchema(key)
}
