// Package parser implements the schema-aware, position-tracking,
// prefix-tolerant JSON parser described in spec §4.1. It never panics or
// returns a Go error to its caller: every failure surfaces as (nil, false).
package parser

import (
	"bytes"
	"errors"

	js "github.com/relvacode/jexpand/jsonschema"
	"github.com/relvacode/jexpand/internal/schema"
	"github.com/relvacode/jexpand/internal/tree"
)

// errMalformed is the internal sentinel for an unrecoverably malformed
// prefix (spec §4.1's bullet list). It never escapes this package; Parse
// converts it to (nil, false) at the boundary, mirroring the teacher's
// internal/engine.IssueError -> boundary-downgrade pattern.
var errMalformed = errors.New("jexpand/parser: malformed prefix")

// Parse consumes input against the effective schema and returns the parse
// tree, or (nil, false) if the trimmed input is empty or the prefix is
// unrecoverably malformed (spec §4.1).
func Parse(input []byte, eff *schema.Effective) (*tree.Node, bool) {
	if len(bytes.TrimSpace(input)) == 0 {
		return nil, false
	}

	p := &parser{s: newScanner(input)}
	node, err := p.parseValue(eff)
	if err != nil {
		return nil, false
	}

	p.s.skipWhitespace()
	if !p.s.atEnd() && node.IsComplete() {
		b, _ := p.s.peek()
		if b == '}' || b == ']' {
			return nil, false
		}
	}

	return node, true
}

type parser struct {
	s *scanner
}

// parseValue dispatches to the sub-parser matching the next significant
// byte. An empty schema is passed down wherever the caller has nothing more
// specific (spec §4.1's "if none applies, an empty schema").
func (p *parser) parseValue(eff *schema.Effective) (*tree.Node, error) {
	p.s.skipWhitespace()
	b, ok := p.s.peek()
	if !ok {
		return nil, errMalformed
	}

	switch {
	case b == '{':
		return p.parseObject(eff)
	case b == '[':
		return p.parseArray(eff)
	case b == '"':
		return p.parseString()
	case b == '-' || isDigit(b):
		return p.parseNumber()
	case b == 't' || b == 'f':
		return p.parseBool()
	case b == 'n':
		return p.parseNull()
	default:
		return nil, errMalformed
	}
}

// parseValueForRawSchema resolves a raw *js.Schema down to its effective
// view before delegating — used at object/array element boundaries where a
// property's or item's sub-schema is only a raw *js.Schema.
func (p *parser) parseValueForRawSchema(raw *js.Schema) (*tree.Node, error) {
	return p.parseValue(schema.Resolve(raw))
}
