package parser

import (
	"github.com/relvacode/jexpand/internal/schema"
	"github.com/relvacode/jexpand/internal/tree"
)

// parseArray implements spec §4.1 "Array parsing": elements are parsed
// against the schema for their index (tuple items, a single items schema
// applied to every index, or the empty schema), separated by commas, until
// a ']' closes the array or the input runs out.
func (p *parser) parseArray(eff *schema.Effective) (*tree.Node, error) {
	start := p.s.pos()
	p.s.advance() // consume '['

	node := &tree.Node{Kind: tree.KindArray, Start: start}

	for {
		p.s.skipWhitespace()
		if p.s.atEnd() {
			return node, nil
		}
		b, _ := p.s.peek()
		if b == ']' {
			end := p.s.pos()
			p.s.advance()
			node.End = &end
			return node, nil
		}

		itemSchema := eff.ItemSchemaAt(len(node.Array))
		val, err := p.parseValueForRawSchema(itemSchema)
		if err != nil {
			return nil, err
		}
		node.Array = append(node.Array, val)

		p.s.skipWhitespace()
		if p.s.atEnd() {
			return node, nil
		}
		b, _ = p.s.peek()
		if b == ',' {
			p.s.advance()
			p.s.skipWhitespace()
			if nb, ok := p.s.peek(); ok && nb == ',' {
				return nil, errMalformed
			}
			continue
		}
		if b != ']' {
			return node, nil
		}
	}
}
