package parser

import "github.com/relvacode/jexpand/internal/tree"

// parseNumber implements the grammar and backtracking behavior of spec
// §4.1 "Number parsing":
//
//	-? (0 | [1-9][0-9]*) (. [0-9]+)? ([eE][+-]?[0-9]+)?
//
// An incomplete fraction or exponent causes the parser to backtrack the
// textual slice to the last known-good prefix, which is then reported as
// complete. A lone "-" becomes a NumberNode whose text is "-" for the
// Completer to resolve.
func (p *parser) parseNumber() (*tree.Node, error) {
	start := p.s.pos()

	if b, _ := p.s.peek(); b == '-' {
		p.s.advance()
		if nb, ok := p.s.peek(); !ok || !isDigit(nb) {
			return &tree.Node{Kind: tree.KindNumber, Start: start, Text: "-"}, nil
		}
	}

	// Integer part: "0" alone, or [1-9][0-9]*.
	if b, _ := p.s.peek(); b == '0' {
		p.s.advance()
	} else {
		for {
			b, ok := p.s.peek()
			if !ok || !isDigit(b) {
				break
			}
			p.s.advance()
		}
	}

	// Fraction.
	if b, ok := p.s.peek(); ok && b == '.' {
		mark := p.s.mark()
		p.s.advance()
		n := p.consumeDigits()
		if n == 0 {
			p.s.reset(mark)
			return p.completeNumberNode(start), nil
		}
	}

	// Exponent.
	if b, ok := p.s.peek(); ok && (b == 'e' || b == 'E') {
		mark := p.s.mark()
		p.s.advance()
		if sb, ok := p.s.peek(); ok && (sb == '+' || sb == '-') {
			p.s.advance()
		}
		n := p.consumeDigits()
		if n == 0 {
			p.s.reset(mark)
			return p.completeNumberNode(start), nil
		}
	}

	// Ordinary end: complete only if the buffer has a further byte that is
	// definitively not part of the number (spec table: "ended on a
	// non-number char"); running off the end of the buffer leaves the
	// number open to extension by the next chunk.
	if _, ok := p.s.peek(); ok {
		return p.completeNumberNode(start), nil
	}
	end := p.s.pos()
	return &tree.Node{Kind: tree.KindNumber, Start: start, Text: string(p.s.src[start.Offset:end.Offset])}, nil
}

func (p *parser) consumeDigits() int {
	n := 0
	for {
		b, ok := p.s.peek()
		if !ok || !isDigit(b) {
			return n
		}
		p.s.advance()
		n++
	}
}

func (p *parser) completeNumberNode(start tree.Position) *tree.Node {
	end := p.s.pos()
	return &tree.Node{
		Kind:  tree.KindNumber,
		Start: start,
		End:   &end,
		Text:  string(p.s.src[start.Offset:end.Offset]),
	}
}
