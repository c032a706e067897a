package parser

import "github.com/relvacode/jexpand/internal/tree"

// parseKeyword matches as much of word as the input has, byte by byte.
// Running out of input mid-word is incomplete, not malformed; any mismatch
// against a byte that is actually present is malformed (spec §4.1: a
// literal's malformed case is "a character that breaks the match against
// true/false/null").
func (p *parser) parseKeyword(word string) (matched int, complete bool, err error) {
	for i := 0; i < len(word); i++ {
		b, ok := p.s.peek()
		if !ok {
			return i, false, nil
		}
		if b != word[i] {
			return i, false, errMalformed
		}
		p.s.advance()
	}
	return len(word), true, nil
}

func (p *parser) parseBool() (*tree.Node, error) {
	start := p.s.pos()
	b, _ := p.s.peek()
	word := "false"
	value := false
	if b == 't' {
		word = "true"
		value = true
	}
	n, complete, err := p.parseKeyword(word)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errMalformed
	}
	node := &tree.Node{Kind: tree.KindBool, Start: start, Bool: value}
	if complete {
		end := p.s.pos()
		node.End = &end
	}
	return node, nil
}

func (p *parser) parseNull() (*tree.Node, error) {
	start := p.s.pos()
	n, complete, err := p.parseKeyword("null")
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errMalformed
	}
	node := &tree.Node{Kind: tree.KindNull, Start: start}
	if complete {
		end := p.s.pos()
		node.End = &end
	}
	return node, nil
}
