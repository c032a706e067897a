package parser

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/relvacode/jexpand/internal/tree"
)

// parseString implements spec §4.1 "String parsing": a JSON string that may
// be cut off mid-escape, mid-codepoint, or before its closing quote, in
// which case it is simply incomplete (never malformed).
func (p *parser) parseString() (*tree.Node, error) {
	start := p.s.pos()
	p.s.advance() // consume opening '"'

	var buf bytes.Buffer
	for {
		b, ok := p.s.peek()
		if !ok {
			return &tree.Node{Kind: tree.KindString, Start: start, Text: buf.String(), Closed: false}, nil
		}
		if b == '"' {
			end := p.s.pos()
			p.s.advance()
			return &tree.Node{Kind: tree.KindString, Start: start, End: &end, Text: buf.String(), Closed: true}, nil
		}
		if b == '\\' {
			p.s.advance()
			esc, eok := p.s.peek()
			if !eok {
				// dangling backslash at EOF: stop decoding gracefully.
				return &tree.Node{Kind: tree.KindString, Start: start, Text: buf.String(), Closed: false}, nil
			}
			switch esc {
			case '"', '\\', '/':
				buf.WriteByte(esc)
				p.s.advance()
			case 'b':
				buf.WriteByte('\b')
				p.s.advance()
			case 'f':
				buf.WriteByte('\f')
				p.s.advance()
			case 'n':
				buf.WriteByte('\n')
				p.s.advance()
			case 'r':
				buf.WriteByte('\r')
				p.s.advance()
			case 't':
				buf.WriteByte('\t')
				p.s.advance()
			case 'u':
				p.s.advance()
				r, complete := p.parseUnicodeEscape()
				if !complete {
					return &tree.Node{Kind: tree.KindString, Start: start, Text: buf.String(), Closed: false}, nil
				}
				buf.WriteRune(r)
			default:
				// Not one of the recognised escapes; the spec gives no
				// error condition for this, so decode it literally rather
				// than treating it as a hard failure.
				buf.WriteByte(esc)
				p.s.advance()
			}
			continue
		}
		buf.WriteByte(b)
		p.s.advance()
	}
}

// parseUnicodeEscape reads exactly 4 hex digits for a \uXXXX escape,
// combining a high/low surrogate pair into a single rune when the next
// escape is its matching low surrogate. Fewer than 4 digits being
// available means the escape — and therefore the string — is incomplete.
func (p *parser) parseUnicodeEscape() (rune, bool) {
	hi, ok := p.readHex4()
	if !ok {
		return 0, false
	}
	if utf16.IsSurrogate(rune(hi)) {
		mark := p.s.mark()
		if b, ok := p.s.peek(); ok && b == '\\' {
			p.s.advance()
			if b2, ok := p.s.peek(); ok && b2 == 'u' {
				p.s.advance()
				lo, ok := p.readHex4()
				if ok {
					if r := utf16.DecodeRune(rune(hi), rune(lo)); r != utf8.RuneError {
						return r, true
					}
				}
			}
		}
		p.s.reset(mark)
	}
	return rune(hi), true
}

func (p *parser) readHex4() (uint16, bool) {
	mark := p.s.mark()
	var v uint16
	for i := 0; i < 4; i++ {
		b, ok := p.s.peek()
		if !ok {
			p.s.reset(mark)
			return 0, false
		}
		d, ok := hexDigit(b)
		if !ok {
			p.s.reset(mark)
			return 0, false
		}
		v = v<<4 | uint16(d)
		p.s.advance()
	}
	return v, true
}

func hexDigit(b byte) (uint16, bool) {
	switch {
	case b >= '0' && b <= '9':
		return uint16(b - '0'), true
	case b >= 'a' && b <= 'f':
		return uint16(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return uint16(b-'A') + 10, true
	default:
		return 0, false
	}
}
