package ast

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// This file implements a compact textual form for program trees, used by the
// CLI and by test fixtures. A node prints as (kind value child...), where
// value appears only for kinds that carry one and is quoted when it is a
// string literal or contains non-atom characters. The parser accepts the
// value atom anywhere among the children, so a property access may be
// written receiver-first:
//
//	(call (getprop (name goog) getMsg) (string "Hi {$name}"))
//
// This is a fixture notation, not a JavaScript parser.

// kindsWithValue lists the kinds whose Value field participates in the
// textual form.
var kindsWithValue = map[Kind]bool{
	Name:        true,
	String:      true,
	TemplateLit: true,
	GetProp:     true,
	StringKey:   true,
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// Print renders n in the s-expression fixture form.
func Print(n *Node) string {
	var sb strings.Builder
	printNode(&sb, n, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, n *Node, depth int) {
	sb.WriteByte('(')
	sb.WriteString(n.Kind.String())
	if kindsWithValue[n.Kind] {
		sb.WriteByte(' ')
		sb.WriteString(printAtom(n.Kind, n.Value))
	}
	for _, c := range n.children {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("  ", depth+1))
		printNode(sb, c, depth+1)
	}
	sb.WriteByte(')')
}

func printAtom(kind Kind, value string) string {
	if kind == String || kind == TemplateLit || !isBareAtom(value) {
		return strconv.Quote(value)
	}
	return value
}

func isBareAtom(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' {
			return false
		}
	}
	return true
}

// Parse reads a single node from the fixture form. Trailing content after
// the closing parenthesis is an error.
func Parse(src string) (*Node, error) {
	p := &sexprParser{src: src}
	n, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("sexpr: trailing content at offset %d", p.pos)
	}
	return n, nil
}

type sexprParser struct {
	src string
	pos int
}

func (p *sexprParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *sexprParser) expect(b byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != b {
		return fmt.Errorf("sexpr: expected %q at offset %d", string(b), p.pos)
	}
	p.pos++
	return nil
}

func (p *sexprParser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *sexprParser) parseNode() (*Node, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	kindTok, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	kind, ok := kindsByName[kindTok]
	if !ok {
		return nil, fmt.Errorf("sexpr: unknown node kind %q", kindTok)
	}
	n := &Node{Kind: kind}
	haveValue := false
	for {
		b, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("sexpr: unterminated %s node", kindTok)
		}
		switch {
		case b == ')':
			p.pos++
			if kindsWithValue[kind] && !haveValue {
				return nil, fmt.Errorf("sexpr: %s node missing value", kindTok)
			}
			return n, nil
		case b == '(':
			child, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			n.Append(child)
		default:
			if !kindsWithValue[kind] {
				return nil, fmt.Errorf("sexpr: %s node does not take a value (offset %d)", kindTok, p.pos)
			}
			if haveValue {
				return nil, fmt.Errorf("sexpr: %s node has a second value (offset %d)", kindTok, p.pos)
			}
			value, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			n.Value = value
			haveValue = true
		}
	}
}

func (p *sexprParser) parseAtom() (string, error) {
	b, ok := p.peek()
	if !ok {
		return "", fmt.Errorf("unexpected end of input")
	}
	if b == '"' {
		return p.parseQuoted()
	}
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if unicode.IsSpace(c) || c == '(' || c == ')' || c == '"' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("empty atom at offset %d", start)
	}
	return p.src[start:p.pos], nil
}

func (p *sexprParser) parseQuoted() (string, error) {
	start := p.pos
	p.pos++ // opening quote
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case '"':
			p.pos++
			s, err := strconv.Unquote(p.src[start:p.pos])
			if err != nil {
				return "", fmt.Errorf("bad string literal at offset %d: %w", start, err)
			}
			return s, nil
		default:
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated string literal at offset %d", start)
}
