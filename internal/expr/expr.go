// Package expr implements the boolean tag/property filter expressions used
// by the contact matcher and by expression-marker completion.
//
// Grammar:
//
//	expr  := or
//	or    := and ('|' and)*
//	and   := unary ('&' unary)*
//	unary := '!' unary | '(' expr ')' | pred
//	pred  := WORD              tag presence
//	       | WORD '~' PATTERN  property regex (PATTERN bare or "quoted")
//
// A compiled expression is a pure predicate over a contact record.
package expr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aldertree/rolo/internal/contact"
)

// Expr is a compiled filter expression.
type Expr interface {
	Match(r contact.Record) bool
}

type orExpr struct{ terms []Expr }

func (e orExpr) Match(r contact.Record) bool {
	for _, t := range e.terms {
		if t.Match(r) {
			return true
		}
	}
	return false
}

type andExpr struct{ terms []Expr }

func (e andExpr) Match(r contact.Record) bool {
	for _, t := range e.terms {
		if !t.Match(r) {
			return false
		}
	}
	return true
}

type notExpr struct{ inner Expr }

func (e notExpr) Match(r contact.Record) bool { return !e.inner.Match(r) }

type tagPred struct{ tag string }

func (e tagPred) Match(r contact.Record) bool { return r.HasTag(e.tag) }

type propPred struct {
	key string
	re  *regexp.Regexp
}

func (e propPred) Match(r contact.Record) bool {
	v, ok := r.Props.Get(e.key)
	return ok && e.re.MatchString(v)
}

// Parse compiles a filter expression.
func Parse(input string) (Expr, error) {
	p := &parser{lex: newLexer(input)}
	p.next()
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at offset %d", p.tok.value, p.tok.pos)
	}
	return e, nil
}

// token kinds
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokPattern // only produced after '~'
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
	tokTilde
	tokError
)

type token struct {
	kind  tokenKind
	value string
	pos   int
}

type lexer struct {
	input       string
	pos         int
	wantPattern bool
}

func newLexer(input string) *lexer { return &lexer{input: input} }

func (l *lexer) nextToken() token {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t') {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokEOF, pos: l.pos}
	}

	start := l.pos
	ch := l.input[l.pos]

	if l.wantPattern {
		l.wantPattern = false
		return l.scanPattern()
	}

	switch ch {
	case '&':
		l.pos++
		return token{kind: tokAnd, value: "&", pos: start}
	case '|':
		l.pos++
		return token{kind: tokOr, value: "|", pos: start}
	case '!':
		l.pos++
		return token{kind: tokNot, value: "!", pos: start}
	case '(':
		l.pos++
		return token{kind: tokLParen, value: "(", pos: start}
	case ')':
		l.pos++
		return token{kind: tokRParen, value: ")", pos: start}
	case '~':
		l.pos++
		l.wantPattern = true
		return token{kind: tokTilde, value: "~", pos: start}
	}

	if isWordChar(ch) {
		for l.pos < len(l.input) && isWordChar(l.input[l.pos]) {
			l.pos++
		}
		return token{kind: tokWord, value: l.input[start:l.pos], pos: start}
	}

	l.pos++
	return token{kind: tokError, value: string(ch), pos: start}
}

// scanPattern reads the regex operand of '~': either a "quoted" string or a
// bare run up to whitespace or a closing paren / operator.
func (l *lexer) scanPattern() token {
	start := l.pos
	if l.input[l.pos] == '"' {
		l.pos++
		var b strings.Builder
		for l.pos < len(l.input) {
			c := l.input[l.pos]
			if c == '\\' && l.pos+1 < len(l.input) {
				b.WriteByte(l.input[l.pos+1])
				l.pos += 2
				continue
			}
			if c == '"' {
				l.pos++
				return token{kind: tokPattern, value: b.String(), pos: start}
			}
			b.WriteByte(c)
			l.pos++
		}
		return token{kind: tokError, value: "unterminated pattern", pos: start}
	}

	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == ' ' || c == '\t' || c == '&' || c == '|' || c == ')' {
			break
		}
		l.pos++
	}
	if l.pos == start {
		return token{kind: tokError, value: "empty pattern", pos: start}
	}
	return token{kind: tokPattern, value: l.input[start:l.pos], pos: start}
}

func isWordChar(c byte) bool {
	return c == '_' || c == '-' || c == '@' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) next() { p.tok = p.lex.nextToken() }

func (p *parser) parseOr() (Expr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for p.tok.kind == tokOr {
		p.next()
		t, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return orExpr{terms: terms}, nil
}

func (p *parser) parseAnd() (Expr, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for p.tok.kind == tokAnd {
		p.next()
		t, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return andExpr{terms: terms}, nil
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.tok.kind {
	case tokNot:
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{inner: inner}, nil
	case tokLParen:
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, fmt.Errorf("missing ')' at offset %d", p.tok.pos)
		}
		p.next()
		return inner, nil
	case tokWord:
		word := p.tok.value
		p.next()
		if p.tok.kind != tokTilde {
			return tagPred{tag: word}, nil
		}
		p.next() // consume '~'
		if p.tok.kind != tokPattern {
			return nil, fmt.Errorf("expected pattern after %q~", word)
		}
		re, err := regexp.Compile(p.tok.value)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for %q: %w", word, err)
		}
		p.next()
		return propPred{key: contact.NormalizeKey(word), re: re}, nil
	case tokError:
		return nil, fmt.Errorf("bad input %q at offset %d", p.tok.value, p.tok.pos)
	default:
		return nil, fmt.Errorf("unexpected end of expression")
	}
}
