package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokEq
	tokNeq
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
}

func lex(rule string) ([]token, error) {
	var (
		s      scanner.Scanner
		tokens []token
		lexErr error
	)
	s.Init(strings.NewReader(rule))
	s.Mode = scanner.ScanIdents | scanner.ScanFloats | scanner.ScanStrings | scanner.ScanRawStrings
	s.IsIdentRune = func(ch rune, i int) bool {
		if ch == '_' || unicode.IsLetter(ch) {
			return true
		}
		return i > 0 && (unicode.IsDigit(ch) || ch == '.' || ch == '-')
	}
	s.Error = func(_ *scanner.Scanner, msg string) {
		if lexErr == nil {
			lexErr = errors.New(msg)
		}
	}

	pair := func(second rune, kind tokenKind, text string) error {
		if s.Peek() != second {
			return fmt.Errorf("unexpected %q at column %d; use %q", text[:1], s.Position.Column, text)
		}
		s.Next()
		tokens = append(tokens, token{kind: kind, text: text})
		return nil
	}

	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		text := s.TokenText()
		var err error
		switch tok {
		case scanner.Ident:
			tokens = append(tokens, token{kind: tokIdent, text: text})
		case scanner.Int, scanner.Float:
			tokens = append(tokens, token{kind: tokNumber, text: text})
		case scanner.String, scanner.RawString:
			value, uerr := strconv.Unquote(text)
			if uerr != nil {
				return nil, fmt.Errorf("invalid string literal %s: %w", text, uerr)
			}
			tokens = append(tokens, token{kind: tokString, text: value})
		case '=':
			err = pair('=', tokEq, "==")
		case '&':
			err = pair('&', tokAnd, "&&")
		case '|':
			err = pair('|', tokOr, "||")
		case '!':
			if s.Peek() == '=' {
				s.Next()
				tokens = append(tokens, token{kind: tokNeq, text: "!="})
			} else {
				tokens = append(tokens, token{kind: tokNot, text: "!"})
			}
		case '(':
			tokens = append(tokens, token{kind: tokLParen, text: "("})
		case ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")"})
		case ',':
			tokens = append(tokens, token{kind: tokComma, text: ","})
		default:
			err = fmt.Errorf("unexpected %q at column %d", text, s.Position.Column)
		}
		if err != nil {
			return nil, err
		}
		if lexErr != nil {
			return nil, lexErr
		}
	}
	if lexErr != nil {
		return nil, lexErr
	}
	return tokens, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	if p.pos >= len(p.tokens) {
		return token{kind: tokEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) accept(kind tokenKind) bool {
	if p.peek().kind != kind {
		return false
	}
	p.pos++
	return true
}

func (p *parser) or() (Expr, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.accept(tokOr) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = anyOf{left: left, right: right}
	}
	return left, nil
}

func (p *parser) and() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.accept(tokAnd) {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = allOf{left: left, right: right}
	}
	return left, nil
}

func (p *parser) unary() (Expr, error) {
	if p.accept(tokNot) {
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return not{inner: inner}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	if p.accept(tokLParen) {
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokRParen) {
			return nil, errors.New("missing closing ')'")
		}
		return inner, nil
	}

	tok := p.peek()
	if tok.kind != tokIdent {
		if tok.kind == tokEOF {
			return nil, errors.New("expected field name, got end of rule")
		}
		return nil, fmt.Errorf("expected field name, got %q", tok.text)
	}
	p.pos++
	ident := tok.text

	switch {
	case p.accept(tokEq):
		lit, err := p.literal()
		if err != nil {
			return nil, err
		}
		return compare{ident: ident, lits: []literal{lit}}, nil
	case p.accept(tokNeq):
		lit, err := p.literal()
		if err != nil {
			return nil, err
		}
		return compare{ident: ident, negate: true, lits: []literal{lit}}, nil
	case p.peek().kind == tokIdent && strings.EqualFold(p.peek().text, "in"):
		p.pos++
		lits, err := p.literalList()
		if err != nil {
			return nil, err
		}
		return compare{ident: ident, lits: lits}, nil
	}
	return truthy{ident: ident}, nil
}

func (p *parser) literalList() ([]literal, error) {
	if !p.accept(tokLParen) {
		return nil, errors.New("expected '(' after in")
	}
	var lits []literal
	for {
		lit, err := p.literal()
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)
		if p.accept(tokComma) {
			continue
		}
		if p.accept(tokRParen) {
			return lits, nil
		}
		return nil, errors.New("expected ',' or ')' in list")
	}
}

func (p *parser) literal() (literal, error) {
	tok := p.peek()
	switch tok.kind {
	case tokString:
		p.pos++
		return literal{kind: litString, text: tok.text}, nil
	case tokNumber:
		p.pos++
		num, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return literal{}, fmt.Errorf("invalid number %q", tok.text)
		}
		return literal{kind: litNumber, text: tok.text, num: num}, nil
	case tokIdent:
		p.pos++
		switch strings.ToLower(tok.text) {
		case "true", "false":
			return literal{kind: litBool, text: tok.text, flag: strings.EqualFold(tok.text, "true")}, nil
		case "null", "nil":
			return literal{kind: litNull, text: "null"}, nil
		}
		return literal{kind: litString, text: tok.text}, nil
	case tokEOF:
		return literal{}, errors.New("missing value after operator")
	default:
		return literal{}, fmt.Errorf("expected value, got %q", tok.text)
	}
}
