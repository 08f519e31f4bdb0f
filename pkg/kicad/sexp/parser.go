package sexp

import (
	"fmt"
	"io"
	"strings"
)

// Parse reads every top-level expression from r.
func Parse(r io.Reader) ([]Sexp, error) {
	p := &parser{lex: newLexer(r)}
	return p.parseAll()
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) parseAll() ([]Sexp, error) {
	var result []Sexp
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.tok.typ != tokenEOF {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		result = append(result, expr)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (p *parser) parseExpr() (Sexp, error) {
	switch p.tok.typ {
	case tokenLeftParen:
		return p.parseList()
	case tokenSymbol, tokenString:
		return Symbol(p.tok.value), nil
	}
	return nil, fmt.Errorf("line %d: unexpected %v", p.tok.line, p.tok.typ)
}

// parseList is entered with the current token on '('.
func (p *parser) parseList() (Sexp, error) {
	list := &List{Line: p.tok.line}
	for {
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch p.tok.typ {
		case tokenRightParen:
			return list, nil
		case tokenEOF:
			return nil, fmt.Errorf("line %d: unclosed list opened at line %d", p.tok.line, list.Line)
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.items = append(list.items, elem)
	}
}
