package sexp

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenLeftParen
	tokenRightParen
	tokenSymbol
	tokenString
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenLeftParen:
		return "'('"
	case tokenRightParen:
		return "')'"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	}
	return fmt.Sprintf("token(%d)", int(t))
}

type token struct {
	typ   tokenType
	value string
	line  int
}

type lexer struct {
	reader *bufio.Reader
	line   int
	peeked rune
	has    bool
}

func newLexer(r io.Reader) *lexer {
	return &lexer{reader: bufio.NewReader(r), line: 1}
}

// next returns the next token, skipping whitespace and '#' comments.
func (l *lexer) next() (token, error) {
	for {
		ch, err := l.peek()
		if err == io.EOF {
			return token{typ: tokenEOF, line: l.line}, nil
		}
		if err != nil {
			return token{}, err
		}
		if unicode.IsSpace(ch) {
			l.read()
			continue
		}
		if ch == '#' {
			for {
				c, err := l.read()
				if err != nil || c == '\n' {
					break
				}
			}
			continue
		}
		break
	}

	ch, _ := l.peek()
	line := l.line
	switch ch {
	case '(':
		l.read()
		return token{typ: tokenLeftParen, line: line}, nil
	case ')':
		l.read()
		return token{typ: tokenRightParen, line: line}, nil
	case '"':
		return l.readString()
	}
	return l.readSymbol()
}

func (l *lexer) peek() (rune, error) {
	if l.has {
		return l.peeked, nil
	}
	ch, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked, l.has = ch, true
	return ch, nil
}

func (l *lexer) read() (rune, error) {
	ch, err := l.peek()
	if err != nil {
		return 0, err
	}
	l.has = false
	if ch == '\n' {
		l.line++
	}
	return ch, nil
}

func (l *lexer) readString() (token, error) {
	line := l.line
	l.read() // opening quote

	var b strings.Builder
	for {
		ch, err := l.read()
		if err == io.EOF {
			return token{}, fmt.Errorf("line %d: unterminated string", line)
		}
		if err != nil {
			return token{}, err
		}

		switch ch {
		case '"':
			return token{typ: tokenString, value: b.String(), line: line}, nil
		case '\\':
			esc, err := l.read()
			if err != nil {
				return token{}, fmt.Errorf("line %d: unterminated escape", l.line)
			}
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(ch)
		}
	}
}

func (l *lexer) readSymbol() (token, error) {
	line := l.line
	var b strings.Builder
	for {
		ch, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}
		l.read()
		b.WriteRune(ch)
	}
	return token{typ: tokenSymbol, value: b.String(), line: line}, nil
}
