// Package sexp is a streaming S-expression reader for KiCad files. It reads
// from an io.Reader without loading the whole file into memory first.
package sexp

import "strings"

// Sexp is either a Symbol (atom) or a *List.
type Sexp interface {
	IsLeaf() bool
	String() string
}

// Symbol is an atom: a bare identifier, a number or an unquoted string.
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) String() string { return string(s) }

// List is a parenthesised expression. Line is the 1-based source line of its
// opening parenthesis.
type List struct {
	items []Sexp
	Line  int
}

// NewList builds a list from already parsed items.
func NewList(items ...Sexp) *List {
	return &List{items: items}
}

func (l *List) IsLeaf() bool { return false }

// Len returns the number of elements including the head.
func (l *List) Len() int { return len(l.items) }

// Get returns the element at index, or nil when out of range.
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.items) {
		return nil
	}
	return l.items[index]
}

// Items returns the elements of the list. The slice is shared.
func (l *List) Items() []Sexp { return l.items }

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, item := range l.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(item.String())
	}
	b.WriteByte(')')
	return b.String()
}
