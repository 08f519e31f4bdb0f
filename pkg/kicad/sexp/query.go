package sexp

import (
	"fmt"
	"strconv"
)

// Name returns the head symbol of a list, or the symbol itself for an atom.
func Name(s Sexp) string {
	switch v := s.(type) {
	case Symbol:
		return string(v)
	case *List:
		if sym, ok := v.Get(0).(Symbol); ok {
			return string(sym)
		}
	}
	return ""
}

// FindNode returns the first child list of s whose head is key.
// Example: FindNode(seg, "width") finds (width 0.25).
func FindNode(s Sexp, key string) (*List, bool) {
	list, ok := s.(*List)
	if !ok {
		return nil, false
	}
	for _, item := range list.items {
		if child, ok := item.(*List); ok && Name(child) == key {
			return child, true
		}
	}
	return nil, false
}

// FindAll returns every child list of s whose head is key.
func FindAll(s Sexp, key string) []*List {
	list, ok := s.(*List)
	if !ok {
		return nil
	}
	var out []*List
	for _, item := range list.items {
		if child, ok := item.(*List); ok && Name(child) == key {
			out = append(out, child)
		}
	}
	return out
}

// Args returns the elements after the head.
func Args(l *List) []Sexp {
	if l.Len() <= 1 {
		return nil
	}
	return l.items[1:]
}

// String returns the atom at index. Index 0 is the head.
func String(l *List, index int) (string, error) {
	item := l.Get(index)
	if item == nil {
		return "", fmt.Errorf("line %d: (%s) has no element %d", l.Line, Name(l), index)
	}
	sym, ok := item.(Symbol)
	if !ok {
		return "", fmt.Errorf("line %d: (%s) element %d is a list", l.Line, Name(l), index)
	}
	return string(sym), nil
}

// Float parses the atom at index as a float64.
func Float(l *List, index int) (float64, error) {
	str, err := String(l, index)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: failed to parse float %q: %w", l.Line, str, err)
	}
	return v, nil
}

// Int parses the atom at index as an int.
func Int(l *List, index int) (int, error) {
	str, err := String(l, index)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("line %d: failed to parse int %q: %w", l.Line, str, err)
	}
	return v, nil
}

// HasSymbol reports whether sym appears as a direct atom of s.
func HasSymbol(s Sexp, sym string) bool {
	list, ok := s.(*List)
	if !ok {
		return false
	}
	for _, item := range list.items {
		if v, ok := item.(Symbol); ok && string(v) == sym {
			return true
		}
	}
	return false
}
