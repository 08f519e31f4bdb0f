package sexp

import (
	"strings"
	"testing"
)

// Helper to parse a single s-expression from string
func parseOne(t *testing.T, input string) *List {
	t.Helper()
	sexps, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse s-expression %q: %v", input, err)
	}
	if len(sexps) == 0 {
		t.Fatalf("No s-expressions parsed from %q", input)
	}
	list, ok := sexps[0].(*List)
	if !ok {
		t.Fatalf("Expected list, got %T", sexps[0])
	}
	return list
}

func TestParseQuotedStrings(t *testing.T) {
	l := parseOne(t, `(net 3 "Net-(R1-Pad 2)")`)
	got, err := String(l, 2)
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}
	if got != "Net-(R1-Pad 2)" {
		t.Errorf("String() = %q, want %q", got, "Net-(R1-Pad 2)")
	}

	l = parseOne(t, `(title "say \"hi\"\n")`)
	got, _ = String(l, 1)
	if got != "say \"hi\"\n" {
		t.Errorf("escaped string = %q", got)
	}
}

func TestParseLineNumbers(t *testing.T) {
	l := parseOne(t, "(kicad_pcb\n  (version 20221018)\n\n  (segment (start 0 0))\n)")
	seg, ok := FindNode(l, "segment")
	if !ok {
		t.Fatal("segment not found")
	}
	if seg.Line != 4 {
		t.Errorf("segment line = %d, want 4", seg.Line)
	}
	if l.Line != 1 {
		t.Errorf("root line = %d, want 1", l.Line)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unclosed list", "(a (b c)", "unclosed list"},
		{"stray paren", ")", "unexpected ')'"},
		{"unterminated string", `(a "b`, "unterminated string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) succeeded, want error", tt.input)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestCommentsSkipped(t *testing.T) {
	sexps, err := ParseString("# header\n(a 1) # trailing\n(b 2)")
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	if len(sexps) != 2 {
		t.Fatalf("got %d expressions, want 2", len(sexps))
	}
	if Name(sexps[1]) != "b" {
		t.Errorf("second expression = %s", sexps[1])
	}
}

func TestQueryHelpers(t *testing.T) {
	l := parseOne(t, "(via blind (at 1.5 -2) (size 0.8) (drill 0.4) (layers F.Cu In2.Cu) (net 7) (net 8))")

	if !HasSymbol(l, "blind") {
		t.Error("HasSymbol(blind) = false")
	}
	if HasSymbol(l, "micro") {
		t.Error("HasSymbol(micro) = true")
	}

	at, ok := FindNode(l, "at")
	if !ok {
		t.Fatal("at not found")
	}
	y, err := Float(at, 2)
	if err != nil || y != -2 {
		t.Errorf("Float(at, 2) = %v, %v", y, err)
	}

	layers, _ := FindNode(l, "layers")
	if n := len(Args(layers)); n != 2 {
		t.Errorf("len(Args(layers)) = %d, want 2", n)
	}

	if n := len(FindAll(l, "net")); n != 2 {
		t.Errorf("len(FindAll(net)) = %d, want 2", n)
	}

	net, _ := FindNode(l, "net")
	if code, err := Int(net, 1); err != nil || code != 7 {
		t.Errorf("Int(net, 1) = %v, %v", code, err)
	}

	if _, err := Int(at, 1); err == nil {
		t.Error("Int on 1.5 succeeded, want error")
	}
	if _, err := String(at, 9); err == nil {
		t.Error("String out of range succeeded, want error")
	}
	if _, ok := FindNode(Symbol("x"), "at"); ok {
		t.Error("FindNode on atom found something")
	}
}

func TestListString(t *testing.T) {
	l := parseOne(t, "(a (b 1) c)")
	if got := l.String(); got != "(a (b 1) c)" {
		t.Errorf("String() = %q", got)
	}
}
