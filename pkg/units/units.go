// Package units parses and formats user-entered lengths. Values are returned
// in millimetres; a bare number is taken as millimetres.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

// ErrUnknownUnit is returned for a unit suffix that is not recognised.
var ErrUnknownUnit = errors.New("unknown unit")

// Unit is a length unit.
type Unit int

const (
	Millimetre Unit = iota
	Mil
	Inch
	Micrometre
	Centimetre
)

// mm per unit.
var unitScale = map[Unit]float64{
	Millimetre: 1,
	Mil:        0.0254,
	Inch:       25.4,
	Micrometre: 0.001,
	Centimetre: 10,
}

func (u Unit) String() string {
	switch u {
	case Millimetre:
		return "mm"
	case Mil:
		return "mil"
	case Inch:
		return "in"
	case Micrometre:
		return "um"
	case Centimetre:
		return "cm"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit accepts the usual spellings of a unit, case-insensitively.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mm", "millimeter", "millimetre":
		return Millimetre, nil
	case "mil", "mils", "thou":
		return Mil, nil
	case "in", "inch", "inches", `"`:
		return Inch, nil
	case "um", "µm", "micron":
		return Micrometre, nil
	case "cm":
		return Centimetre, nil
	}
	return Millimetre, fmt.Errorf("%w %q", ErrUnknownUnit, s)
}

// Length is the grammar for one value with an optional unit.
type Length struct {
	Value float64 `parser:"@Number"`
	Unit  string  `parser:"@Unit?"`
}

// Millimetres converts the parsed value.
func (l *Length) Millimetres() (float64, error) {
	u, err := ParseUnit(l.Unit)
	if err != nil {
		return 0, err
	}
	return l.Value * unitScale[u], nil
}

// Grid is the grammar for "X" or "X x Y".
type Grid struct {
	X *Length `parser:"@@"`
	Y *Length `parser:"( Times @@ )?"`
}

var (
	lengthParser = participle.MustBuild[Length](
		participle.Lexer(lengthLexer),
		participle.Elide("Whitespace"),
	)
	gridParser = participle.MustBuild[Grid](
		participle.Lexer(lengthLexer),
		participle.Elide("Whitespace"),
	)
)

// ParseLength parses a length such as "0.2mm", "8 mil", "0.05in" or "1.27"
// and returns millimetres.
func ParseLength(s string) (float64, error) {
	l, err := lengthParser.ParseString("", s)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", s, err)
	}
	mm, err := l.Millimetres()
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", s, err)
	}
	return mm, nil
}

// ParseGrid parses a grid pitch, either one length for both axes or
// "X x Y". Both pitches must be positive.
func ParseGrid(s string) (geom.Vector2D, error) {
	g, err := gridParser.ParseString("", s)
	if err != nil {
		return geom.Vector2D{}, fmt.Errorf("invalid grid %q: %w", s, err)
	}
	x, err := g.X.Millimetres()
	if err != nil {
		return geom.Vector2D{}, fmt.Errorf("invalid grid %q: %w", s, err)
	}
	y := x
	if g.Y != nil {
		if y, err = g.Y.Millimetres(); err != nil {
			return geom.Vector2D{}, fmt.Errorf("invalid grid %q: %w", s, err)
		}
	}
	if x <= 0 || y <= 0 {
		return geom.Vector2D{}, fmt.Errorf("invalid grid %q: pitch must be positive", s)
	}
	return geom.Vector2D{X: x, Y: y}, nil
}

// FormatLength renders mm in unit u with up to six significant decimals,
// e.g. FormatLength(1.27, Mil) == "50mil".
func FormatLength(mm float64, u Unit) string {
	scale, ok := unitScale[u]
	if !ok {
		scale, u = 1, Millimetre
	}
	v := math.Round(mm/scale*1e6) / 1e6
	return strconv.FormatFloat(v, 'f', -1, 64) + u.String()
}

// FormatGrid renders a grid pitch, collapsing equal axes.
func FormatGrid(g geom.Vector2D, u Unit) string {
	if g.X == g.Y {
		return FormatLength(g.X, u)
	}
	return FormatLength(g.X, u) + " x " + FormatLength(g.Y, u)
}
