package units

import (
	"errors"
	"math"
	"testing"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"0.2mm", 0.2, false},
		{"1.27", 1.27, false},
		{"8 mil", 0.2032, false},
		{"50MIL", 1.27, false},
		{"0.05in", 1.27, false},
		{`0.1"`, 2.54, false},
		{"250um", 0.25, false},
		{"0.5cm", 5, false},
		{".5", 0.5, false},
		{"-1.5mm", -1.5, false},
		{"1e-1mm", 0.1, false},
		{"12 furlongs", 0, true},
		{"mm", 0, true},
		{"", 0, true},
		{"1mm 2mm", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLength(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLength(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseLength(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLengthUnknownUnit(t *testing.T) {
	_, err := ParseLength("3 parsecs")
	if !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("ParseLength error = %v, want ErrUnknownUnit", err)
	}
}

func TestParseGrid(t *testing.T) {
	tests := []struct {
		input   string
		want    geom.Vector2D
		wantErr bool
	}{
		{"1.27mm", geom.Vector2D{X: 1.27, Y: 1.27}, false},
		{"50mil x 25mil", geom.Vector2D{X: 1.27, Y: 0.635}, false},
		{"50milx25mil", geom.Vector2D{X: 1.27, Y: 0.635}, false},
		{"1 X 2", geom.Vector2D{X: 1, Y: 2}, false},
		{"0.5mm*100mil", geom.Vector2D{X: 0.5, Y: 2.54}, false},
		{"0", geom.Vector2D{}, true},
		{"1mm x -1mm", geom.Vector2D{}, true},
		{"1mm x", geom.Vector2D{}, true},
		{"1 x 2 x 3", geom.Vector2D{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGrid(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGrid(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("ParseGrid(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatLength(t *testing.T) {
	tests := []struct {
		mm   float64
		unit Unit
		want string
	}{
		{1.27, Mil, "50mil"},
		{1.27, Millimetre, "1.27mm"},
		{25.4, Inch, "1in"},
		{0.1, Micrometre, "100um"},
		{0.3, Millimetre, "0.3mm"},
	}
	for _, tt := range tests {
		if got := FormatLength(tt.mm, tt.unit); got != tt.want {
			t.Errorf("FormatLength(%v, %v) = %q, want %q", tt.mm, tt.unit, got, tt.want)
		}
	}

	if got := FormatGrid(geom.Vector2D{X: 1.27, Y: 0.635}, Mil); got != "50mil x 25mil" {
		t.Errorf("FormatGrid() = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, u := range []Unit{Millimetre, Mil, Inch, Micrometre, Centimetre} {
		s := FormatLength(2.54, u)
		got, err := ParseLength(s)
		if err != nil {
			t.Fatalf("ParseLength(%q): %v", s, err)
		}
		if math.Abs(got-2.54) > 1e-6 {
			t.Errorf("%v: round trip gave %v", u, got)
		}
	}
}
