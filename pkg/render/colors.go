// Package render paints board copper through a gal.Drawer.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/gal"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/pcb"
)

// Theme is a copper colour scheme.
type Theme int

const (
	ThemeClassic Theme = iota
	ThemeKiCad2020
	ThemeNord
)

var themeNames = map[Theme]string{
	ThemeClassic:   "classic",
	ThemeKiCad2020: "kicad2020",
	ThemeNord:      "nord",
}

func (t Theme) String() string {
	if name, ok := themeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Theme(%d)", int(t))
}

// ParseTheme looks a theme up by name, case-insensitively.
func ParseTheme(name string) (Theme, error) {
	for t, n := range themeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return ThemeClassic, fmt.Errorf("unknown theme %q", name)
}

type palette struct {
	front      color.NRGBA
	back       color.NRGBA
	inner      []color.NRGBA
	via        color.NRGBA
	drill      color.NRGBA
	background color.NRGBA
}

var palettes = map[Theme]palette{
	ThemeClassic: {
		front: color.NRGBA{R: 200, G: 52, B: 52, A: 255},
		back:  color.NRGBA{R: 77, G: 127, B: 196, A: 255},
		inner: []color.NRGBA{
			{R: 127, G: 200, B: 127, A: 255},
			{R: 206, G: 125, B: 44, A: 255},
		},
		via:        color.NRGBA{R: 236, G: 236, B: 236, A: 255},
		drill:      color.NRGBA{R: 227, G: 183, B: 46, A: 255},
		background: color.NRGBA{R: 0, G: 16, B: 35, A: 255},
	},
	ThemeKiCad2020: {
		front: color.NRGBA{R: 179, G: 31, B: 31, A: 255},
		back:  color.NRGBA{R: 12, G: 98, B: 179, A: 255},
		inner: []color.NRGBA{
			{R: 194, G: 194, B: 0, A: 255},
			{R: 194, G: 0, B: 194, A: 255},
		},
		via:        color.NRGBA{R: 194, G: 194, B: 194, A: 255},
		drill:      color.NRGBA{R: 227, G: 183, B: 46, A: 255},
		background: color.NRGBA{R: 0, G: 16, B: 35, A: 255},
	},
	ThemeNord: {
		front: color.NRGBA{R: 191, G: 97, B: 106, A: 255},
		back:  color.NRGBA{R: 129, G: 161, B: 193, A: 255},
		inner: []color.NRGBA{
			{R: 163, G: 190, B: 140, A: 255},
			{R: 208, G: 135, B: 112, A: 255},
		},
		via:        color.NRGBA{R: 216, G: 222, B: 233, A: 255},
		drill:      color.NRGBA{R: 235, G: 203, B: 139, A: 255},
		background: color.NRGBA{R: 46, G: 52, B: 64, A: 255},
	},
}

func (t Theme) palette() palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[ThemeClassic]
}

// LayerColor returns the copper colour of a layer. Inner layers cycle
// through the theme's inner colours.
func (t Theme) LayerColor(l pcb.LayerID) gal.Color4D {
	p := t.palette()
	switch {
	case l == pcb.LayerFront:
		return gal.ColorFromNRGBA(p.front)
	case l == pcb.LayerBack:
		return gal.ColorFromNRGBA(p.back)
	case l.IsValid():
		return gal.ColorFromNRGBA(p.inner[(int(l)-1)%len(p.inner)])
	}
	return gal.Color4D{R: 0.5, G: 0.5, B: 0.5, A: 1}
}

func (t Theme) ViaColor() gal.Color4D   { return gal.ColorFromNRGBA(t.palette().via) }
func (t Theme) DrillColor() gal.Color4D { return gal.ColorFromNRGBA(t.palette().drill) }

// Background returns the canvas colour.
func (t Theme) Background() gal.Color4D { return gal.ColorFromNRGBA(t.palette().background) }
