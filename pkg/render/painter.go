package render

import (
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/gal"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/pcb"
)

// Depths in front of the copper layers, which sit at their LayerID.
const (
	viaDepth    = -1.0
	drillDepth  = -2.0
	cursorDepth = -3.0
)

// NoHighlight disables net highlighting.
const NoHighlight = -1

// Painter draws the copper of a board. Geometry is submitted back to front
// (back copper, inner layers, front copper, then vias), so backends that
// ignore depth still stack it correctly.
type Painter struct {
	Theme   Theme
	Visible pcb.LayerMask
	// Highlight brightens one net and dims the others.
	Highlight int
	// ZoneAlpha is the opacity of zone fill strokes.
	ZoneAlpha float64
}

// NewPainter shows every copper layer in the classic theme.
func NewPainter() *Painter {
	return &Painter{
		Theme:     ThemeClassic,
		Visible:   pcb.AllCopperLayers,
		Highlight: NoHighlight,
		ZoneAlpha: 0.7,
	}
}

// DrawBoard paints zones, tracks and vias and returns the number of
// segments drawn.
func (p *Painter) DrawBoard(d gal.Drawer, b *pcb.Board) int {
	d.SetTarget(gal.TargetCached)
	d.SetIsFill(false)
	d.SetIsStroke(true)

	n := 0
	for l := pcb.LayerBack; l >= pcb.LayerFront; l-- {
		if !p.Visible.Has(l) {
			continue
		}
		d.SetLayerDepth(float64(l))
		n += p.drawLayer(d, b.Zones, l, p.ZoneAlpha)
		n += p.drawLayer(d, b.Tracks, l, 1)
	}
	n += p.drawVias(d, b)
	return n
}

func (p *Painter) drawLayer(d gal.Drawer, list *pcb.TrackList, layer pcb.LayerID, alpha float64) int {
	n := 0
	base := p.Theme.LayerColor(layer)
	for _, s := range list.All() {
		if s.Kind == pcb.KindVia || s.Layer != layer {
			continue
		}
		d.SetStrokeColor(p.netColor(base, s.NetCode, alpha))
		d.SetLineWidth(s.Width)
		d.DrawLine(s.Start, s.End)
		n++
	}
	return n
}

func (p *Painter) drawVias(d gal.Drawer, b *pcb.Board) int {
	d.SetIsFill(true)
	d.SetIsStroke(false)

	n := 0
	for _, s := range b.Tracks.All() {
		if s.Kind != pcb.KindVia || s.MaskLayer()&p.Visible == 0 {
			continue
		}
		d.SetLayerDepth(viaDepth)
		d.SetFillColor(p.netColor(p.Theme.ViaColor(), s.NetCode, 1))
		d.DrawCircle(s.Start, s.Width/2)

		if drill := s.DrillValue(b.Settings); drill > 0 && drill < s.Width {
			d.SetLayerDepth(drillDepth)
			d.SetFillColor(p.Theme.DrillColor())
			d.DrawCircle(s.Start, drill/2)
		}
		n++
	}
	return n
}

func (p *Painter) netColor(base gal.Color4D, net int, alpha float64) gal.Color4D {
	c := base.WithAlpha(base.A * alpha)
	if p.Highlight == NoHighlight {
		return c
	}
	if net == p.Highlight {
		return c.Brightened(0.5)
	}
	return c.WithAlpha(c.A * 0.25)
}

// DrawCursor draws a cross at a world point on the overlay target. size is
// the half-length of each arm in pixels.
func DrawCursor(d gal.Drawer, g *gal.GAL, at geom.Vector2D, size float64) {
	r := g.ToWorldScalar(size)
	d.SetTarget(gal.TargetOverlay)
	d.SetIsFill(false)
	d.SetIsStroke(true)
	d.SetStrokeColor(gal.ColorWhite)
	d.SetLineWidth(g.ToWorldScalar(1))
	d.SetLayerDepth(cursorDepth)
	d.DrawLine(geom.Vector2D{X: at.X - r, Y: at.Y}, geom.Vector2D{X: at.X + r, Y: at.Y})
	d.DrawLine(geom.Vector2D{X: at.X, Y: at.Y - r}, geom.Vector2D{X: at.X, Y: at.Y + r})
}
