// Package giogal implements gal.Drawer on top of Gio operations.
package giogal

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/gal"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

// circleSegments is the polygon resolution used for circles on screen.
const circleSegments = 48

// Projector maps world geometry to screen pixels. *gal.GAL implements it.
type Projector interface {
	ToScreen(p geom.Vector2D) geom.Vector2D
	ToScreenScalar(v float64) float64
}

// Backend records Gio paint operations for primitives issued by the GAL.
// Gio paints in submission order, so layer depth is tracked but not used
// for ordering.
type Backend struct {
	ops  *op.Ops
	view Projector

	target      gal.RenderTarget
	isFill      bool
	isStroke    bool
	fillColor   color.NRGBA
	strokeColor color.NRGBA
	lineWidth   float64 // world units
	depth       float64

	// MinLineWidth keeps hairlines visible, in pixels.
	MinLineWidth float32
}

// New creates a backend writing into ops and projecting through view.
func New(ops *op.Ops, view Projector) *Backend {
	return &Backend{
		ops:          ops,
		view:         view,
		isStroke:     true,
		strokeColor:  gal.ColorWhite.NRGBA(),
		lineWidth:    1.0,
		MinLineWidth: 1.0,
	}
}

// Reset points the backend at a new frame's operation list.
func (b *Backend) Reset(ops *op.Ops) { b.ops = ops }

func (b *Backend) SetTarget(t gal.RenderTarget)  { b.target = t }
func (b *Backend) SetIsFill(fill bool)           { b.isFill = fill }
func (b *Backend) SetIsStroke(stroke bool)       { b.isStroke = stroke }
func (b *Backend) SetFillColor(c gal.Color4D)    { b.fillColor = c.NRGBA() }
func (b *Backend) SetStrokeColor(c gal.Color4D)  { b.strokeColor = c.NRGBA() }
func (b *Backend) SetLineWidth(width float64)    { b.lineWidth = width }
func (b *Backend) SetLayerDepth(depth float64)   { b.depth = depth }
func (b *Backend) Target() gal.RenderTarget      { return b.target }
func (b *Backend) LayerDepth() float64           { return b.depth }

// DrawLine strokes a world-space line with the current line width.
func (b *Backend) DrawLine(start, end geom.Vector2D) {
	if !b.isStroke {
		return
	}
	p1 := b.point(start)
	p2 := b.point(end)

	var path clip.Path
	path.Begin(b.ops)
	path.MoveTo(p1)
	path.LineTo(p2)

	stroke := clip.Stroke{
		Path:  path.End(),
		Width: b.strokeWidth(),
	}.Op()
	paint.FillShape(b.ops, b.strokeColor, stroke)
}

// DrawCircle fills and/or strokes a circle.
func (b *Backend) DrawCircle(center geom.Vector2D, radius float64) {
	c := b.view.ToScreen(center)
	r := b.view.ToScreenScalar(radius)

	pts := make([]f32.Point, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = f32.Pt(float32(c.X+r*math.Cos(a)), float32(c.Y+r*math.Sin(a)))
	}
	b.polygon(pts)
}

// DrawRectangle fills and/or strokes an axis-aligned rectangle given by two
// opposite world corners.
func (b *Backend) DrawRectangle(start, end geom.Vector2D) {
	b.polygon([]f32.Point{
		b.point(start),
		b.point(geom.Vector2D{X: end.X, Y: start.Y}),
		b.point(end),
		b.point(geom.Vector2D{X: start.X, Y: end.Y}),
	})
}

func (b *Backend) polygon(pts []f32.Point) {
	if b.isFill {
		paint.FillShape(b.ops, b.fillColor, clip.Outline{Path: b.closedPath(pts)}.Op())
	}
	if b.isStroke {
		stroke := clip.Stroke{
			Path:  b.closedPath(pts),
			Width: b.strokeWidth(),
		}.Op()
		paint.FillShape(b.ops, b.strokeColor, stroke)
	}
}

func (b *Backend) closedPath(pts []f32.Point) clip.PathSpec {
	var path clip.Path
	path.Begin(b.ops)
	path.MoveTo(pts[0])
	for _, p := range pts[1:] {
		path.LineTo(p)
	}
	path.Close()
	return path.End()
}

func (b *Backend) point(p geom.Vector2D) f32.Point {
	s := b.view.ToScreen(p)
	return f32.Pt(float32(s.X), float32(s.Y))
}

func (b *Backend) strokeWidth() float32 {
	w := float32(b.view.ToScreenScalar(b.lineWidth))
	if w < b.MinLineWidth {
		w = b.MinLineWidth
	}
	return w
}
