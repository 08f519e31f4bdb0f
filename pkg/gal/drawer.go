package gal

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

// RenderTarget selects the buffer a backend draws into.
type RenderTarget int

const (
	TargetCached RenderTarget = iota
	TargetNonCached
	TargetOverlay
)

func (t RenderTarget) String() string {
	switch t {
	case TargetCached:
		return "cached"
	case TargetNonCached:
		return "noncached"
	case TargetOverlay:
		return "overlay"
	}
	return fmt.Sprintf("RenderTarget(%d)", int(t))
}

// Drawer is the primitive drawing contract implemented by rendering
// backends. Geometry is given in world coordinates; widths in world units.
type Drawer interface {
	SetTarget(target RenderTarget)
	SetIsFill(fill bool)
	SetIsStroke(stroke bool)
	SetFillColor(c Color4D)
	SetStrokeColor(c Color4D)
	SetLineWidth(width float64)
	SetLayerDepth(depth float64)

	DrawLine(start, end geom.Vector2D)
	DrawCircle(center geom.Vector2D, radius float64)
	DrawRectangle(start, end geom.Vector2D)
}

// PrimitiveKind identifies a recorded primitive.
type PrimitiveKind int

const (
	PrimitiveLine PrimitiveKind = iota
	PrimitiveCircle
	PrimitiveRectangle
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveLine:
		return "line"
	case PrimitiveCircle:
		return "circle"
	case PrimitiveRectangle:
		return "rect"
	}
	return fmt.Sprintf("PrimitiveKind(%d)", int(k))
}

// DrawState is the drawing state in effect when a primitive was issued.
type DrawState struct {
	Target      RenderTarget
	IsFill      bool
	IsStroke    bool
	FillColor   Color4D
	StrokeColor Color4D
	LineWidth   float64
	LayerDepth  float64
}

// Primitive is one recorded draw call.
type Primitive struct {
	Kind   PrimitiveKind
	Start  geom.Vector2D // line start, rectangle corner, circle centre
	End    geom.Vector2D // line end, opposite rectangle corner
	Radius float64
	State  DrawState
}

func (p Primitive) String() string {
	switch p.Kind {
	case PrimitiveCircle:
		return fmt.Sprintf("circle c=(%.4f, %.4f) r=%.4f w=%.4f depth=%.2f",
			p.Start.X, p.Start.Y, p.Radius, p.State.LineWidth, p.State.LayerDepth)
	default:
		return fmt.Sprintf("%s (%.4f, %.4f)-(%.4f, %.4f) w=%.4f depth=%.2f",
			p.Kind, p.Start.X, p.Start.Y, p.End.X, p.End.Y, p.State.LineWidth, p.State.LayerDepth)
	}
}

// Recorder is a Drawer that keeps every primitive in memory.
type Recorder struct {
	state      DrawState
	Primitives []Primitive
}

// NewRecorder returns a Recorder with stroke enabled, matching a new GAL.
func NewRecorder() *Recorder {
	return &Recorder{state: DrawState{
		IsStroke:    true,
		StrokeColor: ColorWhite,
		LineWidth:   1.0,
	}}
}

func (r *Recorder) SetTarget(t RenderTarget)   { r.state.Target = t }
func (r *Recorder) SetIsFill(fill bool)        { r.state.IsFill = fill }
func (r *Recorder) SetIsStroke(stroke bool)    { r.state.IsStroke = stroke }
func (r *Recorder) SetFillColor(c Color4D)     { r.state.FillColor = c }
func (r *Recorder) SetStrokeColor(c Color4D)   { r.state.StrokeColor = c }
func (r *Recorder) SetLineWidth(width float64) { r.state.LineWidth = width }
func (r *Recorder) SetLayerDepth(d float64)    { r.state.LayerDepth = d }

func (r *Recorder) DrawLine(start, end geom.Vector2D) {
	r.Primitives = append(r.Primitives, Primitive{Kind: PrimitiveLine, Start: start, End: end, State: r.state})
}

func (r *Recorder) DrawCircle(center geom.Vector2D, radius float64) {
	r.Primitives = append(r.Primitives, Primitive{Kind: PrimitiveCircle, Start: center, Radius: radius, State: r.state})
}

func (r *Recorder) DrawRectangle(start, end geom.Vector2D) {
	r.Primitives = append(r.Primitives, Primitive{Kind: PrimitiveRectangle, Start: start, End: end, State: r.state})
}

// Count returns the number of recorded primitives of the given kind.
func (r *Recorder) Count(kind PrimitiveKind) int {
	n := 0
	for _, p := range r.Primitives {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// Reset discards recorded primitives but keeps the drawing state.
func (r *Recorder) Reset() {
	r.Primitives = r.Primitives[:0]
}
