// Package gal is the graphics abstraction core: it owns the world/screen
// viewport transform and draws the adaptive grid through a backend-agnostic
// Drawer. Concrete backends (see package giogal) only implement Drawer.
//
// A GAL is not safe for concurrent use; it is owned by a single view and
// mutated on the render goroutine.
package gal

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

// Clamping limits applied at the setter boundary.
const (
	MinZoomFactor = 1e-4
	MaxZoomFactor = 1e4
	MinGridSize   = 1e-6 // mm

	// MinGridDrawThreshold keeps sub-pixel grid levels suppressed.
	MinGridDrawThreshold = 1.0 // px
)

// Defaults for a freshly constructed GAL.
const (
	DefaultScreenDPI            = 106.0
	DefaultWorldUnitLength      = 1.0 / 25.4 // inches per world unit (1 mm)
	DefaultGridDrawThreshold    = 10         // px
	DefaultGridLineWidth        = 0.5        // px
	DefaultGridOriginMarkerSize = 15         // px
	DefaultCoarseGrid           = 10
)

// GAL holds viewport and grid state. Derived values (world scale and the two
// cached matrices) are only refreshed by ComputeWorldScreenMatrix.
type GAL struct {
	screenSize      geom.Vector2D
	screenDPI       float64
	worldUnitLength float64
	zoomFactor      float64
	worldScale      float64
	lookAtPoint     geom.Vector2D
	flipX, flipY    float64
	depthRange      geom.Vector2D // X = near, Y = far

	worldScreenMatrix Matrix3x3
	screenWorldMatrix Matrix3x3

	gridVisibility       bool
	gridStyle            GridStyle
	gridSize             geom.Vector2D
	gridTick             int
	gridOrigin           geom.Vector2D
	gridColor            Color4D
	gridDrawThreshold    float64
	gridLineWidth        float64
	gridOriginMarkerSize float64
}

// New creates a GAL with default settings and computed matrices.
func New() *GAL {
	g := &GAL{
		screenSize:      geom.Vector2D{X: 1, Y: 1},
		screenDPI:       DefaultScreenDPI,
		worldUnitLength: DefaultWorldUnitLength,
	}
	g.SetZoomFactor(1.0)
	g.SetDepthRange(-2048, 2047)
	g.SetFlip(false, false)

	g.SetGridVisibility(true)
	g.SetGridStyle(GridLines)
	g.SetGridSize(geom.Vector2D{X: 1, Y: 1})
	g.SetCoarseGrid(DefaultCoarseGrid)
	g.SetGridColor(ColorGridDefault)
	g.SetGridDrawThreshold(DefaultGridDrawThreshold)
	g.SetGridLineWidth(DefaultGridLineWidth)
	g.SetGridOriginMarkerSize(DefaultGridOriginMarkerSize)

	g.ComputeWorldScreenMatrix()
	return g
}

// SetScreenSize sets the device-pixel extent of the drawing surface.
func (g *GAL) SetScreenSize(size geom.Vector2D) {
	g.screenSize = geom.Vector2D{X: math.Max(1, size.X), Y: math.Max(1, size.Y)}
}

// ScreenSize returns the drawing surface size in pixels.
func (g *GAL) ScreenSize() geom.Vector2D { return g.screenSize }

// SetScreenDPI sets the device resolution used to derive the world scale.
func (g *GAL) SetScreenDPI(dpi float64) {
	if dpi <= 0 {
		dpi = DefaultScreenDPI
	}
	g.screenDPI = dpi
}

// ScreenDPI returns the device resolution.
func (g *GAL) ScreenDPI() float64 { return g.screenDPI }

// SetWorldUnitLength sets the physical length of one world unit in inches.
func (g *GAL) SetWorldUnitLength(inches float64) {
	if inches <= 0 {
		inches = DefaultWorldUnitLength
	}
	g.worldUnitLength = inches
}

// SetZoomFactor sets the user zoom level, clamped to a positive range.
func (g *GAL) SetZoomFactor(z float64) {
	if math.IsNaN(z) || z < MinZoomFactor {
		z = MinZoomFactor
	}
	if z > MaxZoomFactor {
		z = MaxZoomFactor
	}
	g.zoomFactor = z
}

// ZoomFactor returns the user zoom level.
func (g *GAL) ZoomFactor() float64 { return g.zoomFactor }

// WorldScale returns screen pixels per world unit as of the last recompute.
func (g *GAL) WorldScale() float64 { return g.worldScale }

// SetLookAtPoint sets the world point shown at the screen centre.
func (g *GAL) SetLookAtPoint(p geom.Vector2D) { g.lookAtPoint = p }

// LookAtPoint returns the world point at the screen centre.
func (g *GAL) LookAtPoint() geom.Vector2D { return g.lookAtPoint }

// SetFlip mirrors the view along the given axes.
func (g *GAL) SetFlip(x, y bool) {
	g.flipX, g.flipY = 1, 1
	if x {
		g.flipX = -1
	}
	if y {
		g.flipY = -1
	}
}

// Flip reports the current axis mirroring.
func (g *GAL) Flip() (x, y bool) { return g.flipX < 0, g.flipY < 0 }

// SetDepthRange sets the valid layer depth band.
func (g *GAL) SetDepthRange(near, far float64) {
	g.depthRange = geom.Vector2D{X: near, Y: far}
}

// DepthRange returns the (near, far) layer depth band.
func (g *GAL) DepthRange() (near, far float64) { return g.depthRange.X, g.depthRange.Y }

// SetGridVisibility shows or hides the grid.
func (g *GAL) SetGridVisibility(v bool) { g.gridVisibility = v }

// GridVisibility reports whether the grid is drawn.
func (g *GAL) GridVisibility() bool { return g.gridVisibility }

// SetGridStyle selects line or dot rendering.
func (g *GAL) SetGridStyle(s GridStyle) { g.gridStyle = s }

// GridStyle returns the grid rendering style.
func (g *GAL) GridStyle() GridStyle { return g.gridStyle }

// SetGridSize sets the dense grid pitch; each axis is clamped to MinGridSize.
func (g *GAL) SetGridSize(size geom.Vector2D) {
	g.gridSize = geom.Vector2D{
		X: clampGrid(size.X),
		Y: clampGrid(size.Y),
	}
}

func clampGrid(v float64) float64 {
	v = math.Abs(v)
	if math.IsNaN(v) || v < MinGridSize {
		return MinGridSize
	}
	return v
}

// GridSize returns the dense grid pitch.
func (g *GAL) GridSize() geom.Vector2D { return g.gridSize }

// SetCoarseGrid promotes every tick-th line to a coarse line.
func (g *GAL) SetCoarseGrid(tick int) {
	if tick < 1 {
		tick = 1
	}
	g.gridTick = tick
}

// CoarseGrid returns the coarse line interval.
func (g *GAL) CoarseGrid() int { return g.gridTick }

// SetGridOrigin sets the world point marked as grid origin.
func (g *GAL) SetGridOrigin(p geom.Vector2D) { g.gridOrigin = p }

// GridOrigin returns the grid origin.
func (g *GAL) GridOrigin() geom.Vector2D { return g.gridOrigin }

// SetGridColor sets the colour of grid lines and dots.
func (g *GAL) SetGridColor(c Color4D) { g.gridColor = c }

// GridColor returns the colour of grid lines and dots.
func (g *GAL) GridColor() Color4D { return g.gridColor }

// SetGridDrawThreshold sets the minimum on-screen spacing (px) for a grid
// level. It is clamped to MinGridDrawThreshold.
func (g *GAL) SetGridDrawThreshold(px float64) {
	if math.IsNaN(px) || px < MinGridDrawThreshold {
		px = MinGridDrawThreshold
	}
	g.gridDrawThreshold = px
}

// GridDrawThreshold returns the minimum on-screen grid spacing in pixels.
func (g *GAL) GridDrawThreshold() float64 { return g.gridDrawThreshold }

// SetGridLineWidth sets the grid stroke width in pixels.
func (g *GAL) SetGridLineWidth(px float64) { g.gridLineWidth = math.Max(0, px) }

// GridLineWidth returns the grid stroke width in pixels.
func (g *GAL) GridLineWidth() float64 { return g.gridLineWidth }

// SetGridOriginMarkerSize sets the origin marker half-size in pixels.
func (g *GAL) SetGridOriginMarkerSize(px float64) {
	g.gridOriginMarkerSize = math.Max(0, px)
}
