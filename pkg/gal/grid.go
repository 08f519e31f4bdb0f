package gal

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

// GridStyle selects how grid nodes are rendered.
type GridStyle int

const (
	GridLines GridStyle = iota
	GridDots
)

func (s GridStyle) String() string {
	switch s {
	case GridLines:
		return "lines"
	case GridDots:
		return "dots"
	}
	return fmt.Sprintf("GridStyle(%d)", int(s))
}

// ParseGridStyle accepts "lines" or "dots" (case-insensitive).
func ParseGridStyle(s string) (GridStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lines", "line":
		return GridLines, nil
	case "dots", "dot", "points":
		return GridDots, nil
	}
	return GridLines, fmt.Errorf("unknown grid style %q", s)
}

// axisLevel records which grid levels are far enough apart on one axis.
type axisLevel struct {
	dense  bool
	coarse bool
}

func (l axisLevel) any() bool { return l.dense || l.coarse }

// GridDepth returns the layer depth at which grid geometry is drawn.
func (g *GAL) GridDepth() float64 {
	return g.depthRange.Y * 0.75
}

// DrawGrid draws the origin marker and the visible part of the grid. It
// returns the number of grid primitives emitted, not counting the marker.
func (g *GAL) DrawGrid(d Drawer) int {
	if !g.gridVisibility {
		return 0
	}

	d.SetTarget(TargetNonCached)
	g.drawOriginMarker(d)

	worldStart := g.ToWorld(geom.Vector2D{})
	worldEnd := g.ToWorld(g.screenSize)

	tick := float64(g.gridTick)
	levX := g.axisLevel(g.gridSize.X, tick)
	levY := g.axisLevel(g.gridSize.Y, tick)
	if !levX.any() && !levY.any() {
		return 0
	}

	startX, endX := gridSpan(worldStart.X, worldEnd.X, g.gridSize.X)
	startY, endY := gridSpan(worldStart.Y, worldEnd.Y, g.gridSize.Y)

	marker := 2.0 * g.gridLineWidth / g.worldScale
	doubleMarker := 2.0 * marker

	d.SetLayerDepth(g.GridDepth())

	if g.gridStyle == GridDots {
		return g.drawGridDots(d, startX, endX, startY, endY, levX, levY, marker, doubleMarker)
	}
	return g.drawGridLines(d, startX, endX, startY, endY, levX, levY, marker, doubleMarker)
}

func (g *GAL) drawOriginMarker(d Drawer) {
	size := g.gridOriginMarkerSize / g.worldScale
	o := g.gridOrigin

	d.SetLayerDepth(0.0)
	d.SetIsFill(false)
	d.SetIsStroke(true)
	d.SetStrokeColor(ColorWhite)
	d.SetLineWidth(g.gridLineWidth / g.worldScale)
	d.DrawLine(o.Add(geom.Vector2D{X: -size, Y: -size}), o.Add(geom.Vector2D{X: size, Y: size}))
	d.DrawLine(o.Add(geom.Vector2D{X: -size, Y: size}), o.Add(geom.Vector2D{X: size, Y: -size}))
	d.DrawCircle(o, size*0.7)
}

func (g *GAL) axisLevel(pitch, tick float64) axisLevel {
	dense := math.Round(pitch * g.worldScale)
	coarse := math.Round(pitch * tick * g.worldScale)
	return axisLevel{
		dense:  dense > g.gridDrawThreshold,
		coarse: coarse > g.gridDrawThreshold,
	}
}

// gridSpan converts a world interval to line indices, ordered and padded by
// one index on each side.
func gridSpan(a, b, pitch float64) (start, end int) {
	start = int(math.Round(a / pitch))
	end = int(math.Round(b / pitch))
	if end < start {
		start, end = end, start
	}
	return start - 1, end + 1
}

// gridIndices yields the indices in [lo, hi) that are visible at the given
// level: all of them when the dense level shows, only coarse ticks otherwise.
func gridIndices(lo, hi, tick int, lvl axisLevel) iter.Seq[int] {
	return func(yield func(int) bool) {
		step := 1
		first := lo
		switch {
		case lvl.dense:
		case lvl.coarse:
			step = tick
			first = lo / tick * tick
			if first < lo {
				first += tick
			}
		default:
			return
		}
		for i := first; i < hi; i += step {
			if !yield(i) {
				return
			}
		}
	}
}

func (g *GAL) drawGridLines(d Drawer, startX, endX, startY, endY int, levX, levY axisLevel, marker, doubleMarker float64) int {
	d.SetIsFill(false)
	d.SetIsStroke(true)
	d.SetStrokeColor(g.gridColor)

	count := 0
	gs := g.gridSize

	for j := range gridIndices(startY, endY, g.gridTick, levY) {
		d.SetLineWidth(g.lineWidthFor(j, levY, marker, doubleMarker))
		d.DrawLine(
			geom.Vector2D{X: float64(startX) * gs.X, Y: float64(j) * gs.Y},
			geom.Vector2D{X: float64(endX) * gs.X, Y: float64(j) * gs.Y},
		)
		count++
	}

	for i := range gridIndices(startX, endX, g.gridTick, levX) {
		d.SetLineWidth(g.lineWidthFor(i, levX, marker, doubleMarker))
		d.DrawLine(
			geom.Vector2D{X: float64(i) * gs.X, Y: float64(startY) * gs.Y},
			geom.Vector2D{X: float64(i) * gs.X, Y: float64(endY) * gs.Y},
		)
		count++
	}

	return count
}

// lineWidthFor returns the stroke for line index n. Coarse ticks stay bold
// whenever the coarse level is visible, even if dense lines are crowded in.
func (g *GAL) lineWidthFor(n int, lvl axisLevel, marker, doubleMarker float64) float64 {
	if n%g.gridTick == 0 && lvl.coarse {
		return doubleMarker
	}
	return marker
}

func (g *GAL) drawGridDots(d Drawer, startX, endX, startY, endY int, levX, levY axisLevel, marker, doubleMarker float64) int {
	d.SetIsFill(true)
	d.SetIsStroke(false)
	d.SetFillColor(g.gridColor)

	count := 0
	gs := g.gridSize

	for j := range gridIndices(startY, endY, g.gridTick, levY) {
		tickY := j%g.gridTick == 0 && levY.coarse
		for i := range gridIndices(startX, endX, g.gridTick, levX) {
			tickX := i%g.gridTick == 0 && levX.coarse

			radius := marker
			if tickX && tickY {
				radius = doubleMarker
			}
			x, y := float64(i)*gs.X, float64(j)*gs.Y
			d.DrawRectangle(
				geom.Vector2D{X: x - radius, Y: y - radius},
				geom.Vector2D{X: x + radius, Y: y + radius},
			)
			count++
		}
	}

	return count
}
