package gal

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

// ComputeWorldScale derives screen pixels per world unit from the device
// resolution, the world unit length and the zoom factor.
func (g *GAL) ComputeWorldScale() {
	g.worldScale = g.screenDPI * g.worldUnitLength * g.zoomFactor
}

// ComputeWorldScreenMatrix rebuilds the world->screen matrix and its inverse.
// Composition (innermost first): recentre on the look-at point, scale, flip,
// translate to the screen centre.
func (g *GAL) ComputeWorldScreenMatrix() {
	g.ComputeWorldScale()

	translation := TranslationMatrix(g.screenSize.Scale(0.5))
	flip := ScaleMatrix(geom.Vector2D{X: g.flipX, Y: g.flipY})
	scale := ScaleMatrix(geom.Vector2D{X: g.worldScale, Y: g.worldScale})
	lookat := TranslationMatrix(g.lookAtPoint.Scale(-1))

	worldScreen := translation.Mul(flip).Mul(scale).Mul(lookat)
	screenWorld, err := worldScreen.Inverse()
	if err != nil {
		// Unreachable: the scale is clamped positive at every setter.
		panic(err)
	}

	g.worldScreenMatrix = worldScreen
	g.screenWorldMatrix = screenWorld
}

// WorldScreenMatrix returns the cached world->screen transform.
func (g *GAL) WorldScreenMatrix() Matrix3x3 { return g.worldScreenMatrix }

// ScreenWorldMatrix returns the cached screen->world transform.
func (g *GAL) ScreenWorldMatrix() Matrix3x3 { return g.screenWorldMatrix }

// ToScreen converts a world point to screen pixels.
func (g *GAL) ToScreen(p geom.Vector2D) geom.Vector2D {
	return g.worldScreenMatrix.Transform(p)
}

// ToWorld converts a screen point to world coordinates.
func (g *GAL) ToWorld(p geom.Vector2D) geom.Vector2D {
	return g.screenWorldMatrix.Transform(p)
}

// ToScreenScalar converts a world length to pixels.
func (g *GAL) ToScreenScalar(v float64) float64 {
	return v * g.worldScale
}

// ToWorldScalar converts a pixel length to world units.
func (g *GAL) ToWorldScalar(v float64) float64 {
	return v / g.worldScale
}

// GetGridPoint snaps a screen point to the nearest grid node and returns it
// in screen coordinates.
func (g *GAL) GetGridPoint(p geom.Vector2D) geom.Vector2D {
	w := g.ToWorld(p)
	w.X = math.Round(w.X/g.gridSize.X) * g.gridSize.X
	w.Y = math.Round(w.Y/g.gridSize.Y) * g.gridSize.Y
	return g.ToScreen(w)
}

// VisibleBounds returns the world rectangle covered by the screen.
func (g *GAL) VisibleBounds() geom.BoundingBox {
	return geom.BoxFromPoints(g.ToWorld(geom.Vector2D{}), g.ToWorld(g.screenSize))
}

// Pan moves the view by a screen-space offset in pixels. Content follows the
// pointer, so the look-at point moves the opposite way.
func (g *GAL) Pan(dx, dy float64) {
	delta := geom.Vector2D{
		X: dx / (g.worldScale * g.flipX),
		Y: dy / (g.worldScale * g.flipY),
	}
	g.lookAtPoint = g.lookAtPoint.Sub(delta)
	g.ComputeWorldScreenMatrix()
}

// ZoomAt multiplies the zoom factor while keeping the world point under the
// given screen position stationary. factor > 1 zooms in.
func (g *GAL) ZoomAt(screen geom.Vector2D, factor float64) {
	if factor <= 0 {
		return
	}
	before := g.ToWorld(screen)

	g.SetZoomFactor(g.zoomFactor * factor)
	g.ComputeWorldScreenMatrix()

	after := g.ToWorld(screen)
	g.lookAtPoint = g.lookAtPoint.Add(before.Sub(after))
	g.ComputeWorldScreenMatrix()
}

// Fit centres the view on bbox and picks a zoom factor so the box fills the
// given fraction (0-1] of the screen.
func (g *GAL) Fit(bbox geom.BoundingBox, margin float64) {
	if bbox.IsEmpty() || bbox.Width() <= 0 || bbox.Height() <= 0 {
		return
	}
	if margin <= 0 || margin > 1 {
		margin = 0.9
	}

	g.lookAtPoint = bbox.Center()

	base := g.screenDPI * g.worldUnitLength
	zoomX := g.screenSize.X * margin / (bbox.Width() * base)
	zoomY := g.screenSize.Y * margin / (bbox.Height() * base)
	g.SetZoomFactor(math.Min(zoomX, zoomY))
	g.ComputeWorldScreenMatrix()
}
