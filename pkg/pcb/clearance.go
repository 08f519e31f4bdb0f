package pcb

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

// MinSegmentsPerCircle is the coarsest circle approximation accepted.
const MinSegmentsPerCircle = 8

// CorrectionFactor returns the radius scale that puts the edges of a regular
// n-gon, rather than its corners, on the true circle.
func CorrectionFactor(segmentsPerCircle int) float64 {
	n := max(segmentsPerCircle, MinSegmentsPerCircle)
	return 1 / math.Cos(math.Pi/float64(n))
}

// TransformShapeWithClearanceToPolygon appends to buf the outline of the
// segment grown by clearance, as one closed contour. Tracks and zone strokes
// become stadiums, vias circles. Curved parts use segmentsPerCircle edges per
// full turn and their radius is scaled by correctionFactor. A factor too
// small for the edge count is raised to CorrectionFactor, so the outline never
// cuts inside the true offset shape.
func (s *Segment) TransformShapeWithClearanceToPolygon(buf []geom.PolyPoint, clearance float64, segmentsPerCircle int, correctionFactor float64) []geom.PolyPoint {
	n := max(segmentsPerCircle, MinSegmentsPerCircle)
	radius := (s.Width/2 + clearance) * math.Max(correctionFactor, CorrectionFactor(n))

	if s.Kind == KindVia {
		step := 2 * math.Pi / float64(n)
		for i := range n {
			buf = append(buf, polarPoint(s.Start, radius, float64(i)*step))
		}
		buf[len(buf)-1].EndContour = true
		return buf
	}

	// Half turn around End, then half turn around Start.
	steps := (n + 1) / 2
	step := math.Pi / float64(steps)
	dir := s.End.Sub(s.Start)
	theta := math.Atan2(dir.Y, dir.X)

	for i := 0; i <= steps; i++ {
		buf = append(buf, polarPoint(s.End, radius, theta-math.Pi/2+float64(i)*step))
	}
	for i := 0; i <= steps; i++ {
		buf = append(buf, polarPoint(s.Start, radius, theta+math.Pi/2+float64(i)*step))
	}
	buf[len(buf)-1].EndContour = true
	return buf
}

func polarPoint(c geom.Vector2D, r, angle float64) geom.PolyPoint {
	return geom.PolyPoint{X: c.X + r*math.Cos(angle), Y: c.Y + r*math.Sin(angle)}
}
