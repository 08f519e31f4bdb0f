package pcb

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

// Kind discriminates the segment variants stored in a TrackList.
type Kind int

const (
	KindTrack Kind = iota
	KindVia
	KindZone
)

func (k Kind) String() string {
	switch k {
	case KindTrack:
		return "track"
	case KindVia:
		return "via"
	case KindZone:
		return "zone"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ViaType classifies a via by the layers it may span.
type ViaType int

const (
	ViaNotDefined ViaType = iota
	ViaMicro
	ViaBlindBuried
	ViaThrough
)

func (v ViaType) String() string {
	switch v {
	case ViaNotDefined:
		return "undefined"
	case ViaMicro:
		return "micro"
	case ViaBlindBuried:
		return "blind"
	case ViaThrough:
		return "through"
	}
	return fmt.Sprintf("ViaType(%d)", int(v))
}

// UndefinedDrill marks a via that uses its net class default drill.
const UndefinedDrill = -1.0

// Endpoint flags returned by IsPointOnEnds.
const (
	StartPoint = 1 << iota
	EndPoint
)

// Segment is one copper item of the connected-segment list: a track, a via
// or a zone fill stroke. Units are millimetres.
type Segment struct {
	Kind  Kind
	Start geom.Vector2D
	End   geom.Vector2D
	// Width is the stroke width, or the outer diameter for vias.
	Width   float64
	Layer   LayerID
	NetCode int

	// Via only. Layer is the top layer of the pair.
	BottomLayer LayerID
	ViaType     ViaType
	Drill       float64

	// Param is an auxiliary value whose meaning depends on the tool that
	// created the segment.
	Param  float64
	Locked bool
}

// NewTrack returns a track segment on layer.
func NewTrack(start, end geom.Vector2D, width float64, layer LayerID, net int) Segment {
	return Segment{Kind: KindTrack, Start: start, End: end, Width: width, Layer: layer, NetCode: net, BottomLayer: layer}
}

// NewVia returns a through via with the default drill.
func NewVia(pos geom.Vector2D, diameter float64, net int) Segment {
	return Segment{
		Kind:        KindVia,
		Start:       pos,
		End:         pos,
		Width:       diameter,
		Layer:       LayerFront,
		BottomLayer: LayerBack,
		NetCode:     net,
		ViaType:     ViaThrough,
		Drill:       UndefinedDrill,
	}
}

// NewZoneSegment returns a zone fill stroke.
func NewZoneSegment(start, end geom.Vector2D, width float64, layer LayerID, net int) Segment {
	s := NewTrack(start, end, width, layer, net)
	s.Kind = KindZone
	return s
}

func (s *Segment) IsVia() bool { return s.Kind == KindVia }

// Length returns the distance between the endpoints.
func (s *Segment) Length() float64 { return s.Start.Distance(s.End) }

// IsNull reports a zero-length segment.
func (s *Segment) IsNull() bool { return s.Start == s.End }

// LayerPair returns the top and bottom layers of a via; for other kinds both
// are Layer.
func (s *Segment) LayerPair() (top, bottom LayerID) {
	if s.Kind != KindVia {
		return s.Layer, s.Layer
	}
	return s.Layer, s.BottomLayer
}

// SetLayerPair sets the via layers, ordered front to back.
func (s *Segment) SetLayerPair(top, bottom LayerID) {
	if top > bottom {
		top, bottom = bottom, top
	}
	s.Layer = top
	s.BottomLayer = bottom
	if s.ViaType == ViaThrough && (top != LayerFront || bottom != LayerBack) {
		s.ViaType = ViaBlindBuried
	}
}

// MaskLayer returns the copper layers the segment occupies.
func (s *Segment) MaskLayer() LayerMask {
	if s.Kind != KindVia {
		return s.Layer.Mask()
	}
	if s.ViaType == ViaThrough {
		return AllCopperLayers
	}
	top, bottom := s.LayerPair()
	return LayerRange(top, bottom)
}

// IsOnLayer reports whether the segment has copper on l.
func (s *Segment) IsOnLayer(l LayerID) bool { return s.MaskLayer().Has(l) }

// BoundingBox returns the box enclosing the segment including its width.
func (s *Segment) BoundingBox() geom.BoundingBox {
	bb := geom.BoxFromPoints(s.Start, s.End)
	return bb.Inflate(s.Width / 2)
}

// HitTest reports whether p lies on the copper of the segment.
func (s *Segment) HitTest(p geom.Vector2D) bool {
	radius := s.Width / 2
	if s.Kind == KindVia {
		return p.Distance(s.Start) <= radius
	}
	return geom.DistanceToSegment(p, s.Start, s.End) <= radius
}

// HitTestRect tests against box. With contained set the whole segment must
// lie inside it, otherwise touching is enough. Touching is tested against box
// grown by half the width, so rounded corners count as square.
func (s *Segment) HitTestRect(box geom.BoundingBox, contained bool) bool {
	if contained {
		return box.ContainsBox(s.BoundingBox())
	}
	grown := box.Inflate(s.Width / 2)
	if grown.Contains(s.Start) || grown.Contains(s.End) {
		return true
	}
	if s.Kind == KindVia {
		return false
	}
	corners := []geom.Vector2D{
		grown.Min,
		{X: grown.Max.X, Y: grown.Min.Y},
		grown.Max,
		{X: grown.Min.X, Y: grown.Max.Y},
	}
	for i := range corners {
		if segmentsIntersect(s.Start, s.End, corners[i], corners[(i+1)%len(corners)]) {
			return true
		}
	}
	return false
}

// IsPointOnEnds returns StartPoint and/or EndPoint when p lies within
// tolerance of the corresponding end. A negative tolerance means half the
// segment width; zero requires an exact match.
func (s *Segment) IsPointOnEnds(p geom.Vector2D, tolerance float64) int {
	if tolerance < 0 {
		tolerance = s.Width / 2
	}
	result := 0
	if p.Distance(s.Start) <= tolerance {
		result |= StartPoint
	}
	if p.Distance(s.End) <= tolerance {
		result |= EndPoint
	}
	return result
}

// Move translates the segment by v.
func (s *Segment) Move(v geom.Vector2D) {
	s.Start = s.Start.Add(v)
	s.End = s.End.Add(v)
}

// Rotate turns the segment about centre by angle degrees, counter-clockwise.
func (s *Segment) Rotate(centre geom.Vector2D, angle float64) {
	rad := angle * math.Pi / 180
	s.Start = s.Start.Sub(centre).Rotate(rad).Add(centre)
	s.End = s.End.Sub(centre).Rotate(rad).Add(centre)
}

// Flip mirrors the segment about the horizontal line y = centre.Y and moves
// it to the opposite side of the board.
func (s *Segment) Flip(centre geom.Vector2D) {
	s.Start.Y = 2*centre.Y - s.Start.Y
	s.End.Y = 2*centre.Y - s.End.Y

	if s.Kind == KindVia {
		if s.ViaType != ViaThrough {
			top, bottom := s.LayerPair()
			s.SetLayerPair(flipLayer(bottom), flipLayer(top))
		}
		return
	}
	s.Layer = flipLayer(s.Layer)
	s.BottomLayer = s.Layer
}

func flipLayer(l LayerID) LayerID {
	if !l.IsValid() {
		return l
	}
	return LayerBack - l
}

// IsDrillDefault reports whether the via uses its net class drill.
func (s *Segment) IsDrillDefault() bool { return s.Drill <= 0 }

// SetDrillDefault makes the via follow its net class drill.
func (s *Segment) SetDrillDefault() { s.Drill = UndefinedDrill }

// DrillValue returns the drill diameter of a via. An explicit drill wins;
// otherwise the current net class default is read from src, so edits to the
// class apply to every default via. Non-vias have no drill.
func (s *Segment) DrillValue(src NetClassSource) float64 {
	if s.Kind != KindVia {
		return 0
	}
	if s.Drill > 0 {
		return s.Drill
	}
	if src == nil {
		return 0
	}
	nc := src.NetClassFor(s.NetCode)
	if s.ViaType == ViaMicro {
		return nc.MicroViaDrill
	}
	return nc.ViaDrill
}

// Clearance returns the clearance of the segment's net class, or the larger
// of the two classes when other is given.
func (s *Segment) Clearance(src NetClassSource, other *Segment) float64 {
	if src == nil {
		return 0
	}
	c := src.NetClassFor(s.NetCode).Clearance
	if other != nil {
		c = math.Max(c, src.NetClassFor(other.NetCode).Clearance)
	}
	return c
}

func (s *Segment) String() string {
	switch s.Kind {
	case KindVia:
		top, bottom := s.LayerPair()
		return fmt.Sprintf("via %s at (%.4g, %.4g) d=%.4g net %d %s-%s",
			s.ViaType, s.Start.X, s.Start.Y, s.Width, s.NetCode, top, bottom)
	default:
		return fmt.Sprintf("%s (%.4g, %.4g)-(%.4g, %.4g) w=%.4g net %d %s",
			s.Kind, s.Start.X, s.Start.Y, s.End.X, s.End.Y, s.Width, s.NetCode, s.Layer)
	}
}

func segmentsIntersect(p1, p2, p3, p4 geom.Vector2D) bool {
	cross := func(o, a, b geom.Vector2D) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}
	d1 := cross(p3, p4, p1)
	d2 := cross(p3, p4, p2)
	d3 := cross(p1, p2, p3)
	d4 := cross(p1, p2, p4)
	return (d1 > 0) != (d2 > 0) && (d3 > 0) != (d4 > 0)
}
