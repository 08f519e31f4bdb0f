package pcb

import (
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

// samePoint compares connection points. Board coordinates come from files
// with nanometre resolution, so anything closer than that is one point.
func samePoint(a, b geom.Vector2D) bool {
	return a.ApproxEqual(b, 1e-6)
}

// Via returns the first via in [from, to] located at pos that shares a layer
// with mask. Pass AllCopperLayers to ignore layers and NoSegment as to to
// search to the end of the list.
func (l *TrackList) Via(from, to SegmentID, pos geom.Vector2D, mask LayerMask) SegmentID {
	for id, s := range l.Range(from, to) {
		if s.Kind == KindVia && samePoint(s.Start, pos) && s.MaskLayer()&mask != 0 {
			return id
		}
	}
	return NoSegment
}

// Trace returns the first segment in [from, to], other than exclude, with an
// endpoint at pos on a layer in mask.
func (l *TrackList) Trace(from, to SegmentID, pos geom.Vector2D, mask LayerMask, exclude SegmentID) SegmentID {
	for id, s := range l.Range(from, to) {
		if id == exclude || s.MaskLayer()&mask == 0 {
			continue
		}
		if samePoint(s.Start, pos) || samePoint(s.End, pos) {
			return id
		}
	}
	return NoSegment
}

// EndSegments finds the two extremities of the chain made of count segments
// starting at first. The chain's segments must be contiguous in the list, as
// a net run is. On success the start segment is oriented so its Start is the
// free end of the chain and the end segment so its End is.
//
// ok is false when the chain has no free end (a closed loop) or only one.
// A branching chain yields the first two free ends in list order. The walk
// never visits more than count segments.
func (l *TrackList) EndSegments(first SegmentID, count int) (start, end SegmentID, ok bool) {
	ends := l.freeEnds(first, count, 2)
	if len(ends) < 2 {
		return NoSegment, NoSegment, false
	}

	start, end = ends[0].id, ends[1].id
	if ends[0].which == EndPoint {
		s := &l.nodes[start].seg
		s.Start, s.End = s.End, s.Start
	}
	if ends[1].which == StartPoint {
		s := &l.nodes[end].seg
		s.Start, s.End = s.End, s.Start
	}
	return start, end, true
}

// FreeEnds counts the track ends of the chain that touch no other track of
// it: 0 for a closed loop, 1 for a path that ends in a loop, 2 for a simple
// open path and more for a branching one.
func (l *TrackList) FreeEnds(first SegmentID, count int) int {
	return len(l.freeEnds(first, count, 0))
}

type freeEnd struct {
	id    SegmentID
	which int
}

// freeEnds collects at most limit free ends (all if limit is 0) among the
// count segments starting at first.
func (l *TrackList) freeEnds(first SegmentID, count, limit int) []freeEnd {
	if count <= 0 {
		return nil
	}
	ids := make([]SegmentID, 0, count)
	for id := range l.Range(first, NoSegment) {
		if len(ids) == count {
			break
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	last := ids[len(ids)-1]

	var ends []freeEnd
	for _, id := range ids {
		s := l.nodes[id].seg
		if s.Kind == KindVia {
			continue
		}
		for _, which := range []int{StartPoint, EndPoint} {
			pt := s.Start
			if which == EndPoint {
				pt = s.End
			}
			if !l.connected(first, last, id, pt, s.MaskLayer()) {
				ends = append(ends, freeEnd{id, which})
			}
		}
		if limit > 0 && len(ends) >= limit {
			return ends[:limit]
		}
	}
	return ends
}

// connected reports whether another track of [from, to] touches pt. A via at
// pt joins all layers it spans but is not itself a continuation.
func (l *TrackList) connected(from, to, self SegmentID, pt geom.Vector2D, mask LayerMask) bool {
	if via := l.Via(from, to, pt, mask); via != NoSegment {
		mask |= l.nodes[via].seg.MaskLayer()
	}
	for id, s := range l.Range(from, to) {
		if id == self || s.Kind == KindVia || s.MaskLayer()&mask == 0 {
			continue
		}
		if samePoint(s.Start, pt) || samePoint(s.End, pt) {
			return true
		}
	}
	return false
}

// HitTest returns the segment on a layer in mask whose copper covers p and
// whose centreline is closest to it, or NoSegment.
func (l *TrackList) HitTest(p geom.Vector2D, mask LayerMask) SegmentID {
	best := NoSegment
	bestDist := 0.0
	for id, s := range l.All() {
		if s.MaskLayer()&mask == 0 || !s.HitTest(p) {
			continue
		}
		d := geom.DistanceToSegment(p, s.Start, s.End)
		if best == NoSegment || d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}
