// Package pcb holds the copper topology of a board: tracks, vias and zone
// strokes in net-ordered lists, the design rules that size them, and a
// loader for KiCad board files.
package pcb

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

// Net is an electrical net.
type Net struct {
	Code int
	Name string
}

// Board owns the segment lists and the design settings they are resolved
// against.
type Board struct {
	Version   int
	Generator string
	Nets      []Net
	Settings  *DesignSettings
	Tracks    *TrackList // tracks and vias
	Zones     *TrackList // zone fill strokes
}

// NewBoard returns an empty board with default design settings.
func NewBoard() *Board {
	return &Board{
		Settings: NewDesignSettings(),
		Tracks:   NewTrackList(),
		Zones:    NewTrackList(),
	}
}

// Add inserts seg into the list for its kind at the sorted position.
func (b *Board) Add(seg Segment) SegmentID {
	if seg.Kind == KindZone {
		return b.Zones.Insert(seg)
	}
	return b.Tracks.Insert(seg)
}

// List returns the list that holds segments of kind k.
func (b *Board) List(k Kind) *TrackList {
	if k == KindZone {
		return b.Zones
	}
	return b.Tracks
}

// NetName returns the name of a net, or "" if unknown.
func (b *Board) NetName(code int) string {
	for _, n := range b.Nets {
		if n.Code == code {
			return n.Name
		}
	}
	return ""
}

// NetByName looks a net up by name.
func (b *Board) NetByName(name string) (Net, bool) {
	for _, n := range b.Nets {
		if n.Name == name {
			return n, true
		}
	}
	return Net{}, false
}

// ReassignNet moves every track, via and zone stroke of net from to net to,
// keeping both lists sorted. It returns the number of segments moved.
func (b *Board) ReassignNet(from, to int) int {
	moved := 0
	for _, l := range []*TrackList{b.Tracks, b.Zones} {
		first, n := l.NetRun(from)
		id := first
		ids := make([]SegmentID, 0, n)
		for range n {
			ids = append(ids, id)
			id = l.Next(id)
		}
		for _, id := range ids {
			l.SetNetCode(id, to)
		}
		moved += n
	}
	return moved
}

// NetInfo summarises one net.
type NetInfo struct {
	Code         int
	Name         string
	Class        string
	Tracks       int
	Vias         int
	ZoneSegments int
	Length       float64 // total track length in mm
}

// NetInfo counts the segments of a net.
func (b *Board) NetInfo(code int) NetInfo {
	info := NetInfo{
		Code:  code,
		Name:  b.NetName(code),
		Class: b.Settings.NetClassFor(code).Name,
	}

	first, n := b.Tracks.NetRun(code)
	for _, s := range b.Tracks.Range(first, NoSegment) {
		if n == 0 {
			break
		}
		n--
		if s.Kind == KindVia {
			info.Vias++
			continue
		}
		info.Tracks++
		info.Length += s.Length()
	}

	_, info.ZoneSegments = b.Zones.NetRun(code)
	return info
}

// ClearancePolygons returns the keep-out outlines of every track and via on
// layer that is not on excludeNet, as a copper pour would subtract them. A
// negative clearance uses each segment's net class clearance.
func (b *Board) ClearancePolygons(layer LayerID, excludeNet int, clearance float64, segmentsPerCircle int) []geom.PolyPoint {
	var buf []geom.PolyPoint
	cf := CorrectionFactor(segmentsPerCircle)
	for _, s := range b.Tracks.All() {
		if s.NetCode == excludeNet || !s.IsOnLayer(layer) {
			continue
		}
		c := clearance
		if c < 0 {
			c = s.Clearance(b.Settings, nil)
		}
		buf = s.TransformShapeWithClearanceToPolygon(buf, c, segmentsPerCircle, cf)
	}
	return buf
}

// BoundingBox returns the box around all copper. It is empty for a board
// without segments.
func (b *Board) BoundingBox() geom.BoundingBox {
	bb := geom.NewBoundingBox()
	for _, l := range []*TrackList{b.Tracks, b.Zones} {
		for _, s := range l.All() {
			bb.ExpandBox(s.BoundingBox())
		}
	}
	return bb
}

// Summary returns a one-line description of the board contents.
func (b *Board) Summary() string {
	vias := 0
	for _, s := range b.Tracks.All() {
		if s.Kind == KindVia {
			vias++
		}
	}
	return fmt.Sprintf("%d nets, %d tracks, %d vias, %d zone segments",
		len(b.Nets), b.Tracks.Len()-vias, vias, b.Zones.Len())
}

// TotalLength returns the summed length of all tracks.
func (b *Board) TotalLength() float64 {
	total := 0.0
	for _, s := range b.Tracks.All() {
		if s.Kind == KindTrack {
			total += s.Length()
		}
	}
	return total
}
