package pcb

import (
	"fmt"
	"iter"
)

// SegmentID is a stable handle to a segment in a TrackList. IDs of removed
// segments are recycled.
type SegmentID int

// NoSegment is returned by searches that find nothing.
const NoSegment SegmentID = -1

type trackNode struct {
	seg  Segment
	prev SegmentID
	next SegmentID
	live bool
}

// TrackList is an ordered list of segments kept sorted by ascending net code,
// so that all segments of a net form one contiguous run. Segments live in an
// arena and are linked by index.
//
// Callers must change net codes through SetNetCode. Writing NetCode through
// the pointer returned by Get breaks the ordering.
type TrackList struct {
	nodes []trackNode
	free  []SegmentID
	head  SegmentID
	tail  SegmentID
	count int
}

// NewTrackList returns an empty list.
func NewTrackList() *TrackList {
	return &TrackList{head: NoSegment, tail: NoSegment}
}

func (l *TrackList) Len() int          { return l.count }
func (l *TrackList) First() SegmentID { return l.head }
func (l *TrackList) Last() SegmentID  { return l.tail }

// Next returns the segment after id, or NoSegment.
func (l *TrackList) Next(id SegmentID) SegmentID {
	if !l.valid(id) {
		return NoSegment
	}
	return l.nodes[id].next
}

// Back returns the segment before id, or NoSegment.
func (l *TrackList) Back(id SegmentID) SegmentID {
	if !l.valid(id) {
		return NoSegment
	}
	return l.nodes[id].prev
}

// Get returns the segment for id, or nil if id is not in the list.
func (l *TrackList) Get(id SegmentID) *Segment {
	if !l.valid(id) {
		return nil
	}
	return &l.nodes[id].seg
}

// All iterates the list in order.
func (l *TrackList) All() iter.Seq2[SegmentID, *Segment] {
	return l.Range(l.head, NoSegment)
}

// Range iterates from first to last inclusive; last may be NoSegment to run
// to the end of the list. The list must not be modified during iteration.
func (l *TrackList) Range(first, last SegmentID) iter.Seq2[SegmentID, *Segment] {
	return func(yield func(SegmentID, *Segment) bool) {
		for id := first; l.valid(id); id = l.nodes[id].next {
			if !yield(id, &l.nodes[id].seg) || id == last {
				return
			}
		}
	}
}

func (l *TrackList) valid(id SegmentID) bool {
	return id >= 0 && int(id) < len(l.nodes) && l.nodes[id].live
}

// BestInsertPoint returns the first segment whose net code is >= netCode.
// A segment with that net code belongs immediately before it; NoSegment
// means it belongs at the end.
func (l *TrackList) BestInsertPoint(netCode int) SegmentID {
	if l.tail == NoSegment || l.nodes[l.tail].seg.NetCode < netCode {
		return NoSegment
	}
	for id := l.head; id != NoSegment; id = l.nodes[id].next {
		if l.nodes[id].seg.NetCode >= netCode {
			return id
		}
	}
	return NoSegment
}

// Insert adds seg at its sorted position and returns its handle.
func (l *TrackList) Insert(seg Segment) SegmentID {
	id := l.alloc(seg)
	l.link(id, l.BestInsertPoint(seg.NetCode))
	return id
}

// InsertChain inserts a routed chain so that its segments stay contiguous
// and in the given order. All segments must share one net code.
func (l *TrackList) InsertChain(segs []Segment) ([]SegmentID, error) {
	if len(segs) == 0 {
		return nil, nil
	}
	net := segs[0].NetCode
	for i, s := range segs[1:] {
		if s.NetCode != net {
			return nil, fmt.Errorf("chain segment %d has net %d, want %d", i+1, s.NetCode, net)
		}
	}

	before := l.BestInsertPoint(net)
	ids := make([]SegmentID, len(segs))
	for i, s := range segs {
		ids[i] = l.alloc(s)
		l.link(ids[i], before)
	}
	return ids, nil
}

// Remove unlinks id. It reports whether id was in the list.
func (l *TrackList) Remove(id SegmentID) bool {
	if !l.valid(id) {
		return false
	}
	l.unlink(id)
	l.nodes[id] = trackNode{prev: NoSegment, next: NoSegment}
	l.free = append(l.free, id)
	return true
}

// RemoveNet deletes every segment of netCode and returns how many went.
func (l *TrackList) RemoveNet(netCode int) int {
	first, n := l.NetRun(netCode)
	id := first
	for range n {
		next := l.nodes[id].next
		l.Remove(id)
		id = next
	}
	return n
}

// SetNetCode moves id to netCode and relinks it at its new sorted position.
// The handle stays valid.
func (l *TrackList) SetNetCode(id SegmentID, netCode int) bool {
	if !l.valid(id) {
		return false
	}
	if l.nodes[id].seg.NetCode == netCode {
		return true
	}
	l.unlink(id)
	l.nodes[id].seg.NetCode = netCode
	l.link(id, l.BestInsertPoint(netCode))
	return true
}

// StartNetCode returns the first segment of netCode, or NoSegment. The scan
// stops at the first greater net code.
func (l *TrackList) StartNetCode(netCode int) SegmentID {
	for id := l.head; id != NoSegment; id = l.nodes[id].next {
		code := l.nodes[id].seg.NetCode
		if code == netCode {
			return id
		}
		if code > netCode {
			break
		}
	}
	return NoSegment
}

// EndNetCode returns the last segment of netCode, or NoSegment.
func (l *TrackList) EndNetCode(netCode int) SegmentID {
	id := l.StartNetCode(netCode)
	if id == NoSegment {
		return NoSegment
	}
	for {
		next := l.nodes[id].next
		if next == NoSegment || l.nodes[next].seg.NetCode != netCode {
			return id
		}
		id = next
	}
}

// NetRun returns the first segment of netCode and the length of its run.
func (l *TrackList) NetRun(netCode int) (SegmentID, int) {
	first := l.StartNetCode(netCode)
	n := 0
	for id := first; id != NoSegment && l.nodes[id].seg.NetCode == netCode; id = l.nodes[id].next {
		n++
	}
	return first, n
}

// NetCodes returns the distinct net codes in list order.
func (l *TrackList) NetCodes() []int {
	var codes []int
	for _, s := range l.All() {
		if len(codes) == 0 || codes[len(codes)-1] != s.NetCode {
			codes = append(codes, s.NetCode)
		}
	}
	return codes
}

// IsSorted reports whether net codes never decrease along the list.
func (l *TrackList) IsSorted() bool {
	prev := 0
	first := true
	for _, s := range l.All() {
		if !first && s.NetCode < prev {
			return false
		}
		prev, first = s.NetCode, false
	}
	return true
}

func (l *TrackList) alloc(seg Segment) SegmentID {
	node := trackNode{seg: seg, prev: NoSegment, next: NoSegment, live: true}
	if n := len(l.free); n > 0 {
		id := l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[id] = node
		return id
	}
	l.nodes = append(l.nodes, node)
	return SegmentID(len(l.nodes) - 1)
}

// link places an allocated, unlinked node before `before`, or at the tail
// when before is NoSegment.
func (l *TrackList) link(id, before SegmentID) {
	n := &l.nodes[id]
	if before == NoSegment {
		n.prev = l.tail
		n.next = NoSegment
		if l.tail != NoSegment {
			l.nodes[l.tail].next = id
		} else {
			l.head = id
		}
		l.tail = id
	} else {
		b := &l.nodes[before]
		n.prev = b.prev
		n.next = before
		if b.prev != NoSegment {
			l.nodes[b.prev].next = id
		} else {
			l.head = id
		}
		b.prev = id
	}
	l.count++
}

func (l *TrackList) unlink(id SegmentID) {
	n := &l.nodes[id]
	if n.prev != NoSegment {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != NoSegment {
		l.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = NoSegment, NoSegment
	l.count--
}
