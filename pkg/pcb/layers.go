package pcb

import (
	"fmt"
	"math/bits"
	"strings"
)

// LayerID identifies a copper layer. Front copper is 0, inner layers follow
// in stack order and back copper is last.
type LayerID int

const (
	LayerFront     LayerID = 0
	LayerBack      LayerID = 31
	CopperLayerMax         = 32

	UndefinedLayer LayerID = -1
)

// LayerMask is a set of copper layers, one bit per LayerID.
type LayerMask uint32

// AllCopperLayers covers every copper layer.
const AllCopperLayers LayerMask = 0xFFFFFFFF

// Mask returns the single-layer mask for l, or 0 for an invalid layer.
func (l LayerID) Mask() LayerMask {
	if !l.IsValid() {
		return 0
	}
	return 1 << uint(l)
}

func (l LayerID) IsValid() bool { return l >= LayerFront && l <= LayerBack }

func (l LayerID) String() string { return LayerName(l) }

// LayerName returns the KiCad name of a copper layer ("F.Cu", "In1.Cu", "B.Cu").
func LayerName(l LayerID) string {
	switch {
	case l == LayerFront:
		return "F.Cu"
	case l == LayerBack:
		return "B.Cu"
	case l > LayerFront && l < LayerBack:
		return fmt.Sprintf("In%d.Cu", int(l))
	}
	return fmt.Sprintf("Layer(%d)", int(l))
}

// LayerByName parses a copper layer name. Quotes are tolerated.
func LayerByName(name string) (LayerID, error) {
	name = strings.Trim(name, `"`)
	switch name {
	case "F.Cu":
		return LayerFront, nil
	case "B.Cu":
		return LayerBack, nil
	}
	var n int
	if _, err := fmt.Sscanf(name, "In%d.Cu", &n); err == nil && n > 0 && n < int(LayerBack) {
		return LayerID(n), nil
	}
	return UndefinedLayer, fmt.Errorf("unknown copper layer %q", name)
}

// LayerRange returns the mask of all layers between a and b inclusive.
func LayerRange(a, b LayerID) LayerMask {
	if a > b {
		a, b = b, a
	}
	var m LayerMask
	for l := a; l <= b; l++ {
		m |= l.Mask()
	}
	return m
}

func (m LayerMask) Has(l LayerID) bool { return m&l.Mask() != 0 }

// Count returns the number of layers in m.
func (m LayerMask) Count() int { return bits.OnesCount32(uint32(m)) }

func (m LayerMask) String() string {
	if m == AllCopperLayers {
		return "*.Cu"
	}
	var names []string
	for l := LayerFront; l <= LayerBack; l++ {
		if m.Has(l) {
			names = append(names, LayerName(l))
		}
	}
	return strings.Join(names, ",")
}
