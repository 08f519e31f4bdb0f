package pcb

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultNetClassName names the class every unassigned net belongs to.
const DefaultNetClassName = "Default"

// NetClass groups design-rule defaults shared by a set of nets. Units are mm.
type NetClass struct {
	Name             string
	Clearance        float64
	TrackWidth       float64
	ViaDiameter      float64
	ViaDrill         float64
	MicroViaDiameter float64
	MicroViaDrill    float64
}

// NetClassSource resolves the net class of a net code.
type NetClassSource interface {
	NetClassFor(netCode int) NetClass
}

// DesignSettings holds board-wide minimums and the net class table. It is
// owned by a Board and handed to queries that need class defaults. The zero
// value holds the default class and no minimums.
type DesignSettings struct {
	TrackMinWidth    float64
	ViaMinSize       float64
	ViaMinDrill      float64
	MicroViaMinSize  float64
	MicroViaMinDrill float64

	classes    map[string]NetClass
	assignment map[int]string
}

// DefaultNetClass mirrors the KiCad defaults.
func DefaultNetClass() NetClass {
	return NetClass{
		Name:             DefaultNetClassName,
		Clearance:        0.2,
		TrackWidth:       0.25,
		ViaDiameter:      0.8,
		ViaDrill:         0.4,
		MicroViaDiameter: 0.3,
		MicroViaDrill:    0.1,
	}
}

// NewDesignSettings returns settings with only the default class.
func NewDesignSettings() *DesignSettings {
	ds := &DesignSettings{
		TrackMinWidth:    0.2,
		ViaMinSize:       0.4,
		ViaMinDrill:      0.3,
		MicroViaMinSize:  0.2,
		MicroViaMinDrill: 0.1,
	}
	ds.init()
	return ds
}

func (ds *DesignSettings) init() {
	if ds.classes == nil {
		ds.classes = map[string]NetClass{DefaultNetClassName: DefaultNetClass()}
	}
	if ds.assignment == nil {
		ds.assignment = make(map[int]string)
	}
}

// SetNetClass adds or replaces a class.
func (ds *DesignSettings) SetNetClass(nc NetClass) {
	ds.init()
	ds.classes[nc.Name] = nc
}

// NetClass returns a class by name.
func (ds *DesignSettings) NetClass(name string) (NetClass, bool) {
	ds.init()
	nc, ok := ds.classes[name]
	return nc, ok
}

// RemoveNetClass deletes a class and returns its nets to the default class.
// The default class cannot be removed.
func (ds *DesignSettings) RemoveNetClass(name string) error {
	if name == DefaultNetClassName {
		return fmt.Errorf("cannot remove the %s net class", DefaultNetClassName)
	}
	if _, ok := ds.classes[name]; !ok {
		return fmt.Errorf("unknown net class %q", name)
	}
	delete(ds.classes, name)
	for code, class := range ds.assignment {
		if class == name {
			delete(ds.assignment, code)
		}
	}
	return nil
}

// NetClasses returns all classes, the default first and the rest by name.
func (ds *DesignSettings) NetClasses() []NetClass {
	ds.init()
	out := make([]NetClass, 0, len(ds.classes))
	for _, nc := range ds.classes {
		out = append(out, nc)
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i].Name == DefaultNetClassName) != (out[j].Name == DefaultNetClassName) {
			return out[i].Name == DefaultNetClassName
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AssignNet puts a net into a class.
func (ds *DesignSettings) AssignNet(netCode int, class string) error {
	ds.init()
	if _, ok := ds.classes[class]; !ok {
		return fmt.Errorf("unknown net class %q", class)
	}
	if class == DefaultNetClassName {
		delete(ds.assignment, netCode)
		return nil
	}
	ds.assignment[netCode] = class
	return nil
}

// NetClassFor returns the class of netCode, falling back to the default.
func (ds *DesignSettings) NetClassFor(netCode int) NetClass {
	ds.init()
	if name, ok := ds.assignment[netCode]; ok {
		if nc, ok := ds.classes[name]; ok {
			return nc
		}
	}
	return ds.classes[DefaultNetClassName]
}

// Validate checks every class against the board minimums and returns all
// violations joined.
func (ds *DesignSettings) Validate() error {
	var errs []error
	for _, nc := range ds.NetClasses() {
		if nc.TrackWidth < ds.TrackMinWidth {
			errs = append(errs, fmt.Errorf("%s: track width %g < min track width %g", nc.Name, nc.TrackWidth, ds.TrackMinWidth))
		}
		if nc.ViaDiameter < ds.ViaMinSize {
			errs = append(errs, fmt.Errorf("%s: via diameter %g < min via diameter %g", nc.Name, nc.ViaDiameter, ds.ViaMinSize))
		}
		if nc.ViaDrill >= nc.ViaDiameter {
			errs = append(errs, fmt.Errorf("%s: via drill %g >= via diameter %g", nc.Name, nc.ViaDrill, nc.ViaDiameter))
		}
		if nc.ViaDrill < ds.ViaMinDrill {
			errs = append(errs, fmt.Errorf("%s: via drill %g < min via drill %g", nc.Name, nc.ViaDrill, ds.ViaMinDrill))
		}
		if nc.MicroViaDiameter < ds.MicroViaMinSize {
			errs = append(errs, fmt.Errorf("%s: micro via diameter %g < min micro via diameter %g", nc.Name, nc.MicroViaDiameter, ds.MicroViaMinSize))
		}
		if nc.MicroViaDrill >= nc.MicroViaDiameter {
			errs = append(errs, fmt.Errorf("%s: micro via drill %g >= micro via diameter %g", nc.Name, nc.MicroViaDrill, nc.MicroViaDiameter))
		}
		if nc.MicroViaDrill < ds.MicroViaMinDrill {
			errs = append(errs, fmt.Errorf("%s: micro via drill %g < min micro via drill %g", nc.Name, nc.MicroViaDrill, ds.MicroViaMinDrill))
		}
	}
	return errors.Join(errs...)
}
