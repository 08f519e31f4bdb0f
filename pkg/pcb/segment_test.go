package pcb

import (
	"math"
	"testing"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

func TestIsPointOnEnds(t *testing.T) {
	s := track(1, 0, 0, 10, 0)
	s.Width = 1
	null := track(1, 3, 3, 3, 3)

	tests := []struct {
		name      string
		seg       Segment
		p         geom.Vector2D
		tolerance float64
		want      int
	}{
		{"exact start", s, pt(0, 0), 0, StartPoint},
		{"exact end", s, pt(10, 0), 0, EndPoint},
		{"near start, exact match required", s, pt(0.1, 0), 0, 0},
		{"near start, half width", s, pt(0.4, 0), -1, StartPoint},
		{"outside half width", s, pt(0.6, 0), -1, 0},
		{"explicit tolerance", s, pt(9, 0), 1.5, EndPoint},
		{"middle", s, pt(5, 0), -1, 0},
		{"degenerate segment", null, pt(3, 3), 0, StartPoint | EndPoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.IsPointOnEnds(tt.p, tt.tolerance); got != tt.want {
				t.Errorf("IsPointOnEnds(%v, %v) = %b, want %b", tt.p, tt.tolerance, got, tt.want)
			}
		})
	}
}

func TestDrillValueResolvedLazily(t *testing.T) {
	ds := NewDesignSettings()
	ds.SetNetClass(NetClass{Name: "Power", ViaDiameter: 1.2, ViaDrill: 0.6, MicroViaDiameter: 0.4, MicroViaDrill: 0.15})
	if err := ds.AssignNet(5, "Power"); err != nil {
		t.Fatal(err)
	}

	def := NewVia(pt(0, 0), 1.2, 5)
	if !def.IsDrillDefault() {
		t.Fatal("new via should use the default drill")
	}
	if got := def.DrillValue(ds); got != 0.6 {
		t.Errorf("DrillValue() = %v, want 0.6", got)
	}

	// Editing the class later applies to default vias.
	nc, _ := ds.NetClass("Power")
	nc.ViaDrill = 0.5
	ds.SetNetClass(nc)
	if got := def.DrillValue(ds); got != 0.5 {
		t.Errorf("DrillValue() after class edit = %v, want 0.5", got)
	}

	micro := def
	micro.ViaType = ViaMicro
	if got := micro.DrillValue(ds); got != 0.15 {
		t.Errorf("micro DrillValue() = %v, want 0.15", got)
	}

	explicit := def
	explicit.Drill = 0.3
	if got := explicit.DrillValue(ds); got != 0.3 {
		t.Errorf("explicit DrillValue() = %v, want 0.3", got)
	}
	explicit.SetDrillDefault()
	if got := explicit.DrillValue(ds); got != 0.5 {
		t.Errorf("DrillValue() after SetDrillDefault = %v, want 0.5", got)
	}

	unassigned := NewVia(pt(0, 0), 0.8, 9)
	if got := unassigned.DrillValue(ds); got != DefaultNetClass().ViaDrill {
		t.Errorf("default-class DrillValue() = %v, want %v", got, DefaultNetClass().ViaDrill)
	}

	tr := track(5, 0, 0, 1, 0)
	if got := tr.DrillValue(ds); got != 0 {
		t.Errorf("track DrillValue() = %v, want 0", got)
	}
}

func TestMaskLayer(t *testing.T) {
	through := NewVia(pt(0, 0), 0.8, 1)
	if through.MaskLayer() != AllCopperLayers {
		t.Errorf("through via mask = %v", through.MaskLayer())
	}

	blind := NewVia(pt(0, 0), 0.8, 1)
	blind.SetLayerPair(LayerID(2), LayerFront)
	if blind.ViaType != ViaBlindBuried {
		t.Errorf("ViaType = %v, want blind", blind.ViaType)
	}
	top, bottom := blind.LayerPair()
	if top != LayerFront || bottom != 2 {
		t.Errorf("LayerPair() = %v, %v", top, bottom)
	}
	if got := blind.MaskLayer().Count(); got != 3 {
		t.Errorf("blind via spans %d layers, want 3", got)
	}
	if blind.IsOnLayer(LayerBack) {
		t.Error("blind via reported on B.Cu")
	}

	tr := track(1, 0, 0, 1, 0)
	if tr.MaskLayer() != LayerFront.Mask() || !tr.IsOnLayer(LayerFront) {
		t.Errorf("track mask = %v", tr.MaskLayer())
	}
}

func TestMoveRotateFlip(t *testing.T) {
	s := track(1, 1, 0, 2, 0)
	s.Move(pt(1, 1))
	if s.Start != pt(2, 1) || s.End != pt(3, 1) {
		t.Errorf("Move: got %v-%v", s.Start, s.End)
	}

	s = track(1, 1, 0, 2, 0)
	s.Rotate(pt(0, 0), 90)
	if !s.Start.ApproxEqual(pt(0, 1), 1e-12) || !s.End.ApproxEqual(pt(0, 2), 1e-12) {
		t.Errorf("Rotate: got %v-%v", s.Start, s.End)
	}

	s = track(1, 0, 1, 0, 3)
	s.Flip(pt(0, 0))
	if s.Start != pt(0, -1) || s.End != pt(0, -3) {
		t.Errorf("Flip: got %v-%v", s.Start, s.End)
	}
	if s.Layer != LayerBack {
		t.Errorf("Flip: layer = %v, want B.Cu", s.Layer)
	}

	v := NewVia(pt(0, 0), 0.6, 1)
	v.ViaType = ViaMicro
	v.SetLayerPair(LayerFront, LayerID(1))
	v.Flip(pt(0, 0))
	top, bottom := v.LayerPair()
	if top != LayerID(30) || bottom != LayerBack {
		t.Errorf("flipped micro via layers = %v-%v", top, bottom)
	}
}

func TestHitTestRect(t *testing.T) {
	s := track(1, 0, 0, 10, 10)
	s.Width = 0.2

	tests := []struct {
		name      string
		box       geom.BoundingBox
		contained bool
		want      bool
	}{
		{"box around start", geom.BoxFromPoints(pt(-1, -1), pt(1, 1)), false, true},
		{"box crossed by centreline", geom.BoxFromPoints(pt(7, 5), pt(3, 6)), false, true},
		{"box beside track", geom.BoxFromPoints(pt(6, 0), pt(9, 3)), false, false},
		{"contained: whole track inside", geom.BoxFromPoints(pt(-1, -1), pt(11, 11)), true, true},
		{"contained: partial", geom.BoxFromPoints(pt(-1, -1), pt(5, 5)), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.HitTestRect(tt.box, tt.contained); got != tt.want {
				t.Errorf("HitTestRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentBasics(t *testing.T) {
	s := track(1, 0, 0, 3, 4)
	if s.Length() != 5 {
		t.Errorf("Length() = %v", s.Length())
	}
	if s.IsNull() {
		t.Error("IsNull() = true")
	}
	bb := s.BoundingBox()
	if math.Abs(bb.Min.X+0.125) > 1e-12 || math.Abs(bb.Max.Y-4.125) > 1e-12 {
		t.Errorf("BoundingBox() = %+v", bb)
	}
	if !s.HitTest(pt(1.5, 2)) || s.HitTest(pt(3, 0)) {
		t.Error("HitTest mismatch")
	}
}

func TestLayerNames(t *testing.T) {
	tests := []struct {
		name string
		id   LayerID
	}{
		{"F.Cu", LayerFront},
		{"In1.Cu", 1},
		{"In30.Cu", 30},
		{"B.Cu", LayerBack},
	}
	for _, tt := range tests {
		got, err := LayerByName(tt.name)
		if err != nil || got != tt.id {
			t.Errorf("LayerByName(%q) = %v, %v", tt.name, got, err)
		}
		if LayerName(tt.id) != tt.name {
			t.Errorf("LayerName(%d) = %q", tt.id, LayerName(tt.id))
		}
	}
	for _, bad := range []string{"F.SilkS", "In31.Cu", "In0.Cu", ""} {
		if _, err := LayerByName(bad); err == nil {
			t.Errorf("LayerByName(%q) succeeded", bad)
		}
	}
}
