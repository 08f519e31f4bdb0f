package render

import (
	"math"
	"testing"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/gal"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/pcb"
)

func pt(x, y float64) geom.Vector2D { return geom.Vector2D{X: x, Y: y} }

func testBoard() *pcb.Board {
	b := pcb.NewBoard()
	b.Add(pcb.NewTrack(pt(0, 0), pt(10, 0), 0.25, pcb.LayerFront, 1))
	b.Add(pcb.NewTrack(pt(10, 0), pt(10, 10), 0.25, pcb.LayerBack, 1))
	b.Add(pcb.NewTrack(pt(0, 5), pt(5, 5), 0.5, pcb.LayerID(1), 2))
	b.Add(pcb.NewVia(pt(10, 0), 0.8, 1))
	b.Add(pcb.NewZoneSegment(pt(0, 20), pt(10, 20), 0.2, pcb.LayerBack, 2))
	return b
}

func TestDrawBoardOrder(t *testing.T) {
	r := gal.NewRecorder()
	n := NewPainter().DrawBoard(r, testBoard())
	if n != 5 {
		t.Fatalf("DrawBoard() = %d, want 5", n)
	}
	if got := r.Count(gal.PrimitiveLine); got != 4 {
		t.Errorf("lines = %d, want 4", got)
	}
	// via pad plus drill hole
	if got := r.Count(gal.PrimitiveCircle); got != 2 {
		t.Errorf("circles = %d, want 2", got)
	}

	prev := 1e9
	for i, p := range r.Primitives {
		if p.State.Target != gal.TargetCached {
			t.Errorf("primitive %d target = %v, want cached", i, p.State.Target)
		}
		if p.State.LayerDepth > prev {
			t.Errorf("primitive %d depth %.1f drawn after depth %.1f", i, p.State.LayerDepth, prev)
		}
		prev = p.State.LayerDepth
	}

	first := r.Primitives[0]
	if first.State.LayerDepth != float64(pcb.LayerBack) {
		t.Errorf("first primitive on depth %.1f, want back copper", first.State.LayerDepth)
	}
	last := r.Primitives[len(r.Primitives)-1]
	if last.Kind != gal.PrimitiveCircle || last.Radius != 0.2 {
		t.Errorf("last primitive = %v, want drill hole r=0.2", last)
	}
}

func TestDrawBoardVisibility(t *testing.T) {
	tests := []struct {
		name    string
		visible pcb.LayerMask
		lines   int
		circles int
	}{
		{"all", pcb.AllCopperLayers, 4, 2},
		{"front", pcb.LayerFront.Mask(), 1, 2},
		{"inner", pcb.LayerID(1).Mask(), 1, 2},
		{"none", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPainter()
			p.Visible = tt.visible
			r := gal.NewRecorder()
			p.DrawBoard(r, testBoard())
			if got := r.Count(gal.PrimitiveLine); got != tt.lines {
				t.Errorf("lines = %d, want %d", got, tt.lines)
			}
			if got := r.Count(gal.PrimitiveCircle); got != tt.circles {
				t.Errorf("circles = %d, want %d", got, tt.circles)
			}
		})
	}
}

func TestHighlightNet(t *testing.T) {
	p := NewPainter()
	p.Highlight = 2
	p.Visible = pcb.LayerID(1).Mask()
	r := gal.NewRecorder()
	p.DrawBoard(r, testBoard())

	for _, prim := range r.Primitives {
		if prim.Kind == gal.PrimitiveLine && prim.State.StrokeColor.A != 1 {
			t.Errorf("highlighted track alpha = %v, want 1", prim.State.StrokeColor.A)
		}
		if prim.Kind == gal.PrimitiveCircle && prim.State.FillColor == p.Theme.ViaColor() {
			t.Errorf("via on other net drawn at full colour")
		}
	}
}

func TestThemes(t *testing.T) {
	for _, name := range []string{"classic", "KiCad2020", "nord"} {
		th, err := ParseTheme(name)
		if err != nil {
			t.Fatalf("ParseTheme(%q): %v", name, err)
		}
		if th.LayerColor(pcb.LayerFront) == th.LayerColor(pcb.LayerBack) {
			t.Errorf("%v: front and back share a colour", th)
		}
		if th.LayerColor(pcb.LayerID(1)) != th.LayerColor(pcb.LayerID(3)) {
			t.Errorf("%v: inner colours do not cycle", th)
		}
	}
	if _, err := ParseTheme("neon"); err == nil {
		t.Error("ParseTheme(neon) succeeded")
	}
}

func TestDrawCursor(t *testing.T) {
	g := gal.New()
	g.SetScreenSize(pt(800, 600))
	g.ComputeWorldScreenMatrix()
	r := gal.NewRecorder()
	DrawCursor(r, g, pt(1, 1), 5)
	if len(r.Primitives) != 2 {
		t.Fatalf("got %d primitives, want 2", len(r.Primitives))
	}
	for _, p := range r.Primitives {
		if p.State.Target != gal.TargetOverlay {
			t.Errorf("target = %v, want overlay", p.State.Target)
		}
		mid := pt((p.Start.X+p.End.X)/2, (p.Start.Y+p.End.Y)/2)
		if math.Abs(mid.X-1) > 1e-9 || math.Abs(mid.Y-1) > 1e-9 {
			t.Errorf("arm centred on %v, want (1, 1)", mid)
		}
	}
}
