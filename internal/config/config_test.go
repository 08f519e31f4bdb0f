package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/gal"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
)

const sample = `
[view]
width = 800
height = 600
dpi = 25.4
zoom = 2.0
look_at = ["10mm", "-5mm"]
flip_x = true
units = "mil"

[grid]
style = "dots"
size = "50mil x 25mil"
coarse = 5
origin = ["1mm", "2mm"]
color = [1.0, 0.0, 0.0, 0.5]
threshold = 4

[design]
track_min_width = "6mil"

[[netclass]]
name = "Power"
clearance = "0.3mm"
track_width = "20mil"
nets = [3, 1]

[[netclass]]
name = "Default"
via_drill = "0.35mm"
`

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if cfg.View.Width != 800 || cfg.View.Zoom != 2 || !cfg.View.FlipX {
		t.Errorf("view = %+v", cfg.View)
	}
	if cfg.Grid.LineWidth != gal.DefaultGridLineWidth {
		t.Errorf("unset line_width = %v, want default", cfg.Grid.LineWidth)
	}
	if !cfg.Grid.Visible {
		t.Error("unset grid.visible lost its default")
	}
	if cfg.Design.ViaMinSize != "0.4mm" {
		t.Errorf("unset via_min_size = %q", cfg.Design.ViaMinSize)
	}
	if len(cfg.NetClasses) != 2 {
		t.Fatalf("got %d net classes, want 2", len(cfg.NetClasses))
	}
}

func TestApplyView(t *testing.T) {
	cfg, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	g := gal.New()
	if err := cfg.ApplyView(g); err != nil {
		t.Fatalf("ApplyView() error: %v", err)
	}

	if g.ScreenSize() != (geom.Vector2D{X: 800, Y: 600}) {
		t.Errorf("ScreenSize() = %v", g.ScreenSize())
	}
	// 25.4 dpi makes one world mm one pixel before zoom.
	if math.Abs(g.WorldScale()-2) > 1e-9 {
		t.Errorf("WorldScale() = %v, want 2", g.WorldScale())
	}
	if g.LookAtPoint() != (geom.Vector2D{X: 10, Y: -5}) {
		t.Errorf("LookAtPoint() = %v", g.LookAtPoint())
	}
	if fx, fy := g.Flip(); !fx || fy {
		t.Errorf("Flip() = %v, %v", fx, fy)
	}
	if g.GridStyle() != gal.GridDots || g.CoarseGrid() != 5 {
		t.Errorf("grid style/coarse = %v/%d", g.GridStyle(), g.CoarseGrid())
	}
	if !g.GridSize().ApproxEqual(geom.Vector2D{X: 1.27, Y: 0.635}, 1e-9) {
		t.Errorf("GridSize() = %v", g.GridSize())
	}
	if g.GridOrigin() != (geom.Vector2D{X: 1, Y: 2}) {
		t.Errorf("GridOrigin() = %v", g.GridOrigin())
	}
	if g.GridColor() != (gal.Color4D{R: 1, A: 0.5}) {
		t.Errorf("GridColor() = %v", g.GridColor())
	}
	if g.GridDrawThreshold() != 4 {
		t.Errorf("GridDrawThreshold() = %v", g.GridDrawThreshold())
	}

	// The look-at point lands in the screen centre.
	if c := g.ToScreen(g.LookAtPoint()); !c.ApproxEqual(geom.Vector2D{X: 400, Y: 300}, 1e-9) {
		t.Errorf("ToScreen(lookAt) = %v", c)
	}
}

func TestDesignSettings(t *testing.T) {
	cfg, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	ds, err := cfg.DesignSettings()
	if err != nil {
		t.Fatalf("DesignSettings() error: %v", err)
	}

	if math.Abs(ds.TrackMinWidth-0.1524) > 1e-9 {
		t.Errorf("TrackMinWidth = %v, want 0.1524", ds.TrackMinWidth)
	}
	power := ds.NetClassFor(3)
	if power.Name != "Power" || power.Clearance != 0.3 || math.Abs(power.TrackWidth-0.508) > 1e-9 {
		t.Errorf("NetClassFor(3) = %+v", power)
	}
	if power.ViaDrill != 0.4 {
		t.Errorf("unset via_drill = %v, want inherited 0.4", power.ViaDrill)
	}
	if ds.NetClassFor(1).Name != "Power" {
		t.Errorf("net 1 not in Power")
	}
	if def := ds.NetClassFor(2); def.Name != "Default" || def.ViaDrill != 0.35 {
		t.Errorf("NetClassFor(2) = %+v", def)
	}
	if err := ds.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"syntax", "[view\nwidth=1", "failed to decode config"},
		{"unknown key", "[grid]\nspacing = 1", "unknown config keys: grid.spacing"},
		{"bad grid size", "[grid]\nsize = \"1 parsec\"", "grid.size"},
		{"bad style", "[grid]\nstyle = \"hatched\"", "grid.style"},
		{"sub-pixel threshold", "[grid]\nthreshold = 0", "grid.threshold"},
		{"bad length", "[design]\nvia_min_drill = \"abc\"", "design.via_min_drill"},
		{"negative length", "[design]\nvia_min_drill = \"-1mm\"", "is negative"},
		{"bad unit", "[view]\nunits = \"cubits\"", "view.units"},
		{"bad screen", "[view]\nwidth = 0", "must be positive"},
		{"unnamed class", "[[netclass]]\nclearance = \"1mm\"", "missing name"},
		{"duplicate class", "[[netclass]]\nname = \"A\"\n[[netclass]]\nname = \"A\"", "duplicate name"},
		{"bad class length", "[[netclass]]\nname = \"A\"\nvia_drill = \"x\"", "netclass A.via_drill"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Decode() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Decode() error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadAndEncode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otg.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode()) error: %v\n%s", err, buf.String())
	}
	if again.Grid.Size != cfg.Grid.Size || len(again.NetClasses) != 2 || again.View.Units != "mil" {
		t.Errorf("re-decoded config differs: %+v", again)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.DisplayUnit().String() != "mm" {
		t.Errorf("DisplayUnit() = %v", cfg.DisplayUnit())
	}
}
