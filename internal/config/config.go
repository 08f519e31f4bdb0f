// Package config loads viewer and design-rule settings from a TOML file.
// Lengths are strings such as "0.25mm" or "10mil" and are parsed with the
// units package.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/gal"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/pcb"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/units"
)

// Config is the file layout.
type Config struct {
	View       View       `toml:"view"`
	Grid       Grid       `toml:"grid"`
	Design     Design     `toml:"design"`
	NetClasses []NetClass `toml:"netclass"`
}

// View holds the initial viewport.
type View struct {
	Width  int       `toml:"width"`
	Height int       `toml:"height"`
	DPI    float64   `toml:"dpi"`
	Zoom   float64   `toml:"zoom"`
	LookAt [2]string `toml:"look_at"`
	FlipX  bool      `toml:"flip_x"`
	FlipY  bool      `toml:"flip_y"`
	Units  string    `toml:"units"`
}

// Grid holds the grid appearance.
type Grid struct {
	Visible   bool       `toml:"visible"`
	Style     string     `toml:"style"`
	Size      string     `toml:"size"`
	Coarse    int        `toml:"coarse"`
	Origin    [2]string  `toml:"origin"`
	Color     [4]float64 `toml:"color"`
	Threshold float64    `toml:"threshold"`
	LineWidth float64    `toml:"line_width"`
}

// Design holds the board-wide minimums.
type Design struct {
	TrackMinWidth    string `toml:"track_min_width"`
	ViaMinSize       string `toml:"via_min_size"`
	ViaMinDrill      string `toml:"via_min_drill"`
	MicroViaMinSize  string `toml:"microvia_min_size"`
	MicroViaMinDrill string `toml:"microvia_min_drill"`
}

// NetClass is one [[netclass]] table. Empty lengths inherit the default
// class.
type NetClass struct {
	Name             string `toml:"name"`
	Clearance        string `toml:"clearance,omitempty"`
	TrackWidth       string `toml:"track_width,omitempty"`
	ViaDiameter      string `toml:"via_diameter,omitempty"`
	ViaDrill         string `toml:"via_drill,omitempty"`
	MicroViaDiameter string `toml:"microvia_diameter,omitempty"`
	MicroViaDrill    string `toml:"microvia_drill,omitempty"`
	Nets             []int  `toml:"nets,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		View: View{
			Width:  1280,
			Height: 800,
			DPI:    gal.DefaultScreenDPI,
			Zoom:   1,
			LookAt: [2]string{"0", "0"},
			Units:  "mm",
		},
		Grid: Grid{
			Visible:   true,
			Style:     gal.GridLines.String(),
			Size:      "1.27mm",
			Coarse:    gal.DefaultCoarseGrid,
			Origin:    [2]string{"0", "0"},
			Color:     [4]float64{gal.ColorGridDefault.R, gal.ColorGridDefault.G, gal.ColorGridDefault.B, gal.ColorGridDefault.A},
			Threshold: gal.DefaultGridDrawThreshold,
			LineWidth: gal.DefaultGridLineWidth,
		},
		Design: Design{
			TrackMinWidth:    "0.2mm",
			ViaMinSize:       "0.4mm",
			ViaMinDrill:      "0.3mm",
			MicroViaMinSize:  "0.2mm",
			MicroViaMinDrill: "0.1mm",
		},
	}
}

// Load reads path on top of the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r on top of the defaults. Unknown keys are errors.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate parses every value without applying it and reports all problems.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.gridSize(); err != nil {
		errs = append(errs, err)
	}
	if _, err := gal.ParseGridStyle(c.Grid.Style); err != nil {
		errs = append(errs, fmt.Errorf("grid.style: %w", err))
	}
	if _, err := point("grid.origin", c.Grid.Origin); err != nil {
		errs = append(errs, err)
	}
	if c.Grid.Threshold < gal.MinGridDrawThreshold {
		errs = append(errs, fmt.Errorf("grid.threshold: %g px is below %g px", c.Grid.Threshold, gal.MinGridDrawThreshold))
	}
	if _, err := point("view.look_at", c.View.LookAt); err != nil {
		errs = append(errs, err)
	}
	if _, err := units.ParseUnit(c.View.Units); err != nil {
		errs = append(errs, fmt.Errorf("view.units: %w", err))
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		errs = append(errs, fmt.Errorf("view: screen size %dx%d must be positive", c.View.Width, c.View.Height))
	}
	if _, err := c.DesignSettings(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DisplayUnit returns the unit lengths are shown in.
func (c *Config) DisplayUnit() units.Unit {
	u, _ := units.ParseUnit(c.View.Units)
	return u
}

// ApplyView configures g from the [view] and [grid] tables and recomputes
// its matrices.
func (c *Config) ApplyView(g *gal.GAL) error {
	size, err := c.gridSize()
	if err != nil {
		return err
	}
	style, err := gal.ParseGridStyle(c.Grid.Style)
	if err != nil {
		return fmt.Errorf("grid.style: %w", err)
	}
	origin, err := point("grid.origin", c.Grid.Origin)
	if err != nil {
		return err
	}
	lookAt, err := point("view.look_at", c.View.LookAt)
	if err != nil {
		return err
	}

	g.SetScreenSize(geom.Vector2D{X: float64(c.View.Width), Y: float64(c.View.Height)})
	g.SetScreenDPI(c.View.DPI)
	g.SetZoomFactor(c.View.Zoom)
	g.SetLookAtPoint(lookAt)
	g.SetFlip(c.View.FlipX, c.View.FlipY)

	g.SetGridVisibility(c.Grid.Visible)
	g.SetGridStyle(style)
	g.SetGridSize(size)
	g.SetCoarseGrid(c.Grid.Coarse)
	g.SetGridOrigin(origin)
	g.SetGridColor(gal.Color4D{R: c.Grid.Color[0], G: c.Grid.Color[1], B: c.Grid.Color[2], A: c.Grid.Color[3]})
	g.SetGridDrawThreshold(c.Grid.Threshold)
	g.SetGridLineWidth(c.Grid.LineWidth)

	g.ComputeWorldScreenMatrix()
	return nil
}

// DesignSettings builds board design settings from [design] and the
// [[netclass]] tables.
func (c *Config) DesignSettings() (*pcb.DesignSettings, error) {
	ds := pcb.NewDesignSettings()

	mins := []struct {
		field string
		value string
		dst   *float64
	}{
		{"design.track_min_width", c.Design.TrackMinWidth, &ds.TrackMinWidth},
		{"design.via_min_size", c.Design.ViaMinSize, &ds.ViaMinSize},
		{"design.via_min_drill", c.Design.ViaMinDrill, &ds.ViaMinDrill},
		{"design.microvia_min_size", c.Design.MicroViaMinSize, &ds.MicroViaMinSize},
		{"design.microvia_min_drill", c.Design.MicroViaMinDrill, &ds.MicroViaMinDrill},
	}
	for _, m := range mins {
		if err := length(m.field, m.value, m.dst); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool)
	for i, in := range c.NetClasses {
		if in.Name == "" {
			return nil, fmt.Errorf("netclass[%d]: missing name", i)
		}
		if seen[in.Name] {
			return nil, fmt.Errorf("netclass[%d]: duplicate name %q", i, in.Name)
		}
		seen[in.Name] = true

		nc := pcb.DefaultNetClass()
		nc.Name = in.Name
		fields := []struct {
			key   string
			value string
			dst   *float64
		}{
			{"clearance", in.Clearance, &nc.Clearance},
			{"track_width", in.TrackWidth, &nc.TrackWidth},
			{"via_diameter", in.ViaDiameter, &nc.ViaDiameter},
			{"via_drill", in.ViaDrill, &nc.ViaDrill},
			{"microvia_diameter", in.MicroViaDiameter, &nc.MicroViaDiameter},
			{"microvia_drill", in.MicroViaDrill, &nc.MicroViaDrill},
		}
		for _, f := range fields {
			if f.value == "" {
				continue
			}
			if err := length(fmt.Sprintf("netclass %s.%s", in.Name, f.key), f.value, f.dst); err != nil {
				return nil, err
			}
		}
		ds.SetNetClass(nc)

		nets := append([]int(nil), in.Nets...)
		sort.Ints(nets)
		for _, code := range nets {
			if err := ds.AssignNet(code, nc.Name); err != nil {
				return nil, fmt.Errorf("netclass %s: %w", in.Name, err)
			}
		}
	}
	return ds, nil
}

func (c *Config) gridSize() (geom.Vector2D, error) {
	size, err := units.ParseGrid(c.Grid.Size)
	if err != nil {
		return geom.Vector2D{}, fmt.Errorf("grid.size: %w", err)
	}
	return size, nil
}

func length(field, value string, dst *float64) error {
	v, err := units.ParseLength(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if v < 0 {
		return fmt.Errorf("%s: length %q is negative", field, value)
	}
	*dst = v
	return nil
}

func point(field string, xy [2]string) (geom.Vector2D, error) {
	x, err := units.ParseLength(xy[0])
	if err != nil {
		return geom.Vector2D{}, fmt.Errorf("%s: %w", field, err)
	}
	y, err := units.ParseLength(xy[1])
	if err != nil {
		return geom.Vector2D{}, fmt.Errorf("%s: %w", field, err)
	}
	return geom.Vector2D{X: x, Y: y}, nil
}
