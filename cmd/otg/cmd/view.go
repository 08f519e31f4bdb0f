package cmd

import (
	"fmt"
	"image"
	"os"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/gal"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/gal/giogal"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/pcb"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/render"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/units"
)

const (
	fitMargin  = 0.9
	cursorSize = 6.0
	zoomStep   = 1.25
)

// layerViews is the cycle of the L key.
var layerViews = []pcb.LayerMask{
	pcb.AllCopperLayers,
	pcb.LayerFront.Mask(),
	pcb.LayerBack.Mask(),
	pcb.AllCopperLayers &^ (pcb.LayerFront.Mask() | pcb.LayerBack.Mask()),
}

func newViewCmd() *cobra.Command {
	var (
		flags     viewFlags
		themeName string
	)

	cmd := &cobra.Command{
		Use:   "view <board_file>",
		Short: "View a board in an interactive window",
		Long: `Opens a board in a Gio window with the adaptive grid and a cursor that
snaps to it.

Controls:
  Drag            - Pan
  Scroll / + / -  - Zoom at the pointer
  F / Space       - Fit board to window
  G               - Toggle grid
  D               - Toggle lines/dots grid
  L               - Cycle visible layers
  H               - Highlight the net under the cursor
  T               - Cycle colour theme
  Q / Escape      - Quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			board, err := loadBoard(ctx, args[0])
			if err != nil {
				return err
			}
			g, err := flags.newGAL(cmd, cfg)
			if err != nil {
				return err
			}
			theme, err := render.ParseTheme(themeName)
			if err != nil {
				return err
			}

			v := newViewer(g, board, logger)
			v.unit = cfg.DisplayUnit()
			v.painter.Theme = theme
			v.title = "OpenTraceGAL - " + args[0]
			v.fit()

			go func() {
				w := new(app.Window)
				w.Option(app.Title(v.title))
				w.Option(app.Size(unit.Dp(float32(cfg.View.Width)), unit.Dp(float32(cfg.View.Height))))
				if err := v.run(w); err != nil {
					logger.Error("viewer failed", "err", err)
					os.Exit(1)
				}
				os.Exit(0)
			}()
			app.Main()
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&themeName, "theme", "classic", "colour theme: classic, kicad2020 or nord")
	return cmd
}

type viewer struct {
	gal     *gal.GAL
	board   *pcb.Board
	painter *render.Painter
	logger  *log.Logger
	unit    units.Unit
	title   string

	layerView int
	cursor    geom.Vector2D // snapped, world
	dragging  bool
	lastPos   f32.Point
}

func newViewer(g *gal.GAL, board *pcb.Board, logger *log.Logger) *viewer {
	return &viewer{
		gal:     g,
		board:   board,
		painter: render.NewPainter(),
		logger:  logger,
	}
}

func (v *viewer) fit() {
	v.gal.Fit(v.board.BoundingBox(), fitMargin)
}

func (v *viewer) run(w *app.Window) error {
	var ops op.Ops
	backend := giogal.New(&ops, v.gal)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			ops.Reset()
			gtx := app.NewContext(&ops, e)

			size := geom.Vector2D{X: float64(e.Size.X), Y: float64(e.Size.Y)}
			if size != v.gal.ScreenSize() {
				v.gal.SetScreenSize(size)
				v.gal.ComputeWorldScreenMatrix()
			}

			if v.handleKeys(gtx) {
				return nil
			}
			v.handlePointer(gtx, w)

			v.layout(gtx, backend)
			e.Frame(gtx.Ops)
		}
	}
}

func (v *viewer) layout(gtx layout.Context, backend *giogal.Backend) {
	paint.Fill(gtx.Ops, v.painter.Theme.Background().NRGBA())

	area := clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops)
	event.Op(gtx.Ops, v)
	area.Pop()

	backend.Reset(gtx.Ops)
	v.gal.DrawGrid(backend)
	v.painter.DrawBoard(backend, v.board)
	render.DrawCursor(backend, v.gal, v.cursor, cursorSize)
}

// handleKeys returns true when the window should close.
func (v *viewer) handleKeys(gtx layout.Context) bool {
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: key.NameEscape},
			key.Filter{Name: "Q"},
			key.Filter{Name: "F"},
			key.Filter{Name: key.NameSpace},
			key.Filter{Name: "G"},
			key.Filter{Name: "D"},
			key.Filter{Name: "L"},
			key.Filter{Name: "H"},
			key.Filter{Name: "T"},
			key.Filter{Name: "+", Optional: key.ModShift},
			key.Filter{Name: "-"},
		)
		if !ok {
			return false
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}

		switch ke.Name {
		case key.NameEscape, "Q":
			return true
		case "F", key.NameSpace:
			v.fit()
		case "G":
			v.gal.SetGridVisibility(!v.gal.GridVisibility())
		case "D":
			if v.gal.GridStyle() == gal.GridDots {
				v.gal.SetGridStyle(gal.GridLines)
			} else {
				v.gal.SetGridStyle(gal.GridDots)
			}
		case "L":
			v.layerView = (v.layerView + 1) % len(layerViews)
			v.painter.Visible = layerViews[v.layerView]
			v.logger.Debug("visible layers", "mask", v.painter.Visible)
		case "H":
			v.toggleHighlight()
		case "T":
			v.painter.Theme = (v.painter.Theme + 1) % (render.ThemeNord + 1)
			v.logger.Debug("theme", "name", v.painter.Theme)
		case "+":
			v.gal.ZoomAt(v.gal.ScreenSize().Scale(0.5), zoomStep)
		case "-":
			v.gal.ZoomAt(v.gal.ScreenSize().Scale(0.5), 1/zoomStep)
		}
	}
}

func (v *viewer) toggleHighlight() {
	id := v.board.Tracks.HitTest(v.cursor, v.painter.Visible)
	if id == pcb.NoSegment {
		v.painter.Highlight = render.NoHighlight
		return
	}
	net := v.board.Tracks.Get(id).NetCode
	if v.painter.Highlight == net {
		net = render.NoHighlight
	}
	v.painter.Highlight = net
	v.logger.Info("highlight", "net", v.board.NetName(net), "code", net)
}

func (v *viewer) handlePointer(gtx layout.Context, w *app.Window) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  v,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			return
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary {
				v.dragging = true
				v.lastPos = pe.Position
			}
		case pointer.Drag:
			if v.dragging {
				d := pe.Position.Sub(v.lastPos)
				v.gal.Pan(float64(d.X), float64(d.Y))
				v.lastPos = pe.Position
			}
		case pointer.Release:
			v.dragging = false
		case pointer.Scroll:
			factor := 1.0 - float64(pe.Scroll.Y)*0.01
			if factor > 0 {
				v.gal.ZoomAt(screenPoint(pe.Position), factor)
			}
		}
		v.moveCursor(pe.Position, w)
	}
}

// moveCursor snaps the pointer to the grid and shows the position in the
// window title.
func (v *viewer) moveCursor(pos f32.Point, w *app.Window) {
	snapped := v.gal.ToWorld(v.gal.GetGridPoint(screenPoint(pos)))
	if snapped == v.cursor {
		return
	}
	v.cursor = snapped
	w.Option(app.Title(fmt.Sprintf("%s  (%s, %s)", v.title,
		units.FormatLength(snapped.X, v.unit), units.FormatLength(snapped.Y, v.unit))))
	w.Invalidate()
}

func screenPoint(p f32.Point) geom.Vector2D {
	return geom.Vector2D{X: float64(p.X), Y: float64(p.Y)}
}
