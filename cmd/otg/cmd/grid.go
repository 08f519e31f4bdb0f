package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGAL/internal/config"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/gal"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/units"
)

// viewFlags override [view] and [grid] values from the command line.
type viewFlags struct {
	zoom  float64
	size  string
	style string
	flipX bool
	flipY bool
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.zoom, "zoom", 0, "zoom factor (overrides view.zoom)")
	cmd.Flags().StringVar(&f.size, "grid", "", `grid size, e.g. "1.27mm" or "50mil x 25mil"`)
	cmd.Flags().StringVar(&f.style, "style", "", "grid style: lines or dots")
	cmd.Flags().BoolVar(&f.flipX, "flip-x", false, "mirror the X axis")
	cmd.Flags().BoolVar(&f.flipY, "flip-y", false, "mirror the Y axis")
}

// newGAL builds a viewport from cfg with the flags applied on top.
func (f *viewFlags) newGAL(cmd *cobra.Command, cfg *config.Config) (*gal.GAL, error) {
	c := *cfg
	if f.zoom > 0 {
		c.View.Zoom = f.zoom
	}
	if f.size != "" {
		c.Grid.Size = f.size
	}
	if f.style != "" {
		c.Grid.Style = f.style
	}
	if cmd.Flags().Changed("flip-x") {
		c.View.FlipX = f.flipX
	}
	if cmd.Flags().Changed("flip-y") {
		c.View.FlipY = f.flipY
	}

	g := gal.New()
	if err := c.ApplyView(g); err != nil {
		return nil, err
	}
	return g, nil
}

func newGridCmd() *cobra.Command {
	var (
		flags viewFlags
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Render the grid for the configured viewport",
		Long: `Sets up the viewport from the settings file and flags, draws the grid into
an in-memory recorder and prints what was drawn.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			g, err := flags.newGAL(cmd, cfg)
			if err != nil {
				return err
			}

			rec := gal.NewRecorder()
			prog := newProgress(logger)
			n := g.DrawGrid(rec)
			prog.done("drew grid", "primitives", n)

			w := cmd.OutOrStdout()
			u := cfg.DisplayUnit()
			bounds := g.VisibleBounds()
			printTitle(w, "Grid")
			printField(w, "Style", g.GridStyle())
			printField(w, "Size", units.FormatGrid(g.GridSize(), u))
			printField(w, "Coarse", fmt.Sprintf("every %d", g.CoarseGrid()))
			printField(w, "Zoom", g.ZoomFactor())
			printField(w, "Scale", fmt.Sprintf("%.4f px/mm", g.WorldScale()))
			printField(w, "Visible", fmt.Sprintf("%s x %s",
				units.FormatLength(bounds.Width(), u), units.FormatLength(bounds.Height(), u)))
			printField(w, "Lines", styleNumber.Render(fmt.Sprint(rec.Count(gal.PrimitiveLine))))
			printField(w, "Dots", styleNumber.Render(fmt.Sprint(rec.Count(gal.PrimitiveRectangle))))
			printField(w, "Markers", styleNumber.Render(fmt.Sprint(rec.Count(gal.PrimitiveCircle))))

			if n == 0 && g.GridVisibility() {
				printWarn(w, "grid is below the draw threshold at this zoom")
			}
			if list {
				fmt.Fprintln(w)
				for _, p := range rec.Primitives {
					fmt.Fprintln(w, p)
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&list, "list", false, "print every primitive")
	return cmd
}
