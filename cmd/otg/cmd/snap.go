package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/units"
)

func newSnapCmd() *cobra.Command {
	var (
		flags viewFlags
		world bool
	)

	cmd := &cobra.Command{
		Use:   "snap <x> <y>",
		Short: "Snap a point to the grid",
		Long: `Converts a screen point (pixels) to world space, rounds it to the nearest grid
node and prints the result in both spaces.

With --world the point is a world position given as lengths, e.g.
  otg snap --world 12.3mm 400mil`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			g, err := flags.newGAL(cmd, cfg)
			if err != nil {
				return err
			}

			var screen geom.Vector2D
			if world {
				x, err := units.ParseLength(args[0])
				if err != nil {
					return err
				}
				y, err := units.ParseLength(args[1])
				if err != nil {
					return err
				}
				screen = g.ToScreen(geom.Vector2D{X: x, Y: y})
			} else {
				x, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid x %q: %w", args[0], err)
				}
				y, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("invalid y %q: %w", args[1], err)
				}
				screen = geom.Vector2D{X: x, Y: y}
			}

			snapped := g.GetGridPoint(screen)
			u := cfg.DisplayUnit()
			w := cmd.OutOrStdout()
			pos := g.ToWorld(snapped)
			printField(w, "Grid", units.FormatGrid(g.GridSize(), u))
			printField(w, "Screen", fmt.Sprintf("(%.2f, %.2f)", snapped.X, snapped.Y))
			printField(w, "World", fmt.Sprintf("(%s, %s)",
				units.FormatLength(pos.X, u), units.FormatLength(pos.Y, u)))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&world, "world", false, "arguments are world lengths instead of pixels")
	return cmd
}
