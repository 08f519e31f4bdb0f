package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/pcb"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/units"
)

func newClearanceCmd() *cobra.Command {
	var (
		layerName string
		exclude   string
		clearance string
		segments  int
		list      bool
	)

	cmd := &cobra.Command{
		Use:   "clearance <board_file>",
		Short: "Build the clearance polygons of a copper layer",
		Long: `Inflates every track and via on a layer by its clearance and prints the
resulting keep-out outlines, as a copper pour on that layer would subtract
them. Without --clearance each net class supplies its own value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			board, err := loadBoard(ctx, args[0])
			if err != nil {
				return err
			}

			layer, err := pcb.LayerByName(layerName)
			if err != nil {
				return err
			}
			excludeNet := -1
			if exclude != "" {
				n, ok := board.NetByName(exclude)
				if !ok {
					return fmt.Errorf("net '%s' not found", exclude)
				}
				excludeNet = n.Code
			}
			c := -1.0
			if clearance != "" {
				if c, err = units.ParseLength(clearance); err != nil {
					return err
				}
			}
			if segments < pcb.MinSegmentsPerCircle {
				logger.Warn("raising segments per circle", "requested", segments, "min", pcb.MinSegmentsPerCircle)
			}

			prog := newProgress(logger)
			buf := board.ClearancePolygons(layer, excludeNet, c, segments)
			contours := geom.Contours(buf)
			prog.done("built clearance polygons", "layer", layer, "contours", len(contours))

			u := configFromContext(ctx).DisplayUnit()
			w := cmd.OutOrStdout()
			printTitle(w, "Clearance on %s", layer)
			printField(w, "Contours", styleNumber.Render(fmt.Sprint(len(contours))))
			printField(w, "Corners", styleNumber.Render(fmt.Sprint(len(buf))))
			printField(w, "Correction", fmt.Sprintf("%.6f", pcb.CorrectionFactor(segments)))

			bb := geom.NewBoundingBox()
			for _, p := range buf {
				bb.Expand(p.Vector())
			}
			if !bb.IsEmpty() {
				printField(w, "Extent", fmt.Sprintf("%s x %s",
					units.FormatLength(bb.Width(), u), units.FormatLength(bb.Height(), u)))
			}

			if list {
				for i, contour := range contours {
					fmt.Fprintf(w, "\ncontour %d (%d corners)\n", i, len(contour))
					for _, p := range contour {
						fmt.Fprintf(w, "  %s %s\n", units.FormatLength(p.X, u), units.FormatLength(p.Y, u))
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&layerName, "layer", "L", "F.Cu", "copper layer")
	cmd.Flags().StringVarP(&exclude, "exclude-net", "x", "", "net whose copper is not an obstacle")
	cmd.Flags().StringVar(&clearance, "clearance", "", "fixed clearance (default: per net class)")
	cmd.Flags().IntVarP(&segments, "segments", "s", 16, "segments per full circle")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "print every corner")
	return cmd
}
