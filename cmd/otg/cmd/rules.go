package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGAL/internal/config"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/pcb"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/units"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [file]",
		Short: "Validate design rules",
		Long: `Checks the net classes and board minimums of a settings file (.toml) or a
KiCad board (.kicad_pcb). Without a file the --config settings are checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			var (
				ds  *pcb.DesignSettings
				err error
			)
			switch {
			case len(args) == 0:
				ds, err = cfg.DesignSettings()
			case strings.HasSuffix(args[0], ".kicad_pcb"):
				var board *pcb.Board
				if board, err = loadBoard(ctx, args[0]); err == nil {
					ds = board.Settings
				}
			default:
				var file *config.Config
				if file, err = config.Load(args[0]); err == nil {
					ds, err = file.DesignSettings()
				}
			}
			if err != nil {
				return err
			}

			u := cfg.DisplayUnit()
			w := cmd.OutOrStdout()
			printTitle(w, "Net classes")
			fmt.Fprintf(w, "%-12s %10s %10s %10s %10s %10s %10s\n",
				"Name", "Clearance", "Track", "Via", "Drill", "uVia", "uDrill")
			for _, nc := range ds.NetClasses() {
				fmt.Fprintf(w, "%-12s %10s %10s %10s %10s %10s %10s\n", nc.Name,
					units.FormatLength(nc.Clearance, u), units.FormatLength(nc.TrackWidth, u),
					units.FormatLength(nc.ViaDiameter, u), units.FormatLength(nc.ViaDrill, u),
					units.FormatLength(nc.MicroViaDiameter, u), units.FormatLength(nc.MicroViaDrill, u))
			}
			fmt.Fprintln(w)

			verr := ds.Validate()
			if verr == nil {
				printOK(w, "design rules are consistent")
				return nil
			}
			var joined interface{ Unwrap() []error }
			if errors.As(verr, &joined) {
				for _, e := range joined.Unwrap() {
					printFail(w, e.Error())
				}
			} else {
				printFail(w, verr.Error())
			}
			return fmt.Errorf("design rules are inconsistent")
		},
	}
	return cmd
}
