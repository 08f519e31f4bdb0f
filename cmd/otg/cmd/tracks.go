package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/pcb"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/units"
)

func newTracksCmd() *cobra.Command {
	var (
		netName string
		list    bool
	)

	cmd := &cobra.Command{
		Use:   "tracks <board_file>",
		Short: "Show net runs and their end segments",
		Long: `Loads a KiCad board and walks its track list net by net. For every net it
prints the segment count, routed length and the two free ends of the run when
it forms an open path.

With --net only that net is shown; --list also prints every segment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			board, err := loadBoard(ctx, args[0])
			if err != nil {
				return err
			}

			codes := board.Tracks.NetCodes()
			if netName != "" {
				n, ok := board.NetByName(netName)
				if !ok {
					return fmt.Errorf("net '%s' not found", netName)
				}
				codes = []int{n.Code}
			}

			u := configFromContext(ctx).DisplayUnit()
			w := cmd.OutOrStdout()
			printTitle(w, "Board: %s", board.Summary())
			if board.Tracks.IsSorted() {
				printOK(w, "track list sorted by net code")
			} else {
				printFail(w, "track list is not sorted by net code")
			}
			fmt.Fprintln(w)

			fmt.Fprintf(w, "%-24s %-8s %6s %4s %12s  %s\n", "Net", "Class", "Tracks", "Vias", "Length", "Ends")
			fmt.Fprintln(w, styleDim.Render("──────────────────────────────────────────────────────────────────────────────"))
			for _, code := range codes {
				info := board.NetInfo(code)
				first, count := board.Tracks.NetRun(code)
				name := info.Name
				if name == "" {
					name = fmt.Sprintf("<net %d>", code)
				}
				ends := "-"
				if info.Tracks > 0 {
					ends = describeEnds(board.Tracks, first, count, u)
				}
				fmt.Fprintf(w, "%-24s %-8s %6d %4d %12s  %s\n",
					name, info.Class, info.Tracks, info.Vias,
					units.FormatLength(info.Length, u), ends)

				if list {
					for _, seg := range board.Tracks.Range(first, lastOf(board.Tracks, first, count)) {
						fmt.Fprintf(w, "    %s\n", styleDim.Render(describeSegment(seg, board.Settings, u)))
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&netName, "net", "n", "", "only show this net")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list every segment of each net")
	return cmd
}

// lastOf returns the id count-1 steps after first.
func lastOf(l *pcb.TrackList, first pcb.SegmentID, count int) pcb.SegmentID {
	id := first
	for range count - 1 {
		id = l.Next(id)
	}
	return id
}

// describeEnds reports the free ends of a net run. A run with fewer than two
// free ends is a closed loop or a path ending in a loop.
func describeEnds(l *pcb.TrackList, first pcb.SegmentID, count int, u units.Unit) string {
	if count == 0 {
		return "-"
	}
	start, end, ok := l.EndSegments(first, count)
	if !ok {
		if l.FreeEnds(first, count) == 1 {
			return styleWarning.Render("looped, 1 free end")
		}
		return styleWarning.Render("closed loop")
	}
	a, b := l.Get(start).Start, l.Get(end).End
	ends := fmt.Sprintf("(%s, %s) → (%s, %s)",
		units.FormatLength(a.X, u), units.FormatLength(a.Y, u),
		units.FormatLength(b.X, u), units.FormatLength(b.Y, u))
	if n := l.FreeEnds(first, count); n > 2 {
		ends += " " + styleWarning.Render(fmt.Sprintf("branched, %d free ends", n))
	}
	return ends
}

func describeSegment(s *pcb.Segment, src pcb.NetClassSource, u units.Unit) string {
	if s.IsVia() {
		top, bottom := s.LayerPair()
		drill := units.FormatLength(s.DrillValue(src), u)
		if s.IsDrillDefault() {
			drill += " (default)"
		}
		return fmt.Sprintf("%s via %s/%s at (%s, %s) dia %s drill %s",
			s.ViaType, top, bottom,
			units.FormatLength(s.Start.X, u), units.FormatLength(s.Start.Y, u),
			units.FormatLength(s.Width, u), drill)
	}
	return fmt.Sprintf("track %s (%s, %s)-(%s, %s) width %s",
		s.Layer,
		units.FormatLength(s.Start.X, u), units.FormatLength(s.Start.Y, u),
		units.FormatLength(s.End.X, u), units.FormatLength(s.End.Y, u),
		units.FormatLength(s.Width, u))
}
