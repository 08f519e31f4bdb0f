// Package cmd implements the otg command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceGAL/internal/config"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/pcb"
)

const version = "0.1.0"

// Execute runs the otg command tree.
func Execute() error {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("error: ")+err.Error())
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "otg",
		Short: "OpenTraceGAL - viewport, grid and copper topology tools",
		Long: `otg exercises the graphics abstraction layer and the board topology engine:
  - viewport transforms and grid snapping
  - adaptive grid rendering
  - track list, net runs and clearance polygons of KiCad boards

Examples:
  otg grid --zoom 4                 # Grid primitives at 4x zoom
  otg snap 412 288                  # Snap a screen point to the grid
  otg tracks board.kicad_pcb        # Net runs and end segments
  otg view board.kicad_pcb          # Interactive viewer`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			ctx := withLogger(cmd.Context(), logger)

			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
				logger.Debug("loaded config", "path", configPath)
			}
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (TOML)")

	root.AddCommand(newGridCmd())
	root.AddCommand(newSnapCmd())
	root.AddCommand(newTracksCmd())
	root.AddCommand(newClearanceCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newViewCmd())

	return root
}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// loadBoard parses a board file and logs its summary.
func loadBoard(ctx context.Context, path string) (*pcb.Board, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	board, err := pcb.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing board: %w", err)
	}
	prog.done("parsed board", "path", path, "summary", board.Summary())
	return board, nil
}
