package cmd

import (
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as TOML",
		Long: `Prints the built-in defaults merged with the --config file. The output is
a valid settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return configFromContext(cmd.Context()).Encode(cmd.OutOrStdout())
		},
	}
}
