// Command otg inspects viewport grids and board copper topology.
package main

import (
	"os"

	"github.com/OpenTraceLab/OpenTraceGAL/cmd/otg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
