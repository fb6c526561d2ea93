// Command ramlog inspects raw memory images of the firmware RAM log,
// as captured from a target with a debugger (e.g. gdb's
// "dump binary memory").
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ACIDBURN2501/embedded-log/internal/cli"
	"github.com/ACIDBURN2501/embedded-log/internal/config"
)

var version = "dev"

// logger is enabled by --verbose; commands log diagnostics through it.
var logger = zap.NewNop()

func main() {
	if err := execute(); err != nil {
		cli.FormatError(os.Stderr, err, false)
		os.Exit(cli.ExitCode(err))
	}
}

func execute() error {
	cfg := config.Load()

	var verbose bool
	root := &cobra.Command{
		Use:     "ramlog",
		Short:   "Inspect RAM log images dumped from embedded targets",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				if l, err := zap.NewDevelopment(); err == nil {
					logger = l
				}
			}
		},
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable diagnostic logging")

	root.AddCommand(newInspectCmd(cfg))
	root.AddCommand(newDumpCmd(cfg))
	root.AddCommand(newExportCmd(cfg))
	root.AddCommand(newViewCmd(cfg))
	root.AddCommand(newUploadCmd(cfg))
	root.AddCommand(newSelftestCmd())
	return root.Execute()
}
