// Command taskmapper reads an architecture/task/optimization
// description, runs the configured optimization method, and prints a
// summary of the best mapping found.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("taskmapper", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts cliOptions

	cmd := &cobra.Command{
		Use:           "taskmapper [input-file]",
		Short:         "Map static task graphs and Kahn process networks onto heterogeneous architectures",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Println("taskmapper version", version)
				return nil
			}
			if opts.listHeuristics {
				for _, name := range moveHeuristicNames() {
					fmt.Println(name)
				}
				return nil
			}

			var inputPath string
			if len(args) == 1 {
				inputPath = args[0]
			}
			return run(opts, inputPath)
		},
	}

	registerFlags(cmd, &opts)
	return cmd
}

const version = "1.0.0"
