package main

import "github.com/spf13/cobra"

// cliOptions mirrors the original flag surface: -a, -f, -i, -l, -m,
// -o, -p, --find-maximum, -v, plus the positional input file that
// RunE pulls from args.
type cliOptions struct {
	arbPolicy      string
	fastPremapping bool
	icPriorities   string
	listHeuristics bool
	mappingHeur    string
	output         string
	parameters     []string
	findMaximum    bool
	version        bool
	monitorAddr    string
}

func registerFlags(cmd *cobra.Command, o *cliOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&o.arbPolicy, "arb-policy", "a", "", "override IC arbitration policy (fifo, lifo, random, priority)")
	flags.BoolVarP(&o.fastPremapping, "fast-premapping", "f", false, "apply fast pre-mapping before optimization")
	flags.StringVarP(&o.icPriorities, "ic-priorities", "i", "", "per-PE IC priorities as a digit string, e.g. 010")
	flags.BoolVarP(&o.listHeuristics, "list-mapping-heuristics", "l", false, "list supported mapping heuristics and exit")
	flags.StringVarP(&o.mappingHeur, "mapping-heuristics", "m", "", "override the simulated-annealing move heuristic")
	flags.StringVarP(&o.output, "output", "o", "", "write per-evaluation (objective, time) trace to file")
	flags.StringArrayVarP(&o.parameters, "parameter", "p", nil, "append a name=value optimization parameter override")
	flags.BoolVar(&o.findMaximum, "find-maximum", false, "maximize the objective function instead of minimizing it")
	flags.BoolVarP(&o.version, "version", "v", false, "print program version")
	flags.StringVar(&o.monitorAddr, "monitor-addr", "", "serve live status/metrics on this address while optimizing (optional)")
}
