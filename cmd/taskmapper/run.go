package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"

	"github.com/sarchlab/dcsmapper/anneal"
	"github.com/sarchlab/dcsmapper/input"
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/monitor"
	"github.com/sarchlab/dcsmapper/orchestrator"
	"github.com/sarchlab/dcsmapper/resultio"
)

func moveHeuristicNames() []string {
	names := make([]string, 0, len(anneal.Moves))
	for name := range anneal.Moves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func run(opts cliOptions, inputPath string) error {
	r, closeFn, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	arch, app, cfg, overrides, err := input.Parse(r)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	m := model.NewMapping(arch, app, 0)
	for _, o := range overrides {
		m.Assignments[o.TaskID] = o.PE
		m.IsStatic[o.TaskID] = o.Static
	}
	m.Maximize = opts.findMaximum
	m.Result.TraceEnabled = opts.output != ""

	if err := applyCLIOverrides(opts, arch, m, cfg); err != nil {
		return err
	}

	var mon *monitor.Server
	if opts.monitorAddr != "" {
		mon = monitor.New()
		ch := make(chan orchestrator.Progress, 64)
		cfg.Progress = ch
		go mon.Watch(ch)
		go func() {
			slog.Info("monitor", "addr", opts.monitorAddr)
			if err := http.ListenAndServe(opts.monitorAddr, mon.Handler()); err != nil {
				slog.Warn("monitor", "err", err)
			}
		}()
		defer close(ch)
	}

	before := append([]int(nil), m.Assignments...)

	orchestrator.Run(*cfg, m)

	if mon != nil {
		mon.Finish(m.Result.RunID, m.Result.InitialObjective, m.Result.BestObjective, m.Result.Evals, m.Result.OptimumIteration)
	}

	if opts.output != "" {
		if err := resultio.WriteTrace(opts.output, m.Result); err != nil {
			return err
		}
	}

	resultio.PrintSummary(os.Stdout, m, before, cfg.Objective.Kind.String(), string(cfg.Method))
	return nil
}

func openInput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
