// Package anneal implements simulated annealing over Mapping search
// states: the acceptance-probability families, the autotemp derivation
// of the initial/final temperature, the geometric cooling schedule, and
// the two-pass level-mode driver used to curate a temperature list
// before the real search run.
package anneal

import (
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
	"github.com/sarchlab/dcsmapper/taskerr"
)

// Config parameterizes one annealing run. Every field is set by the
// caller (the orchestrator); Autotemp and a prior objective evaluation
// supply T0/Tf/AcceptorParam1/RefE when autotemp is requested.
type Config struct {
	Objective objective.Config
	Move      MoveFunc

	Acceptor           AcceptorKind
	AcceptorParam1     float64
	ZeroTransitionProb float64

	T0            float64
	Tf            float64
	ScheduleAlpha float64 // geometric cooling ratio, 0 < alpha < 1

	MaxRejects  int
	ScheduleMax int

	// MaxPEs temporarily caps the architecture to this many PEs around
	// every move, restoring the real count before evaluating. Zero
	// means unlimited (use every PE).
	MaxPEs int

	// Greedy restores the search state to the best-known mapping at
	// every temperature transition instead of continuing from wherever
	// the last accepted move left it.
	Greedy bool

	// RefE records a reference objective; Run does not read it, so it
	// has no effect on the search itself. The orchestrator sets it to
	// the initial objective value.
	RefE float64

	LevelOptimization bool

	// OnStep, if set, is called once per temperature-schedule
	// transition with the evaluation count and current temperature and
	// best objective so far. It has no effect on the search itself;
	// monitor wires it to publish orchestrator.Progress snapshots.
	OnStep func(evals int, temperature, best float64)
}

const moveRingCapacity = 20

// Run anneals m in place: starting from m's current assignment, it
// searches for the best mapping found during the run and leaves m set
// to that mapping. It reports the best objective value found.
//
// Level-mode (Config.LevelOptimization) runs two passes internally: a
// restricted first pass over a scratch copy to harvest a curated
// temperature list, then the real second pass over m using that list
// in place of the geometric schedule. See level.go.
func Run(m *model.Mapping, cfg Config) float64 {
	if cfg.LevelOptimization {
		return runLevelMode(m, cfg)
	}
	return runPass(m, cfg, nil, nil)
}

// runPass executes one full simulated-annealing search starting from
// m's current assignment, mutating m into the best mapping found and
// returning its objective value.
//
// If record is non-nil, a (T, E_best) sample is appended to *record at
// every temperature-level transition this pass would otherwise take —
// this is pass 1 of level mode, harvesting samples rather than
// following a fixed schedule.
//
// If replay is non-nil, T is taken from replay[level] at every
// transition instead of the geometric schedule, and the run ends once
// replay is exhausted — this is pass 2 of level mode.
func runPass(m *model.Mapping, cfg Config, record *[]levelSample, replay []levelSample) float64 {
	if cfg.T0 <= 0 || cfg.Tf <= 0 {
		panic(taskerr.New(taskerr.Invariant, "anneal.Run: T0 and Tf must be positive, got T0=%v Tf=%v", cfg.T0, cfg.Tf))
	}
	if cfg.MaxRejects < 1 || cfg.ScheduleMax < 1 {
		panic(taskerr.New(taskerr.Invariant, "anneal.Run: max_rejects and schedule_max must be positive"))
	}

	npes := m.NPEs()
	T := cfg.T0

	E := objective.Evaluate(m, cfg.Objective)
	EBest := E

	candidate := m.Fork()
	best := m.Fork()

	ring := objective.NewMoveRing(moveRingCapacity)

	k := 0
	rejects := 0
	level := 0
	levelRecorded := false

	for {
		if cfg.LevelOptimization {
			if !levelRecorded {
				if level >= len(replay) {
					break
				}
				T = replay[level].T
				level++
				levelRecorded = true
			}
		} else if !levelRecorded && record != nil {
			*record = append(*record, levelSample{T: T, objective: EBest})
			levelRecorded = true
		}

		if cfg.MaxPEs > 0 && cfg.MaxPEs < npes {
			candidate.MoveNPEsCap = cfg.MaxPEs
		}
		cfg.Move(candidate, m, T, ring)
		candidate.MoveNPEsCap = 0

		ENew := objective.Evaluate(candidate, cfg.Objective)
		ring.Record(E, ENew)

		diff := m.CostDiff(E, ENew)
		if diff < 0 || model.Default().Float01() < acceptProbability(cfg.Acceptor, diff, T, cfg.AcceptorParam1, cfg.ZeroTransitionProb) {
			candidate.CopyInto(m)
			E = ENew

			if m.CostDiff(EBest, ENew) < 0 {
				candidate.CopyInto(best)
				EBest = ENew
			}
			rejects = 0
		} else if T <= cfg.Tf {
			if rejects >= cfg.MaxRejects {
				break
			}
			rejects++
		}

		k++

		if k%cfg.ScheduleMax == 0 {
			if cfg.LevelOptimization && level == len(replay) {
				break
			}

			T *= cfg.ScheduleAlpha

			if cfg.Greedy {
				best.CopyInto(m)
				E = EBest
			}

			levelRecorded = false

			if cfg.OnStep != nil {
				cfg.OnStep(m.Result.Evals, T, EBest)
			}
		}
	}

	best.CopyInto(m)
	return EBest
}

type levelSample struct {
	T         float64
	objective float64
}
