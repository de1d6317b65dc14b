// Package objective evaluates a Mapping against a configured cost
// function and maintains the mapping-mutation primitives the search
// heuristics build on.
package objective

import (
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/simkpn"
	"github.com/sarchlab/dcsmapper/simstg"
	"github.com/sarchlab/dcsmapper/taskerr"
)

// Kind selects which cost function Evaluate computes from a completed
// schedule.
type Kind int

// The two objective functions this system supports.
const (
	ExecutionTime Kind = iota
	ExecutionTimePower
)

func (k Kind) String() string {
	switch k {
	case ExecutionTime:
		return "execution_time"
	case ExecutionTimePower:
		return "execution_time_power"
	default:
		return "unknown"
	}
}

// Config parameterizes Evaluate. EnergyK is the configured weight k in
// the time+energy objective; it is unused for ExecutionTime.
type Config struct {
	Kind    Kind
	EnergyK float64
}

// Evaluate replays m's application on m.Arch under m's current
// assignment, computes the configured objective from the resulting
// schedule, and records the evaluation on m.Result. It returns the
// objective value.
func Evaluate(m *model.Mapping, cfg Config) float64 {
	switch m.App.(type) {
	case *model.STGApp:
		simstg.Schedule(m)
	case *model.KPNApp:
		simkpn.Schedule(m)
	default:
		panic(taskerr.New(taskerr.Invariant, "objective.Evaluate: mapping has no recognized application model"))
	}

	obj := compute(m, cfg)
	m.Result.RecordEvaluation(obj, m.Schedule.Length, m.IsBetter)
	return obj
}

func compute(m *model.Mapping, cfg Config) float64 {
	t := float64(m.Schedule.Length)

	switch cfg.Kind {
	case ExecutionTime:
		return t

	case ExecutionTimePower:
		var area, fmax, dynP float64
		for i, pe := range m.Arch.PEs {
			area += pe.Area
			if f := float64(pe.Freq); f > fmax {
				fmax = f
			}
			dynP += pe.Area * float64(pe.Freq) * m.Schedule.PEUtil[i]
		}
		for i, ic := range m.Arch.ICs {
			area += ic.Area
			if f := float64(ic.Freq); f > fmax {
				fmax = f
			}
			dynP += ic.Area * float64(ic.Freq) * m.Schedule.ICUtil[i]
		}
		return t*area*fmax + t*cfg.EnergyK*dynP

	default:
		panic(taskerr.New(taskerr.Configuration, "unknown objective function kind %d", cfg.Kind))
	}
}
