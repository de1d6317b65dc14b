package input

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/dcsmapper/model"
)

var archCategories = []string{"processing_element_list", "interconnect_list"}

// parseArchitecture reads the `architecture` section: the two
// sub-lists may appear in either order, each introduced by its own
// count, and parsing stops once both have been seen.
func parseArchitecture(l *lexer) *model.Architecture {
	arch := &model.Architecture{}
	gotPEs := false
	gotICs := false

	for !gotPEs || !gotICs {
		switch l.matchAlternatives(archCategories...) {
		case 0:
			if gotPEs {
				errf("duplicate processing_element_list")
			}
			n := l.int()
			if n <= 0 {
				errf("processing_element_list count must be positive, got %d", n)
			}
			for i := 0; i < n; i++ {
				l.match("processing_element")
				arch.PEs = append(arch.PEs, parsePE(l, i))
			}
			gotPEs = true

		case 1:
			if gotICs {
				errf("duplicate interconnect_list")
			}
			n := l.int()
			if n <= 0 {
				errf("interconnect_list count must be positive, got %d", n)
			}
			for i := 0; i < n; i++ {
				l.match("interconnect")
				arch.ICs = append(arch.ICs, parseIC(l, i))
			}
			for i := 1; i < len(arch.ICs); i++ {
				ref := arch.ICs[0]
				ic := arch.ICs[i]
				if ic.Freq != ref.Freq || ic.WidthBits != ref.WidthBits || ic.LatencyCyc != ref.LatencyCyc {
					errf("interconnect %d is not identical to interconnect 0", i)
				}
			}
			gotICs = true
		}
	}

	return arch
}

// parsePE reads one `processing_element ... end_processing_element`
// block. Defaults mirror the original format's baseline PE (50MHz, no
// send/copy overhead, unit performance factor, negligible area).
func parsePE(l *lexer, id int) *model.PE {
	pe := &model.PE{
		ID:                id,
		Freq:              50_000_000,
		PerformanceFactor: 1.0,
		Area:              1e-6,
	}

	for {
		switch s := l.word(); s {
		case "freq":
			freq := l.int64()
			if freq <= 0 {
				errf("PE freq must be positive, got %d", freq)
			}
			pe.Freq = sim.Freq(freq)
		case "send_cost":
			pe.SendLatencyCycle = float64(l.int())
			pe.SendCostPerByte = l.float64()
		case "copy_cost":
			pe.CopyLatencyCycle = float64(l.int())
			pe.CopyCostPerByte = l.float64()
		case "performance_factor":
			pe.PerformanceFactor = l.float64()
			if pe.PerformanceFactor <= 0 {
				errf("PE performance_factor must be positive")
			}
		case "area":
			pe.Area = l.float64()
			if pe.Area <= 0 {
				errf("PE area must be positive")
			}
		case "end_processing_element":
			return pe
		default:
			errf("unknown processing element parameter: %s", s)
		}
	}
}

// parseIC reads one `interconnect freq area width latency [arbitration
// <policy>] end_interconnect` block.
func parseIC(l *lexer, id int) *model.IC {
	ic := &model.IC{ID: id}
	ic.Freq = sim.Freq(l.int64())
	ic.Area = l.float64()
	ic.WidthBits = l.int()
	ic.LatencyCyc = float64(l.int())

	if ic.Freq <= 0 {
		errf("interconnect freq must be positive")
	}
	if ic.WidthBits <= 0 || ic.WidthBits > 1024 {
		errf("interconnect width must be in (0,1024]")
	}
	if ic.Area <= 0 {
		errf("interconnect area must be positive")
	}

	for {
		switch s := l.word(); s {
		case "arbitration":
			name := l.word()
			policy, ok := model.ParseArbitrationPolicy(name)
			if !ok {
				errf("unknown arbitration policy: %s", name)
			}
			ic.Arbitration = policy
		case "end_interconnect":
			return ic
		default:
			errf("unknown interconnect parameter: %s", s)
		}
	}
}
