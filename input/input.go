package input

import (
	"io"

	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/orchestrator"
	"github.com/sarchlab/dcsmapper/taskerr"
)

var mainCategories = []string{"architecture", "tasks", "optimization"}

// Parse reads a complete configuration stream: the architecture, tasks
// and optimization sections (in any relative order), followed by zero
// or more trailing mapping_list blocks that amend the task section's
// placement before the caller builds a Mapping from the result.
//
// Parsing errors are reported through the returned error rather than
// panicking past this function: internal parsing helpers panic with a
// *taskerr.Error on malformed input, and Parse recovers it here.
func Parse(r io.Reader) (arch *model.Architecture, app model.Application, cfg *orchestrator.Config, overrides []model.MappingOverride, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if tErr, ok := rec.(*taskerr.Error); ok {
				err = tErr
				return
			}
			panic(rec)
		}
	}()

	l := newLexer(r)

	var pe []int
	var static []bool

	gotArch, gotTasks, gotOpt := false, false, false
	for !gotArch || !gotTasks || !gotOpt {
		switch l.matchAlternatives(mainCategories...) {
		case 0:
			if gotArch {
				errf("duplicate architecture section")
			}
			arch = parseArchitecture(l)
			gotArch = true
		case 1:
			if gotTasks {
				errf("duplicate tasks section")
			}
			app, pe, static = parseTasks(l)
			gotTasks = true
		case 2:
			if gotOpt {
				errf("duplicate optimization section")
			}
			cfg = parseOptimization(l)
			gotOpt = true
		}
	}

	for {
		word, ok := l.peekWord()
		if !ok {
			break
		}
		if word != "mapping_list" {
			errf("unexpected trailing section: %s", word)
		}
		parseMappingList(l, app.NTasks(), pe)
	}

	overrides = make([]model.MappingOverride, app.NTasks())
	for t := range overrides {
		overrides[t] = model.MappingOverride{TaskID: t, PE: pe[t], Static: static[t]}
	}

	return arch, app, cfg, overrides, nil
}
