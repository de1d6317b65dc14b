package anneal

import (
	"github.com/sarchlab/dcsmapper/model"
	"github.com/sarchlab/dcsmapper/objective"
)

// MoveFunc proposes a new candidate mapping into dst from src, given the
// current annealing temperature and the recent-move history ring. Every
// call must start by copying src into dst (objective.RM and its
// siblings already do this).
type MoveFunc func(dst, src *model.Mapping, T float64, ring *objective.MoveRing)

// Moves is the fixed name-to-heuristic table used to resolve the `-m`
// mapping-heuristic override. Unknown names are a configuration error,
// detected by a map lookup in the callers that resolve names (the CLI's
// -m override and the input parser).
var Moves = map[string]MoveFunc{
	"rm":          moveRM,
	"rmdt":        moveRMDT,
	"rm-adaptive": moveRMAdaptive,
	"css":         moveCSS,
	"csm":         moveCSM,
}

func moveRM(dst, src *model.Mapping, _ float64, _ *objective.MoveRing) {
	objective.RM(dst, src)
}

func moveRMDT(dst, src *model.Mapping, T float64, _ *objective.MoveRing) {
	objective.RMDT(dst, src, T)
}

func moveRMAdaptive(dst, src *model.Mapping, _ float64, ring *objective.MoveRing) {
	objective.RMAdaptive(dst, src, ring)
}

func moveCSS(dst, src *model.Mapping, _ float64, _ *objective.MoveRing) {
	objective.CSS(dst, src)
}

func moveCSM(dst, src *model.Mapping, _ float64, _ *objective.MoveRing) {
	objective.CSM(dst, src)
}
