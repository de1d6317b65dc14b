package objective

import "github.com/sarchlab/dcsmapper/model"

// movePair is one recorded search step: the objective of the state the
// search was at, and the objective of the candidate it compared against.
type movePair struct {
	accepted float64
	proposed float64
}

// MoveRing is a fixed-capacity circular buffer of recent search steps,
// used by adaptive mutation heuristics to read off how often recent
// moves have been worse, the same, or better than the state they were
// proposed against.
type MoveRing struct {
	entries []movePair
	next    int
	filled  int
}

// NewMoveRing creates a ring of the given capacity. SA uses a capacity
// of 20; neighborhood-test mapping uses ntasks*(npes-1).
func NewMoveRing(capacity int) *MoveRing {
	if capacity < 1 {
		capacity = 1
	}
	return &MoveRing{entries: make([]movePair, capacity)}
}

// Record appends one (accepted, proposed) pair, overwriting the oldest
// entry once the ring is full.
func (r *MoveRing) Record(accepted, proposed float64) {
	r.entries[r.next] = movePair{accepted: accepted, proposed: proposed}
	r.next = (r.next + 1) % len(r.entries)
	if r.filled < len(r.entries) {
		r.filled++
	}
}

// Probabilities returns the empirical fraction of recorded moves that
// were worse, the same, or better than the state they were proposed
// against, under m's optimization direction. All three are zero if the
// ring is empty.
func (r *MoveRing) Probabilities(m *model.Mapping) (pworse, psame, pbetter float64) {
	if r.filled == 0 {
		return 0, 0, 0
	}

	var worse, same, better int
	for i := 0; i < r.filled; i++ {
		e := r.entries[i]
		switch diff := m.CostDiff(e.accepted, e.proposed); {
		case diff > 0:
			worse++
		case diff < 0:
			better++
		default:
			same++
		}
	}

	n := float64(r.filled)
	return float64(worse) / n, float64(same) / n, float64(better) / n
}
