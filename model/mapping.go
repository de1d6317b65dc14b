package model

import "math"

// STGDerived holds the per-evaluation tables the STG simulator computes
// from a Mapping's current PE assignment: topological order, b-level
// priorities, per-task dispatch latency, and the send-info partition
// arena. They are recomputed from scratch by simstg on every evaluation,
// but the backing slices are kept here so repeated evaluations of the
// same Mapping reuse capacity instead of reallocating.
type STGDerived struct {
	TopoOrder []int     // children-first topological order
	BLevel    []float64 // b-level priority per task, seconds
	Latency   []float64 // per-task launch latency, seconds
	Handles   []SendHandle
	Arena     SendArena
}

// Mapping is the central mutable object threaded between the evaluator
// and the optimization framework: the current task/process-to-PE
// assignment, the priorities and pins overriding default scheduling
// decisions, and the Schedule/Result records a run fills in.
type Mapping struct {
	Arch *Architecture
	App  Application

	// Assignments returns the current PE id for each task. IsStatic marks
	// tasks pinned by configuration; SetMapping is a no-op for those.
	Assignments []int
	IsStatic    []bool

	// TaskPriorities optionally overrides the schedule-derived priority
	// for each task; HasTaskPriority reports which entries are set.
	TaskPriorities    []float64
	HasTaskPriority   []bool
	ICPriorities      []int // priority per PE id, used by PRIORITY arbitration

	Maximize bool // optimization direction: true maximizes the objective

	Schedule Schedule
	Result   *Result

	STG *STGDerived // non-nil only when App is an *STGApp

	// MoveNPEsCap temporarily restricts NPEs() to this many processing
	// elements when positive and smaller than the architecture's real
	// count. Annealing sets it on a move's destination Mapping for the
	// duration of one move call, so early moves explore a narrowed PE
	// range, then clears it before the candidate is evaluated.
	MoveNPEsCap int
}

// NewMapping constructs a Mapping for the given architecture/application,
// with every task initially assigned to defaultPE and unpinned.
func NewMapping(arch *Architecture, app Application, defaultPE int) *Mapping {
	n := app.NTasks()
	m := &Mapping{
		Arch:            arch,
		App:             app,
		Assignments:     make([]int, n),
		IsStatic:        make([]bool, n),
		TaskPriorities:  make([]float64, n),
		HasTaskPriority: make([]bool, n),
		ICPriorities:    make([]int, arch.NPEs()),
		Result:          NewResult(),
	}
	for i := range m.Assignments {
		m.Assignments[i] = defaultPE
	}
	for i, pe := range arch.PEs {
		m.ICPriorities[i] = pe.InitialICPriority
	}
	if _, ok := app.(*STGApp); ok {
		m.STG = &STGDerived{}
	}
	return m
}

// NTasks returns the number of tasks/processes in the application.
func (m *Mapping) NTasks() int { return len(m.Assignments) }

// NPEs returns the number of processing elements a move may target:
// the architecture's real count, unless MoveNPEsCap narrows it.
func (m *Mapping) NPEs() int {
	n := m.Arch.NPEs()
	if m.MoveNPEsCap > 0 && m.MoveNPEsCap < n {
		return m.MoveNPEsCap
	}
	return n
}

// SetMapping assigns task t to PE p, clamped into [0,npes) by
// construction, and returns the task's actual resulting PE. It is a
// no-op, returning the unchanged current PE, if t is static — mutation
// heuristics must treat the return value, not p, as authoritative.
func (m *Mapping) SetMapping(t, p int) int {
	if m.IsStatic[t] {
		return m.Assignments[t]
	}
	if p < 0 {
		p = 0
	}
	if n := m.NPEs(); p >= n {
		p = n - 1
	}
	m.Assignments[t] = p
	return p
}

// Priority returns the effective scheduling priority for task t: the
// override in TaskPriorities if set, else fall back to the supplied
// b-level-derived default.
func (m *Mapping) Priority(t int, fallback float64) float64 {
	if m.HasTaskPriority[t] {
		return m.TaskPriorities[t]
	}
	return fallback
}

// Fork produces an independently owned copy of m's mutable assignment
// state: Assignments, IsStatic, priorities. Arch and App are shared by
// pointer (forks must never mutate them), and so is Result: a run's
// evaluation count and trace belong to the whole search, not to any one
// scratch copy a heuristic uses to try a candidate, so every fork of the
// same Mapping feeds the same Result. Schedule is a plain value,
// recomputed from scratch by every simulator call, so it needs no
// special handling here.
func (m *Mapping) Fork() *Mapping {
	f := &Mapping{
		Arch:            m.Arch,
		App:             m.App,
		Assignments:     append([]int(nil), m.Assignments...),
		IsStatic:        append([]bool(nil), m.IsStatic...),
		TaskPriorities:  append([]float64(nil), m.TaskPriorities...),
		HasTaskPriority: append([]bool(nil), m.HasTaskPriority...),
		ICPriorities:    append([]int(nil), m.ICPriorities...),
		Maximize:        m.Maximize,
		Result:          m.Result,
	}
	if m.STG != nil {
		f.STG = &STGDerived{}
	}
	return f
}

// CopyInto overwrites dst's mutable state (Assignments, IsStatic,
// priorities, Maximize) with m's, without touching dst's Arch/App
// pointers or its Result/Schedule history. CopyInto(a,b) followed by
// CopyInto(b,a) restores a's original mutable state exactly, provided
// nothing else mutated a in between.
func (m *Mapping) CopyInto(dst *Mapping) {
	copy(dst.Assignments, m.Assignments)
	copy(dst.IsStatic, m.IsStatic)
	copy(dst.TaskPriorities, m.TaskPriorities)
	copy(dst.HasTaskPriority, m.HasTaskPriority)
	copy(dst.ICPriorities, m.ICPriorities)
	dst.Maximize = m.Maximize
}

// CostDiff returns new-old in minimize mode, old-new in maximize mode:
// a negative diff always means new is an improvement over old.
func (m *Mapping) CostDiff(oldObj, newObj float64) float64 {
	if m.Maximize {
		return oldObj - newObj
	}
	return newObj - oldObj
}

// IsBetter reports whether candidate strictly improves over incumbent
// under this Mapping's optimization direction.
func (m *Mapping) IsBetter(candidate, incumbent float64) bool {
	return m.CostDiff(incumbent, candidate) < 0
}

// NonStaticTasks returns the ids of every task that is not pinned.
func (m *Mapping) NonStaticTasks() []int {
	var out []int
	for t, static := range m.IsStatic {
		if !static {
			out = append(out, t)
		}
	}
	return out
}

// NStatic returns the number of pinned tasks.
func (m *Mapping) NStatic() int {
	n := 0
	for _, static := range m.IsStatic {
		if static {
			n++
		}
	}
	return n
}

// Electable returns NTasks - NStatic, the number of tasks a mapping move
// is free to reassign.
func (m *Mapping) Electable() int {
	return m.NTasks() - m.NStatic()
}

// ClampNonNegativeInt returns v if v >= 0, else 0; used when converting
// floor/ceil arithmetic on heuristic parameters into counts.
func ClampNonNegativeInt(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return int(v)
}
