package model

// SendPartition is one destination-PE partition of a single task's
// output: the distinct tasks on PEID receiving results, paired with how
// many literal (result, dst) references each one accounts for. DstRefs
// is parallel to DstTasks (same index), and its entries are what drive
// how many times a destination's rescount gets bumped on arrival — not
// len(DstTasks), since a peer can be referenced more than once.
type SendPartition struct {
	PEID     int
	DstTasks []int // distinct task ids on PEID receiving a result
	DstRefs  []int // occurrence count per entry in DstTasks
}

// SendHandle indexes a contiguous run of SendPartitions living in a
// SendArena, replacing the raw pointer-and-offset arithmetic of the
// original flat integer buffer with a bounds-checked accessor.
type SendHandle struct {
	offset, length int32
}

// SendArena is the flat, reusable backing store for every task's
// per-destination-PE send partitions (one run of partitions per task). It is rebuilt (not
// reallocated from scratch) on every STG evaluation: Reset keeps the
// underlying slice's capacity so repeated evaluations of the same
// Mapping do not churn the allocator.
type SendArena struct {
	partitions []SendPartition
}

// Reset empties the arena while retaining its backing capacity.
func (s *SendArena) Reset() {
	s.partitions = s.partitions[:0]
}

// Append adds a partition to the arena and returns a handle extending the
// new run of length one. Callers build one run per task by calling
// Append for its first destination PE and Extend for each further one.
func (s *SendArena) Append(p SendPartition) SendHandle {
	s.partitions = append(s.partitions, p)
	return SendHandle{offset: int32(len(s.partitions) - 1), length: 1}
}

// Extend grows an existing handle by appending one more partition
// immediately after it (the arena is always built append-only, so this
// is valid as long as nothing else was appended in between).
func (s *SendArena) Extend(h SendHandle, p SendPartition) SendHandle {
	s.partitions = append(s.partitions, p)
	return SendHandle{offset: h.offset, length: h.length + 1}
}

// Partitions returns the slice of partitions a handle refers to. Panics
// if the handle is out of range for the arena's current contents — this
// is the "overruns are caught" property the typed-arena design note
// calls for, in place of the original's unchecked integer offsets.
func (s *SendArena) Partitions(h SendHandle) []SendPartition {
	end := int(h.offset + h.length)
	if h.offset < 0 || end > len(s.partitions) {
		panic("model.SendArena: handle out of range")
	}
	return s.partitions[h.offset:end]
}
