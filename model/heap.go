// Package model defines the architecture, application, and mapping data
// structures shared by the evaluator and the optimization framework.
package model

// Heap is a binary max-heap over any element type, ordered by a
// caller-supplied Less function (a < b means a has lower priority than b,
// matching the usual container/heap convention). Event queues, send
// queues, and task-ready queues all reuse this same generic structure
// instead of each hand-rolling a fixed-element-size heap.
type Heap[T any] struct {
	items []T
	less  func(a, b T) bool
}

// NewHeap creates an empty heap ordered by less.
func NewHeap[T any](less func(a, b T) bool) *Heap[T] {
	return &Heap[T]{less: less}
}

// Len returns the number of elements currently in the heap.
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Push inserts v into the heap.
func (h *Heap[T]) Push(v T) {
	h.items = append(h.items, v)
	h.siftUp(len(h.items) - 1)
}

// Peek returns the maximal element without removing it. Panics if empty.
func (h *Heap[T]) Peek() T {
	return h.items[0]
}

// Pop removes and returns the maximal element. Panics if empty.
func (h *Heap[T]) Pop() T {
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	var zero T
	h.items[last] = zero
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return top
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.items[parent], h.items[i]) {
			break
		}
		h.items[parent], h.items[i] = h.items[i], h.items[parent]
		i = parent
	}
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		left, right := 2*i+1, 2*i+2
		largest := i
		if left < n && h.less(h.items[largest], h.items[left]) {
			largest = left
		}
		if right < n && h.less(h.items[largest], h.items[right]) {
			largest = right
		}
		if largest == i {
			break
		}
		h.items[i], h.items[largest] = h.items[largest], h.items[i]
		i = largest
	}
}

// NewMinHeap returns a Heap presenting a min-ordering over less, built
// by inverting the comparator. The event queues in simstg and
// simkpn are ordered by ascending time; this gives them a min-heap "free"
// from the same generic max-heap implementation, exactly as the design
// notes for this package call for (a max-heap with inverted comparison).
func NewMinHeap[T any](less func(a, b T) bool) *Heap[T] {
	return NewHeap[T](func(a, b T) bool { return less(b, a) })
}
