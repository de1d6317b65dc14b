package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcsmapper/model"
)

var _ = Describe("Heap", func() {
	It("pops elements in descending order for a max-heap", func() {
		h := model.NewHeap(func(a, b int) bool { return a < b })
		for _, v := range []int{5, 1, 9, 3, 7, 2} {
			h.Push(v)
		}

		var out []int
		for h.Len() > 0 {
			out = append(out, h.Pop())
		}

		Expect(out).To(Equal([]int{9, 7, 5, 3, 2, 1}))
	})

	It("pops elements in ascending order for a min-heap", func() {
		h := model.NewMinHeap(func(a, b int) bool { return a < b })
		for _, v := range []int{5, 1, 9, 3, 7, 2} {
			h.Push(v)
		}

		var out []int
		for h.Len() > 0 {
			out = append(out, h.Pop())
		}

		Expect(out).To(Equal([]int{1, 2, 3, 5, 7, 9}))
	})

	It("peeks without removing", func() {
		h := model.NewMinHeap(func(a, b int) bool { return a < b })
		h.Push(3)
		h.Push(1)

		Expect(h.Peek()).To(Equal(1))
		Expect(h.Len()).To(Equal(2))
	})

	It("orders equal-priority elements without panicking", func() {
		h := model.NewMinHeap(func(a, b int) bool { return a < b })
		for i := 0; i < 5; i++ {
			h.Push(4)
		}
		Expect(h.Len()).To(Equal(5))
		for h.Len() > 0 {
			Expect(h.Pop()).To(Equal(4))
		}
	})
})
