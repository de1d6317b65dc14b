package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcsmapper/model"
)

var _ = Describe("IntArray", func() {
	It("behaves as a FIFO queue", func() {
		a := model.NewIntArray()
		a.PushBack(1)
		a.PushBack(2)
		a.PushBack(3)

		Expect(a.PopFront()).To(Equal(1))
		Expect(a.PopFront()).To(Equal(2))
		Expect(a.Len()).To(Equal(1))
		Expect(a.PopFront()).To(Equal(3))
		Expect(a.Empty()).To(BeTrue())
	})

	It("behaves as a LIFO stack", func() {
		a := model.NewIntArray()
		a.PushBack(1)
		a.PushBack(2)
		a.PushBack(3)

		Expect(a.PopBack()).To(Equal(3))
		Expect(a.PopBack()).To(Equal(2))
		Expect(a.PopBack()).To(Equal(1))
	})

	It("removes an arbitrary element while preserving order", func() {
		a := model.NewIntArray()
		a.PushBack(10)
		a.PushBack(20)
		a.PushBack(30)

		Expect(a.RemoveAt(1)).To(Equal(20))
		Expect(a.At(0)).To(Equal(10))
		Expect(a.At(1)).To(Equal(30))
		Expect(a.Len()).To(Equal(2))
	})

	It("compacts its backing array once fully drained", func() {
		a := model.NewIntArray()
		a.PushBack(1)
		a.PushBack(2)
		a.PopFront()
		a.PopFront()
		Expect(a.Empty()).To(BeTrue())

		a.PushBack(99)
		Expect(a.PopFront()).To(Equal(99))
	})
})

var _ = Describe("Float64Array", func() {
	It("behaves as a FIFO queue of floats", func() {
		a := model.NewFloat64Array()
		a.PushBack(1.5)
		a.PushBack(2.5)

		Expect(a.PopFront()).To(Equal(1.5))
		Expect(a.Empty()).To(BeFalse())
		Expect(a.PopFront()).To(Equal(2.5))
		Expect(a.Empty()).To(BeTrue())
	})
})

var _ = Describe("IntListArray", func() {
	It("appends values under independent keys", func() {
		a := model.NewIntListArray(3)
		a.Append(0, 10)
		a.Append(0, 11)
		a.Append(2, 20)

		Expect(a.Get(0)).To(Equal([]int{10, 11}))
		Expect(a.Get(1)).To(BeEmpty())
		Expect(a.Get(2)).To(Equal([]int{20}))
		Expect(a.Len()).To(Equal(3))
	})
})

var _ = Describe("Permutation", func() {
	It("starts with the identity permutation", func() {
		p := model.NewPermutation(3)
		Expect(p.Next()).To(Equal([]int{0, 1, 2}))
	})

	It("visits every permutation exactly once before repeating", func() {
		p := model.NewPermutation(3)
		seen := map[string]bool{}
		for i := 0; i < 6; i++ {
			perm := p.Next()
			key := ""
			for _, v := range perm {
				key += string(rune('0' + v))
			}
			Expect(seen[key]).To(BeFalse(), "permutation %v repeated early", perm)
			seen[key] = true
		}
		Expect(seen).To(HaveLen(6))

		Expect(p.Next()).To(Equal([]int{0, 1, 2}))
	})

	It("handles n=1 without an infinite loop", func() {
		p := model.NewPermutation(1)
		Expect(p.Next()).To(Equal([]int{0}))
		Expect(p.Next()).To(Equal([]int{0}))
	})
})
