package anneal

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAnnealInternal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Anneal Internal Suite")
}

var _ = Describe("acceptProbability", func() {
	It("caps the exponential acceptor at 1 for a non-positive dE", func() {
		Expect(acceptProbability(Exponential, -1, 1, 1, 1)).To(Equal(1.0))
	})

	It("returns a lower probability at lower temperature for the exponential acceptor", func() {
		hot := acceptProbability(Exponential, 5, 10, 1, 1)
		cold := acceptProbability(Exponential, 5, 1, 1, 1)
		Expect(cold).To(BeNumerically("<", hot))
	})

	It("guards the exponential acceptor against a vanishing divisor", func() {
		Expect(acceptProbability(Exponential, 5, 0, 1, 1)).To(Equal(0.0))
	})

	It("scales the inverse-exponential acceptor by zeroTransitionProb", func() {
		p1 := acceptProbability(InverseExponential, 1, 10, 1, 0.5)
		p2 := acceptProbability(InverseExponential, 1, 10, 1, 1.0)
		Expect(p2).To(BeNumerically(">", p1))
	})

	It("caps the inverse-exponential acceptor past the exponent limit", func() {
		Expect(acceptProbability(InverseExponential, 1e9, 1e-9, 1, 1)).To(Equal(0.0))
	})

	It("floors special1 at zero past the linear falloff", func() {
		Expect(acceptProbability(Special1, 1000, 1, 1, 0)).To(Equal(0.0))
	})

	It("returns a value strictly between 0 and 1 within range for special1", func() {
		p := acceptProbability(Special1, 1, 10, 1, 0)
		Expect(p).To(BeNumerically(">", 0))
		Expect(p).To(BeNumerically("<", 1))
	})

	It("returns 0 for an unrecognized acceptor kind", func() {
		Expect(acceptProbability(AcceptorKind(99), 1, 10, 1, 0)).To(Equal(0.0))
	})

	It("never returns NaN for ordinary inputs", func() {
		for _, kind := range []AcceptorKind{Exponential, InverseExponential, Special1} {
			p := acceptProbability(kind, 2, 5, 1, 0.5)
			Expect(math.IsNaN(p)).To(BeFalse())
		}
	})
})
