package taskerr_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/dcsmapper/taskerr"
)

func TestTaskerr(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Taskerr Suite")
}

var _ = Describe("New", func() {
	It("formats the message and labels it with the kind", func() {
		err := taskerr.New(taskerr.Configuration, "unknown method %q", "bogus")
		Expect(err.Error()).To(Equal(`configuration error: unknown method "bogus"`))
	})

	It("produces a distinct label per kind", func() {
		Expect(taskerr.Configuration.String()).To(Equal("configuration error"))
		Expect(taskerr.InputFormat.String()).To(Equal("input-format error"))
		Expect(taskerr.ResourceExhaustion.String()).To(Equal("resource exhaustion"))
		Expect(taskerr.Invariant.String()).To(Equal("invariant violation"))
	})

	It("can be unwrapped back to the typed *Error", func() {
		err := taskerr.New(taskerr.Invariant, "schedule length %d is not positive", -1)
		typed, ok := err.(*taskerr.Error)
		Expect(ok).To(BeTrue())
		Expect(typed.Kind).To(Equal(taskerr.Invariant))
	})
})
