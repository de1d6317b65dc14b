package simkpn_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSimkpn(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Simkpn Suite")
}
