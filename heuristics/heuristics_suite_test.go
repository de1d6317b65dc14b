package heuristics_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHeuristics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Heuristics Suite")
}
