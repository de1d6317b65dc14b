package main

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
)

var _ = Describe("registerFlags", func() {
	It("wires every documented flag and its shorthand", func() {
		cmd := &cobra.Command{Use: "taskmapper"}
		var opts cliOptions
		registerFlags(cmd, &opts)

		for _, name := range []string{"arb-policy", "fast-premapping", "ic-priorities",
			"list-mapping-heuristics", "mapping-heuristics", "output", "parameter",
			"find-maximum", "version", "monitor-addr"} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), name)
		}

		for shorthand, long := range map[string]string{
			"a": "arb-policy", "f": "fast-premapping", "i": "ic-priorities",
			"l": "list-mapping-heuristics", "m": "mapping-heuristics",
			"o": "output", "p": "parameter", "v": "version",
		} {
			f := cmd.Flags().ShorthandLookup(shorthand)
			Expect(f).NotTo(BeNil(), shorthand)
			Expect(f.Name).To(Equal(long))
		}
	})
})

var _ = Describe("moveHeuristicNames", func() {
	It("returns every registered move heuristic, sorted", func() {
		names := moveHeuristicNames()
		Expect(names).To(ContainElements("rm", "rmdt", "rm-adaptive", "css", "csm"))
		for i := 1; i < len(names); i++ {
			Expect(names[i-1] <= names[i]).To(BeTrue(), "names must be sorted")
		}
	})
})
