package stats_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/medislate/internal/stats"
)

var _ = Describe("Keywords", func() {
	It("should de-duplicate and lowercase terms in order", func() {
		ks := stats.NewKeywordSet([]string{"CT", "noise", " ct ", "", "Dose"})
		Expect(ks.Terms()).To(Equal([]string{"ct", "noise", "dose"}))
		Expect(ks.Contains("dose")).To(BeTrue())
		Expect(ks.Contains("Dose")).To(BeFalse())
	})

	It("should report every keyword even when absent", func() {
		ks := stats.NewKeywordSet([]string{"ct", "mri"})
		Expect(ks.Count(stats.Tokenize("MRI, mri and more MRI!"))).To(Equal(map[string]int{"ct": 0, "mri": 3}))
	})

	It("should match hyphenated terms as whole tokens", func() {
		ks := stats.NewKeywordSet(stats.ImagingTerms)
		counts := ks.Count(stats.Tokenize("The k-space grid, not kspace-like"))
		Expect(counts["k-space"]).To(Equal(1))
		Expect(counts["kspace"]).To(Equal(0))
	})

	It("should normalize configured terms like tokens", func() {
		ks := stats.NewKeywordSet([]string{"x-ray", "c++", "T1."})
		Expect(ks.Terms()).To(Equal([]string{"x-ray", "c", "t1"}))
		Expect(ks.Count(stats.Tokenize("x-ray c++ t1. T1"))).To(Equal(map[string]int{"x-ray": 1, "c": 1, "t1": 2}))
	})

	DescribeTable("KeywordsFor",
		func(set string, custom []string, expectedLen int, shouldErr bool) {
			ks, err := stats.KeywordsFor(set, custom)
			if shouldErr {
				Expect(err).To(HaveOccurred())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(ks.Len()).To(Equal(expectedLen))
		},
		Entry("default set", "", nil, len(stats.CTTerms), false),
		Entry("ct set", "ct", nil, len(stats.CTTerms), false),
		Entry("imaging set", "imaging", nil, len(stats.NewKeywordSet(stats.ImagingTerms).Terms()), false),
		Entry("custom wins", "imaging", []string{"spin", "echo"}, 2, false),
		Entry("unknown set", "geology", nil, 0, true),
	)
})
