package stats_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/medislate/internal/stats"
	"github.com/kpauljoseph/medislate/pkg/models"
)

var _ = Describe("Vocabulary", func() {
	It("should count normalized terms and skip punctuation-only tokens", func() {
		v := make(stats.Vocabulary)
		v.AddTokens(stats.Tokenize("Beam, beam BEAM! -- detector"))
		Expect(v).To(Equal(stats.Vocabulary{"beam": 3, "detector": 1}))
		Expect(v.Size()).To(Equal(2))
	})

	It("should merge counts", func() {
		a := stats.Vocabulary{"ct": 1, "dose": 2}
		a.Merge(stats.Vocabulary{"ct": 2, "beam": 1})
		Expect(a).To(Equal(stats.Vocabulary{"ct": 3, "dose": 2, "beam": 1}))
	})

	It("should rank by count then alphabetically", func() {
		v := stats.Vocabulary{"b": 2, "a": 2, "c": 5, "d": 1}
		Expect(v.Top(3)).To(Equal([]models.KeywordCount{
			{Term: "c", Count: 5},
			{Term: "a", Count: 2},
			{Term: "b", Count: 2},
		}))
		Expect(v.Top(0)).To(HaveLen(4))
	})
})
