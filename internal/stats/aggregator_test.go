package stats_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/medislate/internal/stats"
	"github.com/kpauljoseph/medislate/pkg/models"
)

func slide(n int, text string) models.Slide {
	return models.Slide{ID: fmt.Sprintf("Slide %d", n), Number: n, Text: text}
}

var _ = Describe("Aggregator", func() {
	var (
		keywords *stats.KeywordSet
		dataset  *models.Dataset
	)

	BeforeEach(func() {
		keywords = stats.NewKeywordSet(stats.CTTerms)
		dataset = &models.Dataset{
			Lectures: []models.Lecture{
				{
					ID:     "Lecture 1",
					Number: 1,
					Slides: []models.Slide{
						slide(1, "CT scan. Noise artifact!"),
						slide(2, "The CT beam hits the detector."),
					},
				},
				{
					ID:     "Lecture 2",
					Number: 2,
					Slides: []models.Slide{
						slide(1, "Fourier transform of the sinogram"),
					},
				},
				{ID: "Lecture 3", Number: 3},
			},
		}
	})

	Context("per-slide statistics", func() {
		It("should match the reference example", func() {
			agg := stats.NewAggregator(keywords)
			s, _ := agg.AnalyzeSlide(dataset.Lectures[0], dataset.Lectures[0].Slides[0])

			Expect(s.Tokens).To(Equal(4))
			Expect(s.Sentences).To(Equal(2))
			Expect(s.VocabSize).To(Equal(4))
			Expect(s.KeywordHits).To(Equal(3))
			Expect(s.Keywords).To(HaveLen(len(stats.CTTerms)))
			for term, n := range s.Keywords {
				switch term {
				case "ct", "noise", "artifact":
					Expect(n).To(Equal(1), term)
				default:
					Expect(n).To(Equal(0), term)
				}
			}
		})

		It("should match keywords as whole tokens only", func() {
			agg := stats.NewAggregator(keywords)
			s, _ := agg.AnalyzeSlide(models.Lecture{ID: "Lecture 1"}, models.Slide{Text: "Doses of octane, beams."})
			Expect(s.Keywords["ct"]).To(Equal(0))
			Expect(s.Keywords["dose"]).To(Equal(0))
			Expect(s.Keywords["beam"]).To(Equal(0))
		})

		It("should carry lecture and slide identity", func() {
			result := stats.Aggregate(dataset, keywords)
			Expect(result.Slides).To(HaveLen(3))
			Expect(result.Slides[2].Lecture).To(Equal("Lecture 2"))
			Expect(result.Slides[2].LectureNum).To(Equal(2))
			Expect(result.Slides[2].SlideNum).To(Equal(1))
		})
	})

	Context("per-lecture rollups", func() {
		It("should sum slide token counts", func() {
			result := stats.Aggregate(dataset, keywords)
			Expect(result.Lectures[0].Tokens).To(Equal(4 + 6))
			Expect(result.Lectures[0].Slides).To(Equal(2))
		})

		It("should size vocabulary by the union of slide term sets", func() {
			result := stats.Aggregate(dataset, keywords)
			// {ct, scan, noise, artifact} u {the, ct, beam, hits, detector}
			Expect(result.Lectures[0].VocabSize).To(Equal(8))
			Expect(result.Slides[0].VocabSize + result.Slides[1].VocabSize).To(Equal(9))
			Expect(result.LectureVocabularies["Lecture 1"]["the"]).To(Equal(2))
		})

		It("should keep lectures without slides", func() {
			result := stats.Aggregate(dataset, keywords)
			Expect(result.Lectures).To(HaveLen(3))
			Expect(result.Lectures[2]).To(Equal(models.LectureStats{Lecture: "Lecture 3", LectureNum: 3}))
		})
	})

	Context("dataset totals", func() {
		It("should count the global vocabulary as a multiset", func() {
			result := stats.Aggregate(dataset, keywords)
			Expect(result.Vocabulary["ct"]).To(Equal(2))
			Expect(result.Vocabulary["the"]).To(Equal(3))
			Expect(result.Vocabulary.Size()).To(Equal(12))
		})

		It("should total keywords across slides", func() {
			result := stats.Aggregate(dataset, keywords)
			Expect(result.KeywordTotals["ct"]).To(Equal(2))
			Expect(result.KeywordTotals["sinogram"]).To(Equal(1))
			Expect(result.KeywordTotals["radon"]).To(Equal(0))
		})

		It("should rank non-zero keywords", func() {
			result := stats.Aggregate(dataset, keywords)
			top := result.TopKeywords(3)
			Expect(top).To(HaveLen(3))
			Expect(top[0]).To(Equal(models.KeywordCount{Term: "ct", Count: 2}))
			Expect(top[1]).To(Equal(models.KeywordCount{Term: "artifact", Count: 1}))

			for _, kc := range result.TopKeywords(0) {
				Expect(kc.Count).To(BeNumerically(">", 0))
			}
		})

		It("should summarize the dataset", func() {
			summary := stats.Aggregate(dataset, keywords).Summary()
			Expect(summary.TotalLectures).To(Equal(3))
			Expect(summary.TotalSlides).To(Equal(3))
			Expect(summary.TotalTokens).To(Equal(15))
			Expect(summary.TotalSentences).To(Equal(4))
			Expect(summary.VocabularySize).To(Equal(12))
			Expect(summary.AvgSlidesPerLecture).To(BeNumerically("~", 1.0))
			Expect(summary.AvgTokensPerLecture).To(BeNumerically("~", 5.0))
		})

		It("should summarize an empty dataset without dividing by zero", func() {
			summary := stats.Aggregate(&models.Dataset{}, keywords).Summary()
			Expect(summary.TotalLectures).To(Equal(0))
			Expect(summary.AvgSlidesPerLecture).To(BeZero())
		})
	})

	Context("rebuilding from records", func() {
		It("should reproduce totals from exported rows", func() {
			original := stats.Aggregate(dataset, keywords)
			rebuilt := stats.FromRecords(original.Slides, original.Lectures, original.Vocabulary, original.Keywords)
			Expect(rebuilt.Summary()).To(Equal(original.Summary()))
			Expect(rebuilt.KeywordTotals).To(Equal(original.KeywordTotals))
		})
	})
})
