package export_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/medislate/internal/export"
	"github.com/kpauljoseph/medislate/internal/stats"
	"github.com/kpauljoseph/medislate/pkg/models"
)

var _ = Describe("Export", func() {
	var (
		outputDir string
		slides    []models.SlideStats
		lectures  []models.LectureStats
		keywords  []string
	)

	BeforeEach(func() {
		var err error
		outputDir, err = os.MkdirTemp("", "export-test-*")
		Expect(err).NotTo(HaveOccurred())

		keywords = []string{"ct", "noise"}
		slides = []models.SlideStats{
			{
				Lecture: "Lecture 1", LectureNum: 1, SlideID: "Slide 1", SlideNum: 1,
				Tokens: 4, Sentences: 2, VocabSize: 4, KeywordHits: 2,
				Keywords: map[string]int{"ct": 1, "noise": 1},
			},
			{
				Lecture: "Lecture 10", LectureNum: 10, SlideID: "Slide 2", SlideNum: 2,
				Tokens: 7, Sentences: 1, VocabSize: 6, KeywordHits: 0,
				Keywords: map[string]int{"ct": 0, "noise": 0},
			},
		}
		lectures = []models.LectureStats{
			{Lecture: "Lecture 1", LectureNum: 1, Slides: 1, Tokens: 4, VocabSize: 4},
			{Lecture: "Lecture 10", LectureNum: 10, Slides: 1, Tokens: 7, VocabSize: 6},
		}
	})

	AfterEach(func() {
		os.RemoveAll(outputDir)
	})

	Context("per-slide CSV", func() {
		It("should write the fixed columns followed by keywords", func() {
			path := filepath.Join(outputDir, "data", export.SlideStatsFile)
			Expect(export.WriteSlideStats(path, slides, keywords)).To(Succeed())

			content, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			lines := strings.Split(strings.TrimSpace(string(content)), "\n")
			Expect(lines).To(HaveLen(3))
			Expect(lines[0]).To(Equal("lecture,lecture_num,slide_id,slide_num,num_tokens,num_sentences,vocab_size,keyword_hits,ct,noise"))
			Expect(lines[1]).To(Equal("Lecture 1,1,Slide 1,1,4,2,4,2,1,1"))
		})

		It("should read back what it wrote", func() {
			path := filepath.Join(outputDir, export.SlideStatsFile)
			Expect(export.WriteSlideStats(path, slides, keywords)).To(Succeed())

			got, gotKeywords, err := export.ReadSlideStats(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotKeywords).To(Equal(keywords))
			Expect(got).To(Equal(slides))
		})

		It("should reject a file with the wrong header", func() {
			path := filepath.Join(outputDir, "bad.csv")
			Expect(os.WriteFile(path, []byte("a,b,c,d,e,f,g,h\n"), 0644)).To(Succeed())
			_, _, err := export.ReadSlideStats(path)
			Expect(err).To(HaveOccurred())
		})

		It("should reject non-numeric counts", func() {
			path := filepath.Join(outputDir, export.SlideStatsFile)
			body := "lecture,lecture_num,slide_id,slide_num,num_tokens,num_sentences,vocab_size,keyword_hits\n" +
				"Lecture 1,one,Slide 1,1,4,2,4,0\n"
			Expect(os.WriteFile(path, []byte(body), 0644)).To(Succeed())
			_, _, err := export.ReadSlideStats(path)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("line 2"))
		})
	})

	Context("per-lecture CSV", func() {
		It("should read back what it wrote", func() {
			path := filepath.Join(outputDir, export.LectureStatsFile)
			Expect(export.WriteLectureStats(path, lectures)).To(Succeed())

			got, err := export.ReadLectureStats(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(lectures))
		})

		It("should name the missing input file", func() {
			path := filepath.Join(outputDir, "missing", export.LectureStatsFile)
			_, err := export.ReadLectureStats(path)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(export.LectureStatsFile))
			Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
		})

		It("should fail on an empty file", func() {
			path := filepath.Join(outputDir, export.LectureStatsFile)
			Expect(os.WriteFile(path, nil, 0644)).To(Succeed())
			_, err := export.ReadLectureStats(path)
			Expect(err).To(MatchError(ContainSubstring("empty file")))
		})
	})

	Context("JSON documents", func() {
		It("should round-trip the vocabulary", func() {
			path := filepath.Join(outputDir, "data", export.VocabularyFile)
			vocab := stats.Vocabulary{"ct": 3, "beam": 1}
			Expect(export.WriteJSON(path, vocab)).To(Succeed())

			got, err := export.ReadVocabulary(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(vocab))
		})

		It("should end documents with a newline", func() {
			path := filepath.Join(outputDir, export.ReportFile)
			Expect(export.WriteJSON(path, map[string]int{"a": 1})).To(Succeed())
			content, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(content)).To(Equal("{\n  \"a\": 1\n}\n"))
		})
	})
})
