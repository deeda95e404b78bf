package utils_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/medislate/pkg/utils"
)

var _ = Describe("Utils", func() {
	DescribeTable("NumericSuffix",
		func(name string, expected int, ok bool) {
			n, found := utils.NumericSuffix(name)
			Expect(found).To(Equal(ok))
			Expect(n).To(Equal(expected))
		},
		Entry("lecture name", "Lecture 10", 10, true),
		Entry("slide name", "Slide 7", 7, true),
		Entry("no space", "Lecture3", 3, true),
		Entry("last number wins", "Week 2 Lecture 14", 14, true),
		Entry("leading zeros", "Slide 007", 7, true),
		Entry("no digits", "Appendix", 0, false),
		Entry("empty", "", 0, false),
	)

	DescribeTable("Stem",
		func(path, expected string) {
			Expect(utils.Stem(path)).To(Equal(expected))
		},
		Entry("text file", "/data/Lecture 1/Texts/Slide 3.txt", "Slide 3"),
		Entry("image file", "Slide 12.jpg", "Slide 12"),
		Entry("no extension", "Slide 1", "Slide 1"),
	)

	It("should create nested parent directories", func() {
		dir, err := os.MkdirTemp("", "utils-test-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(dir)

		target := filepath.Join(dir, "a", "b", "file.csv")
		Expect(utils.EnsureParentDir(target)).To(Succeed())
		Expect(filepath.Join(dir, "a", "b")).To(BeADirectory())
	})
})
