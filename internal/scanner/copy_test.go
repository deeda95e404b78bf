package scanner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/medislate/internal/scanner"
)

var _ = Describe("Lecture Copy", func() {
	var srcDir, dstDir string

	BeforeEach(func() {
		var err error
		srcDir, err = os.MkdirTemp("", "copy-src-*")
		Expect(err).NotTo(HaveOccurred())
		dstDir, err = os.MkdirTemp("", "copy-dst-*")
		Expect(err).NotTo(HaveOccurred())

		addSlide(srcDir, 1, 1, "first")
		addSlide(srcDir, 2, 1, "second")
		writeFile(filepath.Join(srcDir, "Lecture 2", "Final", "lecture.mp4"), "video")
	})

	AfterEach(func() {
		os.RemoveAll(srcDir)
		os.RemoveAll(dstDir)
	})

	It("should copy the requested folders and report missing ones", func() {
		s := scanner.New(scannerTestLogger())
		stats, err := s.CopyLectures(context.Background(), srcDir, dstDir, 1, 3, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(filepath.Join(dstDir, "Lecture 1", "Texts", "Slide 1.txt")).To(BeAnExistingFile())
		Expect(filepath.Join(dstDir, "Lecture 2", "Final", "lecture.mp4")).To(BeAnExistingFile())
		Expect(stats.Copied).To(HaveLen(5))
		Expect(stats.Missing).To(ContainElement(filepath.Join(srcDir, "Lecture 1", "Final")))
		Expect(stats.Missing).To(ContainElement(filepath.Join(srcDir, "Lecture 3", "Texts")))
	})

	It("should replace existing destination folders", func() {
		stale := filepath.Join(dstDir, "Lecture 1", "Texts", "Slide 99.txt")
		writeFile(stale, "stale")

		s := scanner.New(scannerTestLogger())
		_, err := s.CopyLectures(context.Background(), srcDir, dstDir, 1, 1, []string{"Texts"})
		Expect(err).NotTo(HaveOccurred())
		Expect(stale).NotTo(BeAnExistingFile())
		Expect(filepath.Join(dstDir, "Lecture 1", "Texts", "Slide 1.txt")).To(BeAnExistingFile())
	})

	It("should fail for a missing source", func() {
		s := scanner.New(scannerTestLogger())
		_, err := s.CopyLectures(context.Background(), filepath.Join(srcDir, "nope"), dstDir, 1, 1, nil)
		Expect(errors.Is(err, scanner.ErrDatasetNotFound)).To(BeTrue())
	})

	It("should reject an inverted range", func() {
		s := scanner.New(scannerTestLogger())
		_, err := s.CopyLectures(context.Background(), srcDir, dstDir, 3, 1, nil)
		Expect(err).To(HaveOccurred())
	})
})
