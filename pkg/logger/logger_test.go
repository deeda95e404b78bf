package logger_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/medislate/pkg/logger"
)

var _ = Describe("Logger", func() {
	var (
		buf *bytes.Buffer
		log *logger.Logger
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		log = logger.New(
			logger.WithOutput(buf),
			logger.WithPrefix("test"),
			logger.WithTimestamps(false),
		)
	})

	It("should always write info messages", func() {
		log.Info("loaded %d lectures", 3)
		Expect(buf.String()).To(ContainSubstring("INFO"))
		Expect(buf.String()).To(ContainSubstring("loaded 3 lectures"))
		Expect(buf.String()).To(ContainSubstring("test"))
	})

	It("should write warnings", func() {
		log.Warn("skipped %s", "Slide 4")
		Expect(buf.String()).To(ContainSubstring("WARN"))
		Expect(buf.String()).To(ContainSubstring("skipped Slide 4"))
	})

	It("should drop debug messages unless verbose", func() {
		log.Debug("hidden")
		Expect(buf.String()).To(BeEmpty())

		log.SetVerbose(true)
		log.Debug("shown")
		Expect(buf.String()).To(ContainSubstring("shown"))
	})

	It("should only trace at trace level", func() {
		log.SetVerbose(true)
		log.Trace("hidden")
		Expect(buf.String()).To(BeEmpty())

		log.SetLevel(logger.LevelTrace)
		log.Trace("token %q", "ct")
		Expect(buf.String()).To(ContainSubstring(`TRACE: token "ct"`))
	})

	It("should enable verbose output when the level is raised", func() {
		log.SetLevel(logger.LevelDebug)
		Expect(log.IsVerbose()).To(BeTrue())
	})
})
