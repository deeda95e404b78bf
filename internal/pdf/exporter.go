package pdf

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/medislate/internal/scanner"
	"github.com/kpauljoseph/medislate/internal/stats"
	"github.com/kpauljoseph/medislate/pkg/logger"
	"github.com/kpauljoseph/medislate/pkg/utils"
)

const (
	DefaultDPI         = 150.0
	DefaultJPEGQuality = 90

	slideStemFormat = "Slide %d"
)

type ExportOptions struct {
	DPI         float64
	JPEGQuality int
	// WriteText stores the page text as the slide transcript when none exists yet.
	WriteText bool
	Overwrite bool
}

func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		DPI:         DefaultDPI,
		JPEGQuality: DefaultJPEGQuality,
		WriteText:   true,
	}
}

type ExportStats struct {
	Pages          int
	ImagesWritten  int
	ImagesExisting int
	TextsWritten   int
	TextsExisting  int
	BlankPages     int
}

type Exporter struct {
	logger *logger.Logger
}

func NewExporter(logger *logger.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// SlidePath returns <lectureDir>/<sub>/Slide <page>.<ext> with 1-based pages.
func SlidePath(lectureDir, sub string, page int, ext string) string {
	return filepath.Join(lectureDir, sub, fmt.Sprintf(slideStemFormat, page)+ext)
}

// ExportDeck renders every page of deckPath into lectureDir/Images and,
// when requested, its text layer into lectureDir/Texts.
func (e *Exporter) ExportDeck(ctx context.Context, deckPath, lectureDir string, opts ExportOptions) (ExportStats, error) {
	var st ExportStats

	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = DefaultJPEGQuality
	}

	e.logger.Info("Exporting deck: %s", deckPath)
	e.logPageDims(deckPath)

	doc, err := fitz.New(deckPath)
	if err != nil {
		return st, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if err := utils.EnsureDir(filepath.Join(lectureDir, scanner.ImagesDirName)); err != nil {
		return st, err
	}
	if opts.WriteText {
		if err := utils.EnsureDir(filepath.Join(lectureDir, scanner.TextsDirName)); err != nil {
			return st, err
		}
	}

	st.Pages = doc.NumPage()

	// fitz pages are zero indexed, slide files are 1-based.
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		default:
		}

		slide := pageNum + 1
		imagePath := SlidePath(lectureDir, scanner.ImagesDirName, slide, ".jpg")
		if !opts.Overwrite && exists(imagePath) {
			st.ImagesExisting++
			e.logger.Debug("Keeping existing %s", imagePath)
		} else {
			img, err := doc.ImageDPI(pageNum, opts.DPI)
			if err != nil {
				return st, fmt.Errorf("failed to extract image for page %d: %w", slide, err)
			}
			if err := saveJPEG(img, imagePath, opts.JPEGQuality); err != nil {
				return st, fmt.Errorf("failed to save image for page %d: %w", slide, err)
			}
			st.ImagesWritten++
			e.logger.Trace("Wrote %s", imagePath)
		}

		if !opts.WriteText {
			continue
		}

		textPath := SlidePath(lectureDir, scanner.TextsDirName, slide, scanner.TextExt)
		if exists(textPath) {
			st.TextsExisting++
			continue
		}
		text, err := doc.Text(pageNum)
		if err != nil {
			e.logger.Warn("Couldn't extract text from page %d: %v", slide, err)
			st.BlankPages++
			continue
		}
		text = stats.CleanText(text)
		if text == "" {
			st.BlankPages++
			continue
		}
		if err := os.WriteFile(textPath, []byte(text+"\n"), 0644); err != nil {
			return st, fmt.Errorf("failed to write text for page %d: %w", slide, err)
		}
		st.TextsWritten++
	}

	e.logger.Info("Exported %d pages (%d images written, %d texts written)", st.Pages, st.ImagesWritten, st.TextsWritten)
	return st, nil
}

func (e *Exporter) logPageDims(deckPath string) {
	dims, err := api.PageDimsFile(deckPath)
	if err != nil {
		e.logger.Debug("Couldn't read page dimensions of %s: %v", deckPath, err)
		return
	}
	for i, dim := range dims {
		e.logger.Debug("Page %d dimensions: %.2f x %.2f points", i+1, dim.Width, dim.Height)
	}
}

// BundleFigures imports each image as one page of outFile.
func (e *Exporter) BundleFigures(images []string, outFile string) error {
	var pages []string
	for _, img := range images {
		if strings.EqualFold(filepath.Ext(img), ".png") || strings.EqualFold(filepath.Ext(img), ".jpg") {
			pages = append(pages, img)
		}
	}
	if len(pages) == 0 {
		return errors.New("no images to bundle")
	}

	if err := utils.EnsureParentDir(outFile); err != nil {
		return err
	}
	// ImportImagesFile appends to an existing file.
	if err := os.Remove(outFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to replace %s: %w", outFile, err)
	}
	if err := api.ImportImagesFile(pages, outFile, nil, nil); err != nil {
		return fmt.Errorf("failed to bundle figures into %s: %w", outFile, err)
	}
	e.logger.Debug("Bundled %d figures into %s", len(pages), outFile)
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func saveJPEG(img image.Image, path string, quality int) error {
	return imaging.Save(img, path, imaging.JPEGQuality(quality))
}
