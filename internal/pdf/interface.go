package pdf

import (
	"context"
)

// SlideExporter turns a lecture deck into per-slide images and texts.
type SlideExporter interface {
	ExportDeck(ctx context.Context, deckPath, lectureDir string, opts ExportOptions) (ExportStats, error)
}

// FigureBundler collects rendered figures into a single PDF.
type FigureBundler interface {
	BundleFigures(images []string, outFile string) error
}

var (
	_ SlideExporter = (*Exporter)(nil)
	_ FigureBundler = (*Exporter)(nil)
)
