package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/kpauljoseph/medislate/internal/config"
	"github.com/kpauljoseph/medislate/internal/diagram"
	"github.com/kpauljoseph/medislate/internal/export"
	"github.com/kpauljoseph/medislate/internal/figures"
	"github.com/kpauljoseph/medislate/internal/gallery"
	"github.com/kpauljoseph/medislate/internal/latex"
	"github.com/kpauljoseph/medislate/internal/pdf"
	"github.com/kpauljoseph/medislate/internal/scanner"
	"github.com/kpauljoseph/medislate/internal/stats"
	"github.com/kpauljoseph/medislate/pkg/logger"
	"github.com/kpauljoseph/medislate/pkg/models"
)

// Output layout under the configured output directory.
const (
	DataDir    = "data"
	TablesDir  = "tables"
	FiguresDir = "figures"
	GalleryDir = "gallery"
	BundleFile = "figures.pdf"
	LogFile    = "pipeline.log"
)

type Pipeline struct {
	cfg      *config.Config
	logger   *logger.Logger
	scanner  *scanner.DatasetScanner
	exporter *pdf.Exporter
	keywords *stats.KeywordSet
}

func New(cfg *config.Config, logger *logger.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	keywords, err := stats.KeywordsFor(cfg.KeywordSet, cfg.Keywords)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:      cfg,
		logger:   logger,
		scanner:  scanner.New(logger, cfg.ImageExtensions...),
		exporter: pdf.NewExporter(logger),
		keywords: keywords,
	}, nil
}

func (p *Pipeline) NewReport() *Report {
	return NewReport(p.cfg.DatasetRoot, p.cfg.OutputDir)
}

func (p *Pipeline) outPath(parts ...string) string {
	return filepath.Join(append([]string{p.cfg.OutputDir}, parts...)...)
}

// Run executes every stage in order and writes dataset_report.json.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := p.NewReport()
	p.logger.Info("Starting run %s", report.RunID)

	result, ds, err := p.Stats(ctx, report)
	if err != nil {
		return report, err
	}
	if err := p.Tables(result, report); err != nil {
		return report, err
	}
	if err := p.Figures(result, report); err != nil {
		return report, err
	}
	if err := p.Gallery(ctx, ds, report); err != nil {
		if !errors.Is(err, gallery.ErrNoImages) {
			return report, err
		}
		p.logger.Warn("No images found for gallery, skipping")
	}
	if err := p.Diagram(report); err != nil {
		return report, err
	}
	if p.cfg.Figures.BundlePDF {
		if err := p.Bundle(report); err != nil {
			return report, err
		}
	}

	report.EndTime = time.Now()
	if err := p.WriteReport(report); err != nil {
		return report, err
	}
	return report, nil
}

// Load reads the dataset tree and records skipped items on report.
func (p *Pipeline) Load(ctx context.Context, report *Report) (*models.Dataset, error) {
	p.logger.Info("Scanning dataset: %s", p.cfg.DatasetRoot)
	ds, err := p.scanner.Load(ctx, p.cfg.DatasetRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	p.logger.Info("Found %d lectures with %d slides", len(ds.Lectures), ds.SlideCount())
	report.Skipped = append(report.Skipped, ds.Skipped...)
	return ds, nil
}

// Stats loads the dataset, aggregates it and writes the CSV and JSON data files.
func (p *Pipeline) Stats(ctx context.Context, report *Report) (*stats.Result, *models.Dataset, error) {
	ds, err := p.Load(ctx, report)
	if err != nil {
		return nil, nil, err
	}

	agg := stats.NewAggregator(p.keywords)
	for _, lecture := range ds.Lectures {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}
		rollup := agg.AddLecture(lecture)
		p.logger.Debug("%s: %d slides, %d tokens, vocab %d", rollup.Lecture, rollup.Slides, rollup.Tokens, rollup.VocabSize)
	}
	result := agg.Result()
	report.Summary = result.Summary()

	slidePath := p.outPath(DataDir, export.SlideStatsFile)
	if err := export.WriteSlideStats(slidePath, result.Slides, result.Keywords); err != nil {
		return nil, nil, fmt.Errorf("failed to write slide stats: %w", err)
	}
	lecturePath := p.outPath(DataDir, export.LectureStatsFile)
	if err := export.WriteLectureStats(lecturePath, result.Lectures); err != nil {
		return nil, nil, fmt.Errorf("failed to write lecture stats: %w", err)
	}
	vocabPath := p.outPath(DataDir, export.VocabularyFile)
	if err := export.WriteJSON(vocabPath, result.Vocabulary); err != nil {
		return nil, nil, fmt.Errorf("failed to write vocabulary: %w", err)
	}
	report.AddArtifacts(slidePath, lecturePath, vocabPath)

	p.logger.Info("Saved statistics to %s", p.outPath(DataDir))
	return result, ds, nil
}

// LoadStats rebuilds a stats result from the data files of an earlier run.
func (p *Pipeline) LoadStats() (*stats.Result, error) {
	slides, keywords, err := export.ReadSlideStats(p.outPath(DataDir, export.SlideStatsFile))
	if err != nil {
		return nil, err
	}
	lectures, err := export.ReadLectureStats(p.outPath(DataDir, export.LectureStatsFile))
	if err != nil {
		return nil, err
	}
	vocab, err := export.ReadVocabulary(p.outPath(DataDir, export.VocabularyFile))
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Loaded %d slide rows and %d lecture rows", len(slides), len(lectures))
	return stats.FromRecords(slides, lectures, vocab, keywords), nil
}

func (p *Pipeline) Tables(result *stats.Result, report *Report) error {
	report.Summary = result.Summary()
	paths, err := latex.WriteTables(p.outPath(TablesDir), report.Summary, result.Lectures)
	if err != nil {
		return fmt.Errorf("failed to write tables: %w", err)
	}
	report.AddArtifacts(paths...)
	p.logger.Info("Saved LaTeX tables to %s", p.outPath(TablesDir))
	return nil
}

func (p *Pipeline) figureOptions() figures.Options {
	opts := figures.DefaultOptions()
	opts.WidthInches = p.cfg.Figures.WidthInches
	opts.HeightInches = p.cfg.Figures.HeightInches
	opts.TokenBins = p.cfg.Figures.TokenBins
	opts.SentenceBins = p.cfg.Figures.SentenceBins
	opts.TopKeywords = p.cfg.TopKeywords
	opts.WordCloud.Width = p.cfg.WordCloud.Width
	opts.WordCloud.Height = p.cfg.WordCloud.Height
	opts.WordCloud.MaxWords = p.cfg.WordCloud.MaxWords
	return opts
}

func (p *Pipeline) Figures(result *stats.Result, report *Report) error {
	renderer, err := figures.NewRenderer(p.outPath(FiguresDir), p.figureOptions(), p.logger)
	if err != nil {
		return err
	}
	paths, err := renderer.RenderAll(result)
	report.AddArtifacts(paths...)
	if err != nil {
		return err
	}
	p.logger.Info("Saved %d figures to %s", len(paths), p.outPath(FiguresDir))
	return nil
}

func (p *Pipeline) Gallery(ctx context.Context, ds *models.Dataset, report *Report) error {
	opts := gallery.Options{
		Size:        p.cfg.Gallery.Size,
		Columns:     p.cfg.Gallery.Columns,
		ThumbWidth:  p.cfg.Gallery.ThumbWidth,
		ThumbHeight: p.cfg.Gallery.ThumbHeight,
		Seed:        p.cfg.Gallery.Seed,
	}
	result, err := gallery.NewBuilder(opts, p.logger).Build(ctx, ds.Slides(), p.outPath(GalleryDir, gallery.FileName))
	if err != nil {
		return err
	}
	report.GallerySeed = result.Seed
	report.AddArtifacts(result.Path)
	p.logger.Info("Saved gallery of %d slides to %s", len(result.Sampled), result.Path)
	return nil
}

func (p *Pipeline) Diagram(report *Report) error {
	g := diagram.DataCollection()
	dotPath := p.outPath(FiguresDir, diagram.DOTFile)
	pngPath := p.outPath(FiguresDir, diagram.PNGFile)
	if err := g.WriteDOT(dotPath); err != nil {
		return err
	}
	if err := g.RenderPNG(pngPath); err != nil {
		return err
	}
	report.AddArtifacts(dotPath, pngPath)
	p.logger.Info("Saved pipeline diagram to %s", pngPath)
	return nil
}

// Bundle collects every PNG artifact of report into figures.pdf.
func (p *Pipeline) Bundle(report *Report) error {
	out := p.outPath(BundleFile)
	if err := p.exporter.BundleFigures(report.Artifacts, out); err != nil {
		return err
	}
	report.AddArtifacts(out)
	p.logger.Info("Bundled figures into %s", out)
	return nil
}

func (p *Pipeline) WriteReport(report *Report) error {
	if report.EndTime.IsZero() {
		report.EndTime = time.Now()
	}
	path := p.outPath(DataDir, export.ReportFile)
	if err := export.WriteJSON(path, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ExportDeck renders a lecture deck into lectureDir.
func (p *Pipeline) ExportDeck(ctx context.Context, deckPath, lectureDir string, opts pdf.ExportOptions) (pdf.ExportStats, error) {
	return p.exporter.ExportDeck(ctx, deckPath, lectureDir, opts)
}

// CopyLectures copies lectures first..last from src into dst.
func (p *Pipeline) CopyLectures(ctx context.Context, src, dst string, first, last int) (scanner.CopyStats, error) {
	return p.scanner.CopyLectures(ctx, src, dst, first, last, scanner.DefaultCopyFolders)
}
