package figures

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/kpauljoseph/medislate/internal/stats"
	"github.com/kpauljoseph/medislate/pkg/logger"
	"github.com/kpauljoseph/medislate/pkg/models"
	"github.com/kpauljoseph/medislate/pkg/utils"
)

const (
	TokenDistributionFile    = "fig_token_distribution.png"
	SentenceDistributionFile = "fig_sentence_distribution.png"
	SlidesPerLectureFile     = "fig_slides_per_lecture.png"
	TokensPerLectureFile     = "fig_tokens_per_lecture.png"
	TopicDistributionFile    = "fig_topic_distribution.png"
	WordCloudFile            = "fig_wordcloud.png"

	NoTermsLabel = "no-imaging-terms-found"
)

var (
	steelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	seaGreen  = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	purple    = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	slateBlue = color.RGBA{R: 106, G: 90, B: 205, A: 255}
	gray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

type Options struct {
	WidthInches  float64
	HeightInches float64
	TokenBins    int
	SentenceBins int
	TopKeywords  int
	WordCloud    WordCloudOptions
}

func DefaultOptions() Options {
	return Options{
		WidthInches:  10,
		HeightInches: 6,
		TokenBins:    40,
		SentenceBins: 30,
		TopKeywords:  20,
		WordCloud:    DefaultWordCloudOptions(),
	}
}

type Renderer struct {
	dir    string
	opts   Options
	logger *logger.Logger
}

func NewRenderer(dir string, opts Options, logger *logger.Logger) (*Renderer, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &Renderer{dir: dir, opts: opts, logger: logger}, nil
}

// RenderAll draws every figure derived from result and returns the written paths.
func (r *Renderer) RenderAll(result *stats.Result) ([]string, error) {
	steps := []struct {
		name string
		fn   func() (string, error)
	}{
		{"token distribution", func() (string, error) { return r.TokenHistogram(result.Slides) }},
		{"sentence distribution", func() (string, error) { return r.SentenceHistogram(result.Slides) }},
		{"slides per lecture", func() (string, error) { return r.SlidesPerLecture(result.Lectures) }},
		{"tokens per lecture", func() (string, error) { return r.TokensPerLecture(result.Lectures) }},
		{"topic distribution", func() (string, error) { return r.TopicDistribution(result.TopKeywords(r.opts.TopKeywords)) }},
		{"word cloud", func() (string, error) { return r.WordCloud(result.Vocabulary) }},
	}

	paths := make([]string, 0, len(steps))
	for _, step := range steps {
		path, err := step.fn()
		if err != nil {
			return paths, fmt.Errorf("failed to render %s: %w", step.name, err)
		}
		r.logger.Debug("Rendered %s: %s", step.name, path)
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Renderer) TokenHistogram(slides []models.SlideStats) (string, error) {
	values := make(plotter.Values, len(slides))
	for i, s := range slides {
		values[i] = float64(s.Tokens)
	}
	return r.histogram(values, r.opts.TokenBins, "Token Distribution per Slide", "Tokens", steelBlue, TokenDistributionFile)
}

func (r *Renderer) SentenceHistogram(slides []models.SlideStats) (string, error) {
	values := make(plotter.Values, len(slides))
	for i, s := range slides {
		values[i] = float64(s.Sentences)
	}
	return r.histogram(values, r.opts.SentenceBins, "Sentence Distribution per Slide", "Sentences", seaGreen, SentenceDistributionFile)
}

func (r *Renderer) SlidesPerLecture(lectures []models.LectureStats) (string, error) {
	labels := make([]string, len(lectures))
	values := make(plotter.Values, len(lectures))
	for i, l := range lectures {
		labels[i] = l.Lecture
		values[i] = float64(l.Slides)
	}
	return r.bars(labels, values, "Slides per Lecture", "Slides", purple, SlidesPerLectureFile)
}

func (r *Renderer) TokensPerLecture(lectures []models.LectureStats) (string, error) {
	labels := make([]string, len(lectures))
	values := make(plotter.Values, len(lectures))
	for i, l := range lectures {
		labels[i] = l.Lecture
		values[i] = float64(l.Tokens)
	}
	return r.bars(labels, values, "Token Count per Lecture", "Tokens", seaGreen, TokensPerLectureFile)
}

// TopicDistribution charts keyword frequencies. With no hits it draws a
// single placeholder bar instead of an empty axis.
func (r *Renderer) TopicDistribution(top []models.KeywordCount) (string, error) {
	if len(top) == 0 {
		return r.bars([]string{NoTermsLabel}, plotter.Values{1}, "No Recognized Imaging Terms Detected", "Count", gray, TopicDistributionFile)
	}
	labels := make([]string, len(top))
	values := make(plotter.Values, len(top))
	for i, kc := range top {
		labels[i] = kc.Term
		values[i] = float64(kc.Count)
	}
	return r.bars(labels, values, "Top Imaging Terms in the Dataset", "Count", slateBlue, TopicDistributionFile)
}

func (r *Renderer) WordCloud(vocab stats.Vocabulary) (string, error) {
	path := filepath.Join(r.dir, WordCloudFile)
	if err := RenderWordCloud(path, vocab, r.opts.WordCloud); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Renderer) histogram(values plotter.Values, bins int, title, xlabel string, fill color.Color, name string) (string, error) {
	if len(values) == 0 {
		r.logger.Warn("No data for %q, drawing an empty chart", title)
		return r.bars([]string{"no-data"}, plotter.Values{0}, title+" (no data)", "Count", gray, name)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return "", err
	}
	h.FillColor = fill
	h.LineStyle.Color = color.White
	p.Add(h)

	return r.save(p, name)
}

func (r *Renderer) bars(labels []string, values plotter.Values, title, ylabel string, fill color.Color, name string) (string, error) {
	if len(values) == 0 {
		r.logger.Warn("No data for %q, drawing an empty chart", title)
		labels, values, fill = []string{"no-data"}, plotter.Values{0}, gray
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel

	width := r.barWidth(len(values))
	b, err := plotter.NewBarChart(values, width)
	if err != nil {
		return "", err
	}
	b.Color = fill
	b.LineStyle.Width = 0
	p.Add(b)
	p.NominalX(labels...)

	if len(labels) > 6 {
		p.X.Tick.Label.Rotation = math.Pi / 3
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	return r.save(p, name)
}

// barWidth spreads bars over roughly 80% of the plot width.
func (r *Renderer) barWidth(n int) vg.Length {
	if n < 1 {
		n = 1
	}
	w := vg.Length(r.opts.WidthInches) * vg.Inch * 0.8 / vg.Length(n) * 0.7
	if w > vg.Points(40) {
		w = vg.Points(40)
	}
	if w < vg.Points(2) {
		w = vg.Points(2)
	}
	return w
}

func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	path := filepath.Join(r.dir, name)
	width := vg.Length(r.opts.WidthInches) * vg.Inch
	height := vg.Length(r.opts.HeightInches) * vg.Inch
	if err := p.Save(width, height, path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}
