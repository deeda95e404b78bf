package figures

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/kpauljoseph/medislate/internal/stats"
	"github.com/kpauljoseph/medislate/pkg/models"
	"github.com/kpauljoseph/medislate/pkg/utils"
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "can", "do", "for",
		"from", "has", "have", "he", "her", "his", "how", "i", "if", "in", "into",
		"is", "it", "its", "just", "let", "me", "more", "my", "no", "not", "now",
		"of", "on", "one", "or", "our", "out", "she", "so", "some", "such",
		"than", "that", "the", "their", "them", "then", "there", "these", "they",
		"this", "those", "to", "too", "up", "us", "very", "was", "we", "were",
		"what", "when", "where", "which", "while", "who", "why", "will", "with",
		"would", "you", "your", "also", "all", "any", "each", "other", "here",
		"okay", "ok", "yes", "like", "going", "get", "got", "see", "say",
	} {
		stopWords[w] = struct{}{}
	}
}

var cloudPalette = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 23, G: 190, B: 207, A: 255},
	color.RGBA{R: 140, G: 86, B: 75, A: 255},
}

type WordCloudOptions struct {
	Width       int
	Height      int
	MaxWords    int
	MinFontSize float64
	MaxFontSize float64
}

func DefaultWordCloudOptions() WordCloudOptions {
	return WordCloudOptions{
		Width:       1600,
		Height:      900,
		MaxWords:    200,
		MinFontSize: 12,
		MaxFontSize: 120,
	}
}

// PlacedWord is a word with its font size and top-left box.
type PlacedWord struct {
	Word  string
	Count int
	Size  float64
	X, Y  float64
	W, H  float64
}

func (p PlacedWord) overlaps(o PlacedWord) bool {
	return p.X < o.X+o.W && o.X < p.X+p.W && p.Y < o.Y+o.H && o.Y < p.Y+p.H
}

// MeasureFunc reports the rendered width and height of word at size.
type MeasureFunc func(word string, size float64) (float64, float64)

// CloudWords drops stop words and returns the most frequent remaining terms.
func CloudWords(vocab stats.Vocabulary, max int) []models.KeywordCount {
	filtered := make(stats.Vocabulary, len(vocab))
	for term, n := range vocab {
		if _, stop := stopWords[term]; stop {
			continue
		}
		filtered[term] = n
	}
	return filtered.Top(max)
}

// LayoutWordCloud places words largest first along an Archimedean spiral
// from the canvas centre. Words that do not fit even at the minimum size
// are dropped. The layout is deterministic for a given input.
func LayoutWordCloud(words []models.KeywordCount, opts WordCloudOptions, measure MeasureFunc) []PlacedWord {
	if len(words) == 0 {
		return nil
	}

	width, height := float64(opts.Width), float64(opts.Height)
	cx, cy := width/2, height/2
	aspect := height / width
	maxCount, minCount := float64(words[0].Count), float64(words[len(words)-1].Count)

	placed := make([]PlacedWord, 0, len(words))
	for _, wc := range words {
		// Equal counts start mid-range so a flat vocabulary still fills the canvas.
		size := (opts.MinFontSize + opts.MaxFontSize) / 2
		if maxCount > minCount {
			frac := (float64(wc.Count) - minCount) / (maxCount - minCount)
			size = opts.MinFontSize + frac*(opts.MaxFontSize-opts.MinFontSize)
		}

		for ; size >= opts.MinFontSize; size *= 0.8 {
			w, h := measure(wc.Term, size)
			if pw, ok := spiralFit(placed, wc, size, w, h, cx, cy, width, height, aspect); ok {
				placed = append(placed, pw)
				break
			}
		}
	}
	return placed
}

func spiralFit(placed []PlacedWord, wc models.KeywordCount, size, w, h, cx, cy, width, height, aspect float64) (PlacedWord, bool) {
	if w > width || h > height {
		return PlacedWord{}, false
	}
	maxRadius := math.Hypot(width, height) / 2
	for t := 0.0; ; t += 0.1 {
		radius := 2 * t
		if radius > maxRadius {
			return PlacedWord{}, false
		}
		candidate := PlacedWord{
			Word:  wc.Term,
			Count: wc.Count,
			Size:  size,
			X:     cx + radius*math.Cos(t) - w/2,
			Y:     cy + radius*aspect*math.Sin(t) - h/2,
			W:     w,
			H:     h,
		}
		if candidate.X < 0 || candidate.Y < 0 || candidate.X+w > width || candidate.Y+h > height {
			continue
		}
		free := true
		for _, p := range placed {
			if candidate.overlaps(p) {
				free = false
				break
			}
		}
		if free {
			return candidate, true
		}
	}
}

// RenderWordCloud draws the vocabulary as a word cloud PNG on a white canvas.
func RenderWordCloud(path string, vocab stats.Vocabulary, opts WordCloudOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid word cloud size %dx%d", opts.Width, opts.Height)
	}
	if opts.MinFontSize <= 0 {
		opts.MinFontSize = DefaultWordCloudOptions().MinFontSize
	}
	if opts.MaxFontSize < opts.MinFontSize {
		opts.MaxFontSize = opts.MinFontSize
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(color.White)
	dc.Clear()

	fonts := NewFontCache(true)
	measure := func(word string, size float64) (float64, float64) {
		dc.SetFontFace(fonts.Face(size))
		return dc.MeasureString(word)
	}

	layout := LayoutWordCloud(CloudWords(vocab, opts.MaxWords), opts, measure)
	for i, pw := range layout {
		dc.SetFontFace(fonts.Face(pw.Size))
		dc.SetColor(cloudPalette[i%len(cloudPalette)])
		dc.DrawStringAnchored(pw.Word, pw.X+pw.W/2, pw.Y+pw.H/2, 0.5, 0.5)
	}

	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
