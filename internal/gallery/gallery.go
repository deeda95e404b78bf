package gallery

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/kpauljoseph/medislate/internal/figures"
	"github.com/kpauljoseph/medislate/pkg/logger"
	"github.com/kpauljoseph/medislate/pkg/models"
	"github.com/kpauljoseph/medislate/pkg/utils"
)

const (
	FileName = "fig_gallery.png"

	captionHeight = 28
	captionSize   = 13
	cellPadding   = 8
)

var ErrNoImages = errors.New("no slide images to sample")

type Options struct {
	Size        int
	Columns     int
	ThumbWidth  int
	ThumbHeight int
	// Seed 0 picks a time-based seed.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		Size:        25,
		Columns:     5,
		ThumbWidth:  320,
		ThumbHeight: 240,
	}
}

type Result struct {
	Path    string
	Seed    uint64
	Sampled []models.CaptionedImage
}

type Builder struct {
	opts   Options
	logger *logger.Logger
}

func NewBuilder(opts Options, logger *logger.Logger) *Builder {
	return &Builder{opts: opts, logger: logger}
}

// NewRand returns a PCG source seeded with seed, or with the clock when seed is 0.
func NewRand(seed int64) (*rand.Rand, uint64) {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)), s
}

// Sample picks min(n, len(items)) distinct items uniformly at random and
// returns them in their original order.
func Sample(items []models.CaptionedImage, n int, rng *rand.Rand) []models.CaptionedImage {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}

	picked := rng.Perm(len(items))[:n]
	sort.Ints(picked)

	out := make([]models.CaptionedImage, n)
	for i, idx := range picked {
		out[i] = items[idx]
	}
	return out
}

// Build samples slide images and writes them as a captioned grid to path.
func (b *Builder) Build(ctx context.Context, items []models.CaptionedImage, path string) (*Result, error) {
	if len(items) == 0 {
		return nil, ErrNoImages
	}
	if b.opts.Columns <= 0 || b.opts.ThumbWidth <= 0 || b.opts.ThumbHeight <= 0 {
		return nil, fmt.Errorf("invalid gallery layout: %d columns of %dx%d", b.opts.Columns, b.opts.ThumbWidth, b.opts.ThumbHeight)
	}

	rng, seed := NewRand(b.opts.Seed)
	sampled := Sample(items, b.opts.Size, rng)
	if len(sampled) < b.opts.Size {
		b.logger.Warn("Requested %d gallery images but only %d are available", b.opts.Size, len(sampled))
	}
	b.logger.Debug("Gallery seed %d, %d images", seed, len(sampled))

	// Unreadable images are dropped before layout so every cell has a thumbnail.
	var (
		placed []models.CaptionedImage
		thumbs []image.Image
	)
	for _, item := range sampled {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		thumb, err := b.thumbnail(item.Path)
		if err != nil {
			b.logger.Warn("Skipping unreadable image %s: %v", item.Path, err)
			continue
		}
		placed = append(placed, item)
		thumbs = append(thumbs, thumb)
	}
	if len(placed) == 0 {
		return nil, fmt.Errorf("%w: none of %d sampled images could be read", ErrNoImages, len(sampled))
	}

	cols := b.opts.Columns
	if cols > len(placed) {
		cols = len(placed)
	}
	rows := (len(placed) + cols - 1) / cols
	cellW := b.opts.ThumbWidth + 2*cellPadding
	cellH := b.opts.ThumbHeight + captionHeight + 2*cellPadding

	canvas := imaging.New(cols*cellW, rows*cellH, color.White)
	for i, thumb := range thumbs {
		x := (i%cols)*cellW + cellPadding
		y := (i/cols)*cellH + cellPadding
		// Centre the fitted thumbnail inside its cell.
		offset := image.Pt(
			x+(b.opts.ThumbWidth-thumb.Bounds().Dx())/2,
			y+(b.opts.ThumbHeight-thumb.Bounds().Dy())/2,
		)
		canvas = imaging.Paste(canvas, thumb, offset)
	}

	dc := gg.NewContextForImage(canvas)
	dc.SetFontFace(figures.NewFontCache(false).Face(captionSize))
	dc.SetColor(color.Black)
	for i, item := range placed {
		cx := float64((i%cols)*cellW + cellW/2)
		cy := float64((i/cols)*cellH + cellPadding + b.opts.ThumbHeight + captionHeight/2)
		dc.DrawStringAnchored(item.Caption, cx, cy, 0.5, 0.5)
	}

	if err := utils.EnsureParentDir(path); err != nil {
		return nil, err
	}
	if err := dc.SavePNG(path); err != nil {
		return nil, fmt.Errorf("failed to save gallery %s: %w", path, err)
	}

	return &Result{Path: path, Seed: seed, Sampled: placed}, nil
}

func (b *Builder) thumbnail(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	b.logger.Trace("Loaded %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	return imaging.Fit(img, b.opts.ThumbWidth, b.opts.ThumbHeight, imaging.Lanczos), nil
}
