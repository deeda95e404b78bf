package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kpauljoseph/medislate/internal/stats"
	"github.com/kpauljoseph/medislate/pkg/logger"
	"github.com/kpauljoseph/medislate/pkg/models"
	"github.com/kpauljoseph/medislate/pkg/utils"
)

const (
	ImagesDirName = "Images"
	TextsDirName  = "Texts"
	TextExt       = ".txt"
)

var ErrDatasetNotFound = errors.New("dataset root not found")

type DatasetScanner struct {
	logger    *logger.Logger
	imageExts []string
}

type numberedEntry struct {
	name   string
	number int
}

// New returns a scanner that pairs texts with images carrying one of
// imageExts, tried in order. With no extensions only ".jpg" is accepted.
func New(logger *logger.Logger, imageExts ...string) *DatasetScanner {
	if len(imageExts) == 0 {
		imageExts = []string{".jpg"}
	}
	exts := make([]string, len(imageExts))
	for i, ext := range imageExts {
		exts[i] = strings.ToLower(ext)
	}
	return &DatasetScanner{
		logger:    logger,
		imageExts: exts,
	}
}

// Load walks root and returns its lectures ordered by lecture number, each
// holding only the slides that have both a text and an image.
func (s *DatasetScanner) Load(ctx context.Context, root string) (*models.Dataset, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat dataset root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset root %s is not a directory", root)
	}

	s.logger.Info("Scanning dataset root: %s", root)

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset root %s: %w", root, err)
	}

	ds := &models.Dataset{Root: root}

	var lectureDirs []numberedEntry
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		n, ok := utils.NumericSuffix(entry.Name())
		if !ok {
			s.skip(ds, models.SkippedItem{
				Item:   entry.Name(),
				Path:   filepath.Join(root, entry.Name()),
				Reason: models.SkipNoNumber,
			})
			continue
		}
		lectureDirs = append(lectureDirs, numberedEntry{name: entry.Name(), number: n})
	}
	sortNumbered(lectureDirs)

	for _, dir := range lectureDirs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lecture, err := s.loadLecture(ctx, ds, filepath.Join(root, dir.name), dir)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("Loaded %s with %d slides", lecture.ID, len(lecture.Slides))
		ds.Lectures = append(ds.Lectures, lecture)
	}

	s.logger.Info("Loaded %d lectures, %d slides (%d entries skipped)",
		len(ds.Lectures), ds.SlideCount(), len(ds.Skipped))

	return ds, nil
}

func (s *DatasetScanner) loadLecture(ctx context.Context, ds *models.Dataset, dir string, entry numberedEntry) (models.Lecture, error) {
	lecture := models.Lecture{
		ID:     entry.name,
		Number: entry.number,
		Dir:    dir,
	}

	imagesDir := filepath.Join(dir, ImagesDirName)
	textsDir := filepath.Join(dir, TextsDirName)

	images, err := s.indexImages(imagesDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return lecture, fmt.Errorf("failed to read images of %s: %w", lecture.ID, err)
		}
		s.skip(ds, models.SkippedItem{Lecture: lecture.ID, Item: ImagesDirName, Path: imagesDir, Reason: models.SkipMissingImagesDir})
	}

	textEntries, err := os.ReadDir(textsDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return lecture, fmt.Errorf("failed to read texts of %s: %w", lecture.ID, err)
		}
		s.skip(ds, models.SkippedItem{Lecture: lecture.ID, Item: TextsDirName, Path: textsDir, Reason: models.SkipMissingTextsDir})
	}

	var texts []numberedEntry
	textStems := make(map[string]struct{})
	for _, te := range textEntries {
		if te.IsDir() || !strings.EqualFold(filepath.Ext(te.Name()), TextExt) {
			continue
		}
		stem := utils.Stem(te.Name())
		textStems[stem] = struct{}{}
		n, ok := utils.NumericSuffix(stem)
		if !ok {
			s.skip(ds, models.SkippedItem{Lecture: lecture.ID, Item: stem, Path: filepath.Join(textsDir, te.Name()), Reason: models.SkipNoNumber})
			continue
		}
		texts = append(texts, numberedEntry{name: te.Name(), number: n})
	}
	sortNumbered(texts)

	for _, te := range texts {
		select {
		case <-ctx.Done():
			return lecture, ctx.Err()
		default:
		}

		stem := utils.Stem(te.name)
		textPath := filepath.Join(textsDir, te.name)
		imagePath, ok := images[stem]
		if !ok {
			s.skip(ds, models.SkippedItem{Lecture: lecture.ID, Item: stem, Path: textPath, Reason: models.SkipMissingImage})
			continue
		}

		raw, err := os.ReadFile(textPath)
		if err != nil {
			return lecture, fmt.Errorf("failed to read %s: %w", textPath, err)
		}

		s.logger.Trace("Paired %s / %s", lecture.ID, stem)
		lecture.Slides = append(lecture.Slides, models.Slide{
			ID:        stem,
			Number:    te.number,
			ImagePath: imagePath,
			TextPath:  textPath,
			Text:      stats.CleanText(string(raw)),
		})
	}

	orphans := make([]string, 0)
	for stem := range images {
		if _, ok := textStems[stem]; !ok {
			orphans = append(orphans, stem)
		}
	}
	sort.Strings(orphans)
	for _, stem := range orphans {
		s.skip(ds, models.SkippedItem{Lecture: lecture.ID, Item: stem, Path: images[stem], Reason: models.SkipMissingText})
	}

	return lecture, nil
}

// indexImages maps slide stem to image path, preferring extensions in the
// order they were configured.
func (s *DatasetScanner) indexImages(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return map[string]string{}, err
	}

	rank := make(map[string]int, len(s.imageExts))
	for i, ext := range s.imageExts {
		if _, seen := rank[ext]; !seen {
			rank[ext] = i
		}
	}

	images := make(map[string]string)
	best := make(map[string]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		r, ok := rank[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			continue
		}
		stem := utils.Stem(entry.Name())
		if prev, seen := best[stem]; seen && prev <= r {
			continue
		}
		best[stem] = r
		images[stem] = filepath.Join(dir, entry.Name())
	}
	return images, nil
}

func (s *DatasetScanner) skip(ds *models.Dataset, item models.SkippedItem) {
	s.logger.Warn("Skipping %s: %s (%s)", item.Path, item.Reason, item.Lecture)
	ds.Skipped = append(ds.Skipped, item)
}

func sortNumbered(entries []numberedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].number != entries[j].number {
			return entries[i].number < entries[j].number
		}
		return entries[i].name < entries[j].name
	})
}
