package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kpauljoseph/medislate/internal/stats"
	"github.com/kpauljoseph/medislate/pkg/models"
	"github.com/kpauljoseph/medislate/pkg/utils"
)

const (
	SlideStatsFile   = "per_slide_stats.csv"
	LectureStatsFile = "per_lecture_stats.csv"
	VocabularyFile   = "vocabulary_stats.json"
	ReportFile       = "dataset_report.json"
)

var (
	slideColumns   = []string{"lecture", "lecture_num", "slide_id", "slide_num", "num_tokens", "num_sentences", "vocab_size", "keyword_hits"}
	lectureColumns = []string{"lecture", "lecture_num", "num_slides", "num_tokens", "vocab_size"}
)

// WriteSlideStats writes one row per slide, followed by one column per keyword.
func WriteSlideStats(path string, slides []models.SlideStats, keywords []string) error {
	header := append(append([]string{}, slideColumns...), keywords...)
	rows := make([][]string, 0, len(slides))
	for _, s := range slides {
		row := []string{
			s.Lecture,
			strconv.Itoa(s.LectureNum),
			s.SlideID,
			strconv.Itoa(s.SlideNum),
			strconv.Itoa(s.Tokens),
			strconv.Itoa(s.Sentences),
			strconv.Itoa(s.VocabSize),
			strconv.Itoa(s.KeywordHits),
		}
		for _, k := range keywords {
			row = append(row, strconv.Itoa(s.Keywords[k]))
		}
		rows = append(rows, row)
	}
	return writeCSV(path, header, rows)
}

func WriteLectureStats(path string, lectures []models.LectureStats) error {
	rows := make([][]string, 0, len(lectures))
	for _, l := range lectures {
		rows = append(rows, []string{
			l.Lecture,
			strconv.Itoa(l.LectureNum),
			strconv.Itoa(l.Slides),
			strconv.Itoa(l.Tokens),
			strconv.Itoa(l.VocabSize),
		})
	}
	return writeCSV(path, lectureColumns, rows)
}

// ReadSlideStats parses a per-slide CSV. Columns after the fixed ones are
// returned as the keyword list.
func ReadSlideStats(path string) ([]models.SlideStats, []string, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	if len(header) < len(slideColumns) {
		return nil, nil, fmt.Errorf("failed to parse %s: expected at least %d columns, got %d", path, len(slideColumns), len(header))
	}
	for i, col := range slideColumns {
		if header[i] != col {
			return nil, nil, fmt.Errorf("failed to parse %s: column %d is %q, want %q", path, i+1, header[i], col)
		}
	}
	keywords := append([]string{}, header[len(slideColumns):]...)

	slides := make([]models.SlideStats, 0, len(rows))
	for n, row := range rows {
		ints, err := atoiAll(row, 1, 3, 4, 5, 6, 7)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse %s line %d: %w", path, n+2, err)
		}
		s := models.SlideStats{
			Lecture:     row[0],
			LectureNum:  ints[1],
			SlideID:     row[2],
			SlideNum:    ints[3],
			Tokens:      ints[4],
			Sentences:   ints[5],
			VocabSize:   ints[6],
			KeywordHits: ints[7],
			Keywords:    make(map[string]int, len(keywords)),
		}
		for i, k := range keywords {
			v, err := strconv.Atoi(row[len(slideColumns)+i])
			if err != nil {
				return nil, nil, fmt.Errorf("failed to parse %s line %d column %q: %w", path, n+2, k, err)
			}
			s.Keywords[k] = v
		}
		slides = append(slides, s)
	}
	return slides, keywords, nil
}

func ReadLectureStats(path string) ([]models.LectureStats, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	for i, col := range lectureColumns {
		if i >= len(header) || header[i] != col {
			return nil, fmt.Errorf("failed to parse %s: unexpected header %v", path, header)
		}
	}

	lectures := make([]models.LectureStats, 0, len(rows))
	for n, row := range rows {
		ints, err := atoiAll(row, 1, 2, 3, 4)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s line %d: %w", path, n+2, err)
		}
		lectures = append(lectures, models.LectureStats{
			Lecture:    row[0],
			LectureNum: ints[1],
			Slides:     ints[2],
			Tokens:     ints[3],
			VocabSize:  ints[4],
		})
	}
	return lectures, nil
}

// WriteJSON writes an indented JSON document.
func WriteJSON(path string, value any) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}
	content, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	content = append(content, '\n')
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func ReadVocabulary(path string) (stats.Vocabulary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	vocab := make(stats.Vocabulary)
	if err := json.Unmarshal(content, &vocab); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary %s: %w", path, err)
	}
	return vocab, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("failed to parse %s: empty file", path)
		}
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return header, rows, nil
}

// atoiAll converts the listed columns of row. The result is indexed by column.
func atoiAll(row []string, cols ...int) (map[int]int, error) {
	out := make(map[int]int, len(cols))
	for _, c := range cols {
		if c >= len(row) {
			return nil, fmt.Errorf("missing column %d", c+1)
		}
		v, err := strconv.Atoi(row[c])
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", c+1, err)
		}
		out[c] = v
	}
	return out, nil
}
