package latex

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kpauljoseph/medislate/pkg/models"
	"github.com/kpauljoseph/medislate/pkg/utils"
)

const (
	SummaryTableFile    = "table_summary.tex"
	PerLectureTableFile = "table_per_lecture.tex"
)

var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

// Escape makes text safe inside a tabular cell.
func Escape(text string) string {
	return escaper.Replace(text)
}

type tabular struct {
	sb strings.Builder
}

func newTabular(columns string, header ...string) *tabular {
	t := &tabular{}
	t.sb.WriteString("\\begin{tabular}{" + columns + "}\n")
	t.sb.WriteString("\\toprule\n")
	t.row(header...)
	t.sb.WriteString("\\midrule\n")
	return t
}

func (t *tabular) row(cells ...string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = Escape(c)
	}
	t.sb.WriteString(strings.Join(escaped, " & ") + " \\\\\n")
}

func (t *tabular) String() string {
	return t.sb.String() + "\\bottomrule\n\\end{tabular}\n"
}

func SummaryTable(s models.Summary) string {
	t := newTabular("lr", "Statistic", "Value")
	t.row("Total Lectures", strconv.Itoa(s.TotalLectures))
	t.row("Total Slides", strconv.Itoa(s.TotalSlides))
	t.row("Total Tokens", strconv.Itoa(s.TotalTokens))
	t.row("Total Sentences", strconv.Itoa(s.TotalSentences))
	t.row("Vocabulary Size", strconv.Itoa(s.VocabularySize))
	t.row("Avg Slides per Lecture", fmt.Sprintf("%.2f", s.AvgSlidesPerLecture))
	t.row("Avg Tokens per Lecture", fmt.Sprintf("%.2f", s.AvgTokensPerLecture))
	return t.String()
}

func PerLectureTable(lectures []models.LectureStats) string {
	t := newTabular("lrrr", "Lecture", "Slides", "Tokens", "Vocabulary Size")
	for _, l := range lectures {
		t.row(l.Lecture, strconv.Itoa(l.Slides), strconv.Itoa(l.Tokens), strconv.Itoa(l.VocabSize))
	}
	return t.String()
}

// WriteTables writes both snippets into dir and returns their paths.
func WriteTables(dir string, summary models.Summary, lectures []models.LectureStats) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}

	tables := []struct {
		name    string
		content string
	}{
		{SummaryTableFile, SummaryTable(summary)},
		{PerLectureTableFile, PerLectureTable(lectures)},
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.name)
		if err := os.WriteFile(path, []byte(t.content), 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
