package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/kpauljoseph/medislate/pkg/logger"
	"github.com/kpauljoseph/medislate/pkg/models"
	"github.com/kpauljoseph/medislate/pkg/version"
)

// Report describes one pipeline run and is written to dataset_report.json.
type Report struct {
	RunID       string               `json:"run_id"`
	Version     string               `json:"version"`
	DatasetRoot string               `json:"dataset_root"`
	OutputDir   string               `json:"output_dir"`
	StartTime   time.Time            `json:"start_time"`
	EndTime     time.Time            `json:"end_time"`
	Summary     models.Summary       `json:"summary"`
	Skipped     []models.SkippedItem `json:"skipped"`
	GallerySeed uint64               `json:"gallery_seed,omitempty"`
	Artifacts   []string             `json:"artifacts"`
}

func NewReport(datasetRoot, outputDir string) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		Version:     version.Version,
		DatasetRoot: datasetRoot,
		OutputDir:   outputDir,
		StartTime:   time.Now(),
		Skipped:     []models.SkippedItem{},
		Artifacts:   []string{},
	}
}

func (r *Report) AddArtifacts(paths ...string) {
	r.Artifacts = append(r.Artifacts, paths...)
}

func (r *Report) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

func (r *Report) Print(log *logger.Logger) {
	log.Info("%s run %s complete in %s", version.GetVersionInfo(), r.RunID, r.Duration().Round(time.Millisecond))
	log.Info("- Lectures: %d", r.Summary.TotalLectures)
	log.Info("- Slides: %d", r.Summary.TotalSlides)
	log.Info("- Tokens: %d", r.Summary.TotalTokens)
	log.Info("- Sentences: %d", r.Summary.TotalSentences)
	log.Info("- Vocabulary size: %d", r.Summary.VocabularySize)
	if len(r.Skipped) > 0 {
		log.Info("- Skipped items: %d", len(r.Skipped))
	}
	log.Info("- Artifacts written: %d", len(r.Artifacts))
	for _, a := range r.Artifacts {
		log.Debug("  %s", a)
	}
	log.Info("- Outputs saved to: %s", r.OutputDir)
}
