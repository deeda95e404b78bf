package models

// Slide is one image/text pair inside a lecture.
type Slide struct {
	ID        string `json:"slide_id"`
	Number    int    `json:"slide_num"`
	ImagePath string `json:"image_path"`
	TextPath  string `json:"text_path"`
	Text      string `json:"text"`
}

// Lecture is a numbered collection of slides ordered by slide number.
type Lecture struct {
	ID     string  `json:"lecture"`
	Number int     `json:"lecture_num"`
	Dir    string  `json:"dir"`
	Slides []Slide `json:"slides"`
}

// SkippedItem records an entry the loader refused to materialize.
type SkippedItem struct {
	Lecture string `json:"lecture"`
	Item    string `json:"item"`
	Path    string `json:"path"`
	Reason  string `json:"reason"`
}

const (
	SkipMissingImage     = "missing image"
	SkipMissingText      = "missing text"
	SkipMissingTextsDir  = "missing Texts directory"
	SkipMissingImagesDir = "missing Images directory"
	SkipNoNumber         = "no number in name"
)

type Dataset struct {
	Root     string        `json:"root"`
	Lectures []Lecture     `json:"lectures"`
	Skipped  []SkippedItem `json:"skipped"`
}

func (d *Dataset) SlideCount() int {
	n := 0
	for _, l := range d.Lectures {
		n += len(l.Slides)
	}
	return n
}

// ImagePaths returns every materialized slide image in dataset order.
func (d *Dataset) ImagePaths() []string {
	paths := make([]string, 0, d.SlideCount())
	for _, l := range d.Lectures {
		for _, s := range l.Slides {
			paths = append(paths, s.ImagePath)
		}
	}
	return paths
}

// Slides flattens the dataset into captioned entries, used by the gallery.
func (d *Dataset) Slides() []CaptionedImage {
	out := make([]CaptionedImage, 0, d.SlideCount())
	for _, l := range d.Lectures {
		for _, s := range l.Slides {
			out = append(out, CaptionedImage{
				Path:    s.ImagePath,
				Caption: l.ID + " / " + s.ID,
			})
		}
	}
	return out
}

type CaptionedImage struct {
	Path    string
	Caption string
}
