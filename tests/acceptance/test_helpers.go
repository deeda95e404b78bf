package acceptance

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
)

// GoldenStore keeps expected pipeline outputs under testdata. Setting
// UPDATE_TEST_DATA=true rewrites them from the current run.
type GoldenStore struct {
	dir    string
	update bool
}

func NewGoldenStore(testDataPath string) *GoldenStore {
	return &GoldenStore{
		dir:    testDataPath,
		update: os.Getenv("UPDATE_TEST_DATA") == "true",
	}
}

func (s *GoldenStore) path(name string) string {
	return filepath.Join(s.dir, name+".golden")
}

// Expected returns the golden content for name. In update mode it first
// stores actual and returns it unchanged.
func (s *GoldenStore) Expected(name string, actual []byte) ([]byte, error) {
	if s.update {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create testdata dir: %w", err)
		}
		if err := os.WriteFile(s.path(name), actual, 0644); err != nil {
			return nil, fmt.Errorf("failed to write golden file: %w", err)
		}
		return actual, nil
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read golden file: %w", err)
	}
	return data, nil
}

func (s *GoldenStore) IsUpdateMode() bool {
	return s.update
}

// Lecture maps slide number to transcript text.
type Lecture map[int]string

// BuildLectureTree writes "Lecture N/Images/Slide K.jpg" and the matching
// transcript for every slide in lectures.
func BuildLectureTree(root string, lectures map[int]Lecture) error {
	for num, slides := range lectures {
		dir := filepath.Join(root, fmt.Sprintf("Lecture %d", num))
		for _, sub := range []string{"Images", "Texts"} {
			if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
				return err
			}
		}
		for k, text := range slides {
			img := imaging.New(80, 60, color.RGBA{R: uint8(num * 25), G: uint8(k * 40), B: 160, A: 255})
			if err := imaging.Save(img, filepath.Join(dir, "Images", fmt.Sprintf("Slide %d.jpg", k))); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(dir, "Texts", fmt.Sprintf("Slide %d.txt", k)), []byte(text), 0644); err != nil {
				return err
			}
		}
	}
	return nil
}

// WritePages renders n solid-colour PNG pages into dir and returns their paths.
func WritePages(dir string, n int) ([]string, error) {
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("page-%02d.png", i))
		img := imaging.New(160, 120, color.RGBA{R: 30, G: uint8(60 * i), B: 90, A: 255})
		if err := imaging.Save(img, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ListFiles returns the sorted names of regular files in dir.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
