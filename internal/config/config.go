// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	KeywordSetCT      = "ct"
	KeywordSetImaging = "imaging"
)

type Config struct {
	DatasetRoot     string   `yaml:"dataset_root"`
	OutputDir       string   `yaml:"output_dir"`
	ImageExtensions []string `yaml:"image_extensions"`
	KeywordSet      string   `yaml:"keyword_set"`
	Keywords        []string `yaml:"keywords"`
	TopKeywords     int      `yaml:"top_keywords"`
	Figures         struct {
		TokenBins    int     `yaml:"token_bins"`
		SentenceBins int     `yaml:"sentence_bins"`
		WidthInches  float64 `yaml:"width_inches"`
		HeightInches float64 `yaml:"height_inches"`
		BundlePDF    bool    `yaml:"bundle_pdf"`
	} `yaml:"figures"`
	WordCloud struct {
		Width    int `yaml:"width"`
		Height   int `yaml:"height"`
		MaxWords int `yaml:"max_words"`
	} `yaml:"wordcloud"`
	Gallery struct {
		Size        int   `yaml:"size"`
		Columns     int   `yaml:"columns"`
		ThumbWidth  int   `yaml:"thumb_width"`
		ThumbHeight int   `yaml:"thumb_height"`
		Seed        int64 `yaml:"seed"`
	} `yaml:"gallery"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Figures.BundlePDF = true
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.Figures.BundlePDF = true
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DatasetRoot == "" {
		cfg.DatasetRoot = "./Lectures"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./outputs"
	}
	if len(cfg.ImageExtensions) == 0 {
		cfg.ImageExtensions = []string{".jpg"}
	}
	for i, ext := range cfg.ImageExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.ImageExtensions[i] = ext
	}
	if cfg.KeywordSet == "" {
		cfg.KeywordSet = KeywordSetCT
	}
	if cfg.TopKeywords == 0 {
		cfg.TopKeywords = 20
	}
	if cfg.Figures.TokenBins == 0 {
		cfg.Figures.TokenBins = 40
	}
	if cfg.Figures.SentenceBins == 0 {
		cfg.Figures.SentenceBins = 30
	}
	if cfg.Figures.WidthInches == 0 {
		cfg.Figures.WidthInches = 10
	}
	if cfg.Figures.HeightInches == 0 {
		cfg.Figures.HeightInches = 6
	}
	if cfg.WordCloud.Width == 0 {
		cfg.WordCloud.Width = 1600
	}
	if cfg.WordCloud.Height == 0 {
		cfg.WordCloud.Height = 900
	}
	if cfg.WordCloud.MaxWords == 0 {
		cfg.WordCloud.MaxWords = 200
	}
	if cfg.Gallery.Size == 0 {
		cfg.Gallery.Size = 25
	}
	if cfg.Gallery.Columns == 0 {
		cfg.Gallery.Columns = 5
	}
	if cfg.Gallery.ThumbWidth == 0 {
		cfg.Gallery.ThumbWidth = 320
	}
	if cfg.Gallery.ThumbHeight == 0 {
		cfg.Gallery.ThumbHeight = 240
	}
}

func (c *Config) Validate() error {
	for _, ext := range c.ImageExtensions {
		if ext == "" || ext == "." {
			return fmt.Errorf("invalid image extension %q", ext)
		}
	}
	if c.KeywordSet != KeywordSetCT && c.KeywordSet != KeywordSetImaging {
		return fmt.Errorf("unknown keyword_set %q (want %q or %q)", c.KeywordSet, KeywordSetCT, KeywordSetImaging)
	}
	if c.TopKeywords < 0 {
		return fmt.Errorf("top_keywords must be positive, got %d", c.TopKeywords)
	}
	if c.Figures.TokenBins < 0 || c.Figures.SentenceBins < 0 {
		return fmt.Errorf("histogram bins must be positive")
	}
	if c.Figures.WidthInches < 0 || c.Figures.HeightInches < 0 {
		return fmt.Errorf("figure size must be positive")
	}
	if c.WordCloud.Width < 0 || c.WordCloud.Height < 0 || c.WordCloud.MaxWords < 0 {
		return fmt.Errorf("wordcloud dimensions must be positive")
	}
	if c.Gallery.Size < 0 || c.Gallery.Columns < 0 || c.Gallery.ThumbWidth < 0 || c.Gallery.ThumbHeight < 0 {
		return fmt.Errorf("gallery settings must be positive")
	}
	return nil
}
