package models

type SlideStats struct {
	Lecture     string         `json:"lecture"`
	LectureNum  int            `json:"lecture_num"`
	SlideID     string         `json:"slide_id"`
	SlideNum    int            `json:"slide_num"`
	Tokens      int            `json:"num_tokens"`
	Sentences   int            `json:"num_sentences"`
	VocabSize   int            `json:"vocab_size"`
	KeywordHits int            `json:"keyword_hits"`
	Keywords    map[string]int `json:"keywords"`
}

type LectureStats struct {
	Lecture    string `json:"lecture"`
	LectureNum int    `json:"lecture_num"`
	Slides     int    `json:"num_slides"`
	Tokens     int    `json:"num_tokens"`
	VocabSize  int    `json:"vocab_size"`
}

// Summary holds dataset-wide totals for the summary table.
type Summary struct {
	TotalLectures       int     `json:"total_lectures"`
	TotalSlides         int     `json:"total_slides"`
	TotalTokens         int     `json:"total_tokens"`
	TotalSentences      int     `json:"total_sentences"`
	VocabularySize      int     `json:"vocabulary_size"`
	AvgSlidesPerLecture float64 `json:"avg_slides_per_lecture"`
	AvgTokensPerLecture float64 `json:"avg_tokens_per_lecture"`
}

// KeywordCount is one row of a keyword frequency ranking.
type KeywordCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}
