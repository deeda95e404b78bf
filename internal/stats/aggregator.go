package stats

import (
	"github.com/kpauljoseph/medislate/pkg/models"
)

// Aggregator accumulates slide and lecture statistics for one pass over a
// dataset. It is not safe for concurrent use.
type Aggregator struct {
	keywords      *KeywordSet
	slides        []models.SlideStats
	lectures      []models.LectureStats
	vocabulary    Vocabulary
	lectureVocab  map[string]Vocabulary
	keywordTotals map[string]int
	sentences     int
}

type Result struct {
	Slides              []models.SlideStats
	Lectures            []models.LectureStats
	Vocabulary          Vocabulary
	LectureVocabularies map[string]Vocabulary
	KeywordTotals       map[string]int
	Keywords            []string
	TotalSentences      int
}

func NewAggregator(keywords *KeywordSet) *Aggregator {
	if keywords == nil {
		keywords = NewKeywordSet(CTTerms)
	}
	totals := make(map[string]int, keywords.Len())
	for _, t := range keywords.Terms() {
		totals[t] = 0
	}
	return &Aggregator{
		keywords:      keywords,
		vocabulary:    make(Vocabulary),
		lectureVocab:  make(map[string]Vocabulary),
		keywordTotals: totals,
	}
}

// Aggregate runs a full pass over ds.
func Aggregate(ds *models.Dataset, keywords *KeywordSet) *Result {
	agg := NewAggregator(keywords)
	for _, lecture := range ds.Lectures {
		agg.AddLecture(lecture)
	}
	return agg.Result()
}

// AnalyzeSlide computes the per-slide record without touching any totals.
func (a *Aggregator) AnalyzeSlide(lecture models.Lecture, slide models.Slide) (models.SlideStats, Vocabulary) {
	tokens := Tokenize(slide.Text)
	vocab := make(Vocabulary)
	vocab.AddTokens(tokens)

	counts := a.keywords.Count(tokens)
	hits := 0
	for _, n := range counts {
		hits += n
	}

	return models.SlideStats{
		Lecture:     lecture.ID,
		LectureNum:  lecture.Number,
		SlideID:     slide.ID,
		SlideNum:    slide.Number,
		Tokens:      len(tokens),
		Sentences:   len(SplitSentences(slide.Text)),
		VocabSize:   vocab.Size(),
		KeywordHits: hits,
		Keywords:    counts,
	}, vocab
}

// AddLecture folds every slide of lecture into the running totals and
// returns the lecture rollup.
func (a *Aggregator) AddLecture(lecture models.Lecture) models.LectureStats {
	lectureVocab := make(Vocabulary)
	rollup := models.LectureStats{
		Lecture:    lecture.ID,
		LectureNum: lecture.Number,
	}

	for _, slide := range lecture.Slides {
		s, vocab := a.AnalyzeSlide(lecture, slide)
		a.slides = append(a.slides, s)

		rollup.Slides++
		rollup.Tokens += s.Tokens
		a.sentences += s.Sentences
		lectureVocab.Merge(vocab)
		a.vocabulary.Merge(vocab)
		for term, n := range s.Keywords {
			a.keywordTotals[term] += n
		}
	}

	rollup.VocabSize = lectureVocab.Size()
	a.lectureVocab[lecture.ID] = lectureVocab
	a.lectures = append(a.lectures, rollup)
	return rollup
}

func (a *Aggregator) Result() *Result {
	return &Result{
		Slides:              a.slides,
		Lectures:            a.lectures,
		Vocabulary:          a.vocabulary,
		LectureVocabularies: a.lectureVocab,
		KeywordTotals:       a.keywordTotals,
		Keywords:            a.keywords.Terms(),
		TotalSentences:      a.sentences,
	}
}

// TopKeywords returns the k most frequent keywords with a non-zero total.
func (r *Result) TopKeywords(k int) []models.KeywordCount {
	return rank(r.KeywordTotals, k, true)
}

func (r *Result) Summary() models.Summary {
	s := models.Summary{
		TotalLectures:  len(r.Lectures),
		VocabularySize: r.Vocabulary.Size(),
		TotalSentences: r.TotalSentences,
	}
	for _, l := range r.Lectures {
		s.TotalSlides += l.Slides
		s.TotalTokens += l.Tokens
	}
	if s.TotalLectures > 0 {
		s.AvgSlidesPerLecture = float64(s.TotalSlides) / float64(s.TotalLectures)
		s.AvgTokensPerLecture = float64(s.TotalTokens) / float64(s.TotalLectures)
	}
	return s
}

// FromRecords rebuilds a Result from previously exported records so the
// report stage can run without rescanning the dataset.
func FromRecords(slides []models.SlideStats, lectures []models.LectureStats, vocab Vocabulary, keywords []string) *Result {
	if vocab == nil {
		vocab = make(Vocabulary)
	}
	r := &Result{
		Slides:              slides,
		Lectures:            lectures,
		Vocabulary:          vocab,
		LectureVocabularies: map[string]Vocabulary{},
		KeywordTotals:       make(map[string]int, len(keywords)),
		Keywords:            keywords,
	}
	for _, k := range keywords {
		r.KeywordTotals[k] = 0
	}
	for _, s := range slides {
		r.TotalSentences += s.Sentences
		for term, n := range s.Keywords {
			r.KeywordTotals[term] += n
		}
	}
	return r
}
