package stats

import (
	"sort"

	"github.com/kpauljoseph/medislate/pkg/models"
)

// Vocabulary is a multiset of normalized terms.
type Vocabulary map[string]int

func (v Vocabulary) AddTokens(tokens []string) {
	for _, tok := range tokens {
		if term := NormalizeTerm(tok); term != "" {
			v[term]++
		}
	}
}

func (v Vocabulary) Merge(other Vocabulary) {
	for term, n := range other {
		v[term] += n
	}
}

func (v Vocabulary) Size() int {
	return len(v)
}

// Top returns up to k terms by count desc, then alphabetically. k <= 0 returns all.
func (v Vocabulary) Top(k int) []models.KeywordCount {
	return rank(v, k, false)
}

func rank(counts map[string]int, k int, dropZero bool) []models.KeywordCount {
	out := make([]models.KeywordCount, 0, len(counts))
	for term, n := range counts {
		if dropZero && n == 0 {
			continue
		}
		out = append(out, models.KeywordCount{Term: term, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
