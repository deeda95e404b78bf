package stats

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
)

// CleanText NFC-normalizes text, collapses whitespace runs to one space and trims.
func CleanText(text string) string {
	text = norm.NFC.String(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Tokenize splits on whitespace. Punctuation stays attached to its token.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// SplitSentences splits on runs of '.', '!' and '?' and drops blank fragments.
func SplitSentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// NormalizeTerm lowercases a token and strips leading and trailing
// punctuation, so "Artifact!" and "(artifact)" both become "artifact".
// Inner punctuation is kept: "k-space" stays "k-space".
func NormalizeTerm(token string) string {
	token = strings.TrimFunc(token, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	return strings.ToLower(token)
}
