package analysis

import (
	"math"
	"strings"
	"unicode"

	"market-mood/internal/domain"
)

// SentimentResult is the outcome of scoring one text.
type SentimentResult struct {
	Score    float64
	Category domain.SentimentCategory
}

// Scorer maps free text to a bounded sentiment score using a fixed lexicon.
// It is pure and safe for concurrent use.
type Scorer struct {
	lexicon Lexicon
}

func NewScorer(lexicon Lexicon) *Scorer {
	return &Scorer{lexicon: lexicon}
}

// Score evaluates text against the lexicon. Matching is whole-word and
// case-insensitive; repeated occurrences all count. The raw signed total is
// normalized by max(wordCount/20, 1) and clamped to [-1, 1]. Empty text
// scores 0 / neutral.
func (s *Scorer) Score(text string) SentimentResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return SentimentResult{Score: 0, Category: domain.CategoryNeutral}
	}

	wordCount := len(strings.Fields(text))

	var positive, negative float64
	for _, token := range splitWords(strings.ToLower(text)) {
		if w, ok := s.lexicon.Positive[token]; ok {
			positive += w
		}
		if w, ok := s.lexicon.Negative[token]; ok {
			negative += w
		}
	}

	normalizer := float64(wordCount) / 20.0
	if normalizer < 1 {
		normalizer = 1
	}

	score := clamp((positive-negative)/normalizer, -1, 1)
	return SentimentResult{Score: score, Category: CategoryForScore(score)}
}

// splitWords breaks text on any non-alphanumeric rune, so lexicon entries
// only match complete words ("broad" never fires inside "broader").
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
