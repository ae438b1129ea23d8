package analysis

import (
	"strings"
	"testing"

	"market-mood/internal/domain"
)

func testLexicon() Lexicon {
	return Lexicon{
		Positive: map[string]float64{
			"surge": 1.5,
			"gain":  1.0,
			"broad": 1.0,
		},
		Negative: map[string]float64{
			"crash":   1.5,
			"concern": 0.5,
			"road":    1.0,
		},
	}
}

func TestScoreEmptyText(t *testing.T) {
	s := NewScorer(testLexicon())
	for _, text := range []string{"", "   ", "\t\n"} {
		got := s.Score(text)
		if got.Score != 0 || got.Category != domain.CategoryNeutral {
			t.Fatalf("empty text %q: expected 0/neutral, got %+v", text, got)
		}
	}
}

func TestScoreNoLexiconMatches(t *testing.T) {
	s := NewScorer(testLexicon())
	got := s.Score("central bank holds interest rates steady this quarter")
	if got.Score != 0 {
		t.Fatalf("expected score 0 with no matches, got %f", got.Score)
	}
	if got.Category != domain.CategoryNeutral {
		t.Fatalf("expected neutral category, got %s", got.Category)
	}
}

func TestScoreWordBoundary(t *testing.T) {
	s := NewScorer(testLexicon())
	got := s.Score("broader markets closed mixed today")
	if got.Score != 0 {
		t.Fatalf("'broader' must not match 'broad' or 'road', got score %f", got.Score)
	}
}

func TestScoreCaseInsensitiveAndRepeated(t *testing.T) {
	s := NewScorer(testLexicon())
	// Two occurrences of surge (1.5 each), 6 words, normalizer 1.
	got := s.Score("Stocks SURGE as tech shares surge")
	if got.Score != 1 {
		t.Fatalf("expected clamped score 1, got %f", got.Score)
	}
	if got.Category != domain.CategoryPositive {
		t.Fatalf("expected positive, got %s", got.Category)
	}
}

func TestScoreNormalizationByWordCount(t *testing.T) {
	s := NewScorer(testLexicon())
	// One "gain" (1.0) in a 40-word text: normalizer 2, score 0.5.
	filler := strings.Repeat("the market held steady on ", 7) // 35 words
	text := filler + "investors saw a gain today"             // 40 words
	got := s.Score(text)
	if got.Score != 0.5 {
		t.Fatalf("expected 0.5 after normalization, got %f", got.Score)
	}
}

func TestScoreNegativeAndDeadZone(t *testing.T) {
	s := NewScorer(testLexicon())

	got := s.Score("markets crash on fresh data")
	if got.Category != domain.CategoryNegative || got.Score >= 0 {
		t.Fatalf("expected negative result, got %+v", got)
	}

	// One "concern" (0.5) over 24 words: 0.5/1.2 ~ 0.417 negative... use
	// enough words to land inside the dead zone instead.
	filler := strings.Repeat("shares traded quietly in a narrow range today overall ", 12) // 108 words
	got = s.Score(filler + "one concern remains")                                          // 111 words
	if got.Category != domain.CategoryNeutral {
		t.Fatalf("expected dead-zone neutral, got %+v", got)
	}
	if got.Score >= 0 {
		t.Fatalf("expected slightly negative score, got %f", got.Score)
	}
}

func TestScoreAlwaysBounded(t *testing.T) {
	s := NewScorer(DefaultLexicon())
	texts := []string{
		"surge surge surge surge rally rally boom soar",
		"crash crash plunge collapse crisis recession meltdown",
		"mixed gain and loss with concern and optimism",
		"",
	}
	for _, text := range texts {
		got := s.Score(text)
		if got.Score < -1 || got.Score > 1 {
			t.Fatalf("score out of bounds for %q: %f", text, got.Score)
		}
	}
}

func TestScoreSingleDayPositiveScenario(t *testing.T) {
	s := NewScorer(DefaultLexicon())
	// 10-word text containing "surge": normalizer 1, raw 1.5, clamped to 1.
	got := s.Score("tech stocks surge higher as chip demand stays very strong")
	if got.Score <= 0.1 {
		t.Fatalf("expected score above 0.1, got %f", got.Score)
	}
	if got.Category != domain.CategoryPositive {
		t.Fatalf("expected positive category, got %s", got.Category)
	}
}

func TestCategoryForScoreDeadZone(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.SentimentCategory
	}{
		{0.11, domain.CategoryPositive},
		{0.1, domain.CategoryNeutral},
		{0, domain.CategoryNeutral},
		{-0.1, domain.CategoryNeutral},
		{-0.11, domain.CategoryNegative},
	}
	for _, c := range cases {
		if got := CategoryForScore(c.score); got != c.want {
			t.Fatalf("CategoryForScore(%f) = %s, want %s", c.score, got, c.want)
		}
	}
}
