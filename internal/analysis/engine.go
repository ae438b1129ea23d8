package analysis

import (
	"crypto/sha1"
	"encoding/hex"
	"math"
	"sort"
	"strings"
	"time"

	"market-mood/internal/domain"
	"market-mood/internal/provider"
)

// Result is the output of one full engine pass: plain structured data for
// whatever rendering or persistence layer sits downstream.
type Result struct {
	Articles     []domain.Article                 `json:"articles"`
	Daily        map[string]domain.DailySentiment `json:"daily"`
	Rows         []domain.CorrelationRow          `json:"rows"`
	Correlations domain.CorrelationSummary        `json:"correlations"`
	Diagnostics  domain.CorrelationDiagnostics    `json:"diagnostics"`
	Predictions  []domain.Prediction              `json:"predictions"`
	Skipped      int                              `json:"skipped"`
	GeneratedAt  time.Time                        `json:"generated_at"`
}

// Engine runs the synchronous score-aggregate-correlate-forecast pass over
// already-fetched snapshots. It holds only immutable lookup tables, performs
// no I/O, and is safe for concurrent use.
type Engine struct {
	scorer *Scorer
	tagger *Tagger
}

func NewEngine(lexicon Lexicon, aliases map[string]string) *Engine {
	return &Engine{
		scorer: NewScorer(lexicon),
		tagger: NewTagger(aliases),
	}
}

// Run executes one analysis pass. Malformed records (missing timestamps,
// non-positive closes) are skipped one by one and counted; the pass itself
// is total and never fails.
func (e *Engine) Run(now time.Time, headlines []provider.Headline, closes []provider.IndexPoint) Result {
	result := Result{GeneratedAt: now.UTC()}

	result.Articles = make([]domain.Article, 0, len(headlines))
	for _, h := range headlines {
		if h.PublishedAt.IsZero() || strings.TrimSpace(h.Title) == "" {
			result.Skipped++
			continue
		}
		text := strings.TrimSpace(h.Title + " " + h.Description)
		scored := e.scorer.Score(text)
		result.Articles = append(result.Articles, domain.Article{
			ID:                articleID(h),
			Title:             strings.TrimSpace(h.Title),
			Description:       strings.TrimSpace(h.Description),
			Source:            strings.TrimSpace(h.Source),
			URL:               strings.TrimSpace(h.URL),
			PublishedAt:       h.PublishedAt.UTC(),
			SentimentScore:    scored.Score,
			SentimentCategory: scored.Category,
			RelatedSymbols:    e.tagger.Tag(text),
		})
	}

	result.Daily = Aggregate(result.Articles)

	points, skippedPoints := BuildMarketPoints(closes)
	result.Skipped += skippedPoints
	result.Rows = JoinRows(points, result.Daily)

	result.Correlations = Correlate(result.Rows)
	result.Diagnostics = Diagnose(result.Rows)
	result.Predictions = Forecast(result.Rows, result.Correlations)
	return result
}

// BuildMarketPoints derives day-over-day change from the raw close series.
// The first usable point has no predecessor, so its change is 0; a zero
// previous close also yields 0 rather than a divide-by-zero. Returns the
// points ascending by date plus the count of skipped malformed records.
func BuildMarketPoints(closes []provider.IndexPoint) ([]domain.MarketPoint, int) {
	valid := make([]provider.IndexPoint, 0, len(closes))
	skipped := 0
	for _, p := range closes {
		if p.Date.IsZero() || p.Close <= 0 || math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			skipped++
			continue
		}
		valid = append(valid, p)
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Date.Before(valid[j].Date) })

	out := make([]domain.MarketPoint, 0, len(valid))
	prev := 0.0
	for _, p := range valid {
		point := domain.MarketPoint{
			Date:       p.Date.Format(domain.DateLayout),
			CloseValue: p.Close,
		}
		if prev > 0 {
			point.Change = p.Close - prev
			point.PercentChange = point.Change / prev * 100
		}
		prev = p.Close
		out = append(out, point)
	}
	return out, skipped
}

// JoinRows pairs each market day with that day's sentiment summary. Days
// without articles join with a zero score and zero count, so the forecast
// path sees the full market calendar.
func JoinRows(points []domain.MarketPoint, daily map[string]domain.DailySentiment) []domain.CorrelationRow {
	rows := make([]domain.CorrelationRow, 0, len(points))
	for _, point := range points {
		row := domain.CorrelationRow{
			Date:          point.Date,
			CloseValue:    point.CloseValue,
			Change:        point.Change,
			PercentChange: point.PercentChange,
		}
		if day, ok := daily[point.Date]; ok {
			row.AverageScore = day.AverageScore
			row.ArticleCount = day.ArticleCount
		}
		rows = append(rows, row)
	}
	return rows
}

func articleID(h provider.Headline) string {
	seed := strings.TrimSpace(h.URL)
	if seed == "" {
		seed = strings.TrimSpace(h.Title) + "|" + h.PublishedAt.UTC().Format(time.RFC3339Nano)
	}
	sum := sha1.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])
}
