package domain

import "time"

// DateLayout is the calendar-day key used to join sentiment and market series.
const DateLayout = "2006-01-02"

// DefaultMarketSymbol tags articles that mention no tracked company.
const DefaultMarketSymbol = "SPY"

type SentimentCategory string

const (
	CategoryPositive SentimentCategory = "positive"
	CategoryNegative SentimentCategory = "negative"
	CategoryNeutral  SentimentCategory = "neutral"
)

type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

type Timeframe string

const (
	TimeframeNextDay  Timeframe = "next_day"
	TimeframeNextWeek Timeframe = "next_week"
)

// Article is a scored news headline. Immutable once produced by the engine.
type Article struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Description       string            `json:"description,omitempty"`
	Source            string            `json:"source"`
	URL               string            `json:"url"`
	PublishedAt       time.Time         `json:"published_at"`
	SentimentScore    float64           `json:"sentiment_score"`
	SentimentCategory SentimentCategory `json:"sentiment_category"`
	RelatedSymbols    []string          `json:"related_symbols"`
}

// DailySentiment summarizes one calendar day of scored articles.
// PositiveCount+NegativeCount+NeutralCount always equals ArticleCount.
type DailySentiment struct {
	Date          string  `json:"date"`
	ArticleCount  int     `json:"article_count"`
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
	NeutralCount  int     `json:"neutral_count"`
	AverageScore  float64 `json:"average_score"`
}

// MarketPoint is one trading day of the tracked index series.
type MarketPoint struct {
	Date          string  `json:"date"`
	CloseValue    float64 `json:"close_value"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
}

// CorrelationRow joins a market day with that day's sentiment summary.
type CorrelationRow struct {
	Date          string  `json:"date"`
	CloseValue    float64 `json:"close_value"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	AverageScore  float64 `json:"average_score"`
	ArticleCount  int     `json:"article_count"`
}

// CorrelationSummary holds Pearson coefficients between the sentiment series
// and the market change series at zero lag and one-day lag.
type CorrelationSummary struct {
	SameDay float64 `json:"same_day"`
	NextDay float64 `json:"next_day"`
}

// CorrelationDiagnostics carries secondary correlation views that never feed
// the forecast: the same pair computed over non-zero sentiment days only, and
// the sentiment-to-close-level coefficient.
type CorrelationDiagnostics struct {
	SameDayNonZero float64 `json:"same_day_non_zero"`
	NextDayNonZero float64 `json:"next_day_non_zero"`
	ValueLevel     float64 `json:"value_level"`
}

// Prediction is a directional, confidence-scored forecast for one timeframe.
// Confidence is a bounded [0,95] heuristic, not a probability.
type Prediction struct {
	Timeframe      Timeframe `json:"timeframe"`
	Direction      Direction `json:"direction"`
	Confidence     float64   `json:"confidence"`
	SentimentValue float64   `json:"sentiment_value"`
	Explanation    string    `json:"explanation"`
}

// ConversationMessage is one turn of an advisor chat, oldest-first when
// returned as history.
type ConversationMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalysisRunResult reports counters for one fetch-analyze-persist cycle.
type AnalysisRunResult struct {
	ArticlesFetched    int      `json:"articles_fetched"`
	ArticlesScored     int      `json:"articles_scored"`
	RecordsSkipped     int      `json:"records_skipped"`
	MarketPoints       int      `json:"market_points"`
	DaysAggregated     int      `json:"days_aggregated"`
	PredictionsWritten int      `json:"predictions_written"`
	Errors             []string `json:"errors,omitempty"`
}
