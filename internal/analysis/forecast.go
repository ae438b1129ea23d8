package analysis

import (
	"fmt"
	"math"

	"market-mood/internal/domain"
)

const (
	forecastWindow     = 7
	directionDeadZone  = 0.05
	maxConfidence      = 95.0
	weekConfidenceDamp = 0.75
)

// Forecast turns the recent sentiment window and the lag-1 correlation into
// two directional predictions: next day and next week. Deterministic; rows
// must be ordered ascending by date.
func Forecast(rows []domain.CorrelationRow, corr domain.CorrelationSummary) []domain.Prediction {
	recent := recentWindow(rows, forecastWindow)
	if len(recent) == 0 {
		return []domain.Prediction{
			{
				Timeframe:   domain.TimeframeNextDay,
				Direction:   domain.DirectionNeutral,
				Confidence:  0,
				Explanation: "No sentiment history available; defaulting to a neutral outlook.",
			},
			{
				Timeframe:   domain.TimeframeNextWeek,
				Direction:   domain.DirectionNeutral,
				Confidence:  0,
				Explanation: "No sentiment history available; defaulting to a neutral outlook.",
			},
		}
	}

	totalWeight := 0.0
	weighted := 0.0
	totalArticles := 0
	for i, row := range recent {
		w := float64(forecastWindow - i)
		weighted += w * row.AverageScore
		totalWeight += w
		totalArticles += row.ArticleCount
	}
	weighted /= totalWeight

	trend := 0.0
	if len(recent) >= 2 {
		trend = recent[0].AverageScore - recent[len(recent)-1].AverageScore
	}

	scores := make([]float64, len(recent))
	for i, row := range recent {
		scores[i] = row.AverageScore
	}
	_, stdDev := meanStd(scores)

	volatilityFactor := math.Min(stdDev*3, 1)
	trendFactor := math.Min(math.Abs(trend)*2, 1)

	rawStrength := weighted * corr.NextDay
	adjusted := rawStrength * (1 - 0.3*volatilityFactor) * (1 + 0.2*trendFactor)

	direction := domain.DirectionNeutral
	if adjusted > directionDeadZone {
		direction = domain.DirectionUp
	} else if adjusted < -directionDeadZone {
		direction = domain.DirectionDown
	}

	confidence := math.Min(math.Abs(corr.NextDay)*40, 40) +
		(1-math.Min(stdDev, 0.5)/0.5)*20 +
		math.Min(math.Abs(trend)*10, 15) +
		math.Min(float64(len(recent))/float64(forecastWindow)*15, 15) +
		math.Min(float64(totalArticles)/50*10, 10)
	confidence = math.Min(math.Round(confidence), maxConfidence)

	nextDay := domain.Prediction{
		Timeframe:      domain.TimeframeNextDay,
		Direction:      direction,
		Confidence:     confidence,
		SentimentValue: weighted,
		Explanation: fmt.Sprintf(
			"Analyzed %d articles over %d days. Sentiment is %s (trend %+.2f) with lag-1 market correlation %.2f; expecting the index to move %s.",
			totalArticles, len(recent), trendWord(trend), trend, corr.NextDay, direction,
		),
	}

	weekDirection := nextDay.Direction
	if math.Abs(trend) > scoreDeadZone {
		if trend > 0 {
			weekDirection = domain.DirectionUp
		} else {
			weekDirection = domain.DirectionDown
		}
	}
	nextWeek := domain.Prediction{
		Timeframe:      domain.TimeframeNextWeek,
		Direction:      weekDirection,
		Confidence:     math.Round(confidence * weekConfidenceDamp),
		SentimentValue: weighted + trend,
		Explanation: fmt.Sprintf(
			"Weekly outlook extrapolated from the %s sentiment trend (%+.2f) across %d articles; expecting the index to move %s.",
			trendWord(trend), trend, totalArticles, weekDirection,
		),
	}

	return []domain.Prediction{nextDay, nextWeek}
}

// recentWindow returns up to n of the most recent rows, newest first.
func recentWindow(rows []domain.CorrelationRow, n int) []domain.CorrelationRow {
	if len(rows) < n {
		n = len(rows)
	}
	out := make([]domain.CorrelationRow, 0, n)
	for i := len(rows) - 1; i >= len(rows)-n; i-- {
		out = append(out, rows[i])
	}
	return out
}

// meanStd returns the mean and population standard deviation of values.
func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func trendWord(trend float64) string {
	switch {
	case trend > scoreDeadZone:
		return "improving"
	case trend < -scoreDeadZone:
		return "deteriorating"
	default:
		return "flat"
	}
}
