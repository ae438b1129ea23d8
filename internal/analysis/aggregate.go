package analysis

import "market-mood/internal/domain"

// Aggregate groups scored articles by the calendar day of their publish
// timestamp and reduces each day to counts and a mean score. Articles without
// a publish date are skipped; days with zero articles never materialize.
func Aggregate(articles []domain.Article) map[string]domain.DailySentiment {
	out := make(map[string]domain.DailySentiment, 16)
	totals := make(map[string]float64, 16)

	for _, article := range articles {
		if article.PublishedAt.IsZero() {
			continue
		}
		date := article.PublishedAt.Format(domain.DateLayout)

		day := out[date]
		day.Date = date
		day.ArticleCount++
		switch article.SentimentCategory {
		case domain.CategoryPositive:
			day.PositiveCount++
		case domain.CategoryNegative:
			day.NegativeCount++
		default:
			day.NeutralCount++
		}
		totals[date] += article.SentimentScore
		out[date] = day
	}

	for date, day := range out {
		day.AverageScore = totals[date] / float64(day.ArticleCount)
		out[date] = day
	}
	return out
}
