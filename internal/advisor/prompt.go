package advisor

import (
	"fmt"
	"strings"
	"time"

	"market-mood/internal/analysis"
	"market-mood/internal/domain"
)

const advisorPhilosophy = `You are a market mood advisor bot. Your role is to interpret news sentiment, its correlation with the market, and heuristic forecasts, NOT to generate forecasts yourself.

Confidence Framework:
- Confidence below 40: weak evidence. Treat the direction as little better than a coin flip.
- Confidence 40-70: moderate evidence. Sentiment and market have been moving together.
- Confidence above 70: strong evidence. Still a heuristic, never a guarantee.

Rules:
- Always reference the specific numbers in the data when making observations.
- Never fabricate data. If data is unavailable, say so.
- A correlation near zero means sentiment has had no predictive value lately; say so plainly.
- Confidence is a heuristic score capped at 95, not a probability.
- Keep responses concise and actionable. You are talking via Telegram.
- Do not provide financial advice disclaimers on every message. The user understands this is informational.
- When asked about a company, summarize the recent headlines tagged with its ticker and their sentiment.
- If no articles mention a ticker, say so honestly rather than speculating.`

func BuildSystemPrompt(analysisContext string) string {
	var sb strings.Builder
	sb.WriteString(advisorPhilosophy)
	sb.WriteString("\n\n--- LATEST ANALYSIS (as of ")
	sb.WriteString(time.Now().UTC().Format(time.RFC822))
	sb.WriteString(") ---\n")
	sb.WriteString(analysisContext)
	return sb.String()
}

// FormatAnalysisContext renders the latest snapshot for the system prompt.
// When tickers are given, the article digest is filtered to headlines
// tagged with them.
func FormatAnalysisContext(snapshot *analysis.Result, latest *domain.MarketPoint, tickers []string) string {
	if snapshot == nil {
		return "No analysis snapshot available yet."
	}

	var sb strings.Builder

	if latest != nil {
		sb.WriteString(fmt.Sprintf("\nMarket (%s): close %.2f, change %+.2f (%+.2f%%)\n",
			latest.Date, latest.CloseValue, latest.Change, latest.PercentChange))
	}

	sb.WriteString(fmt.Sprintf("\nCorrelations: same-day %.3f, next-day %.3f\n",
		snapshot.Correlations.SameDay, snapshot.Correlations.NextDay))

	if len(snapshot.Predictions) > 0 {
		sb.WriteString("\nForecasts:\n")
		for _, p := range snapshot.Predictions {
			sb.WriteString(fmt.Sprintf("  %s: %s (confidence %.0f) %s\n",
				p.Timeframe, strings.ToUpper(string(p.Direction)), p.Confidence, p.Explanation))
		}
	}

	articles := snapshot.Articles
	if len(tickers) > 0 {
		articles = filterByTickers(articles, tickers)
	}
	if len(articles) > 0 {
		if len(articles) > 10 {
			articles = articles[len(articles)-10:]
		}
		sb.WriteString("\nRecent Headlines:\n")
		for _, a := range articles {
			sb.WriteString(fmt.Sprintf("  [%s %+.2f] %s (%s)\n",
				a.SentimentCategory, a.SentimentScore, a.Title, strings.Join(a.RelatedSymbols, ",")))
		}
	} else if len(tickers) > 0 {
		sb.WriteString(fmt.Sprintf("\nNo recent headlines mention %s.\n", strings.Join(tickers, ", ")))
	}

	if sb.Len() == 0 {
		return "No analysis data currently available."
	}
	return sb.String()
}

func filterByTickers(articles []domain.Article, tickers []string) []domain.Article {
	want := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		want[strings.ToUpper(t)] = true
	}
	var out []domain.Article
	for _, a := range articles {
		for _, sym := range a.RelatedSymbols {
			if want[sym] {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
