package advisor

import (
	"strings"

	"market-mood/internal/analysis"
	"market-mood/internal/domain"
)

var knownTickers = buildTickerSet()

func buildTickerSet() map[string]bool {
	set := map[string]bool{domain.DefaultMarketSymbol: true}
	for _, ticker := range analysis.DefaultAliases() {
		set[ticker] = true
	}
	return set
}

// ExtractTickers scans the user message for mentions of tracked tickers.
// Returns deduplicated uppercase tickers found.
func ExtractTickers(text string) []string {
	upper := strings.ToUpper(text)
	words := strings.FieldsFunc(upper, func(r rune) bool {
		return !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	})

	seen := make(map[string]bool)
	var result []string
	for _, w := range words {
		if knownTickers[w] && !seen[w] {
			seen[w] = true
			result = append(result, w)
		}
	}
	return result
}
