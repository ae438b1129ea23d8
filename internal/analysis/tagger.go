package analysis

import (
	"sort"
	"strings"

	"market-mood/internal/domain"
)

// Tagger maps free text to the market symbols it mentions. Matching is
// substring containment of a lowercase company alias, so "Apple's" still tags
// AAPL. Stateless and safe for concurrent use.
type Tagger struct {
	aliases map[string]string
}

func NewTagger(aliases map[string]string) *Tagger {
	return &Tagger{aliases: aliases}
}

// Tag returns the sorted set of symbols whose alias appears in text. When no
// alias matches, it returns the broad-market default so callers can always
// assume at least one tag.
func (t *Tagger) Tag(text string) []string {
	lowered := strings.ToLower(text)
	matched := make(map[string]struct{}, 4)

	for alias, symbol := range t.aliases {
		if strings.Contains(lowered, alias) {
			matched[symbol] = struct{}{}
		}
	}

	if len(matched) == 0 {
		return []string{domain.DefaultMarketSymbol}
	}

	out := make([]string, 0, len(matched))
	for symbol := range matched {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

// DefaultAliases returns the production company-name table. Multiple aliases
// may map to the same ticker.
func DefaultAliases() map[string]string {
	return map[string]string{
		"apple":      "AAPL",
		"microsoft":  "MSFT",
		"google":     "GOOGL",
		"alphabet":   "GOOGL",
		"amazon":     "AMZN",
		"meta":       "META",
		"facebook":   "META",
		"instagram":  "META",
		"tesla":      "TSLA",
		"nvidia":     "NVDA",
		"netflix":    "NFLX",
		"intel":      "INTC",
		"amd":        "AMD",
		"boeing":     "BA",
		"disney":     "DIS",
		"jpmorgan":   "JPM",
		"goldman":    "GS",
		"walmart":    "WMT",
		"exxon":      "XOM",
		"chevron":    "CVX",
		"pfizer":     "PFE",
		"coca-cola":  "KO",
		"salesforce": "CRM",
		"oracle":     "ORCL",
		"visa":       "V",
		"mastercard": "MA",
	}
}
