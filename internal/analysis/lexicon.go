package analysis

import "market-mood/internal/domain"

// Term weights reflect signal strength: strong market-moving words carry 1.5,
// generic tone words 0.5, everything else 1.0.
const (
	weightStrong = 1.5
	weightBase   = 1.0
	weightMild   = 0.5
)

// scoreDeadZone is the +-0.1 band around zero inside which a score is
// classified neutral. Every category derivation goes through CategoryForScore
// so the constant stays single-sourced.
const scoreDeadZone = 0.1

// Lexicon is the fixed word-to-weight table used for scoring. It is read-only
// configuration injected at construction; tests substitute smaller tables.
type Lexicon struct {
	Positive map[string]float64
	Negative map[string]float64
}

// CategoryForScore maps a bounded sentiment score to its category.
func CategoryForScore(score float64) domain.SentimentCategory {
	switch {
	case score > scoreDeadZone:
		return domain.CategoryPositive
	case score < -scoreDeadZone:
		return domain.CategoryNegative
	default:
		return domain.CategoryNeutral
	}
}

// DefaultLexicon returns the production scoring table.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Positive: map[string]float64{
			"surge":        weightStrong,
			"surges":       weightStrong,
			"soar":         weightStrong,
			"soars":        weightStrong,
			"rally":        weightStrong,
			"rallies":      weightStrong,
			"boom":         weightStrong,
			"breakout":     weightStrong,
			"bullish":      weightStrong,
			"skyrocket":    weightStrong,
			"gain":         weightBase,
			"gains":        weightBase,
			"jump":         weightBase,
			"jumps":        weightBase,
			"rise":         weightBase,
			"rises":        weightBase,
			"climb":        weightBase,
			"climbs":       weightBase,
			"rebound":      weightBase,
			"recovery":     weightBase,
			"record":       weightBase,
			"growth":       weightBase,
			"profit":       weightBase,
			"profits":      weightBase,
			"beat":         weightBase,
			"beats":        weightBase,
			"upgrade":      weightBase,
			"upgraded":     weightBase,
			"outperform":   weightBase,
			"optimism":     weightBase,
			"optimistic":   weightMild,
			"strong":       weightMild,
			"success":      weightMild,
			"successful":   weightMild,
			"positive":     weightMild,
			"improve":      weightMild,
			"improves":     weightMild,
			"improved":     weightMild,
			"expand":       weightMild,
			"expansion":    weightMild,
			"opportunity":  weightMild,
			"confident":    weightMild,
			"breakthrough": weightBase,
		},
		Negative: map[string]float64{
			"crash":        weightStrong,
			"crashes":      weightStrong,
			"plunge":       weightStrong,
			"plunges":      weightStrong,
			"plummet":      weightStrong,
			"plummets":     weightStrong,
			"collapse":     weightStrong,
			"crisis":       weightStrong,
			"recession":    weightStrong,
			"bearish":      weightStrong,
			"meltdown":     weightStrong,
			"selloff":      weightStrong,
			"drop":         weightBase,
			"drops":        weightBase,
			"fall":         weightBase,
			"falls":        weightBase,
			"decline":      weightBase,
			"declines":     weightBase,
			"slump":        weightBase,
			"slumps":       weightBase,
			"tumble":       weightBase,
			"tumbles":      weightBase,
			"loss":         weightBase,
			"losses":       weightBase,
			"miss":         weightBase,
			"misses":       weightBase,
			"downgrade":    weightBase,
			"downgraded":   weightBase,
			"layoff":       weightBase,
			"layoffs":      weightBase,
			"lawsuit":      weightBase,
			"warning":      weightBase,
			"fear":         weightBase,
			"fears":        weightBase,
			"concern":      weightMild,
			"concerns":     weightMild,
			"weak":         weightMild,
			"weakness":     weightMild,
			"risk":         weightMild,
			"risks":        weightMild,
			"uncertain":    weightMild,
			"uncertainty":  weightMild,
			"volatile":     weightMild,
			"volatility":   weightMild,
			"pressure":     weightMild,
			"cautious":     weightMild,
			"disappointed": weightMild,
		},
	}
}
