package analysis

import (
	"math"

	"market-mood/internal/domain"
)

// Pearson computes the Pearson correlation coefficient over paired series.
// Indexes where either value is non-finite are dropped. Fewer than two valid
// pairs, or zero variance in either series, yields 0: absence of signal, not
// an error.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}

	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(len(xs))
	meanY := sumY / float64(len(ys))

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / (math.Sqrt(varX) * math.Sqrt(varY))
}

// Correlate computes the sentiment-to-market-change correlation at zero lag
// and at one-day lag. NextDay pairs sentiment[t] with change[t+1] and is the
// forecast engine's primary input. Rows must be ordered ascending by date.
func Correlate(rows []domain.CorrelationRow) domain.CorrelationSummary {
	sentiment := make([]float64, len(rows))
	change := make([]float64, len(rows))
	for i, row := range rows {
		sentiment[i] = row.AverageScore
		change[i] = row.Change
	}

	summary := domain.CorrelationSummary{SameDay: Pearson(sentiment, change)}
	if len(rows) >= 2 {
		summary.NextDay = Pearson(sentiment[:len(sentiment)-1], change[1:])
	}
	return summary
}

// NonZeroRows filters out days with no sentiment signal. The forecast path
// always uses the full row set; this view exists for diagnostics only.
func NonZeroRows(rows []domain.CorrelationRow) []domain.CorrelationRow {
	out := make([]domain.CorrelationRow, 0, len(rows))
	for _, row := range rows {
		if row.AverageScore != 0 {
			out = append(out, row)
		}
	}
	return out
}

// LevelCorrelation correlates sentiment against the close level rather than
// its change. Diagnostic output only, never a forecast input.
func LevelCorrelation(rows []domain.CorrelationRow) float64 {
	sentiment := make([]float64, len(rows))
	closes := make([]float64, len(rows))
	for i, row := range rows {
		sentiment[i] = row.AverageScore
		closes[i] = row.CloseValue
	}
	return Pearson(sentiment, closes)
}

// Diagnose computes the secondary correlation views.
func Diagnose(rows []domain.CorrelationRow) domain.CorrelationDiagnostics {
	nonZero := Correlate(NonZeroRows(rows))
	return domain.CorrelationDiagnostics{
		SameDayNonZero: nonZero.SameDay,
		NextDayNonZero: nonZero.NextDay,
		ValueLevel:     LevelCorrelation(rows),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
