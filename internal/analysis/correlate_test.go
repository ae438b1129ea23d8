package analysis

import (
	"fmt"
	"math"
	"testing"

	"market-mood/internal/domain"
)

func TestPearsonSelfCorrelation(t *testing.T) {
	x := []float64{0.1, 0.4, -0.2, 0.8, 0.3}
	if got := Pearson(x, x); math.Abs(got-1) > 1e-12 {
		t.Fatalf("pearson(x, x) = %f, want 1", got)
	}
}

func TestPearsonSymmetry(t *testing.T) {
	x := []float64{1, 2, 4, 3, 5}
	y := []float64{0.2, -0.1, 0.5, 0.4, 0.9}
	if Pearson(x, y) != Pearson(y, x) {
		t.Fatalf("pearson not symmetric: %f vs %f", Pearson(x, y), Pearson(y, x))
	}
}

func TestPearsonDegenerateInputs(t *testing.T) {
	if got := Pearson([]float64{1, 1, 1}, []float64{2, 5, 9}); got != 0 {
		t.Fatalf("constant x series should yield 0, got %f", got)
	}
	if got := Pearson([]float64{2, 5, 9}, []float64{3, 3, 3}); got != 0 {
		t.Fatalf("constant y series should yield 0, got %f", got)
	}
	if got := Pearson([]float64{1}, []float64{2}); got != 0 {
		t.Fatalf("single pair should yield 0, got %f", got)
	}
	if got := Pearson(nil, nil); got != 0 {
		t.Fatalf("empty series should yield 0, got %f", got)
	}
}

func TestPearsonFiltersNonFinitePairs(t *testing.T) {
	x := []float64{1, math.NaN(), 2, 3, math.Inf(1)}
	y := []float64{1, 100, 2, 3, -100}
	if got := Pearson(x, y); math.Abs(got-1) > 1e-12 {
		t.Fatalf("expected 1 after filtering non-finite pairs, got %f", got)
	}
}

func TestPearsonNegativeRelationship(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{4, 3, 2, 1}
	if got := Pearson(x, y); math.Abs(got+1) > 1e-12 {
		t.Fatalf("expected -1, got %f", got)
	}
}

func rowsFromSeries(scores, changes []float64) []domain.CorrelationRow {
	rows := make([]domain.CorrelationRow, len(scores))
	for i := range scores {
		rows[i] = domain.CorrelationRow{
			Date:         fmt.Sprintf("2026-06-%02d", i+1),
			CloseValue:   100 + changes[i],
			Change:       changes[i],
			AverageScore: scores[i],
			ArticleCount: 3,
		}
	}
	return rows
}

func TestCorrelateLagOnePairing(t *testing.T) {
	// sentiment[t] perfectly predicts change[t+1]; same-day pairing is noise.
	scores := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	changes := []float64{0.9, 1, 2, 3, 4}
	summary := Correlate(rowsFromSeries(scores, changes))

	if math.Abs(summary.NextDay-1) > 1e-12 {
		t.Fatalf("expected next-day correlation 1, got %f", summary.NextDay)
	}
	if summary.SameDay <= 0 || summary.SameDay >= 1 {
		t.Fatalf("expected imperfect same-day correlation, got %f", summary.SameDay)
	}
}

func TestCorrelateTooFewRows(t *testing.T) {
	summary := Correlate(rowsFromSeries([]float64{0.5}, []float64{1}))
	if summary.SameDay != 0 || summary.NextDay != 0 {
		t.Fatalf("expected zeroes for a single row, got %+v", summary)
	}
}

func TestNonZeroRowsExcludesSilentDays(t *testing.T) {
	rows := rowsFromSeries([]float64{0.2, 0, -0.3, 0}, []float64{1, 2, 3, 4})
	filtered := NonZeroRows(rows)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 rows with sentiment signal, got %d", len(filtered))
	}
	for _, row := range filtered {
		if row.AverageScore == 0 {
			t.Fatalf("zero-sentiment row leaked through: %+v", row)
		}
	}
}

func TestLevelCorrelationUsesCloseLevel(t *testing.T) {
	rows := []domain.CorrelationRow{
		{CloseValue: 100, AverageScore: 0.1},
		{CloseValue: 110, AverageScore: 0.2},
		{CloseValue: 120, AverageScore: 0.3},
	}
	if got := LevelCorrelation(rows); math.Abs(got-1) > 1e-12 {
		t.Fatalf("expected 1, got %f", got)
	}
}

func TestDiagnoseViews(t *testing.T) {
	rows := rowsFromSeries([]float64{0.2, 0, 0.4, 0.6}, []float64{1, -1, 2, 3})
	diag := Diagnose(rows)
	full := Correlate(rows)
	if diag.SameDayNonZero == full.SameDay {
		t.Fatalf("non-zero view should differ from full view here: %+v vs %+v", diag, full)
	}
	if diag.ValueLevel < -1 || diag.ValueLevel > 1 {
		t.Fatalf("value-level correlation out of bounds: %f", diag.ValueLevel)
	}
}
