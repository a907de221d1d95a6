package analysis

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/insightloom-cli/internal/dataset"
)

// MinPatternRecords is the record count below which pattern detection
// returns nothing.
const MinPatternRecords = 5

type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
	Stable     Direction = "stable"
)

type Strength string

const (
	Strong   Strength = "strong"
	Moderate Strength = "moderate"
)

type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
)

// TrendSignal compares the first and last thirds of a column.
type TrendSignal struct {
	Column        string    `json:"column" yaml:"column"`
	Direction     Direction `json:"trend" yaml:"trend"`
	ChangePercent float64   `json:"changePercentage" yaml:"changePercentage"`
	Confidence    float64   `json:"confidence" yaml:"confidence"`
}

// CorrelationSignal is a Pearson coefficient for an unordered column pair.
type CorrelationSignal struct {
	ColumnA     string   `json:"column1" yaml:"column1"`
	ColumnB     string   `json:"column2" yaml:"column2"`
	Coefficient float64  `json:"correlation" yaml:"correlation"`
	Strength    Strength `json:"strength" yaml:"strength"`
	Direction   Polarity `json:"direction" yaml:"direction"`
}

type Patterns struct {
	Trends       []TrendSignal       `json:"trends" yaml:"trends"`
	Correlations []CorrelationSignal `json:"correlations" yaml:"correlations"`
}

// DetectTrend evaluates values in row order. It requires more than minValues
// values and a relative change above 5%. A zero first-third average yields
// no signal.
func DetectTrend(column string, values []float64, minValues int) (TrendSignal, bool) {
	n := len(values)
	if n <= minValues {
		return TrendSignal{}, false
	}
	k := n / 3
	if k == 0 {
		return TrendSignal{}, false
	}
	first := floats.Sum(values[:k]) / float64(k)
	last := floats.Sum(values[n-k:]) / float64(k)
	if first == 0 {
		return TrendSignal{}, false
	}
	change := (last - first) / math.Abs(first) * 100
	if math.Abs(change) <= 5 {
		return TrendSignal{}, false
	}
	dir := Stable
	switch {
	case change > 0:
		dir = Increasing
	case change < 0:
		dir = Decreasing
	}
	return TrendSignal{
		Column:        column,
		Direction:     dir,
		ChangePercent: change,
		Confidence:    math.Min(100, math.Abs(change)*2),
	}, true
}

// Pearson returns the correlation of equal-length x and y, clamped to
// [-1, 1]. A constant input yields 0.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	if floats.Max(x) == floats.Min(x) || floats.Max(y) == floats.Min(y) {
		return 0
	}
	n := float64(len(x))
	dx := append([]float64(nil), x...)
	dy := append([]float64(nil), y...)
	floats.AddConst(-floats.Sum(x)/n, dx)
	floats.AddConst(-floats.Sum(y)/n, dy)
	varX, varY := floats.Dot(dx, dx), floats.Dot(dy, dy)
	if varX <= 0 || varY <= 0 {
		return 0
	}
	r := floats.Dot(dx, dy) / math.Sqrt(varX*varY)
	switch {
	case math.IsNaN(r):
		return 0
	case r > 1:
		return 1
	case r < -1:
		return -1
	}
	return r
}

// Correlate builds a signal when |r| > 0.7.
func Correlate(a, b string, x, y []float64) (CorrelationSignal, bool) {
	r := Pearson(x, y)
	if math.Abs(r) <= 0.7 {
		return CorrelationSignal{}, false
	}
	sig := CorrelationSignal{ColumnA: a, ColumnB: b, Coefficient: r, Strength: Moderate, Direction: Negative}
	if math.Abs(r) > 0.9 {
		sig.Strength = Strong
	}
	if r > 0 {
		sig.Direction = Positive
	}
	return sig, true
}

// DetectPatterns finds trends per numeric column and correlations per
// unordered pair of numeric columns. Output follows column order and, for
// pairs, (i, j) with i < j.
func DetectPatterns(ctx context.Context, ds *dataset.Dataset, workers, trendMinValues int) (Patterns, error) {
	if ds.RowCount() < MinPatternRecords {
		return Patterns{}, nil
	}
	cols := ds.NumericColumns()
	values := make([][]float64, len(cols))
	for i, c := range cols {
		values[i] = ds.NumericValues(c.Index)
	}

	var p Patterns
	for i, c := range cols {
		if err := ctx.Err(); err != nil {
			return Patterns{}, err
		}
		if t, ok := DetectTrend(c.Name, values[i], trendMinValues); ok {
			p.Trends = append(p.Trends, t)
		}
	}

	type pair struct{ i, j int }
	var pairs []pair
	for i := range cols {
		for j := i + 1; j < len(cols); j++ {
			if len(values[i]) == len(values[j]) && len(values[i]) > 5 {
				pairs = append(pairs, pair{i, j})
			}
		}
	}
	found := make([]*CorrelationSignal, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for k, pr := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if sig, ok := Correlate(cols[pr.i].Name, cols[pr.j].Name, values[pr.i], values[pr.j]); ok {
				found[k] = &sig
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Patterns{}, err
	}
	for _, f := range found {
		if f != nil {
			p.Correlations = append(p.Correlations, *f)
		}
	}
	return p, nil
}
