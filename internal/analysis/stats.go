package analysis

import (
	"context"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/insightloom-cli/internal/dataset"
)

// ColumnStatistics summarizes the finite values of one numeric column.
// Median and quartiles use floor-index selection on the sorted values:
// median = sorted[n/2], q1 = sorted[floor(0.25n)], q3 = sorted[floor(0.75n)].
// For an even count the median is therefore the upper of the two middle values.
type ColumnStatistics struct {
	Column            string  `json:"column" yaml:"column"`
	Count             int     `json:"count" yaml:"count"`
	Sum               float64 `json:"sum" yaml:"sum"`
	Mean              float64 `json:"mean" yaml:"mean"`
	Median            float64 `json:"median" yaml:"median"`
	Min               float64 `json:"min" yaml:"min"`
	Max               float64 `json:"max" yaml:"max"`
	Range             float64 `json:"range" yaml:"range"`
	StdDev            float64 `json:"standardDeviation" yaml:"standardDeviation"`
	Variance          float64 `json:"variance" yaml:"variance"`
	Q1                float64 `json:"q1" yaml:"q1"`
	Q3                float64 `json:"q3" yaml:"q3"`
	IQR               float64 `json:"iqr" yaml:"iqr"`
	Skewness          float64 `json:"skewness" yaml:"skewness"`
	Kurtosis          float64 `json:"kurtosis" yaml:"kurtosis"`
	OutlierCount      int     `json:"outliers" yaml:"outliers"`
	OutlierPercentage float64 `json:"outlierPercentage" yaml:"outlierPercentage"`
}

// Statistics holds per-column results in schema order.
type Statistics []ColumnStatistics

// Lookup returns the statistics for column name.
func (s Statistics) Lookup(name string) (ColumnStatistics, bool) {
	for _, cs := range s {
		if cs.Column == name {
			return cs, true
		}
	}
	return ColumnStatistics{}, false
}

// TotalCount is the number of numeric cells across all columns.
func (s Statistics) TotalCount() int {
	n := 0
	for _, cs := range s {
		n += cs.Count
	}
	return n
}

// Describe computes statistics for values. ok is false when values is empty.
func Describe(column string, values []float64) (cs ColumnStatistics, ok bool) {
	n := len(values)
	if n == 0 {
		return ColumnStatistics{}, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum, _ := stats.Sum(values)
	lo, _ := stats.Min(sorted)
	hi, _ := stats.Max(sorted)
	sd, _ := stats.StandardDeviationPopulation(values)

	cs = ColumnStatistics{
		Column:   column,
		Count:    n,
		Sum:      sum,
		Mean:     sum / float64(n),
		Median:   sorted[n/2],
		Min:      lo,
		Max:      hi,
		Range:    hi - lo,
		StdDev:   sd,
		Variance: sd * sd,
		Q1:       sorted[int(math.Floor(float64(n)*0.25))],
		Q3:       sorted[int(math.Floor(float64(n)*0.75))],
	}
	cs.IQR = cs.Q3 - cs.Q1
	if n >= 3 && sd > 0 {
		cs.Skewness = finiteOrZero(stat.Skew(values, nil))
		cs.Kurtosis = finiteOrZero(stat.ExKurtosis(values, nil))
	}

	lower := cs.Q1 - 1.5*cs.IQR
	upper := cs.Q3 + 1.5*cs.IQR
	for _, v := range values {
		if v < lower || v > upper {
			cs.OutlierCount++
		}
	}
	cs.OutlierPercentage = float64(cs.OutlierCount) / float64(n) * 100
	return cs, true
}

// ComputeStatistics describes every numeric column of ds. Columns without a
// finite value are omitted.
func ComputeStatistics(ctx context.Context, ds *dataset.Dataset, workers int) (Statistics, error) {
	cols := ds.NumericColumns()
	results := make([]*ColumnStatistics, len(cols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, col := range cols {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if cs, ok := Describe(col.Name, ds.NumericValues(col.Index)); ok {
				results[i] = &cs
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(Statistics, 0, len(cols))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
