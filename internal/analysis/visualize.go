package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/insightloom-cli/internal/dataset"
)

type ChartType string

const (
	Histogram ChartType = "histogram"
	Line      ChartType = "line"
)

const (
	maxHistogramBins = 10
	maxSeriesPoints  = 50
	minSeriesPoints  = 5
)

type HistogramBin struct {
	Range     string  `json:"range" yaml:"range"`
	Start     float64 `json:"start" yaml:"start"`
	End       float64 `json:"end" yaml:"end"`
	Count     int     `json:"count" yaml:"count"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
}

type SeriesPoint struct {
	Period string  `json:"period" yaml:"period"`
	Value  float64 `json:"value" yaml:"value"`
}

// RenderHints tell a chart renderer which fields to plot.
type RenderHints struct {
	XKey        string `json:"xKey" yaml:"xKey"`
	YKey        string `json:"yKey" yaml:"yKey"`
	FillColor   string `json:"fillColor,omitempty" yaml:"fillColor,omitempty"`
	StrokeColor string `json:"strokeColor,omitempty" yaml:"strokeColor,omitempty"`
}

// Visualization is a chart-ready payload. Histograms fill Bins, line charts
// fill Points.
type Visualization struct {
	Type   ChartType      `json:"type" yaml:"type"`
	Title  string         `json:"title" yaml:"title"`
	Column string         `json:"column" yaml:"column"`
	Bins   []HistogramBin `json:"bins,omitempty" yaml:"bins,omitempty"`
	Points []SeriesPoint  `json:"points,omitempty" yaml:"points,omitempty"`
	Config RenderHints    `json:"config" yaml:"config"`
}

// BuildHistogram bins values evenly over [min, max] using
// min(10, floor(sqrt(n))) bins. The last bin is closed so every value is
// counted; a constant column lands entirely in the first bin.
func BuildHistogram(column string, values []float64) (Visualization, bool) {
	n := len(values)
	if n == 0 {
		return Visualization{}, false
	}
	bins := min(maxHistogramBins, int(math.Floor(math.Sqrt(float64(n)))))
	lo, hi := floats.Min(values), floats.Max(values)
	edges := make([]float64, bins+1)
	floats.Span(edges, lo, hi)

	counts := make([]int, bins)
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
			idx = max(0, min(idx, bins-1))
		}
		counts[idx]++
	}

	out := make([]HistogramBin, bins)
	for i := range out {
		out[i] = HistogramBin{
			Range:     fmt.Sprintf("%.2f-%.2f", edges[i], edges[i+1]),
			Start:     edges[i],
			End:       edges[i+1],
			Count:     counts[i],
			Frequency: float64(counts[i]) / float64(n) * 100,
		}
	}
	return Visualization{
		Type:   Histogram,
		Title:  "Distribution of " + column,
		Column: column,
		Bins:   out,
		Config: RenderHints{XKey: "range", YKey: "count", FillColor: "#3b82f6"},
	}, true
}

// BuildTimeSeries pairs the first date-like column with the first other
// numeric column. Rows lacking either value are skipped, the first 50
// remaining are kept, and fewer than 5 yields nothing.
func BuildTimeSeries(ds *dataset.Dataset) (Visualization, bool) {
	period := -1
	for _, c := range ds.Columns {
		name := strings.ToLower(c.Name)
		if strings.Contains(name, "date") || strings.Contains(name, "month") || strings.Contains(name, "year") {
			period = c.Index
			break
		}
	}
	if period < 0 {
		return Visualization{}, false
	}
	value := -1
	for _, c := range ds.NumericColumns() {
		if c.Index != period {
			value = c.Index
			break
		}
	}
	if value < 0 {
		return Visualization{}, false
	}

	var pts []SeriesPoint
	for _, r := range ds.Records {
		if len(pts) == maxSeriesPoints {
			break
		}
		if r[period].IsAbsent() || !r[value].IsNumber() {
			continue
		}
		pts = append(pts, SeriesPoint{Period: r[period].String(), Value: r[value].Num})
	}
	if len(pts) < minSeriesPoints {
		return Visualization{}, false
	}
	name := ds.Columns[value].Name
	return Visualization{
		Type:   Line,
		Title:  name + " Over Time",
		Column: name,
		Points: pts,
		Config: RenderHints{XKey: "period", YKey: "value", StrokeColor: "#10b981"},
	}, true
}

// PrepareVisualizations returns one histogram per numeric column in schema
// order, followed by at most one time series.
func PrepareVisualizations(ctx context.Context, ds *dataset.Dataset, workers int) ([]Visualization, error) {
	cols := ds.NumericColumns()
	hists := make([]*Visualization, len(cols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, c := range cols {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if v, ok := BuildHistogram(c.Name, ds.NumericValues(c.Index)); ok {
				hists[i] = &v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Visualization
	for _, h := range hists {
		if h != nil {
			out = append(out, *h)
		}
	}
	if ts, ok := BuildTimeSeries(ds); ok {
		out = append(out, ts)
	}
	return out, nil
}
