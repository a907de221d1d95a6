package analysis

import (
	"fmt"
	"math"
)

type PredictionType string

const (
	TrendProjection PredictionType = "trend_projection"
	RangePrediction PredictionType = "range_prediction"
)

const (
	rangeConfidence    = 75
	minTrendConfidence = 70
	minRangeCount      = 30
)

type PredictiveInsight struct {
	Type       PredictionType `json:"type" yaml:"type"`
	Metric     string         `json:"metric" yaml:"metric"`
	Prediction string         `json:"prediction" yaml:"prediction"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
	Basis      string         `json:"basis" yaml:"basis"`
	Timeframe  string         `json:"timeframe" yaml:"timeframe"`
	RangeLow   *float64       `json:"rangeLow,omitempty" yaml:"rangeLow,omitempty"`
	RangeHigh  *float64       `json:"rangeHigh,omitempty" yaml:"rangeHigh,omitempty"`
}

// Project turns confident trends into continuations and well-sampled columns
// into one-standard-deviation ranges.
func Project(trends []TrendSignal, s Statistics) []PredictiveInsight {
	var out []PredictiveInsight
	for _, t := range trends {
		if t.Confidence <= minTrendConfidence {
			continue
		}
		out = append(out, PredictiveInsight{
			Type:       TrendProjection,
			Metric:     t.Column,
			Prediction: fmt.Sprintf("Expected to continue %s by approximately %.1f%% in next period", t.Direction, math.Abs(t.ChangePercent)),
			Confidence: t.Confidence,
			Basis:      "Historical trend analysis",
			Timeframe:  "next reporting period",
		})
	}
	for _, cs := range s {
		if cs.Count <= minRangeCount {
			continue
		}
		lo, hi := cs.Mean-cs.StdDev, cs.Mean+cs.StdDev
		out = append(out, PredictiveInsight{
			Type:       RangePrediction,
			Metric:     cs.Column,
			Prediction: fmt.Sprintf("Expected range: %.2f to %.2f", lo, hi),
			Confidence: rangeConfidence,
			Basis:      "Statistical distribution analysis",
			Timeframe:  "immediate future",
			RangeLow:   &lo,
			RangeHigh:  &hi,
		})
	}
	return out
}
