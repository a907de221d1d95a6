package analysis

import (
	"fmt"
	"math"
	"strings"
)

type InsightType string

const (
	Warning InsightType = "warning"
	Info    InsightType = "info"
	Success InsightType = "success"
)

// Insight categories.
const (
	CategoryDataQuality  = "Data Quality"
	CategoryDistribution = "Data Distribution"
	CategoryVariability  = "Data Variability"
	CategoryTrend        = "Trend Analysis"
	CategoryRelationship = "Relationship Analysis"
)

type Insight struct {
	Type        InsightType `json:"type" yaml:"type"`
	Category    string      `json:"category" yaml:"category"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Impact      Level       `json:"impact" yaml:"impact"`
	Confidence  float64     `json:"confidence" yaml:"confidence"`
}

// InsightInput carries everything the insight rules read.
type InsightInput struct {
	Statistics Statistics
	Patterns   Patterns
	Department Department
	Rows       int
	Columns    int
}

// SynthesizeInsights applies every rule independently and returns the
// results ordered by descending impact.
func SynthesizeInsights(in InsightInput) []Insight {
	var out []Insight

	if cells := in.Rows * in.Columns; cells > 0 {
		completeness := float64(in.Statistics.TotalCount()) / float64(cells) * 100
		if completeness < 80 {
			out = append(out, Insight{
				Type:        Warning,
				Category:    CategoryDataQuality,
				Title:       "Low Data Completeness",
				Description: fmt.Sprintf("Only %.1f%% of cells contain numeric data. Consider data cleaning.", completeness),
				Impact:      High,
				Confidence:  85,
			})
		}
	}

	for _, cs := range in.Statistics {
		if cs.OutlierPercentage > 10 {
			out = append(out, Insight{
				Type:        Warning,
				Category:    CategoryDistribution,
				Title:       "High Outlier Presence",
				Description: fmt.Sprintf("%s has %.2f%% outliers, which may skew analysis.", cs.Column, cs.OutlierPercentage),
				Impact:      Medium,
				Confidence:  90,
			})
		}
		if cs.Mean != 0 {
			if cv := cs.StdDev / cs.Mean; cv > 0.5 {
				out = append(out, Insight{
					Type:        Info,
					Category:    CategoryVariability,
					Title:       "High Data Variability",
					Description: fmt.Sprintf("%s shows significant variability (CV: %.1f%%).", cs.Column, cv*100),
					Impact:      Medium,
					Confidence:  80,
				})
			}
		}
	}

	for _, t := range in.Patterns.Trends {
		out = append(out, Insight{
			Type:        trendType(t.Direction),
			Category:    CategoryTrend,
			Title:       fmt.Sprintf("%s Trend Detected", capitalize(string(t.Direction))),
			Description: fmt.Sprintf("%s shows %s trend (%s%% change)", t.Column, t.Direction, signed(t.ChangePercent)),
			Impact:      High,
			Confidence:  t.Confidence,
		})
	}

	for _, c := range in.Patterns.Correlations {
		out = append(out, Insight{
			Type:        Info,
			Category:    CategoryRelationship,
			Title:       fmt.Sprintf("%s Correlation Found", capitalize(string(c.Strength))),
			Description: fmt.Sprintf("%s and %s show %s correlation (r=%.3f)", c.ColumnA, c.ColumnB, c.Direction, c.Coefficient),
			Impact:      Medium,
			Confidence:  math.Abs(c.Coefficient) * 100,
		})
	}

	out = append(out, rulesFor(in.Department).insights(in)...)

	SortByRank(out, func(i Insight) int { return i.Impact.Rank() })
	return out
}

// trendType maps Increasing to Success, Decreasing to Warning and Stable to Info.
func trendType(d Direction) InsightType {
	switch d {
	case Increasing:
		return Success
	case Decreasing:
		return Warning
	default:
		return Info
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func signed(f float64) string {
	if f > 0 {
		return fmt.Sprintf("+%.2f", f)
	}
	return fmt.Sprintf("%.2f", f)
}
