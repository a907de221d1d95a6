package analysis

import (
	"fmt"

	"github.com/KaramelBytes/insightloom-cli/internal/dataset"
)

type Anomaly struct {
	Column      string `json:"column" yaml:"column"`
	Type        string `json:"type" yaml:"type"`
	Severity    Level  `json:"severity" yaml:"severity"`
	Description string `json:"description" yaml:"description"`
	Impact      string `json:"impact" yaml:"impact"`
	Suggestion  string `json:"suggestion" yaml:"suggestion"`
}

// DetectAnomalies flags every column with at least one IQR outlier.
func DetectAnomalies(s Statistics) []Anomaly {
	var out []Anomaly
	for _, cs := range s {
		if cs.OutlierCount == 0 {
			continue
		}
		sev := Low
		switch {
		case cs.OutlierPercentage > 20:
			sev = High
		case cs.OutlierPercentage > 10:
			sev = Medium
		}
		out = append(out, Anomaly{
			Column:      cs.Column,
			Type:        "statistical_outlier",
			Severity:    sev,
			Description: fmt.Sprintf("%d outliers detected (%.2f%% of data)", cs.OutlierCount, cs.OutlierPercentage),
			Impact:      "May affect statistical analysis and model performance",
			Suggestion:  "Review outlier data points for data entry errors or special cases",
		})
	}
	return out
}

// DataQualityIssue reports missing cells in a column.
type DataQualityIssue struct {
	Column     string  `json:"column" yaml:"column"`
	Issue      string  `json:"issue" yaml:"issue"`
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
	Severity   Level   `json:"severity" yaml:"severity"`
}

// AssessDataQuality returns one issue per column with missing values.
// Severity is high above 10% of rows, medium otherwise.
func AssessDataQuality(ds *dataset.Dataset) []DataQualityIssue {
	rows := ds.RowCount()
	if rows == 0 {
		return nil
	}
	var out []DataQualityIssue
	for _, c := range ds.Columns {
		if c.MissingCount == 0 {
			continue
		}
		pct := float64(c.MissingCount) / float64(rows) * 100
		sev := Medium
		if pct > 10 {
			sev = High
		}
		out = append(out, DataQualityIssue{
			Column:     c.Name,
			Issue:      "missing_values",
			Count:      c.MissingCount,
			Percentage: pct,
			Severity:   sev,
		})
	}
	return out
}
