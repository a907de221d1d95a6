package analysis

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/KaramelBytes/insightloom-cli/internal/dataset"
)

const sampleValueRows = 5

type ColumnDetail struct {
	Name         string             `json:"name" yaml:"name"`
	Type         dataset.ColumnKind `json:"type" yaml:"type"`
	SampleValues []string           `json:"sampleValues" yaml:"sampleValues"`
	MissingCount int                `json:"missingCount" yaml:"missingCount"`
}

type Metadata struct {
	AnalysisID         string         `json:"analysisId" yaml:"analysisId"`
	FileName           string         `json:"fileName" yaml:"fileName"`
	FileSize           int64          `json:"fileSize" yaml:"fileSize"`
	FileSizeLabel      string         `json:"fileSizeLabel" yaml:"fileSizeLabel"`
	Format             string         `json:"format" yaml:"format"`
	TotalRows          int            `json:"totalRows" yaml:"totalRows"`
	TotalColumns       int            `json:"totalColumns" yaml:"totalColumns"`
	NumericColumns     int            `json:"numericColumns" yaml:"numericColumns"`
	CategoricalColumns int            `json:"categoricalColumns" yaml:"categoricalColumns"`
	Department         Department     `json:"department" yaml:"department"`
	AnalysisFocus      Focus          `json:"analysisFocus" yaml:"analysisFocus"`
	AnalysisTimestamp  time.Time      `json:"analysisTimestamp" yaml:"analysisTimestamp"`
	ColumnDetails      []ColumnDetail `json:"columnDetails" yaml:"columnDetails"`
}

// Report is the complete output of one analysis run.
type Report struct {
	Metadata           Metadata            `json:"metadata" yaml:"metadata"`
	Statistics         Statistics          `json:"statistics" yaml:"statistics"`
	Patterns           Patterns            `json:"patterns" yaml:"patterns"`
	Insights           []Insight           `json:"insights" yaml:"insights"`
	Recommendations    []Recommendation    `json:"recommendations" yaml:"recommendations"`
	Anomalies          []Anomaly           `json:"anomalies" yaml:"anomalies"`
	DataQuality        []DataQualityIssue  `json:"dataQualityIssues" yaml:"dataQualityIssues"`
	PredictiveInsights []PredictiveInsight `json:"predictiveInsights" yaml:"predictiveInsights"`
	Visualizations     []Visualization     `json:"visualizations" yaml:"visualizations"`
	ExecutiveSummary   ExecutiveSummary    `json:"executiveSummary" yaml:"executiveSummary"`
}

// Parts are the upstream results a Report is assembled from.
type Parts struct {
	ID                 string
	Dataset            *dataset.Dataset
	Config             Config
	Timestamp          time.Time
	Statistics         Statistics
	Patterns           Patterns
	Insights           []Insight
	Recommendations    []Recommendation
	Anomalies          []Anomaly
	DataQuality        []DataQualityIssue
	PredictiveInsights []PredictiveInsight
	Visualizations     []Visualization
}

// Assemble composes parts into a Report without recomputing anything.
func Assemble(p Parts) *Report {
	md := buildMetadata(p)
	r := &Report{
		Metadata:           md,
		Statistics:         p.Statistics,
		Patterns:           p.Patterns,
		Insights:           p.Insights,
		Recommendations:    p.Recommendations,
		Anomalies:          p.Anomalies,
		DataQuality:        p.DataQuality,
		PredictiveInsights: p.PredictiveInsights,
		Visualizations:     p.Visualizations,
	}
	r.ExecutiveSummary = Summarize(md, p.Insights, p.Recommendations)
	return r
}

func buildMetadata(p Parts) Metadata {
	ds := p.Dataset
	name := p.Config.FileName
	if name == "" {
		name = ds.Source.Name
	}
	if name == "" {
		name = "dataset"
	}
	md := Metadata{
		AnalysisID:        p.ID,
		FileName:          name,
		FileSize:          ds.Source.Size,
		FileSizeLabel:     humanize.IBytes(uint64(max(ds.Source.Size, 0))),
		Format:            ds.Source.Format,
		TotalRows:         ds.RowCount(),
		TotalColumns:      ds.ColumnCount(),
		Department:        p.Config.Department,
		AnalysisFocus:     p.Config.Focus,
		AnalysisTimestamp: p.Timestamp,
		ColumnDetails:     make([]ColumnDetail, 0, ds.ColumnCount()),
	}
	for _, c := range ds.Columns {
		d := ColumnDetail{Name: c.Name, Type: c.Kind, SampleValues: []string{}, MissingCount: c.MissingCount}
		for i := 0; i < len(ds.Records) && i < sampleValueRows; i++ {
			if v := ds.Records[i][c.Index]; !v.IsAbsent() {
				d.SampleValues = append(d.SampleValues, v.String())
			}
		}
		switch {
		case c.Kind == dataset.Numeric:
			md.NumericColumns++
		case c.MissingCount < ds.RowCount():
			md.CategoricalColumns++
		}
		md.ColumnDetails = append(md.ColumnDetails, d)
	}
	return md
}
