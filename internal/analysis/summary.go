package analysis

import (
	"fmt"
	"strings"
)

const (
	summaryTakeaways = 3
	summaryNextSteps = 2
)

// ExecutiveSummary is the short narrative placed at the top of a report.
type ExecutiveSummary struct {
	Overview       string   `json:"overview" yaml:"overview"`
	KeyTakeaways   []string `json:"keyTakeaways" yaml:"keyTakeaways"`
	BusinessImpact string   `json:"businessImpact" yaml:"businessImpact"`
	NextSteps      []string `json:"nextSteps" yaml:"nextSteps"`
}

// Summarize builds the summary from already-ranked insights and recommendations.
func Summarize(md Metadata, insights []Insight, recs []Recommendation) ExecutiveSummary {
	s := ExecutiveSummary{
		Overview: fmt.Sprintf("Analysis of %s containing %d records across %d variables. The data reveals %d key insights with %d actionable recommendations.",
			md.FileName, md.TotalRows, md.TotalColumns, len(insights), len(recs)),
		BusinessImpact: fmt.Sprintf("This analysis provides %s with data-driven insights for strategic decision-making and operational optimization.",
			md.Department.Label()),
		KeyTakeaways: []string{},
		NextSteps:    []string{},
	}
	for i := 0; i < len(insights) && i < summaryTakeaways; i++ {
		s.KeyTakeaways = append(s.KeyTakeaways, insights[i].Description)
	}
	for i := 0; i < len(recs) && i < summaryNextSteps; i++ {
		s.NextSteps = append(s.NextSteps, recs[i].Title)
	}
	return s
}

// String renders the summary as a single paragraph.
func (s ExecutiveSummary) String() string {
	var b strings.Builder
	b.WriteString(s.Overview)
	if len(s.KeyTakeaways) > 0 {
		b.WriteString(" Key takeaways: ")
		b.WriteString(strings.Join(s.KeyTakeaways, "; "))
		b.WriteString(".")
	}
	b.WriteString(" ")
	b.WriteString(s.BusinessImpact)
	if len(s.NextSteps) > 0 {
		b.WriteString(" Next steps: ")
		b.WriteString(strings.Join(s.NextSteps, "; "))
		b.WriteString(".")
	}
	return b.String()
}
