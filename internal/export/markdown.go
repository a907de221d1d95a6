package export

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/insightloom-cli/internal/analysis"
	"github.com/KaramelBytes/insightloom-cli/internal/format"
)

const maxVisualRows = 12

// layout decides how section headings and tables look in one rendering.
type layout struct {
	mode    format.Mode
	heading func(string) string
}

var (
	markdownLayout = layout{
		mode:    format.Markdown,
		heading: func(s string) string { return "## " + s + "\n\n" },
	}
	textLayout = layout{
		mode:    format.ASCII,
		heading: func(s string) string { return "[" + strings.ToUpper(s) + "]\n" },
	}
)

// RenderMarkdown renders rep as a GitHub-flavoured Markdown document.
func RenderMarkdown(rep *analysis.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis Report: %s\n\n", safeVal(rep.Metadata.FileName))
	writeReport(&b, rep, markdownLayout)
	return b.String()
}

// RenderText renders rep for a terminal with box-drawn tables.
func RenderText(rep *analysis.Report) string {
	var b strings.Builder
	writeReport(&b, rep, textLayout)
	return b.String()
}

func writeReport(b *strings.Builder, rep *analysis.Report, l layout) {
	md := rep.Metadata

	b.WriteString(l.heading("Executive Summary"))
	b.WriteString(rep.ExecutiveSummary.Overview + "\n\n")
	for _, k := range rep.ExecutiveSummary.KeyTakeaways {
		b.WriteString("- " + safeVal(k) + "\n")
	}
	if len(rep.ExecutiveSummary.KeyTakeaways) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(rep.ExecutiveSummary.BusinessImpact + "\n\n")

	b.WriteString(l.heading("Dataset Summary"))
	fmt.Fprintf(b, "File: %s (%s, %s)\n", safeVal(md.FileName), md.Format, md.FileSizeLabel)
	fmt.Fprintf(b, "Rows: %d\n", md.TotalRows)
	fmt.Fprintf(b, "Columns: %d (numeric %d, categorical %d)\n", md.TotalColumns, md.NumericColumns, md.CategoricalColumns)
	fmt.Fprintf(b, "Department: %s | Focus: %s\n", md.Department.Label(), md.AnalysisFocus)
	fmt.Fprintf(b, "Analysis ID: %s\n\n", md.AnalysisID)

	b.WriteString(l.heading("Schema"))
	t := format.NewTable(l.mode)
	t.Header("Column", "Type", "Missing", "Samples")
	for _, c := range md.ColumnDetails {
		t.Row(safeName(c.Name), c.Type, c.MissingCount, format.Truncate(safeVal(strings.Join(c.SampleValues, ", ")), 48))
	}
	t.Columns(format.ColumnConfig{Number: 3, Align: format.AlignRight})
	writeTable(b, t)

	if len(rep.Statistics) > 0 {
		b.WriteString(l.heading("Statistics"))
		t := format.NewTable(l.mode)
		t.Header("Column", "Count", "Mean", "Median", "Std Dev", "Min", "Max", "Outliers")
		for _, s := range rep.Statistics {
			t.Row(safeName(s.Column), s.Count, format.Num(s.Mean), format.Num(s.Median), format.Num(s.StdDev),
				format.Num(s.Min), format.Num(s.Max), fmt.Sprintf("%d (%s)", s.OutlierCount, format.Percent(s.OutlierPercentage)))
		}
		writeTable(b, t)
	}

	if len(rep.Patterns.Trends)+len(rep.Patterns.Correlations) > 0 {
		b.WriteString(l.heading("Patterns"))
		for _, tr := range rep.Patterns.Trends {
			fmt.Fprintf(b, "- %s: %s (%+.2f%%, confidence %.0f)\n", safeName(tr.Column), tr.Direction, tr.ChangePercent, tr.Confidence)
		}
		for _, c := range rep.Patterns.Correlations {
			fmt.Fprintf(b, "- %s ~ %s: r=%.3f (%s %s)\n", safeName(c.ColumnA), safeName(c.ColumnB), c.Coefficient, c.Strength, c.Direction)
		}
		b.WriteString("\n")
	}

	if len(rep.Insights) > 0 {
		b.WriteString(l.heading("Insights"))
		for _, in := range rep.Insights {
			fmt.Fprintf(b, "- [%s/%s] %s: %s\n", in.Type, in.Impact, in.Title, safeVal(in.Description))
		}
		b.WriteString("\n")
	}

	if len(rep.Recommendations) > 0 {
		b.WriteString(l.heading("Recommendations"))
		for i, r := range rep.Recommendations {
			fmt.Fprintf(b, "%d. %s (%s priority, %s effort)\n", i+1, r.Title, r.Priority, r.ImplementationEffort)
			fmt.Fprintf(b, "   %s\n", r.Description)
			for _, step := range r.ActionSteps {
				fmt.Fprintf(b, "   - %s\n", step)
			}
			fmt.Fprintf(b, "   Expected impact: %s\n", r.ExpectedImpact)
		}
		b.WriteString("\n")
	}

	if len(rep.Anomalies)+len(rep.DataQuality) > 0 {
		b.WriteString(l.heading("Anomalies and Data Quality"))
		t := format.NewTable(l.mode)
		t.Header("Column", "Issue", "Severity", "Detail")
		for _, a := range rep.Anomalies {
			t.Row(safeName(a.Column), a.Type, a.Severity, a.Description)
		}
		for _, q := range rep.DataQuality {
			t.Row(safeName(q.Column), q.Issue, q.Severity, fmt.Sprintf("%d missing (%s)", q.Count, format.Percent(q.Percentage)))
		}
		writeTable(b, t)
	}

	if len(rep.PredictiveInsights) > 0 {
		b.WriteString(l.heading("Predictions"))
		for _, p := range rep.PredictiveInsights {
			fmt.Fprintf(b, "- %s: %s (confidence %.0f, %s)\n", safeName(p.Metric), p.Prediction, p.Confidence, p.Timeframe)
		}
		b.WriteString("\n")
	}

	for _, v := range rep.Visualizations {
		b.WriteString(l.heading(v.Title))
		t := format.NewTable(l.mode)
		switch v.Type {
		case analysis.Histogram:
			t.Header("Range", "Count", "Frequency")
			for _, bin := range v.Bins {
				t.Row(bin.Range, bin.Count, format.Percent(bin.Frequency))
			}
		case analysis.Line:
			t.Header("Period", "Value")
			for i, p := range v.Points {
				if i == maxVisualRows {
					t.Row("...", fmt.Sprintf("(%d more)", len(v.Points)-maxVisualRows))
					break
				}
				t.Row(safeVal(p.Period), format.Num(p.Value))
			}
		}
		writeTable(b, t)
	}

	if len(rep.ExecutiveSummary.NextSteps) > 0 {
		b.WriteString(l.heading("Next Steps"))
		for _, s := range rep.ExecutiveSummary.NextSteps {
			b.WriteString("- " + s + "\n")
		}
	}
}

func writeTable(b *strings.Builder, t format.Table) {
	if t.Len() == 0 {
		b.WriteString("(none)\n\n")
		return
	}
	b.WriteString(t.String())
	b.WriteString("\n\n")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return safeVal(s)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
