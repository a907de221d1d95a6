package analysis

type Recommendation struct {
	Priority             Level    `json:"priority" yaml:"priority"`
	Category             string   `json:"category" yaml:"category"`
	Title                string   `json:"title" yaml:"title"`
	Description          string   `json:"description" yaml:"description"`
	ActionSteps          []string `json:"actionItems" yaml:"actionItems"`
	ExpectedImpact       string   `json:"expectedImpact" yaml:"expectedImpact"`
	ImplementationEffort Level    `json:"implementationEffort" yaml:"implementationEffort"`
}

// Recommend derives recommendations from insights, correlations and the
// department, ordered by descending priority.
func Recommend(insights []Insight, correlations []CorrelationSignal, dept Department) []Recommendation {
	var out []Recommendation

	for _, in := range insights {
		if in.Category == CategoryDataQuality {
			out = append(out, Recommendation{
				Priority:    High,
				Category:    "Data Management",
				Title:       "Enhance Data Quality",
				Description: "Implement data validation and cleaning procedures to improve analysis accuracy.",
				ActionSteps: []string{
					"Set up automated data validation rules",
					"Implement missing data imputation strategies",
					"Establish data quality monitoring dashboard",
				},
				ExpectedImpact:       "High improvement in analysis reliability",
				ImplementationEffort: Medium,
			})
			break
		}
	}

	out = append(out, rulesFor(dept).recommendation.clone())

	if len(correlations) > 0 {
		out = append(out, Recommendation{
			Priority:    Medium,
			Category:    "Analytics Enhancement",
			Title:       "Leverage Correlation Insights",
			Description: "Use identified correlations to build predictive models and business rules.",
			ActionSteps: []string{
				"Develop regression models for key relationships",
				"Create business rules based on correlation patterns",
				"Implement automated alerting for correlation changes",
			},
			ExpectedImpact:       "Improved decision-making accuracy",
			ImplementationEffort: Medium,
		})
	}

	SortByRank(out, func(r Recommendation) int { return r.Priority.Rank() })
	return out
}

// clone copies ActionSteps so callers cannot alter the shared templates.
func (r Recommendation) clone() Recommendation {
	r.ActionSteps = append([]string(nil), r.ActionSteps...)
	return r
}
