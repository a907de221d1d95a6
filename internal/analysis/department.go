package analysis

import (
	"fmt"
	"strings"
)

// ruleSet is the department-specific part of insight and recommendation
// generation.
type ruleSet struct {
	insights       func(InsightInput) []Insight
	recommendation Recommendation
}

var ruleSets = map[Department]ruleSet{
	Finance: {
		insights: financeInsights,
		recommendation: Recommendation{
			Priority:    High,
			Category:    "Financial Optimization",
			Title:       "Implement Advanced Financial Modeling",
			Description: "Use predictive analytics for revenue forecasting and expense optimization.",
			ActionSteps: []string{
				"Develop time-series forecasting models",
				"Implement cost-benefit analysis framework",
				"Set up automated financial reporting",
			},
			ExpectedImpact:       "20-30% improvement in financial planning accuracy",
			ImplementationEffort: High,
		},
	},
	Sales: {
		insights: salesInsights,
		recommendation: Recommendation{
			Priority:    High,
			Category:    "Sales Optimization",
			Title:       "Optimize Sales Pipeline Management",
			Description: "Leverage data insights to improve conversion rates and deal velocity.",
			ActionSteps: []string{
				"Implement lead scoring system",
				"Develop sales performance dashboards",
				"Create targeted sales training programs",
			},
			ExpectedImpact:       "15-25% increase in conversion rates",
			ImplementationEffort: Medium,
		},
	},
	HR: {
		insights: hrInsights,
		recommendation: Recommendation{
			Priority:    Medium,
			Category:    "Workforce Analytics",
			Title:       "Enhance Talent Management Strategy",
			Description: "Use data-driven insights for better talent acquisition and retention.",
			ActionSteps: []string{
				"Implement employee performance analytics",
				"Develop retention risk assessment models",
				"Create skills gap analysis framework",
			},
			ExpectedImpact:       "10-20% reduction in attrition rates",
			ImplementationEffort: Medium,
		},
	},
}

// defaultRules applies to Operations, Compliance, General and anything else
// without its own entry.
var defaultRules = ruleSet{
	insights: func(InsightInput) []Insight { return nil },
	recommendation: Recommendation{
		Priority:    Medium,
		Category:    "Business Intelligence",
		Title:       "Establish Data-Driven Performance Monitoring",
		Description: "Turn recurring datasets into tracked indicators with clear owners and review cadences.",
		ActionSteps: []string{
			"Define key performance indicators for the dataset",
			"Automate recurring analysis of new data extracts",
			"Schedule periodic reviews of flagged anomalies",
		},
		ExpectedImpact:       "Faster detection of operational issues",
		ImplementationEffort: Low,
	},
}

// HasDepartmentInsights reports whether d adds department-specific insights
// beyond the default recommendation.
func HasDepartmentInsights(d Department) bool {
	_, ok := ruleSets[d]
	return ok
}

func rulesFor(d Department) ruleSet {
	if rs, ok := ruleSets[d]; ok {
		return rs
	}
	return defaultRules
}

// findColumn returns the first statistics entry whose lower-cased name
// contains any of keys, skipping names in exclude.
func findColumn(s Statistics, keys []string, exclude ...string) (ColumnStatistics, bool) {
	for _, cs := range s {
		name := strings.ToLower(cs.Column)
		skip := false
		for _, e := range exclude {
			if cs.Column == e {
				skip = true
			}
		}
		if skip {
			continue
		}
		for _, k := range keys {
			if strings.Contains(name, k) {
				return cs, true
			}
		}
	}
	return ColumnStatistics{}, false
}

func financeInsights(in InsightInput) []Insight {
	rev, ok := findColumn(in.Statistics, []string{"revenue", "sales"})
	if !ok || rev.Mean == 0 {
		return nil
	}
	exp, ok := findColumn(in.Statistics, []string{"expense", "cost"}, rev.Column)
	if !ok {
		return nil
	}
	margin := (rev.Mean - exp.Mean) / rev.Mean * 100
	typ := Warning
	switch {
	case margin > 20:
		typ = Success
	case margin > 10:
		typ = Info
	}
	return []Insight{{
		Type:        typ,
		Category:    "Financial Health",
		Title:       "Profitability Analysis",
		Description: fmt.Sprintf("Estimated profit margin: %.1f%%", margin),
		Impact:      High,
		Confidence:  85,
	}}
}

func salesInsights(in InsightInput) []Insight {
	amt, ok := findColumn(in.Statistics, []string{"amount", "value"})
	if !ok || in.Rows == 0 {
		return nil
	}
	efficiency := amt.Sum / float64(in.Rows)
	typ := Info
	if amt.Mean > amt.Median {
		typ = Success
	}
	return []Insight{{
		Type:        typ,
		Category:    "Sales Performance",
		Title:       "Deal Size Analysis",
		Description: fmt.Sprintf("Average deal size: $%.2f | Efficiency: $%.2f per record", amt.Mean, efficiency),
		Impact:      High,
		Confidence:  90,
	}}
}

func hrInsights(in InsightInput) []Insight {
	sal, ok := findColumn(in.Statistics, []string{"salary", "compensation"})
	if !ok || sal.Median == 0 {
		return nil
	}
	compa := sal.Mean / sal.Median
	typ := Warning
	if compa >= 0.9 && compa <= 1.1 {
		typ = Success
	}
	return []Insight{{
		Type:        typ,
		Category:    "Compensation Analysis",
		Title:       "Salary Distribution",
		Description: fmt.Sprintf("Salary range: $%.2f | Compa-ratio: %.2f", sal.Range, compa),
		Impact:      Medium,
		Confidence:  80,
	}}
}
