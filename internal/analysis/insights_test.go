package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findInsight(list []Insight, title string) (Insight, bool) {
	for _, in := range list {
		if in.Title == title {
			return in, true
		}
	}
	return Insight{}, false
}

func TestSynthesizeInsightsCoreRules(t *testing.T) {
	in := InsightInput{
		Statistics: Statistics{
			{Column: "spiky", Count: 20, Mean: 10, StdDev: 2, OutlierPercentage: 15},
			{Column: "wide", Count: 20, Mean: 10, StdDev: 8},
			{Column: "centered", Count: 20, Mean: 0, StdDev: 8},
		},
		Patterns: Patterns{
			Trends: []TrendSignal{
				{Column: "wide", Direction: Decreasing, ChangePercent: -12.5, Confidence: 25},
			},
			Correlations: []CorrelationSignal{
				{ColumnA: "spiky", ColumnB: "wide", Coefficient: 0.95, Strength: Strong, Direction: Positive},
			},
		},
		Department: General,
		Rows:       20,
		Columns:    5,
	}
	got := SynthesizeInsights(in)

	dq, ok := findInsight(got, "Low Data Completeness")
	require.True(t, ok, "60 of 100 cells are numeric")
	assert.Equal(t, Warning, dq.Type)
	assert.Equal(t, CategoryDataQuality, dq.Category)
	assert.Equal(t, "Only 60.0% of cells contain numeric data. Consider data cleaning.", dq.Description)

	out, ok := findInsight(got, "High Outlier Presence")
	require.True(t, ok)
	assert.Equal(t, "spiky has 15.00% outliers, which may skew analysis.", out.Description)

	v, ok := findInsight(got, "High Data Variability")
	require.True(t, ok)
	assert.Equal(t, "wide shows significant variability (CV: 80.0%).", v.Description)

	tr, ok := findInsight(got, "Decreasing Trend Detected")
	require.True(t, ok)
	assert.Equal(t, Warning, tr.Type)
	assert.Equal(t, "wide shows decreasing trend (-12.50% change)", tr.Description)
	assert.Equal(t, 25.0, tr.Confidence)

	c, ok := findInsight(got, "Strong Correlation Found")
	require.True(t, ok)
	assert.Equal(t, Info, c.Type)
	assert.InDelta(t, 95.0, c.Confidence, 1e-9)

	variability := 0
	for _, i := range got {
		if i.Category == CategoryVariability {
			variability++
		}
	}
	assert.Equal(t, 1, variability, "zero mean column is skipped")
}

func TestSynthesizeInsightsOrderedByImpactStable(t *testing.T) {
	in := InsightInput{
		Statistics: Statistics{
			{Column: "a", Count: 10, Mean: 1, StdDev: 1, OutlierPercentage: 20},
			{Column: "b", Count: 10, Mean: 1, StdDev: 1},
		},
		Patterns: Patterns{Trends: []TrendSignal{
			{Column: "a", Direction: Increasing, ChangePercent: 10, Confidence: 20},
			{Column: "b", Direction: Increasing, ChangePercent: 30, Confidence: 60},
		}},
		Rows:    10,
		Columns: 2,
	}
	got := SynthesizeInsights(in)
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Impact.Rank(), got[i].Impact.Rank())
	}
	assert.Equal(t, "a shows increasing trend (+10.00% change)", got[0].Description)
	assert.Equal(t, "b shows increasing trend (+30.00% change)", got[1].Description)
	assert.Equal(t, "High Outlier Presence", got[2].Title)
	assert.Equal(t, "a shows significant variability (CV: 100.0%).", got[3].Description)
	assert.Equal(t, "b shows significant variability (CV: 100.0%).", got[4].Description)
}

func TestFinanceProfitability(t *testing.T) {
	cases := []struct {
		revenue, cost float64
		want          InsightType
	}{
		{100, 70, Success},
		{100, 85, Info},
		{100, 95, Warning},
	}
	for _, tc := range cases {
		got := SynthesizeInsights(InsightInput{
			Statistics: Statistics{
				{Column: "Total Revenue", Count: 6, Mean: tc.revenue, StdDev: 1},
				{Column: "Operating Cost", Count: 6, Mean: tc.cost, StdDev: 1},
			},
			Department: Finance,
			Rows:       6,
			Columns:    2,
		})
		p, ok := findInsight(got, "Profitability Analysis")
		require.True(t, ok)
		assert.Equal(t, tc.want, p.Type, "cost %.0f", tc.cost)
		assert.Equal(t, "Financial Health", p.Category)
	}

	got := SynthesizeInsights(InsightInput{
		Statistics: Statistics{{Column: "sales_cost", Count: 6, Mean: 10}},
		Department: Finance,
		Rows:       6,
		Columns:    1,
	})
	_, ok := findInsight(got, "Profitability Analysis")
	assert.False(t, ok, "one column cannot be both revenue and expense")
}

func TestSalesDealSize(t *testing.T) {
	got := SynthesizeInsights(InsightInput{
		Statistics: Statistics{{Column: "deal_amount", Count: 4, Sum: 1000, Mean: 250, Median: 200}},
		Department: Sales,
		Rows:       5,
		Columns:    1,
	})
	d, ok := findInsight(got, "Deal Size Analysis")
	require.True(t, ok)
	assert.Equal(t, Success, d.Type)
	assert.Equal(t, "Average deal size: $250.00 | Efficiency: $200.00 per record", d.Description)
	assert.Equal(t, 90.0, d.Confidence)
}

func TestHRCompaRatio(t *testing.T) {
	within := SynthesizeInsights(InsightInput{
		Statistics: Statistics{{Column: "Base Salary", Count: 3, Mean: 55000, Median: 50000, Range: 30000}},
		Department: HR,
		Rows:       3,
		Columns:    1,
	})
	s, ok := findInsight(within, "Salary Distribution")
	require.True(t, ok)
	assert.Equal(t, Success, s.Type, "1.10 is inside the inclusive band")
	assert.Equal(t, "Salary range: $30000.00 | Compa-ratio: 1.10", s.Description)

	outside := SynthesizeInsights(InsightInput{
		Statistics: Statistics{{Column: "compensation", Count: 3, Mean: 80000, Median: 50000}},
		Department: HR,
		Rows:       3,
		Columns:    1,
	})
	s, ok = findInsight(outside, "Salary Distribution")
	require.True(t, ok)
	assert.Equal(t, Warning, s.Type)
}

func TestDepartmentsWithoutRulesAddNoInsights(t *testing.T) {
	stats := Statistics{{Column: "revenue", Count: 3, Mean: 100}, {Column: "cost", Count: 3, Mean: 50}}
	for _, d := range []Department{Operations, Compliance, General} {
		got := SynthesizeInsights(InsightInput{Statistics: stats, Department: d, Rows: 3, Columns: 2})
		assert.Empty(t, got, string(d))
	}
}

func TestRecommend(t *testing.T) {
	insights := []Insight{{Category: CategoryDataQuality, Impact: High}}
	corr := []CorrelationSignal{{ColumnA: "a", ColumnB: "b"}}

	got := Recommend(insights, corr, HR)
	require.Len(t, got, 3)
	assert.Equal(t, "Enhance Data Quality", got[0].Title)
	assert.Len(t, got[0].ActionSteps, 3)
	assert.Equal(t, "Enhance Talent Management Strategy", got[1].Title)
	assert.Equal(t, "Leverage Correlation Insights", got[2].Title)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Priority.Rank(), got[i].Priority.Rank())
	}

	got = Recommend(nil, nil, Finance)
	require.Len(t, got, 1)
	assert.Equal(t, "Financial Optimization", got[0].Category)

	got = Recommend(nil, corr, Compliance)
	require.Len(t, got, 2)
	assert.Equal(t, "Establish Data-Driven Performance Monitoring", got[0].Title)
	assert.Equal(t, "Leverage Correlation Insights", got[1].Title, "ties keep emission order")

	got[0].ActionSteps[0] = "mutated"
	again := Recommend(nil, nil, Compliance)
	assert.NotEqual(t, "mutated", again[0].ActionSteps[0])
}

func TestSortByRankIsStable(t *testing.T) {
	type item struct {
		name string
		lvl  Level
	}
	items := []item{{"a", Low}, {"b", High}, {"c", Medium}, {"d", High}, {"e", Low}, {"f", "unknown"}}
	SortByRank(items, func(i item) int { return i.lvl.Rank() })
	var names []string
	for _, i := range items {
		names = append(names, i.name)
	}
	assert.Equal(t, []string{"b", "d", "c", "a", "e", "f"}, names)
}

func TestParseDepartment(t *testing.T) {
	d, err := ParseDepartment("  Finance ")
	require.NoError(t, err)
	assert.Equal(t, Finance, d)
	d, err = ParseDepartment("")
	require.NoError(t, err)
	assert.Equal(t, General, d)
	_, err = ParseDepartment("marketing")
	assert.Error(t, err)
	assert.Equal(t, "HR", HR.Label())
	assert.Equal(t, "Operations", Operations.Label())

	f, err := ParseFocus("Customer")
	require.NoError(t, err)
	assert.Equal(t, FocusCustomer, f)
}
