package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/insightloom-cli/internal/dataset"
)

// Department selects the department-specific rule set.
type Department string

const (
	Finance    Department = "finance"
	HR         Department = "hr"
	Sales      Department = "sales"
	Operations Department = "operations"
	Compliance Department = "compliance"
	General    Department = "general"
)

var departments = []Department{Finance, HR, Sales, Operations, Compliance, General}

// Departments lists every accepted department in display order.
func Departments() []Department { return append([]Department(nil), departments...) }

// ParseDepartment accepts a department name case-insensitively. An empty
// string maps to General.
func ParseDepartment(s string) (Department, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return General, nil
	}
	for _, d := range departments {
		if string(d) == v {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown department %q (use one of: %s)", s, joinNames(departments))
}

// Label is the human-facing department name.
func (d Department) Label() string {
	switch d {
	case HR:
		return "HR"
	case "":
		return "General"
	default:
		return strings.ToUpper(string(d[:1])) + string(d[1:])
	}
}

// Focus describes what the caller is analyzing. It is carried into metadata
// and does not change the computation.
type Focus string

const (
	FocusSales       Focus = "sales"
	FocusFinancial   Focus = "financial"
	FocusHR          Focus = "hr"
	FocusOperational Focus = "operational"
	FocusCustomer    Focus = "customer"
	FocusGeneral     Focus = "general"
)

var focuses = []Focus{FocusSales, FocusFinancial, FocusHR, FocusOperational, FocusCustomer, FocusGeneral}

// Foci lists every accepted analysis focus.
func Foci() []Focus { return append([]Focus(nil), focuses...) }

// ParseFocus accepts an analysis focus case-insensitively; empty maps to general.
func ParseFocus(s string) (Focus, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return FocusGeneral, nil
	}
	for _, f := range focuses {
		if string(f) == v {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown analysis focus %q (use one of: %s)", s, joinNames(focuses))
}

func joinNames[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// Config controls a full analysis run.
type Config struct {
	Department Department
	Focus      Focus
	// FileName labels the report; ParseFile callers usually leave it empty.
	FileName string
	// Workers bounds per-column and per-pair fan-out. Values below 1 mean 1.
	Workers int
	// TrendMinValues is the exclusive lower bound on values per column
	// before a trend is evaluated.
	TrendMinValues int
	Ingest         dataset.Options
	// Now stamps the report; nil means time.Now.
	Now func() time.Time
}

// DefaultConfig returns the configuration used by the CLI when no flags or
// config file override it.
func DefaultConfig() Config {
	return Config{
		Department:     General,
		Focus:          FocusGeneral,
		Workers:        4,
		TrendMinValues: 10,
		Ingest:         dataset.DefaultOptions(),
	}
}

func (c Config) workers() int {
	if c.Workers < 1 {
		return 1
	}
	return c.Workers
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Config) trendMinValues() int {
	if c.TrendMinValues <= 0 {
		return 10
	}
	return c.TrendMinValues
}
