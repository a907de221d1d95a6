package analysis

import (
	"cmp"
	"slices"
)

// Level is shared by insight impact, recommendation priority and anomaly severity.
type Level string

const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

// Rank maps High=3, Medium=2, Low=1 and anything else to 0.
func (l Level) Rank() int {
	switch l {
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	}
	return 0
}

// SortByRank orders items by descending rank. Equal ranks keep their
// emission order.
func SortByRank[T any](items []T, rank func(T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(rank(b), rank(a))
	})
}
