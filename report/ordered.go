package report

import (
	"sort"

	"github.com/padraicbc/nzcrash/dataset"
)

// OrderedCategory is a categorical value that carries its own axis rank.
// Chart ordering is an explicit property of the value, not an accident of
// whatever order the source rows arrived in.
type OrderedCategory struct {
	Label string
	Rank  int
	Count int
}

// RankByDescendingCount turns count aggregations into categories ranked by
// descending frequency. Ties break on label so the ranking is stable across
// runs.
func RankByDescendingCount(aggs []dataset.Aggregation[int]) []OrderedCategory {
	out := make([]OrderedCategory, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, OrderedCategory{Label: a.Key.String(), Count: a.Value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	for i := range out {
		out[i].Rank = i
	}
	return out
}
