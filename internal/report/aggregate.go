// Package report derives the summary and chart views from a filtered
// record set. Every function is a pure derivation: callers recompute
// the views in full on each interaction instead of maintaining
// incremental state.
package report

import (
	"sort"

	"github.com/aichabibi/EOLE/internal/core"
)

// Dated drops every record whose punch date is absent. Undated records
// cannot participate in range filtering or time-bucketed views, so the
// cleanup runs once, right after concatenation.
func Dated(rs core.RecordSet) core.RecordSet {
	out := make(core.RecordSet, 0, len(rs))
	for _, r := range rs {
		if r.HasDate() {
			out = append(out, r)
		}
	}
	return out
}

// Apply keeps the records matching the criteria. The predicate is
// conjunctive, so the result does not depend on any criterion order.
func Apply(rs core.RecordSet, c core.FilterCriteria) core.RecordSet {
	if c.IsZero() {
		return append(core.RecordSet(nil), rs...)
	}
	out := make(core.RecordSet, 0, len(rs))
	for _, r := range rs {
		if c.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Summarize groups the records by person and sums hours and amount.
// The result is sorted by hours descending; ties keep the order in
// which the people first appeared in the input.
func Summarize(rs core.RecordSet) []core.Summary {
	index := make(map[string]int, len(rs))
	var sums []core.Summary
	for _, r := range rs {
		i, ok := index[r.FullName]
		if !ok {
			i = len(sums)
			index[r.FullName] = i
			sums = append(sums, core.Summary{FullName: r.FullName})
		}
		sums[i].Hours += r.Hours
		sums[i].Amount += r.Amount
	}

	sort.SliceStable(sums, func(i, j int) bool {
		return sums[i].Hours > sums[j].Hours
	})
	return sums
}
