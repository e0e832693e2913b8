package report

import (
	"sort"
	"time"

	"github.com/aichabibi/EOLE/internal/core"
)

// DefaultTopN is the size of the top-people view.
const DefaultTopN = 10

type (
	// AgencyHours feeds the per-agency proportions chart.
	AgencyHours struct {
		Agency string  `json:"agency"`
		Hours  float64 `json:"hours"`
	}

	// CategoryHeadcount feeds the per-category headcount bars. The
	// count is of distinct people, not rows.
	CategoryHeadcount struct {
		Category  string `json:"category"`
		Headcount int    `json:"headcount"`
	}

	// MonthHours feeds the monthly hours line series. Month is the
	// zero-padded "YYYY-MM" bucket key.
	MonthHours struct {
		Month string  `json:"month"`
		Hours float64 `json:"hours"`
	}

	// Options lists the values the presentation layer offers in its
	// filter widgets, plus the date bounds of the held records.
	Options struct {
		Categories []string  `json:"categories"`
		Agencies   []string  `json:"agencies"`
		MinDate    time.Time `json:"min_date"`
		MaxDate    time.Time `json:"max_date"`
	}
)

// HoursByAgency sums hours per non-empty agency, largest first; ties
// keep first-appearance order.
func HoursByAgency(rs core.RecordSet) []AgencyHours {
	index := make(map[string]int)
	var out []AgencyHours
	for _, r := range rs {
		if r.Agency == "" {
			continue
		}
		i, ok := index[r.Agency]
		if !ok {
			i = len(out)
			index[r.Agency] = i
			out = append(out, AgencyHours{Agency: r.Agency})
		}
		out[i].Hours += r.Hours
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Hours > out[j].Hours
	})
	return out
}

// HeadcountByCategory counts distinct people per non-empty category,
// sorted by category name.
func HeadcountByCategory(rs core.RecordSet) []CategoryHeadcount {
	people := make(map[string]map[string]struct{})
	for _, r := range rs {
		if r.Category == "" {
			continue
		}
		set, ok := people[r.Category]
		if !ok {
			set = make(map[string]struct{})
			people[r.Category] = set
		}
		set[r.FullName] = struct{}{}
	}

	out := make([]CategoryHeadcount, 0, len(people))
	for cat, set := range people {
		out = append(out, CategoryHeadcount{Category: cat, Headcount: len(set)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}

// HoursByMonth sums hours per calendar month, in chronological order.
// The zero-padded bucket key makes lexical ordering chronological.
func HoursByMonth(rs core.RecordSet) []MonthHours {
	index := make(map[string]int)
	var out []MonthHours
	for _, r := range rs {
		key := r.Month()
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, MonthHours{Month: key})
		}
		out[i].Hours += r.Hours
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month < out[j].Month
	})
	return out
}

// TopN returns the first n entries of an already-sorted summary
// collection. n <= 0 falls back to DefaultTopN.
func TopN(sums []core.Summary, n int) []core.Summary {
	if n <= 0 {
		n = DefaultTopN
	}
	if n > len(sums) {
		n = len(sums)
	}
	return sums[:n]
}

// ListOptions collects the distinct non-empty categories and agencies,
// sorted, plus the min and max punch dates across the records.
func ListOptions(rs core.RecordSet) Options {
	cats := make(map[string]struct{})
	agencies := make(map[string]struct{})
	var opts Options
	for _, r := range rs {
		if r.Category != "" {
			cats[r.Category] = struct{}{}
		}
		if r.Agency != "" {
			agencies[r.Agency] = struct{}{}
		}
		if !r.HasDate() {
			continue
		}
		if opts.MinDate.IsZero() || r.Date.Before(opts.MinDate) {
			opts.MinDate = r.Date
		}
		if opts.MaxDate.IsZero() || r.Date.After(opts.MaxDate) {
			opts.MaxDate = r.Date
		}
	}
	opts.Categories = sortedKeys(cats)
	opts.Agencies = sortedKeys(agencies)
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
