package core

import (
	"strings"
	"time"
)

type (
	// Record is one normalized unit of work: a person, the hours they
	// punched, the valorized amount, and the classification axes the
	// filters operate on. Records are immutable once built.
	Record struct {
		FullName string
		Hours    float64
		Amount   float64
		// Date is the punch date at day granularity (UTC midnight).
		// The zero value marks an absent date; such records are
		// dropped before aggregation.
		Date     time.Time
		Category string // budget-category code, may be empty
		Agency   string // staff agency label, may be empty
	}

	// RecordSet is the concatenation of every ingested file's records,
	// in upload order. Repeated rows across files accumulate; no
	// deduplication is performed.
	RecordSet []Record

	// FilterCriteria is the user-chosen subset of categories and
	// agencies plus an inclusive date range. An empty set means no
	// constraint on that dimension; a zero bound leaves that side of
	// the range open.
	FilterCriteria struct {
		Categories []string
		Agencies   []string
		From       time.Time
		To         time.Time
	}

	// Summary is the per-person aggregate after filtering. Amount is
	// carried but intentionally withheld from exports.
	Summary struct {
		FullName string
		Hours    float64
		Amount   float64
	}
)

// HasDate reports whether the record carries a usable punch date.
func (r Record) HasDate() bool {
	return !r.Date.IsZero()
}

// Month returns the record's zero-padded "YYYY-MM" bucket, or the
// empty string when the date is absent.
func (r Record) Month() string {
	if !r.HasDate() {
		return ""
	}
	return r.Date.Format("2006-01")
}

// Match reports whether the record satisfies every criterion. The
// predicate is a pure conjunction, so application order never matters.
func (c FilterCriteria) Match(r Record) bool {
	if len(c.Categories) > 0 && !contains(c.Categories, r.Category) {
		return false
	}
	if len(c.Agencies) > 0 && !contains(c.Agencies, r.Agency) {
		return false
	}
	if !c.From.IsZero() && r.Date.Before(day(c.From)) {
		return false
	}
	if !c.To.IsZero() && r.Date.After(day(c.To)) {
		return false
	}
	return true
}

// IsZero reports whether no criterion is set at all.
func (c FilterCriteria) IsZero() bool {
	return len(c.Categories) == 0 && len(c.Agencies) == 0 && c.From.IsZero() && c.To.IsZero()
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// day truncates a timestamp to UTC midnight so range bounds compare at
// day granularity regardless of how the caller built them.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FullName builds the canonical person key: uppercased last name,
// a single space, uppercased first name.
func FullName(last, first string) string {
	return strings.ToUpper(strings.TrimSpace(last)) + " " + strings.ToUpper(strings.TrimSpace(first))
}
