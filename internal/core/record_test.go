package core

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestFilterCriteriaMatch(t *testing.T) {
	rec := Record{
		FullName: "DUPONT JEAN",
		Hours:    8,
		Date:     date(2024, 3, 15),
		Category: "GBA1",
		Agency:   "Agence Nord",
	}

	tests := []struct {
		name string
		c    FilterCriteria
		want bool
	}{
		{"empty criteria match everything", FilterCriteria{}, true},
		{"category member", FilterCriteria{Categories: []string{"GBA1", "GBA2"}}, true},
		{"category excluded", FilterCriteria{Categories: []string{"GBA2"}}, false},
		{"agency member", FilterCriteria{Agencies: []string{"Agence Nord"}}, true},
		{"agency excluded", FilterCriteria{Agencies: []string{"Agence Sud"}}, false},
		{"inside range", FilterCriteria{From: date(2024, 3, 1), To: date(2024, 3, 31)}, true},
		{"range start inclusive", FilterCriteria{From: date(2024, 3, 15)}, true},
		{"range end inclusive", FilterCriteria{To: date(2024, 3, 15)}, true},
		{"before range", FilterCriteria{From: date(2024, 3, 16)}, false},
		{"after range", FilterCriteria{To: date(2024, 3, 14)}, false},
		{"all criteria conjoined", FilterCriteria{
			Categories: []string{"GBA1"},
			Agencies:   []string{"Agence Nord"},
			From:       date(2024, 3, 1),
			To:         date(2024, 3, 31),
		}, true},
		{"one failing criterion fails the conjunction", FilterCriteria{
			Categories: []string{"GBA1"},
			Agencies:   []string{"Agence Sud"},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Match(rec); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterCriteriaRangeBoundsIgnoreTimeOfDay(t *testing.T) {
	rec := Record{Date: date(2024, 3, 15)}
	c := FilterCriteria{
		From: time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC),
	}
	if !c.Match(rec) {
		t.Error("bounds with a time-of-day component should still compare at day granularity")
	}
}

func TestRecordMonth(t *testing.T) {
	if got := (Record{Date: date(2024, 3, 15)}).Month(); got != "2024-03" {
		t.Errorf("Month = %q, want %q", got, "2024-03")
	}
	if got := (Record{}).Month(); got != "" {
		t.Errorf("absent date should yield empty month, got %q", got)
	}
}

func TestFilterCriteriaIsZero(t *testing.T) {
	if !(FilterCriteria{}).IsZero() {
		t.Error("empty criteria should be zero")
	}
	if (FilterCriteria{Categories: []string{"GBA1"}}).IsZero() {
		t.Error("criteria with a category should not be zero")
	}
}
