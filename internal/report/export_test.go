package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"github.com/aichabibi/EOLE/internal/core"
)

func TestWriteSummaryCSVRoundTrip(t *testing.T) {
	sums := []core.Summary{
		{FullName: "DUPONT JEAN", Hours: 12.5, Amount: 187.5},
		{FullName: "DURAND LÉA", Hours: 7, Amount: 105},
	}

	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, sums); err != nil {
		t.Fatalf("WriteSummaryCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != ExportHeaderName || rows[0][1] != ExportHeaderHours {
		t.Errorf("header = %v", rows[0])
	}
	if len(rows[0]) != 2 {
		t.Errorf("the amount column must be absent, header has %d columns", len(rows[0]))
	}
	for i, s := range sums {
		row := rows[i+1]
		if row[0] != s.FullName {
			t.Errorf("row %d name = %q, want %q", i, row[0], s.FullName)
		}
		h, err := strconv.ParseFloat(row[1], 64)
		if err != nil || h != s.Hours {
			t.Errorf("row %d hours = %q, want %v", i, row[1], s.Hours)
		}
	}
}

func TestWriteSummaryCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, nil); err != nil {
		t.Fatalf("WriteSummaryCSV: %v", err)
	}
	got := strings.TrimRight(buf.String(), "\n")
	if got != ExportHeaderName+","+ExportHeaderHours {
		t.Errorf("empty summary should export the header only, got %q", got)
	}
}
