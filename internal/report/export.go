package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/aichabibi/EOLE/internal/core"
)

// Export column headers. The amount column is computed and carried
// internally but deliberately left out of the exported table.
const (
	ExportHeaderName  = "Nom complet"
	ExportHeaderHours = "Heures"
)

// WriteSummaryCSV writes the per-person summary as UTF-8,
// comma-separated text: a header row then one row per person with the
// full name and summed hours.
func WriteSummaryCSV(w io.Writer, sums []core.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ExportHeaderName, ExportHeaderHours}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range sums {
		row := []string{s.FullName, strconv.FormatFloat(s.Hours, 'f', -1, 64)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", s.FullName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
