// Package ingest parses one raw timesheet export into normalized
// records: Latin-1 decoding, semicolon-separated fields, a fixed
// header schema validated up front, and a worksite filter applied row
// by row. Errors stop at the file boundary; one bad file never aborts
// the batch it arrived in.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/aichabibi/EOLE/internal/core"
)

// DefaultMarker is the worksite substring rows must carry to be kept.
const DefaultMarker = "EOLE"

// ParseFile decodes one export file and returns the normalized records
// whose worksite label contains the marker, case-insensitively. The
// returned error is file-level only: a missing required column or an
// empty file. Malformed fields inside kept rows degrade to the core
// coercion defaults instead of erroring.
func ParseFile(data []byte, marker string) ([]core.Record, error) {
	// Some exports carry a UTF-8 BOM. Strip it before decoding: run
	// through the Latin-1 decoder its bytes would surface as "ï»¿"
	// glued to the first column name.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(data)))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("file is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	sch, err := newSchema(header)
	if err != nil {
		return nil, err
	}

	marker = strings.ToLower(marker)
	var records []core.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Skip unreadable rows; the row boundary recovers like
			// the field boundary does.
			slog.Debug("Skipping unreadable row", "error", err)
			continue
		}

		worksite := sch.field(row, ColWorksite)
		if !strings.Contains(strings.ToLower(worksite), marker) {
			continue
		}

		records = append(records, normalize(sch, row))
	}

	return records, nil
}

// normalize maps one kept raw row to a Record using the parse-or-default
// coercion policy. It never fails.
func normalize(sch schema, row []string) core.Record {
	return core.Record{
		FullName: core.FullName(sch.field(row, ColLastName), sch.field(row, ColFirstName)),
		Hours:    core.NumberOrZero(sch.field(row, ColHours)),
		Amount:   core.NumberOrZero(sch.field(row, ColAmount)),
		Date:     core.DateOrAbsent(sch.field(row, ColDate)),
		Category: sch.field(row, ColCategory),
		Agency:   sch.field(row, ColAgency),
	}
}
