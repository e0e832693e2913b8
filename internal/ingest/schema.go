package ingest

import (
	"fmt"
	"strings"
)

// Required column names of the timesheet export. The names are matched
// exactly, diacritics included, after Latin-1 decoding.
const (
	ColWorksite  = "Libellé chantier/ss-section"
	ColLastName  = "Nom du personnel"
	ColFirstName = "Prénom Du personnel"
	ColHours     = "Nombre d'heures du type d'heure"
	ColAmount    = "Montant des heures valorisés du type d'heure"
	ColDate      = "Date de pointage"
	ColCategory  = "Rubrique GBA"
	ColAgency    = "Libellé agence du personnel"
)

var requiredColumns = []string{
	ColWorksite,
	ColLastName,
	ColFirstName,
	ColHours,
	ColAmount,
	ColDate,
	ColCategory,
	ColAgency,
}

// schema maps the required column names to their positions in one
// file's header row. It is validated once at ingestion so nothing
// downstream performs untyped lookups.
type schema struct {
	index map[string]int
}

func newSchema(header []string) (schema, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return schema{}, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return schema{index: index}, nil
}

// field returns the named column's value in a row, or the empty string
// when the row is too short. Ragged rows degrade to empty fields; they
// never error.
func (s schema) field(row []string, col string) string {
	i, ok := s.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
