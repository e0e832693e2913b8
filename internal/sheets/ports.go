package sheets

import (
	"context"

	"github.com/aichabibi/EOLE/internal/core"
)

// SummaryWriter pushes the per-person summary table to an external
// spreadsheet. It writes the same name/hours view as the CSV export;
// the amount column stays internal.
type SummaryWriter interface {
	WriteSummary(ctx context.Context, sums []core.Summary) (ref string, err error)
}
