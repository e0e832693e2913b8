package memory

import (
	"context"
	"testing"

	"github.com/aichabibi/EOLE/internal/core"
)

func TestWriteSummaryAndLast(t *testing.T) {
	store := New()
	if store.Last() != nil {
		t.Error("empty store should have no last write")
	}

	sums := []core.Summary{{FullName: "DUPONT JEAN", Hours: 12.5, Amount: 187.5}}
	ref, err := store.WriteSummary(context.Background(), sums)
	if err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want mem:1", ref)
	}

	last := store.Last()
	if len(last) != 1 || last[0].FullName != "DUPONT JEAN" {
		t.Errorf("Last = %v", last)
	}

	// The stored table is a copy; mutating the input must not leak in.
	sums[0].Hours = 0
	if store.Last()[0].Hours != 12.5 {
		t.Error("store must keep its own copy of the table")
	}

	if _, err := store.WriteSummary(context.Background(), nil); err != nil {
		t.Fatalf("WriteSummary empty: %v", err)
	}
	if store.Writes() != 2 {
		t.Errorf("Writes = %d, want 2", store.Writes())
	}
	if store.Last() != nil {
		t.Errorf("last write was empty, got %v", store.Last())
	}
}
