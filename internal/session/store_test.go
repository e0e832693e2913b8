package session

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/aichabibi/EOLE/internal/ingest"
)

const testHeader = ingest.ColWorksite + ";" + ingest.ColLastName + ";" + ingest.ColFirstName + ";" +
	ingest.ColHours + ";" + ingest.ColAmount + ";" + ingest.ColDate + ";" + ingest.ColCategory + ";" + ingest.ColAgency

func exportFile(t *testing.T, rows ...string) []byte {
	t.Helper()
	content := strings.Join(append([]string{testHeader}, rows...), "\n")
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(content))
	if err != nil {
		t.Fatalf("encode latin1: %v", err)
	}
	return b
}

func newTestStore(auditor Auditor) *Store {
	return NewStore(ingest.DefaultMarker, 4, time.Hour, auditor)
}

func TestIngestConcatenatesInUploadOrder(t *testing.T) {
	store := newTestStore(nil)
	defer store.Stop()
	sess := store.Get("s1")

	files := []UploadedFile{
		{Name: "a.csv", Data: exportFile(t, "EOLE;Dupont;Jean;8,0;120,0;15/03/2024;GBA1;Agence Nord")},
		{Name: "b.csv", Data: exportFile(t, "EOLE;Durand;Léa;7,5;100,0;16/03/2024;GBA2;Agence Sud")},
		{Name: "c.csv", Data: exportFile(t, "EOLE;Martin;Paul;6,0;90,0;17/03/2024;GBA1;Agence Nord")},
	}
	reports := store.Ingest(context.Background(), "s1", sess, files)

	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	for i, want := range []string{"a.csv", "b.csv", "c.csv"} {
		if reports[i].File != want {
			t.Errorf("reports[%d].File = %q, want %q", i, reports[i].File, want)
		}
		if reports[i].RowsKept != 1 {
			t.Errorf("reports[%d].RowsKept = %d, want 1", i, reports[i].RowsKept)
		}
	}

	records := sess.Snapshot()
	wantNames := []string{"DUPONT JEAN", "DURAND LÉA", "MARTIN PAUL"}
	if len(records) != len(wantNames) {
		t.Fatalf("expected %d records, got %d", len(wantNames), len(records))
	}
	for i, name := range wantNames {
		if records[i].FullName != name {
			t.Errorf("records[%d] = %q, want %q (upload order must be preserved)", i, records[i].FullName, name)
		}
	}
}

func TestIngestBadFileDoesNotAbortBatch(t *testing.T) {
	store := newTestStore(nil)
	defer store.Stop()
	sess := store.Get("s1")

	bad, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("colonne inconnue;autre\nx;y"))
	if err != nil {
		t.Fatal(err)
	}
	files := []UploadedFile{
		{Name: "bad.csv", Data: bad},
		{Name: "good.csv", Data: exportFile(t, "EOLE;Dupont;Jean;3,0;45,0;15/03/2024;GBA1;Agence Nord")},
	}
	reports := store.Ingest(context.Background(), "s1", sess, files)

	if reports[0].Error == "" {
		t.Error("bad file should carry a per-file error")
	}
	if reports[0].RowsKept != 0 {
		t.Errorf("bad file should contribute nothing, got %d rows", reports[0].RowsKept)
	}
	if reports[1].Error != "" || reports[1].RowsKept != 1 {
		t.Errorf("good file should ingest normally, got %+v", reports[1])
	}
	if got := len(sess.Snapshot()); got != 1 {
		t.Errorf("expected 1 record, got %d", got)
	}
}

func TestIngestCountsUndatedRows(t *testing.T) {
	store := newTestStore(nil)
	defer store.Stop()
	sess := store.Get("s1")

	files := []UploadedFile{{Name: "a.csv", Data: exportFile(t,
		"EOLE;Dupont;Jean;8,0;120,0;15/03/2024;GBA1;Agence Nord",
		"EOLE;Dupont;Jean;2,0;30,0;pas une date;GBA1;Agence Nord",
	)}}
	reports := store.Ingest(context.Background(), "s1", sess, files)

	if reports[0].RowsKept != 2 {
		t.Errorf("RowsKept = %d, want 2", reports[0].RowsKept)
	}
	if reports[0].RowsUndated != 1 {
		t.Errorf("RowsUndated = %d, want 1", reports[0].RowsUndated)
	}
}

func TestRepeatedUploadsAccumulate(t *testing.T) {
	store := newTestStore(nil)
	defer store.Stop()
	sess := store.Get("s1")

	file := UploadedFile{Name: "a.csv", Data: exportFile(t, "EOLE;Dupont;Jean;3,0;45,0;15/03/2024;GBA1;Agence Nord")}
	store.Ingest(context.Background(), "s1", sess, []UploadedFile{file})
	store.Ingest(context.Background(), "s1", sess, []UploadedFile{file})

	records := sess.Snapshot()
	if len(records) != 2 {
		t.Fatalf("re-uploading the same file must accumulate, got %d records", len(records))
	}
}

func TestReset(t *testing.T) {
	store := newTestStore(nil)
	defer store.Stop()
	sess := store.Get("s1")

	store.Ingest(context.Background(), "s1", sess, []UploadedFile{
		{Name: "a.csv", Data: exportFile(t, "EOLE;Dupont;Jean;3,0;45,0;15/03/2024;GBA1;Agence Nord")},
	})
	sess.Reset()
	if len(sess.Snapshot()) != 0 || len(sess.Reports()) != 0 {
		t.Error("Reset should drop records and reports")
	}
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	store := NewStore(ingest.DefaultMarker, 1, time.Minute, nil)
	defer store.Stop()

	store.Get("old")
	store.Get("fresh")
	if store.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", store.Len())
	}

	// Only "old" is past the cutoff.
	store.mu.Lock()
	store.sessions["old"].lastSeen = time.Now().Add(-2 * time.Minute)
	store.mu.Unlock()

	store.sweep(time.Now())
	if store.Len() != 1 {
		t.Fatalf("expected 1 session after sweep, got %d", store.Len())
	}
	store.mu.Lock()
	_, ok := store.sessions["fresh"]
	store.mu.Unlock()
	if !ok {
		t.Error("fresh session should survive the sweep")
	}
}

type recordingAuditor struct {
	mu      sync.Mutex
	reports []FileReport
}

func (a *recordingAuditor) FileIngested(_ context.Context, _ string, report FileReport) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reports = append(a.reports, report)
}

func TestIngestNotifiesAuditor(t *testing.T) {
	auditor := &recordingAuditor{}
	store := newTestStore(auditor)
	defer store.Stop()
	sess := store.Get("s1")

	store.Ingest(context.Background(), "s1", sess, []UploadedFile{
		{Name: "a.csv", Data: exportFile(t, "EOLE;Dupont;Jean;3,0;45,0;15/03/2024;GBA1;Agence Nord")},
	})

	auditor.mu.Lock()
	defer auditor.mu.Unlock()
	if len(auditor.reports) != 1 || auditor.reports[0].File != "a.csv" {
		t.Errorf("auditor should receive one report per file, got %v", auditor.reports)
	}
}
