// Package session holds one record set per browser session. Sessions
// live in memory only: records accumulate across uploads and die with
// the session, there is no durable storage behind them.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aichabibi/EOLE/internal/core"
	"github.com/aichabibi/EOLE/internal/ingest"
)

// FileReport describes one uploaded file's contribution. A file-level
// error (missing columns, empty file) leaves RowsKept at zero; the
// rest of the batch is unaffected.
type FileReport struct {
	File        string `json:"file"`
	RowsKept    int    `json:"rows_kept"`
	RowsUndated int    `json:"rows_undated"`
	Error       string `json:"error,omitempty"`
}

// UploadedFile is one complete in-memory upload.
type UploadedFile struct {
	Name string
	Data []byte
}

// Auditor receives one notification per ingested file. Implementations
// must not fail the upload; publishing problems are their own concern.
type Auditor interface {
	FileIngested(ctx context.Context, sessionID string, report FileReport)
}

// Session owns the record set accumulated by one client.
type Session struct {
	mu       sync.Mutex
	records  core.RecordSet
	reports  []FileReport
	lastSeen time.Time
}

// Snapshot returns a copy of the session's records.
func (s *Session) Snapshot() core.RecordSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(core.RecordSet(nil), s.records...)
}

// Reports returns a copy of the per-file ingestion reports so far.
func (s *Session) Reports() []FileReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FileReport(nil), s.reports...)
}

// Reset drops the session's records and reports.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.reports = nil
}

// Store is the session registry. Idle sessions are swept after the
// configured TTL.
type Store struct {
	marker  string
	workers int
	ttl     time.Duration
	auditor Auditor

	mu       sync.Mutex
	sessions map[string]*Session

	stopSweep    chan struct{}
	shutdownOnce sync.Once
}

// NewStore creates a session store and starts its background sweep.
// auditor may be nil.
func NewStore(marker string, workers int, ttl time.Duration, auditor Auditor) *Store {
	if workers < 1 {
		workers = 1
	}
	s := &Store{
		marker:    marker,
		workers:   workers,
		ttl:       ttl,
		auditor:   auditor,
		sessions:  make(map[string]*Session),
		stopSweep: make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

// Get returns the session for the given ID, creating it on first use,
// and marks it as recently seen.
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{}
		s.sessions[id] = sess
	}
	sess.mu.Lock()
	sess.lastSeen = time.Now()
	sess.mu.Unlock()
	return sess
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Stop shuts down the background sweep.
func (s *Store) Stop() {
	s.shutdownOnce.Do(func() {
		close(s.stopSweep)
	})
}

// Ingest parses the uploaded files and appends their records to the
// session. Files are parsed concurrently but their records concatenate
// in upload order, so tie-breaking in the summaries stays
// deterministic. Per-file failures land in the reports, never in an
// error: one bad file cannot abort the batch.
func (s *Store) Ingest(ctx context.Context, sessionID string, sess *Session, files []UploadedFile) []FileReport {
	records := make([][]core.Record, len(files))
	reports := make([]FileReport, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, f := range files {
		g.Go(func() error {
			recs, err := ingest.ParseFile(f.Data, s.marker)
			report := FileReport{File: f.Name, RowsKept: len(recs)}
			for _, r := range recs {
				if !r.HasDate() {
					report.RowsUndated++
				}
			}
			if err != nil {
				report.Error = err.Error()
				slog.WarnContext(gctx, "File rejected", "file", f.Name, "error", err)
			}
			records[i] = recs
			reports[i] = report
			return nil
		})
	}
	// Workers never return errors; Wait only orders the writes above.
	_ = g.Wait()

	sess.mu.Lock()
	for _, recs := range records {
		sess.records = append(sess.records, recs...)
	}
	sess.reports = append(sess.reports, reports...)
	sess.mu.Unlock()

	if s.auditor != nil {
		for _, report := range reports {
			s.auditor.FileIngested(ctx, sessionID, report)
		}
	}
	return reports
}

func (s *Store) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(time.Now())
		case <-s.stopSweep:
			return
		}
	}
}

// sweep removes sessions idle past the TTL.
func (s *Store) sweep(now time.Time) {
	cutoff := now.Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			slog.Debug("Session expired", "session_id", id)
		}
	}
}
