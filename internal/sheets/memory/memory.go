// Package memory is the in-memory SummaryWriter used by tests and
// local runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aichabibi/EOLE/internal/core"
	ports "github.com/aichabibi/EOLE/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	writes [][]core.Summary
}

var _ ports.SummaryWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// WriteSummary keeps a copy of the table and returns a synthetic
// reference.
func (s *Store) WriteSummary(_ context.Context, sums []core.Summary) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, append([]core.Summary(nil), sums...))
	return fmt.Sprintf("mem:%d", len(s.writes)), nil
}

// Last returns the most recently written table, or nil.
func (s *Store) Last() []core.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.writes) == 0 {
		return nil
	}
	return append([]core.Summary(nil), s.writes[len(s.writes)-1]...)
}

// Writes returns the number of tables written.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}
