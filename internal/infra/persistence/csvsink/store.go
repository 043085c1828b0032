// Package csvsink persists extraction outcomes to two append-only CSV files:
// an audit log of every visit and a deduplicated result set of accepted
// listings. A single lock serializes all writers.
package csvsink

import (
	"encoding/csv"
	"os"
	"sync"

	"github.com/LouYuanbo1/listingagent/internal/domain/entity"
	"github.com/LouYuanbo1/listingagent/internal/domain/model"
)

var (
	auditHeader  = []string{"worker", "index", "total", "title", "address", "url", "built_year", "status", "note"}
	resultHeader = []string{"title", "address", "built_year", "url"}
)

type Store struct {
	mu         sync.Mutex
	auditPath  string
	resultPath string
	// savedKeys holds the canonical URL of every result row written so far,
	// so the result file never carries two rows for one listing even when
	// different workers save URLs that normalize identically.
	savedKeys    map[string]struct{}
	statusCounts map[model.Status]int
}

func NewStore(auditPath, resultPath string) *Store {
	return &Store{
		auditPath:    auditPath,
		resultPath:   resultPath,
		savedKeys:    make(map[string]struct{}),
		statusCounts: make(map[model.Status]int),
	}
}

// InitResultSink truncates the result file and writes its header, so a run
// that discovers zero listings still leaves a well-formed result file behind.
func (s *Store) InitResultSink() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.resultPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(resultHeader); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// AppendAudit writes one record to the audit log. The header is written lazily
// the first time the file comes into existence.
func (s *Store) AppendAudit(rec model.ExtractionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusCounts[rec.Status]++
	return appendRows(s.auditPath, auditHeader, [][]string{rec.AuditRow()})
}

// Summary returns how many audit records were written per status.
func (s *Store) Summary() map[model.Status]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[model.Status]int, len(s.statusCounts))
	for status, n := range s.statusCounts {
		counts[status] = n
	}
	return counts
}

// AppendResults writes a worker's saved listings to the result sink, skipping
// any listing whose canonical URL was already written by an earlier batch.
func (s *Store) AppendResults(listings []*entity.SavedListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		if l.CanonicalURL != "" {
			if _, dup := s.savedKeys[l.CanonicalURL]; dup {
				continue
			}
			s.savedKeys[l.CanonicalURL] = struct{}{}
		}
		rows = append(rows, l.ResultRow().ResultCSVRow())
	}
	if len(rows) == 0 {
		return nil
	}
	return appendRows(s.resultPath, resultHeader, rows)
}

func appendRows(path string, header []string, rows [][]string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
