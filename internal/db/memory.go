// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"sort"
	"sync"
	"time"

	"github.com/sitescope/sitescope/internal/model"
)

// MemoryStore is an in-memory Store used by tests and by the TUI preview
// mode. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	reports []model.Report
	audit   []model.AuditLogEntry
	nextID  int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// SaveReport stores a copy of the report.
func (s *MemoryStore) SaveReport(r *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, *r)
	s.logLocked("ANALYZE", "url: "+r.URL)
	return nil
}

// GetReport returns the report with the given ID, or ErrNotFound.
func (s *MemoryStore) GetReport(id string) (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reports {
		if s.reports[i].ID == id {
			r := s.reports[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

// LatestReportForURL returns the most recent report for a URL.
func (s *MemoryStore) LatestReportForURL(url string) (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *model.Report
	for i := range s.reports {
		r := &s.reports[i]
		if r.URL != url {
			continue
		}
		if latest == nil || r.FetchedAt.After(latest.FetchedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	out := *latest
	return &out, nil
}

// ListReports returns summaries, newest first.
func (s *MemoryStore) ListReports(limit int) ([]model.ReportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summaries := make([]model.ReportSummary, 0, len(s.reports))
	for _, r := range s.reports {
		summaries = append(summaries, model.ReportSummary{
			ID:          r.ID,
			URL:         r.URL,
			FetchedAt:   r.FetchedAt,
			Title:       r.Meta.Title,
			StatusCode:  r.Meta.StatusCode,
			WordCount:   r.Content.WordCount,
			Readability: r.Content.Readability,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].FetchedAt.After(summaries[j].FetchedAt)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// DeleteReport removes a report by ID.
func (s *MemoryStore) DeleteReport(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reports {
		if s.reports[i].ID == id {
			s.reports = append(s.reports[:i], s.reports[i+1:]...)
			s.logLocked("DELETE_REPORT", "report: "+id)
			return nil
		}
	}
	return ErrNotFound
}

// PruneReports deletes all but the newest keep reports.
func (s *MemoryStore) PruneReports(keep int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if keep < 0 {
		keep = 0
	}
	sort.Slice(s.reports, func(i, j int) bool {
		return s.reports[i].FetchedAt.After(s.reports[j].FetchedAt)
	})
	if len(s.reports) <= keep {
		return 0, nil
	}
	removed := len(s.reports) - keep
	s.reports = s.reports[:keep]
	return removed, nil
}

// LogAction appends an audit entry.
func (s *MemoryStore) LogAction(action string, details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logLocked(action, details)
	return nil
}

func (s *MemoryStore) logLocked(action, details string) {
	s.audit = append(s.audit, model.AuditLogEntry{
		ID:        s.nextID,
		Timestamp: time.Now().UTC(),
		Action:    action,
		Details:   details,
	})
	s.nextID++
}

// GetAllAuditLogEntries returns the audit log, newest first.
func (s *MemoryStore) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AuditLogEntry, len(s.audit))
	copy(out, s.audit)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// ExportAll dumps the store contents.
func (s *MemoryStore) ExportAll() (*model.BackupData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reports := make([]model.Report, len(s.reports))
	copy(reports, s.reports)
	audit := make([]model.AuditLogEntry, len(s.audit))
	copy(audit, s.audit)
	return &model.BackupData{Version: model.BackupFormatVersion, Reports: reports, AuditLog: audit}, nil
}

// ImportAll merges a backup; with full set, existing data is wiped first.
func (s *MemoryStore) ImportAll(data *model.BackupData, full bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if full {
		s.reports = nil
		s.audit = nil
		s.nextID = 1
	}
	existing := map[string]struct{}{}
	for _, r := range s.reports {
		existing[r.ID] = struct{}{}
	}
	for _, r := range data.Reports {
		if _, ok := existing[r.ID]; ok {
			continue
		}
		s.reports = append(s.reports, r)
	}
	for _, e := range data.AuditLog {
		e.ID = s.nextID
		s.nextID++
		s.audit = append(s.audit, e)
	}
	return nil
}
