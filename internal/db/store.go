// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/sitescope/sitescope/internal/model"
)

// Store defines the interface for all database operations in Sitescope.
// This allows for multiple database backends to be implemented.
type Store interface {
	// Report methods
	SaveReport(r *model.Report) error
	GetReport(id string) (*model.Report, error)
	LatestReportForURL(url string) (*model.Report, error)
	ListReports(limit int) ([]model.ReportSummary, error)
	DeleteReport(id string) error
	// PruneReports deletes all but the newest keep reports and returns how
	// many were removed.
	PruneReports(keep int) (int, error)

	// Audit log methods
	LogAction(action string, details string) error
	GetAllAuditLogEntries() ([]model.AuditLogEntry, error)

	// Backup methods
	ExportAll() (*model.BackupData, error)
	// ImportAll merges a backup into the store. With full set, all existing
	// data is wiped first.
	ImportAll(data *model.BackupData, full bool) error
}

// store is the package-level Store set by InitDB/New.
var store Store

// Get returns the initialized package-level store, or nil before InitDB.
func Get() Store {
	return store
}

// SetStore overrides the package-level store. Intended for tests and
// alternative bootstraps.
func SetStore(s Store) {
	store = s
}

// New initializes and returns a bun-backed Store for the given dbType and
// dsn, and sets the package-level store used by Get.
func New(dbType, dsn string) (Store, error) {
	s, err := NewStoreFromDSN(dbType, dsn)
	if err != nil {
		return nil, err
	}
	store = s
	return s, nil
}
