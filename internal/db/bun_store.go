// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/sitescope/sitescope/internal/model"
)

// reportRow is the Bun mapping for the reports table. The full report is
// stored as a JSON payload; the scalar columns exist for cheap listings.
type reportRow struct {
	bun.BaseModel `bun:"table:reports"`
	ID            string    `bun:"id,pk"`
	URL           string    `bun:"url"`
	FetchedAt     time.Time `bun:"fetched_at"`
	Title         string    `bun:"title"`
	StatusCode    int       `bun:"status_code"`
	WordCount     int       `bun:"word_count"`
	Readability   float64   `bun:"readability"`
	Payload       []byte    `bun:"payload"`
}

// auditRow is the Bun mapping for the audit_log table.
type auditRow struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int       `bun:"id,pk,autoincrement"`
	Timestamp     time.Time `bun:"timestamp"`
	Action        string    `bun:"action"`
	Details       string    `bun:"details"`
}

// BunStore is the Bun-backed implementation of the Store interface. It is
// dialect-agnostic; the dialect is fixed when the *bun.DB is created.
type BunStore struct {
	bun *bun.DB
}

var _ Store = (*BunStore)(nil)

func newReportRow(r *model.Report) (*reportRow, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode report %s: %w", r.ID, err)
	}
	return &reportRow{
		ID:          r.ID,
		URL:         r.URL,
		FetchedAt:   r.FetchedAt,
		Title:       r.Meta.Title,
		StatusCode:  r.Meta.StatusCode,
		WordCount:   r.Content.WordCount,
		Readability: r.Content.Readability,
		Payload:     payload,
	}, nil
}

func (row *reportRow) toReport() (*model.Report, error) {
	var r model.Report
	if err := json.Unmarshal(row.Payload, &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", row.ID, err)
	}
	return &r, nil
}

// SaveReport persists a report and records the action in the audit log.
func (s *BunStore) SaveReport(r *model.Report) error {
	row, err := newReportRow(r)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if _, err := s.bun.NewInsert().Model(row).Exec(ctx); err != nil {
		return MapDBError(err)
	}
	_ = s.LogAction("ANALYZE", fmt.Sprintf("url: %s, report: %s", r.URL, r.ID))
	return nil
}

// GetReport returns the report with the given ID, or ErrNotFound.
func (s *BunStore) GetReport(id string) (*model.Report, error) {
	var row reportRow
	err := s.bun.NewSelect().Model(&row).Where("id = ?", id).Limit(1).Scan(context.Background())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.toReport()
}

// LatestReportForURL returns the most recent report for a URL, or
// ErrNotFound when the URL was never analyzed.
func (s *BunStore) LatestReportForURL(url string) (*model.Report, error) {
	var row reportRow
	err := s.bun.NewSelect().Model(&row).
		Where("url = ?", url).
		OrderExpr("fetched_at DESC").
		Limit(1).
		Scan(context.Background())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.toReport()
}

// ListReports returns report summaries, newest first. limit <= 0 returns
// everything.
func (s *BunStore) ListReports(limit int) ([]model.ReportSummary, error) {
	var rows []reportRow
	q := s.bun.NewSelect().Model(&rows).
		ExcludeColumn("payload").
		OrderExpr("fetched_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(context.Background()); err != nil {
		return nil, err
	}
	summaries := make([]model.ReportSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, model.ReportSummary{
			ID:          row.ID,
			URL:         row.URL,
			FetchedAt:   row.FetchedAt,
			Title:       row.Title,
			StatusCode:  row.StatusCode,
			WordCount:   row.WordCount,
			Readability: row.Readability,
		})
	}
	return summaries, nil
}

// DeleteReport removes a report by ID. Deleting a missing report returns
// ErrNotFound.
func (s *BunStore) DeleteReport(id string) error {
	ctx := context.Background()
	res, err := s.bun.NewDelete().Model((*reportRow)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	_ = s.LogAction("DELETE_REPORT", fmt.Sprintf("report: %s", id))
	return nil
}

// PruneReports deletes all but the newest keep reports.
func (s *BunStore) PruneReports(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	ctx := context.Background()

	var ids []string
	err := s.bun.NewSelect().Model((*reportRow)(nil)).
		Column("id").
		OrderExpr("fetched_at DESC").
		Offset(keep).
		Scan(ctx, &ids)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if _, err := s.bun.NewDelete().Model((*reportRow)(nil)).Where("id IN (?)", bun.In(ids)).Exec(ctx); err != nil {
		return 0, err
	}
	_ = s.LogAction("PRUNE_REPORTS", fmt.Sprintf("removed: %d, kept: %d", len(ids), keep))
	return len(ids), nil
}

// LogAction appends an entry to the audit log.
func (s *BunStore) LogAction(action string, details string) error {
	row := &auditRow{Timestamp: time.Now().UTC(), Action: action, Details: details}
	_, err := s.bun.NewInsert().Model(row).Exec(context.Background())
	return err
}

// GetAllAuditLogEntries returns the audit log, newest first.
func (s *BunStore) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	var rows []auditRow
	err := s.bun.NewSelect().Model(&rows).OrderExpr("timestamp DESC, id DESC").Scan(context.Background())
	if err != nil {
		return nil, err
	}
	entries := make([]model.AuditLogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.AuditLogEntry{
			ID:        row.ID,
			Timestamp: row.Timestamp,
			Action:    row.Action,
			Details:   row.Details,
		})
	}
	return entries, nil
}

// ExportAll dumps the whole store into a BackupData document.
func (s *BunStore) ExportAll() (*model.BackupData, error) {
	var rows []reportRow
	if err := s.bun.NewSelect().Model(&rows).OrderExpr("fetched_at ASC").Scan(context.Background()); err != nil {
		return nil, err
	}
	reports := make([]model.Report, 0, len(rows))
	for _, row := range rows {
		r, err := row.toReport()
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	audit, err := s.GetAllAuditLogEntries()
	if err != nil {
		return nil, err
	}
	return &model.BackupData{
		Version:  model.BackupFormatVersion,
		Reports:  reports,
		AuditLog: audit,
	}, nil
}

// ImportAll merges a backup into the store inside one transaction. With
// full set, existing data is wiped first; otherwise reports whose IDs
// already exist are skipped.
func (s *BunStore) ImportAll(data *model.BackupData, full bool) error {
	ctx := context.Background()
	tx, err := s.bun.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if full {
		if _, err := tx.NewDelete().Model((*reportRow)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("wipe reports: %w", err)
		}
		if _, err := tx.NewDelete().Model((*auditRow)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("wipe audit log: %w", err)
		}
	}

	for i := range data.Reports {
		row, err := newReportRow(&data.Reports[i])
		if err != nil {
			return err
		}
		var exists int
		err = tx.NewSelect().Model((*reportRow)(nil)).
			ColumnExpr("1").
			Where("id = ?", row.ID).
			Limit(1).
			Scan(ctx, &exists)
		if err == nil {
			continue // integrate mode: keep the existing report
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return MapDBError(err)
		}
	}

	for _, e := range data.AuditLog {
		row := &auditRow{Timestamp: e.Timestamp, Action: e.Action, Details: e.Details}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return err
		}
	}

	return tx.Commit()
}
