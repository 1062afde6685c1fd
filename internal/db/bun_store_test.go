// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStore opens an in-memory SQLite store with migrations applied.
func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	s, err := NewStoreFromDSN("sqlite", ":memory:")
	require.NoError(t, err)
	return s
}

func TestBunStoreSaveGetRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	r := sampleReport("bun-1", "https://example.com/apples", time.Now().UTC())
	require.NoError(t, s.SaveReport(r))

	got, err := s.GetReport("bun-1")
	require.NoError(t, err)
	assert.Equal(t, r.URL, got.URL)
	assert.Equal(t, r.Meta.Title, got.Meta.Title)
	assert.Equal(t, r.Content.WordCount, got.Content.WordCount)

	_, err = s.GetReport("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBunStoreDuplicateID(t *testing.T) {
	s := newSQLiteStore(t)
	r := sampleReport("bun-1", "https://example.com/", time.Now().UTC())
	require.NoError(t, s.SaveReport(r))
	assert.ErrorIs(t, s.SaveReport(r), ErrDuplicate)
}

func TestBunStoreListAndLatest(t *testing.T) {
	s := newSQLiteStore(t)
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 4; i++ {
		r := sampleReport(fmt.Sprintf("bun-%d", i), "https://example.com/", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, s.SaveReport(r))
	}

	summaries, err := s.ListReports(2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "bun-3", summaries[0].ID)
	assert.Equal(t, "bun-2", summaries[1].ID)

	latest, err := s.LatestReportForURL("https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "bun-3", latest.ID)

	_, err = s.LatestReportForURL("https://never.example/")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBunStoreDeleteAndPrune(t *testing.T) {
	s := newSQLiteStore(t)
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 6; i++ {
		r := sampleReport(fmt.Sprintf("bun-%d", i), "https://example.com/", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, s.SaveReport(r))
	}

	require.NoError(t, s.DeleteReport("bun-0"))
	assert.ErrorIs(t, s.DeleteReport("bun-0"), ErrNotFound)

	removed, err := s.PruneReports(2)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	summaries, err := s.ListReports(0)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "bun-5", summaries[0].ID)
}

func TestBunStoreAuditLog(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, s.LogAction("SITEMAP_VALIDATE", "url: https://example.com/sitemap.xml"))
	require.NoError(t, s.SaveReport(sampleReport("bun-1", "https://example.com/", time.Now().UTC())))

	entries, err := s.GetAllAuditLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first: the ANALYZE entry from SaveReport.
	assert.Equal(t, "ANALYZE", entries[0].Action)
	assert.Equal(t, "SITEMAP_VALIDATE", entries[1].Action)
}

func TestBunStoreBackupRoundTrip(t *testing.T) {
	src := newSQLiteStore(t)
	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, src.SaveReport(sampleReport("bun-1", "https://example.com/", base)))
	require.NoError(t, src.SaveReport(sampleReport("bun-2", "https://example.com/b", base.Add(time.Hour))))

	data, err := src.ExportAll()
	require.NoError(t, err)
	require.Len(t, data.Reports, 2)

	dst := newSQLiteStore(t)
	require.NoError(t, dst.SaveReport(sampleReport("bun-1", "https://stale.example/", base)))

	// Integrate mode keeps the existing bun-1.
	require.NoError(t, dst.ImportAll(data, false))
	got, err := dst.GetReport("bun-1")
	require.NoError(t, err)
	assert.Equal(t, "https://stale.example/", got.URL)
	_, err = dst.GetReport("bun-2")
	require.NoError(t, err)

	// Full mode wipes first.
	require.NoError(t, dst.ImportAll(data, true))
	got, err = dst.GetReport("bun-1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/", got.URL)
}
