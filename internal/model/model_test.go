// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"testing"
	"time"
)

func TestHeadingTag(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{1, "H1"},
		{3, "H3"},
		{6, "H6"},
	}
	for _, tc := range cases {
		if got := (Heading{Level: tc.level}).Tag(); got != tc.want {
			t.Errorf("Tag() for level %d = %q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestReportInternalLinks(t *testing.T) {
	r := Report{Links: []Link{
		{URL: "https://example.com/a", Internal: true},
		{URL: "https://other.example.org/", Internal: false},
		{URL: "https://example.com/b", Internal: true},
	}}
	if got := r.InternalLinks(); got != 2 {
		t.Errorf("InternalLinks() = %d, want 2", got)
	}
	if got := (Report{}).InternalLinks(); got != 0 {
		t.Errorf("InternalLinks() on empty report = %d, want 0", got)
	}
}

func TestReportString(t *testing.T) {
	at := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	r := Report{URL: "https://example.com/", FetchedAt: at}
	want := "https://example.com/ (2026-03-15 09:30)"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	s := ReportSummary{URL: "https://example.com/", FetchedAt: at}
	if got := s.String(); got != want {
		t.Errorf("ReportSummary.String() = %q, want %q", got, want)
	}
}
