// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"strings"
	"testing"

	"github.com/sitescope/sitescope/internal/db"
	"github.com/sitescope/sitescope/internal/scan"
	"github.com/sitescope/sitescope/ui/tui"
)

// The TUI entry reports failures; the root command consumes that error
// instead of discarding it.
var _ func(*scan.Runner, db.Store) error = tui.Run

func TestNewRootCmdRegistersSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{
		"analyze", "sitemap", "schema", "history",
		"backup", "restore", "db-maintain", "version",
	}
	have := map[string]bool{}
	for _, c := range root.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}

	for _, flag := range []string{"config", "language", "verbose", "version"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("root command is missing persistent flag %q", flag)
		}
	}
}

func TestNewRootCmdIsIdempotent(t *testing.T) {
	// Package-level subcommands are shared across root instances; building
	// the root twice must not panic on duplicate flag definitions.
	_ = NewRootCmd()
	_ = NewRootCmd()
}

func TestCompositeVersionIncludesCommit(t *testing.T) {
	origVersion, origCommit, origDate := version, gitCommit, buildDate
	defer func() { version, gitCommit, buildDate = origVersion, origCommit, origDate }()

	version = "v1.0.0"
	gitCommit = "dev"
	buildDate = ""
	got := compositeVersion()
	if !strings.HasPrefix(got, "v1.0.0") {
		t.Errorf("compositeVersion() = %q, want prefix v1.0.0", got)
	}
	if strings.Contains(got, "(dev)") {
		t.Errorf("compositeVersion() = %q, should not include a dev commit", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short, 10) = %q", got)
	}
	got := truncate("a very long title that overflows", 12)
	if len([]rune(got)) != 12 {
		t.Errorf("truncate() length = %d, want 12 (%q)", len([]rune(got)), got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate() = %q, want ellipsis suffix", got)
	}
}
