// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui implements the interactive terminal UI for Sitescope using
// Bubble Tea. It offers a URL prompt, a tabbed report browser and a history
// table backed by the configured store.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sitescope/sitescope/internal/db"
	"github.com/sitescope/sitescope/internal/scan"
)

// Run starts the interactive TUI. It blocks until the user quits.
func Run(runner *scan.Runner, store db.Store) error {
	_, err := tea.NewProgram(
		newRootModel(runner, store),
		tea.WithAltScreen(),
	).Run()
	return err
}
