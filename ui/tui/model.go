// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sitescope/sitescope/internal/db"
	"github.com/sitescope/sitescope/internal/i18n"
	"github.com/sitescope/sitescope/internal/model"
	"github.com/sitescope/sitescope/internal/scan"
)

// analyzeTimeout bounds a single TUI-triggered analysis run.
const analyzeTimeout = 2 * time.Minute

const historyPageSize = 50

type screen int

const (
	screenInput screen = iota
	screenLoading
	screenReport
	screenHistory
)

type reportTab int

const (
	tabOverview reportTab = iota
	tabStructure
	tabContent
	tabSuggestions

	tabCount
)

// analyzeDoneMsg carries the result of a background analysis run.
type analyzeDoneMsg struct {
	report *model.Report
	err    error
}

// historyLoadedMsg carries the report listing for the history table.
type historyLoadedMsg struct {
	summaries []model.ReportSummary
	err       error
}

// reportLoadedMsg carries a stored report selected from the history table.
type reportLoadedMsg struct {
	report *model.Report
	err    error
}

type rootModel struct {
	runner *scan.Runner
	store  db.Store

	screen screen
	tab    reportTab

	input      textinput.Model
	spin       spinner.Model
	history    table.Model
	historyIDs []string

	report *model.Report
	status string

	width  int
	height int
}

func newRootModel(runner *scan.Runner, store db.Store) rootModel {
	ti := textinput.New()
	ti.Placeholder = "https://example.com"
	ti.CharLimit = 2048
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	ht := table.New(
		table.WithColumns([]table.Column{
			{Title: i18n.T("tui.col_date"), Width: 16},
			{Title: i18n.T("tui.col_url"), Width: 44},
			{Title: i18n.T("tui.col_status"), Width: 6},
			{Title: i18n.T("tui.col_words"), Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	ht.SetStyles(historyTableStyles())

	return rootModel{
		runner:  runner,
		store:   store,
		screen:  screenInput,
		input:   ti,
		spin:    sp,
		history: ht,
	}
}

func (m rootModel) Init() tea.Cmd {
	return textinput.Blink
}

// analyzeCmd runs the full pipeline in the background.
func (m rootModel) analyzeCmd(url string) tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()
		report, err := runner.Run(ctx, url, scan.Options{})
		return analyzeDoneMsg{report: report, err: err}
	}
}

func (m rootModel) loadHistoryCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		summaries, err := store.ListReports(historyPageSize)
		return historyLoadedMsg{summaries: summaries, err: err}
	}
}

func (m rootModel) loadReportCmd(id string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		report, err := store.GetReport(id)
		return reportLoadedMsg{report: report, err: err}
	}
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case analyzeDoneMsg:
		if msg.err != nil {
			m.screen = screenInput
			m.status = errorStyle.Render(i18n.T("tui.analyze_failed", msg.err))
			return m, nil
		}
		m.report = msg.report
		m.screen = screenReport
		m.tab = tabOverview
		m.status = ""
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(i18n.T("tui.history_failed", msg.err))
			return m, nil
		}
		rows := make([]table.Row, 0, len(msg.summaries))
		for _, s := range msg.summaries {
			rows = append(rows, table.Row{
				s.FetchedAt.Format("2006-01-02 15:04"),
				s.URL,
				fmt.Sprintf("%d", s.StatusCode),
				fmt.Sprintf("%d", s.WordCount),
			})
		}
		m.historyIDs = summaryIDs(msg.summaries)
		m.history.SetRows(rows)
		m.screen = screenHistory
		m.status = ""
		return m, nil

	case reportLoadedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(i18n.T("tui.history_failed", msg.err))
			return m, nil
		}
		m.report = msg.report
		m.screen = screenReport
		m.tab = tabOverview
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		if m.screen == screenLoading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m.updateFocused(msg)
}

func (m rootModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen {
	case screenInput:
		switch msg.Type {
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			url := m.input.Value()
			if err := scan.ValidateURL(url); err != nil {
				m.status = errorStyle.Render(i18n.T("tui.invalid_url", err))
				return m, nil
			}
			m.screen = screenLoading
			m.status = ""
			return m, tea.Batch(m.spin.Tick, m.analyzeCmd(url))
		case tea.KeyCtrlR:
			return m, m.loadHistoryCmd()
		}

	case screenLoading:
		// Analysis cannot be cancelled from here beyond its timeout; just
		// swallow keys until it finishes.
		return m, nil

	case screenReport:
		switch msg.String() {
		case "q", "esc":
			m.screen = screenInput
			m.input.Focus()
			return m, textinput.Blink
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, nil
		case "c":
			out, err := json.MarshalIndent(m.report, "", "  ")
			if err == nil {
				err = clipboard.WriteAll(string(out))
			}
			if err != nil {
				m.status = errorStyle.Render(i18n.T("tui.copy_failed", err))
			} else {
				m.status = statusStyle.Render(i18n.T("tui.copied"))
			}
			return m, nil
		case "r":
			return m, m.loadHistoryCmd()
		}

	case screenHistory:
		switch msg.String() {
		case "q", "esc":
			m.screen = screenInput
			m.input.Focus()
			return m, textinput.Blink
		case "enter":
			idx := m.history.Cursor()
			if idx >= 0 && idx < len(m.historyIDs) {
				return m, m.loadReportCmd(m.historyIDs[idx])
			}
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

// updateFocused forwards messages to whichever component owns the focus.
func (m rootModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenInput:
		m.input, cmd = m.input.Update(msg)
	case screenHistory:
		m.history, cmd = m.history.Update(msg)
	}
	return m, cmd
}

func summaryIDs(summaries []model.ReportSummary) []string {
	ids := make([]string, len(summaries))
	for i, s := range summaries {
		ids[i] = s.ID
	}
	return ids
}
