// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/sitescope/sitescope/internal/i18n"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Width(18)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245"))

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Underline(true)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			MarginTop(1)
)

func historyTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

func (m rootModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sitescope"))
	b.WriteString("\n")

	switch m.screen {
	case screenInput:
		b.WriteString(i18n.T("tui.prompt"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(i18n.T("tui.help_input")))

	case screenLoading:
		b.WriteString(fmt.Sprintf("%s %s", m.spin.View(), i18n.T("tui.analyzing")))

	case screenReport:
		b.WriteString(m.viewTabBar())
		b.WriteString("\n")
		b.WriteString(m.viewReportTab())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(i18n.T("tui.help_report")))

	case screenHistory:
		b.WriteString(i18n.T("tui.history_title"))
		b.WriteString("\n\n")
		b.WriteString(m.history.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(i18n.T("tui.help_history")))
	}

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	return b.String()
}

func (m rootModel) viewTabBar() string {
	labels := []string{
		i18n.T("tui.tab_overview"),
		i18n.T("tui.tab_structure"),
		i18n.T("tui.tab_content"),
		i18n.T("tui.tab_suggestions"),
	}
	rendered := make([]string, len(labels))
	for i, label := range labels {
		if reportTab(i) == m.tab {
			rendered[i] = activeTabStyle.Render(label)
		} else {
			rendered[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m rootModel) viewReportTab() string {
	if m.report == nil {
		return ""
	}
	switch m.tab {
	case tabStructure:
		return m.viewStructure()
	case tabContent:
		return m.viewContent()
	case tabSuggestions:
		return m.viewSuggestions()
	default:
		return m.viewOverview()
	}
}

func (m rootModel) viewOverview() string {
	r := m.report
	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(label), value))
	}
	row(i18n.T("report.title"), r.Meta.Title)
	row(i18n.T("report.description"), r.Meta.MetaDescription)
	row(i18n.T("report.canonical"), r.Meta.Canonical)
	row(i18n.T("report.robots"), r.Meta.Robots)
	row(i18n.T("report.status_code"), fmt.Sprintf("%d", r.Meta.StatusCode))
	row(i18n.T("tui.fetched_at"), r.FetchedAt.Format("2006-01-02 15:04:05"))
	return sectionStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m rootModel) viewStructure() string {
	r := m.report
	var b strings.Builder
	if len(r.Headings) == 0 {
		b.WriteString(i18n.T("report.none"))
	}
	for _, h := range r.Headings {
		b.WriteString(strings.Repeat("  ", h.Level-1))
		b.WriteString(fmt.Sprintf("%-3s %s\n", h.Tag(), h.Text))
	}
	internal := r.InternalLinks()
	b.WriteString("\n")
	b.WriteString(i18n.T("report.links_summary", len(r.Links), internal, len(r.Links)-internal))
	return sectionStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m rootModel) viewContent() string {
	c := m.report.Content
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render(i18n.T("report.word_count")), c.WordCount))
	b.WriteString(fmt.Sprintf("%s %.1f\n", labelStyle.Render(i18n.T("report.readability")), c.Readability))
	b.WriteString(fmt.Sprintf("%s %.2f%%\n", labelStyle.Render(i18n.T("report.keyword_density")), c.KeywordDensity*100))
	if len(c.TopKeywords) > 0 {
		b.WriteString("\n")
		b.WriteString(i18n.T("tui.top_keywords"))
		b.WriteString("\n")
		for i, kw := range c.TopKeywords {
			if i >= 10 {
				break
			}
			b.WriteString(fmt.Sprintf("  %2d. %s (%d)\n", i+1, kw.Keyword, kw.Count))
		}
	}
	if c.Competitors != nil {
		b.WriteString("\n")
		b.WriteString(i18n.T("report.heading_competitors"))
		b.WriteString("\n")
		for _, ci := range c.Competitors.Insights {
			if ci.FetchError != "" {
				b.WriteString(fmt.Sprintf("  %s: %s\n", ci.URL, i18n.T("report.competitor_error", ci.FetchError)))
				continue
			}
			b.WriteString(fmt.Sprintf("  %s: %s\n", ci.URL, i18n.T("report.competitor_similarity", ci.Similarity*100)))
		}
	}
	return sectionStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m rootModel) viewSuggestions() string {
	s := m.report.Suggestions
	var b strings.Builder
	all := make([]string, 0, len(s.SEORecommendations)+len(s.ContentImprovements)+len(s.KeywordSuggestions))
	all = append(all, s.SEORecommendations...)
	all = append(all, s.ContentImprovements...)
	all = append(all, s.KeywordSuggestions...)
	if len(all) == 0 {
		b.WriteString(i18n.T("tui.no_suggestions"))
	}
	for _, line := range all {
		b.WriteString(fmt.Sprintf("• %s\n", line))
	}
	return sectionStyle.Render(strings.TrimRight(b.String(), "\n"))
}
