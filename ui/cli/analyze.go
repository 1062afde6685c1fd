// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sitescope/sitescope/internal/export"
	"github.com/sitescope/sitescope/internal/i18n"
	"github.com/sitescope/sitescope/internal/model"
	"github.com/sitescope/sitescope/internal/scan"
)

var analyzeCompetitors []string
var analyzeJSON bool
var analyzeCSVFile string
var analyzeNoStore bool

func registerAnalyzeFlags() {
	if analyzeCmd.Flags().Lookup("competitors") == nil {
		analyzeCmd.Flags().StringSliceVar(&analyzeCompetitors, "competitors", nil, "Competitor URLs to compare content against")
		analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full report as JSON")
		analyzeCmd.Flags().StringVar(&analyzeCSVFile, "csv", "", "Write the meta/heading/link tables to a CSV file")
		analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "Do not record the report in the history")
	}
}

// analyzeCmd represents the 'analyze' command. It fetches a page, runs the
// full analysis pipeline, prints the report and records it in the history.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze the on-page SEO of a URL",
	Long: `Fetches the page at the given URL and reports its metadata, heading
structure, link profile, content metrics and improvement suggestions.

Use --competitors to compare the page's phrasing against other sites:

  sitescope analyze https://example.com --competitors https://rival.com`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		url := args[0]
		if err := scan.ValidateURL(url); err != nil {
			log.Fatalf("%s", i18n.T("analyze.invalid_url", err))
		}

		fmt.Println(i18n.T("analyze.start", url))
		runner := newScanRunner()
		report, err := runner.Run(cmd.Context(), url, scan.Options{
			Competitors: analyzeCompetitors,
			Concurrency: appConfig.Crawl.Concurrency,
			SkipStore:   analyzeNoStore,
		})
		if err != nil {
			log.Fatalf("%s", i18n.T("analyze.failed", err))
		}

		if analyzeJSON {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				log.Fatalf("encode report: %v", err)
			}
			fmt.Println(string(out))
		} else {
			printReport(report)
		}

		if analyzeCSVFile != "" {
			csvData, err := export.ReportCSV(report)
			if err != nil {
				log.Fatalf("%s", i18n.T("analyze.error_csv", err))
			}
			if err := os.WriteFile(analyzeCSVFile, []byte(csvData), 0644); err != nil {
				log.Fatalf("%s", i18n.T("analyze.error_csv", err))
			}
			fmt.Println(i18n.T("analyze.csv_written", analyzeCSVFile))
		}
	},
}

// printReport writes the human-readable report to stdout.
func printReport(r *model.Report) {
	fmt.Printf("\n%s\n", i18n.T("report.heading_meta"))
	fmt.Printf("  %s: %s\n", i18n.T("report.title"), orDash(r.Meta.Title))
	fmt.Printf("  %s: %s\n", i18n.T("report.description"), orDash(r.Meta.MetaDescription))
	fmt.Printf("  %s: %s\n", i18n.T("report.canonical"), orDash(r.Meta.Canonical))
	fmt.Printf("  %s: %s\n", i18n.T("report.robots"), orDash(r.Meta.Robots))
	fmt.Printf("  %s: %d\n", i18n.T("report.status_code"), r.Meta.StatusCode)

	fmt.Printf("\n%s\n", i18n.T("report.heading_structure"))
	for _, h := range r.Headings {
		fmt.Printf("  %-3s %s\n", h.Tag(), h.Text)
	}
	if len(r.Headings) == 0 {
		fmt.Printf("  %s\n", i18n.T("report.none"))
	}

	internal := r.InternalLinks()
	fmt.Printf("\n%s\n", i18n.T("report.heading_links"))
	fmt.Printf("  %s\n", i18n.T("report.links_summary", len(r.Links), internal, len(r.Links)-internal))

	fmt.Printf("\n%s\n", i18n.T("report.heading_content"))
	fmt.Printf("  %s: %d\n", i18n.T("report.word_count"), r.Content.WordCount)
	fmt.Printf("  %s: %.1f\n", i18n.T("report.readability"), r.Content.Readability)
	fmt.Printf("  %s: %.2f%%\n", i18n.T("report.keyword_density"), r.Content.KeywordDensity*100)
	for i, kw := range r.Content.TopKeywords {
		if i >= 5 {
			break
		}
		fmt.Printf("  %2d. %s (%d)\n", i+1, kw.Keyword, kw.Count)
	}

	if r.Content.Competitors != nil {
		fmt.Printf("\n%s\n", i18n.T("report.heading_competitors"))
		for _, ci := range r.Content.Competitors.Insights {
			if ci.FetchError != "" {
				fmt.Printf("  %s: %s\n", ci.URL, i18n.T("report.competitor_error", ci.FetchError))
				continue
			}
			fmt.Printf("  %s: %s\n", ci.URL, i18n.T("report.competitor_similarity", ci.Similarity*100))
		}
	}

	fmt.Printf("\n%s\n", i18n.T("report.heading_suggestions"))
	for _, s := range r.Suggestions.SEORecommendations {
		fmt.Printf("  - %s\n", s)
	}
	for _, s := range r.Suggestions.ContentImprovements {
		fmt.Printf("  - %s\n", s)
	}
	for _, s := range r.Suggestions.KeywordSuggestions {
		fmt.Printf("  - %s\n", s)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
