// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sitescope/sitescope/internal/db"
	"github.com/sitescope/sitescope/internal/export"
	"github.com/sitescope/sitescope/internal/i18n"
)

var historyLimit int
var historyKeep int
var historyForce bool
var historyCSVFile string

func registerHistoryFlags() {
	if historyCmd.Flags().Lookup("limit") == nil {
		historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to list")
		historyPruneCmd.Flags().IntVar(&historyKeep, "keep", 50, "Number of newest reports to keep")
		historyPruneCmd.Flags().BoolVar(&historyForce, "force", false, "Prune without confirmation")
		historyExportCmd.Flags().StringVar(&historyCSVFile, "csv", "", "Write CSV to this file instead of JSON to stdout")
	}
}

// historyCmd lists stored analysis reports. Subcommands inspect, export and
// prune the history.
var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "List stored analysis reports",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		summaries, err := db.Get().ListReports(historyLimit)
		if err != nil {
			log.Fatalf("%s", i18n.T("history.error_list", err))
		}
		if len(summaries) == 0 {
			fmt.Println(i18n.T("history.empty"))
			return
		}
		for _, s := range summaries {
			fmt.Printf("%s  %-40s  %3d  %5d words  %s\n",
				s.FetchedAt.Format("2006-01-02 15:04"), truncate(s.URL, 40), s.StatusCode, s.WordCount, s.ID)
		}
	},
}

func init() {
	historyCmd.AddCommand(historyShowCmd, historyExportCmd, historyPruneCmd, historyLogCmd)
}

// historyShowCmd prints a stored report in the same layout as analyze.
var historyShowCmd = &cobra.Command{
	Use:     "show <report-id>",
	Short:   "Show a stored report",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		report, err := db.Get().GetReport(args[0])
		if err != nil {
			log.Fatalf("%s", i18n.T("history.error_get", err))
		}
		printReport(report)
	},
}

// historyExportCmd exports a stored report as JSON or CSV.
var historyExportCmd = &cobra.Command{
	Use:     "export <report-id>",
	Short:   "Export a stored report (JSON to stdout, or CSV via --csv)",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		report, err := db.Get().GetReport(args[0])
		if err != nil {
			log.Fatalf("%s", i18n.T("history.error_get", err))
		}
		if historyCSVFile != "" {
			csvData, err := export.ReportCSV(report)
			if err != nil {
				log.Fatalf("%s", i18n.T("analyze.error_csv", err))
			}
			if err := os.WriteFile(historyCSVFile, []byte(csvData), 0644); err != nil {
				log.Fatalf("%s", i18n.T("analyze.error_csv", err))
			}
			fmt.Println(i18n.T("analyze.csv_written", historyCSVFile))
			return
		}
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("encode report: %v", err)
		}
		fmt.Println(string(out))
	},
}

// historyPruneCmd deletes all but the newest reports.
var historyPruneCmd = &cobra.Command{
	Use:     "prune",
	Short:   "Delete all but the newest reports",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		if !historyForce {
			// Without a terminal there is nobody to ask; require --force.
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				log.Fatalf("%s", i18n.T("history.prune_needs_force"))
			}
			ans := promptForConfirmation(i18n.T("history.prune_confirm", historyKeep))
			if ans != "yes" && ans != "y" {
				fmt.Println(i18n.T("history.prune_cancelled"))
				return
			}
		}
		removed, err := db.Get().PruneReports(historyKeep)
		if err != nil {
			log.Fatalf("%s", i18n.T("history.error_prune", err))
		}
		fmt.Println(i18n.T("history.pruned", removed))
	},
}

// historyLogCmd prints the audit log of tool actions.
var historyLogCmd = &cobra.Command{
	Use:     "log",
	Short:   "Show the audit log of tool actions",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := db.Get().GetAllAuditLogEntries()
		if err != nil {
			log.Fatalf("%s", i18n.T("history.error_list", err))
		}
		for _, e := range entries {
			fmt.Printf("%s  %-18s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.Details)
		}
	},
}

// promptForConfirmation displays a prompt and reads a line from stdin.
func promptForConfirmation(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	return strings.TrimSpace(strings.ToLower(answer))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
