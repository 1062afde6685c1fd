// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sitescope/sitescope/internal/db"
	"github.com/sitescope/sitescope/internal/i18n"
	"github.com/sitescope/sitescope/internal/scan"
	"github.com/sitescope/sitescope/internal/sitemap"
)

var sitemapMaxURLs int
var sitemapOutFile string

func registerSitemapFlags() {
	if sitemapGenerateCmd.Flags().Lookup("max-urls") == nil {
		sitemapGenerateCmd.Flags().IntVar(&sitemapMaxURLs, "max-urls", 0, "Maximum URLs to include (defaults to crawl.max_urls)")
		sitemapGenerateCmd.Flags().StringVarP(&sitemapOutFile, "output", "o", "", "Write the sitemap to a file instead of stdout")
	}
}

// sitemapCmd groups the sitemap tools.
var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Validate or generate XML sitemaps",
}

func init() {
	sitemapCmd.AddCommand(sitemapValidateCmd, sitemapGenerateCmd)
}

// sitemapValidateCmd fetches a sitemap, parses it and probes every listed
// URL.
var sitemapValidateCmd = &cobra.Command{
	Use:     "validate <sitemap-url>",
	Short:   "Validate an existing sitemap",
	Long:    `Fetches the sitemap XML, parses it and checks that every listed URL responds with HTTP 200.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		handler := sitemap.NewHandler(newFetchClient(), appConfig.Crawl.Concurrency)
		result, err := handler.Validate(cmd.Context(), args[0])
		if err != nil {
			log.Fatalf("%s", i18n.T("sitemap.validate_failed", err))
		}

		if result.Valid {
			fmt.Println(i18n.T("sitemap.valid", result.TotalURLs))
		} else {
			fmt.Println(i18n.T("sitemap.invalid", result.TotalURLs, len(result.Issues)))
			for _, issue := range result.Issues {
				fmt.Printf("  %s: %s\n", issue.URL, issue.Issue)
			}
		}
		if s := db.Get(); s != nil {
			_ = s.LogAction("SITEMAP_VALIDATE", fmt.Sprintf("url: %s, valid: %t", args[0], result.Valid))
		}
	},
}

// sitemapGenerateCmd crawls a site and emits sitemap XML.
var sitemapGenerateCmd = &cobra.Command{
	Use:   "generate <base-url>",
	Short: "Generate a sitemap by crawling a site",
	Long: `Crawls same-site links breadth-first starting at the base URL and
emits a sitemap.org urlset document. The crawl stops after --max-urls
pages.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		baseURL := args[0]
		if err := scan.ValidateURL(baseURL); err != nil {
			log.Fatalf("%s", i18n.T("analyze.invalid_url", err))
		}
		maxURLs := sitemapMaxURLs
		if maxURLs <= 0 {
			maxURLs = appConfig.Crawl.MaxURLs
		}

		fmt.Println(i18n.T("sitemap.generate_start", baseURL, maxURLs))
		handler := sitemap.NewHandler(newFetchClient(), appConfig.Crawl.Concurrency)
		xmlOut, err := handler.Generate(cmd.Context(), baseURL, maxURLs)
		if err != nil {
			log.Fatalf("%s", i18n.T("sitemap.generate_failed", err))
		}

		if sitemapOutFile != "" {
			if err := os.WriteFile(sitemapOutFile, []byte(xmlOut), 0644); err != nil {
				log.Fatalf("%s", i18n.T("sitemap.error_write", err))
			}
			fmt.Println(i18n.T("sitemap.generate_written", sitemapOutFile))
		} else {
			fmt.Print(xmlOut)
		}
		if s := db.Get(); s != nil {
			_ = s.LogAction("SITEMAP_GENERATE", fmt.Sprintf("base: %s, max: %d", baseURL, maxURLs))
		}
	},
}
