// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for Sitescope using the
// Cobra library. It defines the root command, subcommands (analyze,
// sitemap, schema, history, backup, ...), flags, and the main entry point
// for execution.

package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sitescope/sitescope/internal/config"
	"github.com/sitescope/sitescope/internal/db"
	"github.com/sitescope/sitescope/internal/fetch"
	"github.com/sitescope/sitescope/internal/i18n"
	"github.com/sitescope/sitescope/internal/scan"
	"github.com/sitescope/sitescope/ui/tui"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

var cfgFile string
var verbose bool
var showVersionFlag bool

var appConfig config.Config

// configDefaults are the built-in settings used before any config file,
// environment variable or flag is considered.
var configDefaults = map[string]any{
	"database.type":     "sqlite",
	"database.dsn":      "./sitescope.db",
	"language":          "en",
	"fetch.timeout":     30,
	"fetch.user_agent":  fetch.DefaultUserAgent,
	"crawl.max_urls":    500,
	"crawl.concurrency": 8,
}

// setupDefaultServices loads the configuration and initializes i18n and the
// database. It runs as PersistentPreRunE for every command that needs them.
func setupDefaultServices(cmd *cobra.Command, args []string) error {
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, configDefaults, optionalConfigPath)
	// A "file not found" error is expected on first run, so we handle it
	// specifically and write a default config for subsequent runs.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			log.Warnf("Warning: could not write default config file: %v", writeErr)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Post-process config to ensure critical values are not empty, falling
	// back to defaults. This handles config files with empty values.
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = configDefaults["database.type"].(string)
	}
	if appConfig.Database.Dsn == "" {
		appConfig.Database.Dsn = configDefaults["database.dsn"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = configDefaults["language"].(string)
	}
	if appConfig.Fetch.TimeoutSeconds <= 0 {
		appConfig.Fetch.TimeoutSeconds = configDefaults["fetch.timeout"].(int)
	}
	if appConfig.Crawl.MaxURLs <= 0 {
		appConfig.Crawl.MaxURLs = configDefaults["crawl.max_urls"].(int)
	}
	if appConfig.Crawl.Concurrency <= 0 {
		appConfig.Crawl.Concurrency = configDefaults["crawl.concurrency"].(int)
	}

	i18n.Init(appConfig.Language)

	// Initialize the database if not already initialized by tests or
	// earlier setup.
	if !db.IsInitialized() {
		if _, err := db.New(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
			return errors.New(i18n.T("config.error_init_db", err))
		}
	}

	return nil
}

// newFetchClient builds the shared HTTP client from the loaded config.
func newFetchClient() *fetch.Client {
	return fetch.NewClient(
		fetch.WithTimeout(time.Duration(appConfig.Fetch.TimeoutSeconds)*time.Second),
		fetch.WithUserAgent(appConfig.Fetch.UserAgent),
	)
}

// newScanRunner builds a scan.Runner wired to the package store.
func newScanRunner() *scan.Runner {
	return scan.NewRunner(newFetchClient(), db.Get())
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	rootCmd := NewRootCmd()
	return rootCmd.Execute()
}

func applyDefaultFlags(cmd *cobra.Command) {
	// Avoid redefining flags if they already exist (NewRootCmd may be
	// called multiple times in tests which creates a new root but uses
	// package-level subcommands). pflag panics on duplicate definitions.
	if cmd.Flags().Lookup("database.type") == nil {
		cmd.Flags().String("database.type", "sqlite", "Database type (e.g., sqlite, postgres)")
	}
	if cmd.Flags().Lookup("database.dsn") == nil {
		cmd.Flags().String("database.dsn", "./sitescope.db", "Database connection string (DSN)")
	}
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	// Make sure the user-provided file exists to avoid unwanted behavior.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// NewRootCmd creates and configures a new root cobra command. This function
// is used to create the main application command as well as fresh instances
// for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitescope",
		Short: "Sitescope analyzes the on-page SEO of any website.",
		Long: `Sitescope fetches a page and reports its on-page SEO signals:
metadata, heading structure, link profile, content metrics and
improvement suggestions. It also validates and generates XML sitemaps
and schema.org JSON-LD markup. Analysis history is kept in a local
database.

Running without a subcommand launches the interactive TUI.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Printf("%s\n", compositeVersion())
				os.Exit(0)
			}
			if verbose {
				db.SetDebug(true)
			}
			return setupDefaultServices(cmd, args)
		},
		Run: func(cmd *cobra.Command, args []string) {
			// The database and i18n are already initialized by
			// PersistentPreRunE, so we can just run the TUI.
			if err := tui.Run(newScanRunner(), db.Get()); err != nil {
				log.Errorf("TUI error: %v", err)
			}
		},
	}

	cmd.Version = compositeVersion()

	// Define flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (sets -v for DB logs)")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `UI language ("en", "de")`)
	applyDefaultFlags(cmd)

	applyDefaultFlags(analyzeCmd)
	applyDefaultFlags(sitemapCmd)
	applyDefaultFlags(schemaCmd)
	applyDefaultFlags(historyCmd)
	applyDefaultFlags(backupCmd)
	applyDefaultFlags(restoreCmd)
	applyDefaultFlags(dbMaintainCmd)
	registerAnalyzeFlags()
	registerSitemapFlags()
	registerSchemaFlags()
	registerHistoryFlags()
	registerBackupFlags()
	if dbMaintainCmd.Flags().Lookup("skip-integrity") == nil {
		dbMaintainCmd.Flags().Bool("skip-integrity", false, "Skip integrity_check (SQLite) during maintenance")
	}

	// Add a lightweight `version` subcommand so users and CI can run
	// `sitescope version`.
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			fmt.Printf("version: %s\n", v)
			fmt.Printf("commit: %s\n", c)
			if d != "" {
				fmt.Printf("built: %s\n", d)
			}
		},
	}

	cmd.AddCommand(
		analyzeCmd,
		sitemapCmd,
		schemaCmd,
		historyCmd,
		backupCmd,
		restoreCmd,
		dbMaintainCmd,
		versionCmd,
	)

	return cmd
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	composite := v
	if c != "" && c != "dev" {
		composite = composite + " (" + c + ")"
	}
	if d != "" {
		composite = composite + " built: " + d
	}
	return composite
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime. This helper is separated to make unit testing straightforward.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := version
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	var ok bool
	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
			ok = true
		}
	} else {
		ok = true
	}

	if ok && info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// If Main doesn't carry the version (some build paths), try to
		// find our module in the dependencies and use that version.
		if (resolvedVersion == "dev" || resolvedVersion == "(devel)") && info.Deps != nil {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/sitescope/sitescope" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort, if no version was discovered but a gitCommit was
	// provided via ldflags, show that to aid support.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}

// dbMaintainCmd runs database maintenance tasks for the configured database.
var dbMaintainCmd = &cobra.Command{
	Use:     "db-maintain",
	Short:   "Run database maintenance (VACUUM/OPTIMIZE) for the configured DB",
	Long:    `Runs engine-specific maintenance tasks (VACUUM, OPTIMIZE TABLE, PRAGMA optimize).`,
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		skipIntegrity, _ := cmd.Flags().GetBool("skip-integrity")
		if err := db.RunDBMaintenance(appConfig.Database.Type, appConfig.Database.Dsn, skipIntegrity); err != nil {
			fmt.Printf("%s\n", i18n.T("maintain.failed", err))
			os.Exit(1)
		}
		fmt.Println(i18n.T("maintain.success"))
	},
}
