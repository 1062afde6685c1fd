// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/sitescope/sitescope/internal/db"
	"github.com/sitescope/sitescope/internal/i18n"
	"github.com/sitescope/sitescope/internal/model"
)

var fullRestore bool

func registerBackupFlags() {
	if restoreCmd.Flags().Lookup("full") == nil {
		restoreCmd.Flags().BoolVar(&fullRestore, "full", false, "Wipe all existing data before importing (destructive)")
	}
}

// backupCmd dumps the whole database into a single compressed JSON file.
var backupCmd = &cobra.Command{
	Use:   "backup [output-file]",
	Short: "Create a compressed (zstd) JSON backup of the database",
	Long: `Dumps the entire contents of the Sitescope database (reports and the
audit log) into a single, Zstandard-compressed JSON file.

If an output file is specified, '.zst' will be appended to the name if it's
not already present. If no output file is specified, a default filename
'sitescope-backup-YYYY-MM-DD.json.zst' is used.

The file can be used for disaster recovery or for migrating to a different
database backend.

Examples:
  # Backup to a default file (e.g., sitescope-backup-2026-08-25.json.zst)
  sitescope backup

  # Backup to a specific file
  sitescope backup my-backup.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		var outputFile string
		if len(args) == 0 {
			outputFile = fmt.Sprintf("sitescope-backup-%s.json.zst", time.Now().Format("2006-01-02"))
		} else {
			outputFile = args[0]
			if !strings.HasSuffix(outputFile, ".zst") {
				outputFile += ".zst"
			}
		}
		fmt.Println(i18n.T("backup.starting"))
		data, err := db.Get().ExportAll()
		if err != nil {
			log.Fatalf("%s", i18n.T("backup.error_export", err))
		}
		if err := writeCompressedBackup(outputFile, data); err != nil {
			log.Fatalf("%s", i18n.T("backup.error_write", err))
		}
		fmt.Println(i18n.T("backup.success", outputFile))
	},
}

// restoreCmd loads a backup file back into the database.
var restoreCmd = &cobra.Command{
	Use:   "restore <backup-file.zst>",
	Short: "Restore the database from a compressed JSON backup",
	Long: `Restores the Sitescope database from a Zstandard-compressed JSON backup
file. By default, this command performs a non-destructive "integration"
restore, only adding reports that do not already exist.

To perform a full, destructive restore that WIPES all existing data before
importing, use the --full flag.
WARNING: The --full flag is destructive and not reversible.

Example (Integrate):
  sitescope restore ./sitescope-backup-2026-08-25.json.zst

Example (Full Restore):
  sitescope restore --full ./sitescope-backup-2026-08-25.json.zst`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]
		fmt.Println(i18n.T("restore.starting", inputFile))
		data, err := readCompressedBackup(inputFile)
		if err != nil {
			log.Fatalf("%s", i18n.T("restore.error_read", err))
		}
		if err := db.Get().ImportAll(data, fullRestore); err != nil {
			log.Fatalf("%s", i18n.T("restore.error_import", err))
		}
		fmt.Println(i18n.T("restore.success"))
	},
}

// writeCompressedBackup streams the JSON encoding of the backup directly to
// a zstd writer for memory efficiency.
func writeCompressedBackup(filename string, data *model.BackupData) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdWriter, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	defer func() { _ = zstdWriter.Close() }()

	encoder := json.NewEncoder(zstdWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("could not encode backup data: %w", err)
	}
	return nil
}

// readCompressedBackup reads and decodes a zstd-compressed JSON backup file.
func readCompressedBackup(filename string) (*model.BackupData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdReader, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zstdReader.Close()

	var backupData model.BackupData
	if err := json.NewDecoder(zstdReader).Decode(&backupData); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	return &backupData, nil
}
