package main

import (
	"fmt"

	"github.com/alsfleet/fleetmaint/internal/backup"
	"github.com/alsfleet/fleetmaint/internal/db"
	"github.com/alsfleet/fleetmaint/internal/importer"
	"github.com/alsfleet/fleetmaint/internal/sheet"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var (
		configPath string
		modeName   string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import a maintenance batch from a spreadsheet",
		Long: `Reads a maintenance spreadsheet and reconciles it into the database.

Only rows with both PLACA and DATA filled are imported. Unknown vehicles and
destinations are registered automatically.

Modes:
  add        insert new records, skip duplicates (default)
  merge      update duplicates with non-blank incoming fields, insert new
  overwrite  replace the entire record store with the batch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, configPath, args[0], modeName, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	cmd.Flags().StringVarP(&modeName, "mode", "m", "add", "import mode: add, merge or overwrite")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the overwrite confirmation prompt")
	return cmd
}

func runImport(cmd *cobra.Command, configPath, file, modeName string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	mode, err := importer.ParseMode(modeName)
	if err != nil {
		return err
	}

	cfg, gdb, err := openDB(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}

	// The engine never prompts; confirming an overwrite is the CLI's job.
	if mode == importer.ModeOverwrite && !skipConfirm {
		if !confirmDestructive(cmd, "Overwrite mode replaces every existing maintenance record.") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	batch, err := sheet.Read(file)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Read %d rows from %s\n", len(batch.Rows), file)

	var guard *backup.Guard
	if cfg.Database.Driver == "sqlite" {
		guard = backup.NewGuard(cfg.Database.Path, cfg.Backup.Dir)
	}

	engine := importer.New(gdb, guard)
	report, err := engine.ImportBatch(batch, mode)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, report.RenderText())
	return nil
}
