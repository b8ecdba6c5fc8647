package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/alsfleet/fleetmaint/internal/backup"
	"github.com/alsfleet/fleetmaint/internal/db"
	"github.com/alsfleet/fleetmaint/internal/models"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBResetCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the FleetMaint database",
		Long:  "Creates the database file, migrates all tables, and seeds the default destinations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, gdb, err := openDB(configPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Connected to %s database\n", cfg.Database.Driver)

	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	if err := db.SeedDestinations(gdb, cfg.Destinations); err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded %d default destinations:", len(cfg.Destinations))
	for _, d := range cfg.Destinations {
		fmt.Fprintf(out, " %s", d)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "\nFleetMaint database initialized successfully.")
	return nil
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all records and re-seed",
		Long: `Snapshots the current database, removes every maintenance record, vehicle
and destination, then re-runs migration and seeding.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	cfg, gdb, err := openDB(configPath)
	if err != nil {
		return err
	}

	if !skipConfirm && !confirmDestructive(cmd, "This will permanently delete every record, vehicle and destination.") {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	if cfg.Database.Driver == "sqlite" {
		guard := backup.NewGuard(cfg.Database.Path, cfg.Backup.Dir)
		path, err := guard.Snapshot()
		if err != nil {
			return err
		}
		if path != "" {
			fmt.Fprintf(out, "Backup written: %s\n", path)
		}
	}

	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}
	if err := gdb.Where("1 = 1").Delete(&models.MaintenanceRecord{}).Error; err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	if err := gdb.Where("1 = 1").Delete(&models.Vehicle{}).Error; err != nil {
		return fmt.Errorf("clear vehicles: %w", err)
	}
	if err := gdb.Where("1 = 1").Delete(&models.Destination{}).Error; err != nil {
		return fmt.Errorf("clear destinations: %w", err)
	}
	if err := db.SeedDestinations(gdb, cfg.Destinations); err != nil {
		return err
	}

	fmt.Fprintln(out, "FleetMaint database reset and re-seeded successfully.")
	return nil
}

// confirmDestructive prompts for a typed "yes" before destructive actions.
func confirmDestructive(cmd *cobra.Command, warning string) bool {
	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()

	fmt.Fprintf(out, "WARNING: %s\n", warning)
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes"
	}
	return false
}
