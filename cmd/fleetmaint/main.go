package main

import (
	"fmt"
	"os"

	"github.com/alsfleet/fleetmaint/internal/config"
	"github.com/alsfleet/fleetmaint/internal/db"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const defaultConfigPath = "fleetmaint.yaml"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fleetmaint",
		Short: "FleetMaint is a fleet maintenance tracker",
		Long:  "FleetMaint tracks vehicle maintenance events and reconciles spreadsheet batches into the fleet database.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newRecordCmd())
	cmd.AddCommand(newVehicleCmd())
	cmd.AddCommand(newDestinationCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newBackupCmd())
	cmd.AddCommand(newDashboardCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fleetmaint %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

// openDB loads config and connects to the configured database.
func openDB(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Default(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gdb, nil
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
