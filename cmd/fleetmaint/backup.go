package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/alsfleet/fleetmaint/internal/backup"
	"github.com/alsfleet/fleetmaint/internal/config"
	"github.com/spf13/cobra"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Backup management commands",
	}

	cmd.AddCommand(newBackupNowCmd())
	cmd.AddCommand(newBackupSweepCmd())
	cmd.AddCommand(newBackupWatchCmd())
	return cmd
}

func guardFromConfig(cfg *config.Config) (*backup.Guard, error) {
	if cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("file backups only apply to the sqlite driver (using %s)", cfg.Database.Driver)
	}
	return backup.NewGuard(cfg.Database.Path, cfg.Backup.Dir), nil
}

func newBackupNowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Snapshot the database file immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.Default(configPath)
			if err != nil {
				return err
			}
			guard, err := guardFromConfig(cfg)
			if err != nil {
				return err
			}

			path, err := guard.Snapshot()
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintln(out, "Nothing to back up yet.")
				return nil
			}
			fmt.Fprintf(out, "Backup written: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	return cmd
}

func newBackupSweepCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Prune backups older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.Default(configPath)
			if err != nil {
				return err
			}
			guard, err := guardFromConfig(cfg)
			if err != nil {
				return err
			}

			removed, err := guard.Prune(time.Duration(cfg.Backup.RetentionDays) * 24 * time.Hour)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %d old backups (retention %d days)\n", removed, cfg.Backup.RetentionDays)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	return cmd
}

func newBackupWatchCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the scheduled backup sweeper until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.Default(configPath)
			if err != nil {
				return err
			}
			guard, err := guardFromConfig(cfg)
			if err != nil {
				return err
			}

			sweeper := &backup.Sweeper{
				Guard:     guard,
				Schedule:  cfg.Backup.SweepSchedule,
				Retention: time.Duration(cfg.Backup.RetentionDays) * 24 * time.Hour,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(out, "Backup sweeper running (%s, retention %d days). Ctrl-C to stop.\n",
				cfg.Backup.SweepSchedule, cfg.Backup.RetentionDays)
			return sweeper.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	return cmd
}
