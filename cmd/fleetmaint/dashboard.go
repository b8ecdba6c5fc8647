package main

import (
	"os/signal"
	"syscall"

	"github.com/alsfleet/fleetmaint/internal/dashboard"
	"github.com/alsfleet/fleetmaint/internal/db"
	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Serve the read-only fleet dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gdb); err != nil {
				return err
			}

			if port == 0 {
				port = cfg.Dashboard.Port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return dashboard.Start(ctx, dashboard.StartOpts{
				DB:   gdb,
				Port: port,
				Out:  cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "dashboard port (default from config)")
	return cmd
}
