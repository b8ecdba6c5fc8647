package main

import (
	"fmt"

	"github.com/alsfleet/fleetmaint/internal/db"
	"github.com/alsfleet/fleetmaint/internal/store"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print fleet maintenance statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gdb); err != nil {
				return err
			}

			s, err := store.Stats(gdb)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "FLEET STATISTICS")
			fmt.Fprintf(out, "  Total records:     %d\n", s.TotalRecords)
			fmt.Fprintf(out, "  In service:        %d\n", s.InService)
			fmt.Fprintf(out, "  Finished:          %d\n", s.Finished)
			fmt.Fprintf(out, "  Mean days in shop: %.1f\n", s.MeanDuration)
			fmt.Fprintf(out, "  Distinct plates:   %d\n", s.DistinctPlates)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	return cmd
}
