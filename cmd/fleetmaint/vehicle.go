package main

import (
	"fmt"

	"github.com/alsfleet/fleetmaint/internal/db"
	"github.com/alsfleet/fleetmaint/internal/registry"
	"github.com/spf13/cobra"
)

func newVehicleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Vehicle registry commands",
	}

	cmd.AddCommand(newVehicleListCmd())
	cmd.AddCommand(newVehicleAddCmd())
	cmd.AddCommand(newVehicleDeactivateCmd())
	return cmd
}

func newVehicleListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active vehicles",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gdb); err != nil {
				return err
			}

			vehicles, err := registry.ActiveVehicles(gdb)
			if err != nil {
				return err
			}
			if len(vehicles) == 0 {
				fmt.Fprintln(out, "No active vehicles.")
				return nil
			}

			fmt.Fprintf(out, "%-10s %-12s %8s  %s\n", "PLATE", "TYPE", "KM", "DESCRIPTION")
			for _, v := range vehicles {
				fmt.Fprintf(out, "%-10s %-12s %8d  %s\n", v.Plate, v.TypeLabel, v.LastOdometer, v.Description)
			}
			fmt.Fprintf(out, "\n%d vehicles\n", len(vehicles))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	return cmd
}

func newVehicleAddCmd() *cobra.Command {
	var (
		configPath  string
		plate       string
		typeLabel   string
		description string
		km          int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a vehicle",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gdb); err != nil {
				return err
			}

			v, err := registry.AddVehicle(gdb, plate, typeLabel, description, km)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Vehicle %s registered (%s)\n", v.Plate, v.TypeLabel)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	cmd.Flags().StringVar(&plate, "plate", "", "vehicle plate (required)")
	cmd.Flags().StringVar(&typeLabel, "type", "", "vehicle type (CAVALO, CARRETA 1, BUG 2, LS, ...)")
	cmd.Flags().StringVar(&description, "description", "", "free-text description")
	cmd.Flags().IntVar(&km, "km", 0, "initial odometer reading")
	cmd.MarkFlagRequired("plate")
	return cmd
}

func newVehicleDeactivateCmd() *cobra.Command {
	var (
		configPath string
		plate      string
	)

	cmd := &cobra.Command{
		Use:   "deactivate",
		Short: "Deactivate a vehicle (kept in the registry)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gdb); err != nil {
				return err
			}

			if err := registry.DeactivateVehicle(gdb, plate); err != nil {
				return err
			}
			fmt.Fprintf(out, "Vehicle %s deactivated\n", plate)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	cmd.Flags().StringVar(&plate, "plate", "", "vehicle plate (required)")
	cmd.MarkFlagRequired("plate")
	return cmd
}
