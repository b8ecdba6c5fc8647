package main

import (
	"fmt"

	"github.com/alsfleet/fleetmaint/internal/db"
	"github.com/alsfleet/fleetmaint/internal/registry"
	"github.com/spf13/cobra"
)

func newDestinationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "destination",
		Short: "Destination registry commands",
	}

	cmd.AddCommand(newDestinationListCmd())
	cmd.AddCommand(newDestinationAddCmd())
	cmd.AddCommand(newDestinationDeactivateCmd())
	return cmd
}

func newDestinationListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active destinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gdb); err != nil {
				return err
			}

			dests, err := registry.ActiveDestinations(gdb)
			if err != nil {
				return err
			}
			if len(dests) == 0 {
				fmt.Fprintln(out, "No active destinations.")
				return nil
			}

			for _, d := range dests {
				fmt.Fprintf(out, "%s (since %s)\n", d.Name, d.RegisteredAt.Format("02/01/2006"))
			}
			fmt.Fprintf(out, "\n%d destinations\n", len(dests))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	return cmd
}

func newDestinationAddCmd() *cobra.Command {
	var (
		configPath string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a destination workshop",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gdb); err != nil {
				return err
			}

			d, err := registry.AddDestination(gdb, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Destination %s registered\n", d.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	cmd.Flags().StringVar(&name, "name", "", "destination name (required)")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newDestinationDeactivateCmd() *cobra.Command {
	var (
		configPath string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "deactivate",
		Short: "Deactivate a destination (kept in the registry)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			_, gdb, err := openDB(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gdb); err != nil {
				return err
			}

			if err := registry.DeactivateDestination(gdb, name); err != nil {
				return err
			}
			fmt.Fprintf(out, "Destination %s deactivated\n", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	cmd.Flags().StringVar(&name, "name", "", "destination name (required)")
	cmd.MarkFlagRequired("name")
	return cmd
}
