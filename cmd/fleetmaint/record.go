package main

import (
	"fmt"
	"time"

	"github.com/alsfleet/fleetmaint/internal/db"
	"github.com/alsfleet/fleetmaint/internal/models"
	"github.com/alsfleet/fleetmaint/internal/normalize"
	"github.com/alsfleet/fleetmaint/internal/registry"
	"github.com/alsfleet/fleetmaint/internal/store"
	"github.com/spf13/cobra"
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Maintenance record commands",
	}

	cmd.AddCommand(newRecordAddCmd())
	cmd.AddCommand(newRecordListCmd())
	cmd.AddCommand(newRecordUpdateCmd())
	cmd.AddCommand(newRecordDeleteCmd())
	return cmd
}

// recordFlags holds the raw flag values shared by add and update.
type recordFlags struct {
	plate       string
	date        string
	km          string
	vehicle     string
	destination string
	service     string
	status      string
	entry       string
	exit        string
	workOrder   string
	notes       string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.plate, "plate", "", "vehicle plate (required)")
	cmd.Flags().StringVar(&f.date, "date", "", "scheduled date, DD/MM/YYYY (required)")
	cmd.Flags().StringVar(&f.km, "km", "", "odometer reading")
	cmd.Flags().StringVar(&f.vehicle, "vehicle", "", "vehicle label")
	cmd.Flags().StringVar(&f.destination, "destination", "", "destination workshop")
	cmd.Flags().StringVar(&f.service, "service", "", "service description")
	cmd.Flags().StringVar(&f.status, "status", "", "explicit status (overrides the derived one)")
	cmd.Flags().StringVar(&f.entry, "entry", "", "entry date, DD/MM/YYYY")
	cmd.Flags().StringVar(&f.exit, "exit", "", "exit date, DD/MM/YYYY")
	cmd.Flags().StringVar(&f.workOrder, "of", "", "work order number")
	cmd.Flags().StringVar(&f.notes, "obs", "", "observation notes")
}

func newRecordAddCmd() *cobra.Command {
	var configPath string
	var flags recordFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a maintenance record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordAdd(cmd, configPath, flags)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	flags.register(cmd)
	cmd.MarkFlagRequired("plate")
	cmd.MarkFlagRequired("date")
	return cmd
}

func runRecordAdd(cmd *cobra.Command, configPath string, flags recordFlags) error {
	out := cmd.OutOrStdout()

	_, gdb, err := openDB(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}

	scheduled, ok := normalize.ParseDate(flags.date)
	if !ok {
		return fmt.Errorf("unparseable scheduled date %q", flags.date)
	}

	rec := &models.MaintenanceRecord{
		Plate:         flags.plate,
		ScheduledDate: scheduled,
		Odometer:      normalize.ParseOdometer(flags.km),
		VehicleLabel:  normalize.Clean(flags.vehicle),
		Destination:   normalize.Clean(flags.destination),
		Service:       normalize.Clean(flags.service),
		Status:        normalize.Clean(flags.status),
		WorkOrder:     normalize.Clean(flags.workOrder),
		Notes:         normalize.Clean(flags.notes),
	}
	if entry, ok := normalize.ParseDate(flags.entry); ok {
		rec.EntryDate = &entry
	}
	if exit, ok := normalize.ParseDate(flags.exit); ok {
		rec.ExitDate = &exit
	}

	if err := store.Insert(gdb, rec, time.Now()); err != nil {
		return err
	}

	// Keep the registries in step with direct writes too.
	if _, err := registry.EnsureVehicle(gdb, rec.Plate, rec.VehicleLabel); err != nil {
		return err
	}
	if rec.Destination != "" {
		if _, err := registry.EnsureDestination(gdb, rec.Destination); err != nil {
			return err
		}
	}
	if rec.Odometer > 0 {
		if err := registry.UpdateOdometer(gdb, rec.Plate, rec.Odometer); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Record %s@%s added (status %s, %d days)\n",
		rec.Plate, rec.ScheduledDate.Format("02/01/2006"), displayStatus(rec.Status), rec.DurationDays)
	return nil
}

func newRecordListCmd() *cobra.Command {
	var configPath string
	var filters store.Filters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List maintenance records",
		Long:  "Lists records newest first. Filters are case-insensitive substring matches, combined with AND.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordList(cmd, configPath, filters)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	cmd.Flags().StringVar(&filters.Plate, "plate", "", "filter by plate")
	cmd.Flags().StringVar(&filters.VehicleLabel, "vehicle", "", "filter by vehicle label")
	cmd.Flags().StringVar(&filters.Destination, "destination", "", "filter by destination")
	cmd.Flags().StringVar(&filters.Service, "service", "", "filter by service description")
	cmd.Flags().StringVar(&filters.Status, "status", "", "filter by status")
	cmd.Flags().StringVar(&filters.WorkOrder, "of", "", "filter by work order number")
	return cmd
}

func runRecordList(cmd *cobra.Command, configPath string, filters store.Filters) error {
	out := cmd.OutOrStdout()

	_, gdb, err := openDB(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}

	recs, err := store.Query(gdb, filters)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(out, "No records found.")
		return nil
	}

	fmt.Fprintf(out, "%-10s %-12s %-20s %-12s %-12s %5s  %s\n",
		"PLATE", "DATE", "DESTINATION", "ENTRY", "EXIT", "DAYS", "STATUS")
	for _, r := range recs {
		fmt.Fprintf(out, "%-10s %-12s %-20s %-12s %-12s %5d  %s\n",
			r.Plate,
			r.ScheduledDate.Format("02/01/2006"),
			truncate(r.Destination, 20),
			displayDate(r.EntryDate),
			displayDate(r.ExitDate),
			r.DurationDays,
			displayStatus(r.Status))
	}
	fmt.Fprintf(out, "\n%d records\n", len(recs))
	return nil
}

func newRecordUpdateCmd() *cobra.Command {
	var configPath string
	var flags recordFlags

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields of a maintenance record",
		Long: `Updates the record identified by --plate and --date. Only flags you set are
applied. An explicit --status wins over the derived status; duration is always
recomputed from the entry and exit dates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordUpdate(cmd, configPath, flags)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	flags.register(cmd)
	cmd.MarkFlagRequired("plate")
	cmd.MarkFlagRequired("date")
	return cmd
}

func runRecordUpdate(cmd *cobra.Command, configPath string, flags recordFlags) error {
	out := cmd.OutOrStdout()

	_, gdb, err := openDB(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}

	scheduled, ok := normalize.ParseDate(flags.date)
	if !ok {
		return fmt.Errorf("unparseable scheduled date %q", flags.date)
	}

	updates := make(map[string]interface{})
	setIfChanged := func(name, column, value string) {
		if cmd.Flags().Changed(name) {
			updates[column] = normalize.Clean(value)
		}
	}
	setIfChanged("vehicle", "vehicle_label", flags.vehicle)
	setIfChanged("destination", "destination", flags.destination)
	setIfChanged("service", "service", flags.service)
	setIfChanged("status", "status", flags.status)
	setIfChanged("of", "work_order", flags.workOrder)
	setIfChanged("obs", "notes", flags.notes)
	if cmd.Flags().Changed("km") {
		updates["odometer"] = normalize.ParseOdometer(flags.km)
	}
	if cmd.Flags().Changed("entry") {
		updates["entry_date"] = parseDateOrNil(flags.entry)
	}
	if cmd.Flags().Changed("exit") {
		updates["exit_date"] = parseDateOrNil(flags.exit)
	}
	if len(updates) == 0 {
		return fmt.Errorf("nothing to update: set at least one field flag")
	}

	key := store.NewKey(flags.plate, scheduled)
	if err := store.Update(gdb, key, updates, time.Now()); err != nil {
		return err
	}
	if km, ok := updates["odometer"].(int); ok && km > 0 {
		if err := registry.UpdateOdometer(gdb, key.Plate, km); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Record %s updated\n", key)
	return nil
}

func newRecordDeleteCmd() *cobra.Command {
	var (
		configPath string
		plate      string
		date       string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a maintenance record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordDelete(cmd, configPath, plate, date, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to FleetMaint config file")
	cmd.Flags().StringVar(&plate, "plate", "", "vehicle plate (required)")
	cmd.Flags().StringVar(&date, "date", "", "scheduled date, DD/MM/YYYY (required)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	cmd.MarkFlagRequired("plate")
	cmd.MarkFlagRequired("date")
	return cmd
}

func runRecordDelete(cmd *cobra.Command, configPath, plate, date string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	_, gdb, err := openDB(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}

	scheduled, ok := normalize.ParseDate(date)
	if !ok {
		return fmt.Errorf("unparseable scheduled date %q", date)
	}
	key := store.NewKey(plate, scheduled)

	if !skipConfirm && !confirmDestructive(cmd, fmt.Sprintf("This will permanently delete record %s.", key)) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	if err := store.Delete(gdb, key); err != nil {
		return err
	}
	fmt.Fprintf(out, "Record %s deleted\n", key)
	return nil
}

func displayDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006")
}

func displayStatus(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

// parseDateOrNil turns a flag value into a date pointer; blank or
// unparseable clears the field.
func parseDateOrNil(s string) *time.Time {
	if t, ok := normalize.ParseDate(s); ok {
		return &t
	}
	return nil
}
