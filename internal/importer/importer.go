// Package importer reconciles externally-sourced maintenance batches into
// the record store. A batch is validated, normalized, auto-provisioned
// against the vehicle and destination registries, and merged under one of
// three policies: add, overwrite, merge.
package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alsfleet/fleetmaint/internal/backup"
	"github.com/alsfleet/fleetmaint/internal/models"
	"github.com/alsfleet/fleetmaint/internal/normalize"
	"github.com/alsfleet/fleetmaint/internal/registry"
	"github.com/alsfleet/fleetmaint/internal/store"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Mode selects the merge policy for an import run.
type Mode int

const (
	// ModeAdd inserts new records and skips duplicates.
	ModeAdd Mode = iota
	// ModeOverwrite replaces the entire store with the batch.
	ModeOverwrite
	// ModeMerge updates existing records with non-blank incoming fields and
	// inserts the rest.
	ModeMerge
)

// ParseMode maps a CLI mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return ModeAdd, nil
	case "overwrite":
		return ModeOverwrite, nil
	case "merge":
		return ModeMerge, nil
	default:
		return ModeAdd, fmt.Errorf("importer: unknown mode %q (add, overwrite, merge)", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeOverwrite:
		return "overwrite"
	case ModeMerge:
		return "merge"
	default:
		return "add"
	}
}

// Batch is a bulk of raw maintenance rows plus the column labels the source
// carried. Rows map display column label to raw cell value.
type Batch struct {
	Columns []string
	Rows    []map[string]string
}

// SchemaError reports mandatory columns missing from a batch. The whole run
// aborts; nothing is imported.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("importer: mandatory columns missing: %s", strings.Join(e.Missing, ", "))
}

// ErrNoValidRows means every row was rejected; the run aborts unmutated.
var ErrNoValidRows = errors.New("importer: no rows with plate and scheduled date")

// Engine orchestrates batch reconciliation against the store.
type Engine struct {
	DB    *gorm.DB
	Guard *backup.Guard
	Clock func() time.Time
	Log   *log.Logger
}

// New returns an Engine with the default clock and logger.
func New(db *gorm.DB, guard *backup.Guard) *Engine {
	return &Engine{DB: db, Guard: guard, Clock: time.Now, Log: log.StandardLogger()}
}

func (e *Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock()
}

func (e *Engine) logger() *log.Logger {
	if e.Log == nil {
		return log.StandardLogger()
	}
	return e.Log
}

// ImportBatch runs one reconciliation. The report is fully computed before
// returning; a nil report means the run aborted before any mutation.
func (e *Engine) ImportBatch(batch Batch, mode Mode) (*Report, error) {
	if err := checkColumns(batch.Columns); err != nil {
		return nil, err
	}

	report := &Report{TotalRows: len(batch.Rows)}
	report.addLine("%d rows in batch", len(batch.Rows))

	rows := e.normalizeBatch(batch, report)
	if len(rows) == 0 {
		return nil, ErrNoValidRows
	}
	report.ValidRows = len(rows)
	report.addLine("%d valid rows (plate and date present)", len(rows))

	// Snapshot before the first mutating step; fail-closed.
	if e.Guard != nil {
		path, err := e.Guard.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("importer: %w", err)
		}
		if path != "" {
			report.addLine("backup written: %s", path)
		}
	}

	e.provisionRegistries(rows, report)

	switch mode {
	case ModeOverwrite:
		e.runOverwrite(rows, report)
	case ModeMerge:
		e.runMerge(rows, report)
	default:
		e.runAdd(rows, report)
	}

	report.addLine("import finished (%s mode)", mode)
	e.logger().WithFields(log.Fields{
		"mode":       mode.String(),
		"inserted":   report.Inserted,
		"updated":    report.Updated,
		"duplicates": report.Duplicates,
		"errors":     report.Errors,
	}).Info("batch import complete")
	return report, nil
}

// checkColumns enforces the two mandatory batch columns.
func checkColumns(columns []string) error {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[normalize.Clean(c)] = true
	}
	var missing []string
	for _, required := range []string{normalize.ColPlate, normalize.ColScheduled} {
		if !have[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// normalizeBatch cleans every row. Fully-blank rows vanish from the tallies;
// rows missing plate or scheduled date are counted as rejected.
func (e *Engine) normalizeBatch(batch Batch, report *Report) []normalize.Row {
	var rows []normalize.Row
	for _, raw := range batch.Rows {
		row, outcome := normalize.Normalize(raw)
		switch outcome {
		case normalize.Blank:
			// Spreadsheet padding; not an error, not a rejection.
		case normalize.Rejected:
			report.RejectedRows++
		default:
			rows = append(rows, row)
		}
	}
	if report.RejectedRows > 0 {
		report.addLine("%d rows rejected (missing plate or date)", report.RejectedRows)
	}
	return rows
}

// provisionRegistries auto-registers unseen plates and destinations. The
// first label seen for a plate supplies the inferred vehicle type. Failures
// are tallied per row and do not abort the batch.
func (e *Engine) provisionRegistries(rows []normalize.Row, report *Report) {
	seenPlate := make(map[string]bool)
	seenDest := make(map[string]bool)

	for _, row := range rows {
		if !seenPlate[row.Plate] {
			seenPlate[row.Plate] = true
			created, err := registry.EnsureVehicle(e.DB, row.Plate, row.VehicleLabel)
			if err != nil {
				report.rowError("vehicle %s: %v", row.Plate, err)
				e.logger().WithError(err).WithField("plate", row.Plate).Warn("vehicle auto-registration failed")
			} else if created {
				report.VehiclesRegistered++
			}
		}

		dest := strings.ToUpper(row.Destination)
		if dest != "" && !seenDest[dest] {
			seenDest[dest] = true
			created, err := registry.EnsureDestination(e.DB, dest)
			if err != nil {
				report.rowError("destination %s: %v", dest, err)
				e.logger().WithError(err).WithField("destination", dest).Warn("destination auto-registration failed")
			} else if created {
				report.DestinationsRegistered++
			}
		}
	}

	if report.VehiclesRegistered > 0 {
		report.addLine("%d vehicles auto-registered", report.VehiclesRegistered)
	}
	if report.DestinationsRegistered > 0 {
		report.addLine("%d destinations auto-registered", report.DestinationsRegistered)
	}
}

// runAdd inserts rows whose natural key is new and skips the rest.
func (e *Engine) runAdd(rows []normalize.Row, report *Report) {
	now := e.now()
	for _, row := range rows {
		rec, err := e.buildRecord(row)
		if err != nil {
			report.rowError("row %s: %v", row.Plate, err)
			continue
		}
		existing, err := store.FindByKey(e.DB, rec.Plate, rec.ScheduledDate)
		if err != nil {
			report.rowError("row %s: %v", row.Plate, err)
			continue
		}
		if existing != nil {
			report.Duplicates++
			continue
		}
		if err := store.Insert(e.DB, rec, now); err != nil {
			report.rowError("row %s: %v", row.Plate, err)
			continue
		}
		report.Inserted++
	}
	if report.Duplicates > 0 {
		report.addLine("%d duplicates skipped", report.Duplicates)
	}
	report.addLine("%d new records inserted", report.Inserted)
}

// runMerge updates existing records with the non-blank incoming fields and
// inserts new ones. Blank incoming values never clobber stored values.
func (e *Engine) runMerge(rows []normalize.Row, report *Report) {
	now := e.now()
	for _, row := range rows {
		rec, err := e.buildRecord(row)
		if err != nil {
			report.rowError("row %s: %v", row.Plate, err)
			continue
		}
		existing, err := store.FindByKey(e.DB, rec.Plate, rec.ScheduledDate)
		if err != nil {
			report.rowError("row %s: %v", row.Plate, err)
			continue
		}
		if existing == nil {
			if err := store.Insert(e.DB, rec, now); err != nil {
				report.rowError("row %s: %v", row.Plate, err)
				continue
			}
			report.Inserted++
			continue
		}

		key := store.Key{Plate: rec.Plate, Scheduled: rec.ScheduledDate}
		if err := store.Update(e.DB, key, mergeUpdates(row), now); err != nil {
			report.rowError("row %s: %v", row.Plate, err)
			continue
		}
		report.Updated++
	}
	if report.Updated > 0 {
		report.addLine("%d records updated", report.Updated)
	}
	report.addLine("%d new records inserted", report.Inserted)
}

// runOverwrite replaces the whole store with the batch in one transaction.
// Rows that fail to build are dropped from the replacement set and tallied.
func (e *Engine) runOverwrite(rows []normalize.Row, report *Report) {
	now := e.now()
	recs := make([]models.MaintenanceRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := e.buildRecord(row)
		if err != nil {
			report.rowError("row %s: %v", row.Plate, err)
			continue
		}
		recs = append(recs, *rec)
	}

	if err := store.ReplaceAll(e.DB, recs, now); err != nil {
		report.rowError("replace all: %v", err)
		return
	}
	report.Inserted = len(recs)
	report.addLine("previous records replaced: store now holds %d records", len(recs))
}

// buildRecord turns a normalized row into a record. The scheduled date must
// parse; optional dates that do not parse are treated as absent, matching
// the duration rule for unparseable entries.
func (e *Engine) buildRecord(row normalize.Row) (*models.MaintenanceRecord, error) {
	scheduled, ok := normalize.ParseDate(row.Scheduled)
	if !ok {
		return nil, fmt.Errorf("unparseable scheduled date %q", row.Scheduled)
	}

	rec := &models.MaintenanceRecord{
		Plate:         row.Plate,
		ScheduledDate: scheduled,
		Odometer:      normalize.ParseOdometer(row.Odometer),
		VehicleLabel:  row.VehicleLabel,
		Destination:   row.Destination,
		Service:       row.Service,
		Status:        row.Status,
		WorkOrder:     row.WorkOrder,
		Notes:         row.Notes,
	}
	if entry, ok := normalize.ParseDate(row.EntryDate); ok {
		rec.EntryDate = &entry
	}
	if exit, ok := normalize.ParseDate(row.ExitDate); ok {
		rec.ExitDate = &exit
	}
	return rec, nil
}

// mergeUpdates collects the non-blank incoming fields of a row as column
// updates. Status is included only when explicitly set, so the store's
// precedence rule sees it as a user choice.
func mergeUpdates(row normalize.Row) map[string]interface{} {
	updates := make(map[string]interface{})
	if row.Odometer != "" {
		updates["odometer"] = normalize.ParseOdometer(row.Odometer)
	}
	if row.VehicleLabel != "" {
		updates["vehicle_label"] = row.VehicleLabel
	}
	if row.Destination != "" {
		updates["destination"] = row.Destination
	}
	if row.Service != "" {
		updates["service"] = row.Service
	}
	if row.Status != "" {
		updates["status"] = row.Status
	}
	if entry, ok := normalize.ParseDate(row.EntryDate); ok {
		updates["entry_date"] = &entry
	}
	if exit, ok := normalize.ParseDate(row.ExitDate); ok {
		updates["exit_date"] = &exit
	}
	if row.WorkOrder != "" {
		updates["work_order"] = row.WorkOrder
	}
	if row.Notes != "" {
		updates["notes"] = row.Notes
	}
	return updates
}
