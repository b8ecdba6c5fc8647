// Package store is the authoritative collection of maintenance records,
// keyed by the composite natural key (plate, scheduled date). Every mutation
// runs inside a transaction so a failure mid-write never leaves a record
// half-applied.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alsfleet/fleetmaint/internal/derive"
	"github.com/alsfleet/fleetmaint/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey is returned by Insert when the natural key exists.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound is returned by Update and Delete on an absent key.
	ErrNotFound = errors.New("record not found")
)

// Key is the composite natural key of a maintenance record.
type Key struct {
	Plate     string
	Scheduled time.Time
}

// NewKey normalizes the parts of a composite key the same way records are
// stored: plate trimmed and uppercased, date truncated to midnight.
func NewKey(plate string, scheduled time.Time) Key {
	return Key{
		Plate:     strings.ToUpper(strings.TrimSpace(plate)),
		Scheduled: scheduled.Truncate(24 * time.Hour),
	}
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%s", k.Plate, k.Scheduled.Format("02/01/2006"))
}

// FindByKey returns the record with the given natural key, or nil when absent.
func FindByKey(db *gorm.DB, plate string, scheduled time.Time) (*models.MaintenanceRecord, error) {
	key := NewKey(plate, scheduled)
	var rec models.MaintenanceRecord
	err := db.Where("plate = ? AND scheduled_date = ?", key.Plate, key.Scheduled).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: find %s: %w", key, err)
	}
	return &rec, nil
}

// Insert adds a new record, failing with ErrDuplicateKey when the natural
// key already exists. Derived fields are computed before the commit; a
// status already set on the record is treated as explicit and kept.
func Insert(db *gorm.DB, rec *models.MaintenanceRecord, now time.Time) error {
	normalizeRecord(rec)
	applyDerived(rec, rec.Status != "", now)

	key := Key{Plate: rec.Plate, Scheduled: rec.ScheduledDate}
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MaintenanceRecord{}).
			Where("plate = ? AND scheduled_date = ?", key.Plate, key.Scheduled).
			Count(&count).Error; err != nil {
			return fmt.Errorf("store: check %s: %w", key, err)
		}
		if count > 0 {
			return fmt.Errorf("store: insert %s: %w", key, ErrDuplicateKey)
		}
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("store: insert %s: %w", key, err)
		}
		return nil
	})
}

// Upsert inserts the record or replaces the existing row with the same
// natural key. Callers that must not clobber use Insert.
func Upsert(db *gorm.DB, rec *models.MaintenanceRecord, now time.Time) error {
	normalizeRecord(rec)
	applyDerived(rec, rec.Status != "", now)

	key := Key{Plate: rec.Plate, Scheduled: rec.ScheduledDate}
	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.MaintenanceRecord
		err := tx.Where("plate = ? AND scheduled_date = ?", key.Plate, key.Scheduled).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("store: upsert %s: %w", key, err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("store: upsert %s: %w", key, err)
		default:
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
			if err := tx.Save(rec).Error; err != nil {
				return fmt.Errorf("store: upsert %s: %w", key, err)
			}
			return nil
		}
	})
}

// Update applies partial field changes to the record with the given key.
// Column names follow the model's snake_case schema. A non-empty "status"
// in updates is an explicit user choice and wins over the derived status;
// otherwise status is recomputed from the resulting dates. Duration is
// recomputed unconditionally.
func Update(db *gorm.DB, key Key, updates map[string]interface{}, now time.Time) error {
	key = NewKey(key.Plate, key.Scheduled)
	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.MaintenanceRecord
		err := tx.Where("plate = ? AND scheduled_date = ?", key.Plate, key.Scheduled).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("store: update %s: %w", key, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("store: update %s: %w", key, err)
		}

		explicit, explicitStatus := explicitStatusOf(updates)
		entry := datePtrAfter(updates, "entry_date", existing.EntryDate)
		exit := datePtrAfter(updates, "exit_date", existing.ExitDate)

		merged := make(map[string]interface{}, len(updates)+2)
		for col, v := range updates {
			merged[col] = v
		}
		merged["duration_days"] = derive.Days(entry, exit, now)
		if explicit {
			merged["status"] = explicitStatus
		} else {
			merged["status"] = derive.Status(entry, exit, existing.Status)
		}

		if err := tx.Model(&models.MaintenanceRecord{}).
			Where("id = ?", existing.ID).
			Updates(merged).Error; err != nil {
			return fmt.Errorf("store: update %s: %w", key, err)
		}
		return nil
	})
}

// Delete removes the record with the given key. This is the destructive
// direct operation; batch import never calls it.
func Delete(db *gorm.DB, key Key) error {
	key = NewKey(key.Plate, key.Scheduled)
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("plate = ? AND scheduled_date = ?", key.Plate, key.Scheduled).
			Delete(&models.MaintenanceRecord{})
		if result.Error != nil {
			return fmt.Errorf("store: delete %s: %w", key, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("store: delete %s: %w", key, ErrNotFound)
		}
		return nil
	})
}

// Filters holds optional substring filters for Query. Matches are
// case-insensitive and AND-combined across fields.
type Filters struct {
	Plate        string
	VehicleLabel string
	Destination  string
	Service      string
	Status       string
	WorkOrder    string
}

// Query returns records matching the filters, newest scheduled date first.
func Query(db *gorm.DB, f Filters) ([]models.MaintenanceRecord, error) {
	q := db.Model(&models.MaintenanceRecord{})
	q = like(q, "plate", f.Plate)
	q = like(q, "vehicle_label", f.VehicleLabel)
	q = like(q, "destination", f.Destination)
	q = like(q, "service", f.Service)
	q = like(q, "status", f.Status)
	q = like(q, "work_order", f.WorkOrder)

	var recs []models.MaintenanceRecord
	if err := q.Order("scheduled_date DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	return recs, nil
}

// ReplaceAll discards every record and installs the given set in a single
// transaction. This is the OVERWRITE import path; callers confirm intent
// before reaching it.
func ReplaceAll(db *gorm.DB, recs []models.MaintenanceRecord, now time.Time) error {
	for i := range recs {
		normalizeRecord(&recs[i])
		applyDerived(&recs[i], recs[i].Status != "", now)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.MaintenanceRecord{}).Error; err != nil {
			return fmt.Errorf("store: replace all: clear: %w", err)
		}
		if len(recs) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(recs, 200).Error; err != nil {
			return fmt.Errorf("store: replace all: insert: %w", err)
		}
		return nil
	})
}

// Count returns the number of records in the store.
func Count(db *gorm.DB) (int64, error) {
	var count int64
	if err := db.Model(&models.MaintenanceRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return count, nil
}

func like(q *gorm.DB, column, value string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" {
		return q
	}
	return q.Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), "%"+strings.ToLower(value)+"%")
}

func normalizeRecord(rec *models.MaintenanceRecord) {
	rec.Plate = strings.ToUpper(strings.TrimSpace(rec.Plate))
	rec.ScheduledDate = rec.ScheduledDate.Truncate(24 * time.Hour)
	if rec.Odometer < 0 {
		rec.Odometer = 0
	}
}

// applyDerived recomputes duration, and status unless explicitly set in the
// same write. Recomputing is idempotent over unchanged dates.
func applyDerived(rec *models.MaintenanceRecord, explicitStatus bool, now time.Time) {
	rec.DurationDays = derive.Days(rec.EntryDate, rec.ExitDate, now)
	if !explicitStatus {
		rec.Status = derive.Status(rec.EntryDate, rec.ExitDate, rec.Status)
	}
}

func explicitStatusOf(updates map[string]interface{}) (bool, string) {
	v, ok := updates["status"]
	if !ok {
		return false, ""
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return false, ""
	}
	return true, strings.TrimSpace(s)
}

// datePtrAfter resolves the value a date column will hold after the update
// map is applied, accepting both *time.Time and time.Time values.
func datePtrAfter(updates map[string]interface{}, column string, current *time.Time) *time.Time {
	v, ok := updates[column]
	if !ok {
		return current
	}
	switch t := v.(type) {
	case *time.Time:
		return t
	case time.Time:
		return &t
	case nil:
		return nil
	default:
		return current
	}
}
