package models

import "time"

// Maintenance lifecycle statuses derived from entry/exit dates. Legacy
// free-form values imported from old spreadsheets are preserved verbatim.
const (
	StatusInTransit = "IN_TRANSIT"
	StatusInService = "IN_SERVICE"
	StatusFinished  = "FINISHED"
)

// MaintenanceRecord is one maintenance event for a vehicle.
//
// The surrogate ID exists for storage only. Record identity is the composite
// natural key (Plate, ScheduledDate); all reconciliation logic keys on it.
type MaintenanceRecord struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"-"`
	Plate         string     `gorm:"size:16;not null;uniqueIndex:idx_plate_scheduled" json:"plate"`
	ScheduledDate time.Time  `gorm:"not null;uniqueIndex:idx_plate_scheduled;index" json:"scheduled_date"`
	Odometer      int        `gorm:"default:0" json:"odometer"`
	VehicleLabel  string     `gorm:"size:128" json:"vehicle_label"`
	Destination   string     `gorm:"size:128" json:"destination"`
	Service       string     `gorm:"type:text" json:"service"`
	Status        string     `gorm:"size:32;index" json:"status"`
	EntryDate     *time.Time `json:"entry_date"`
	ExitDate      *time.Time `json:"exit_date"`
	DurationDays  int        `gorm:"default:0" json:"duration_days"`
	WorkOrder     string     `gorm:"size:32" json:"work_order"`
	Notes         string     `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
