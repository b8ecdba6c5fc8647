package models

import "time"

// Vehicle type labels inferred from free-text vehicle descriptions.
const (
	TypeCavalo       = "CAVALO"
	TypeCarreta      = "CARRETA"
	TypeBug          = "BUG"
	TypeLS           = "LS"
	TypeUnclassified = "INDEFINIDO"
)

// Vehicle is a registry entry for a physical vehicle, keyed by plate.
// Vehicles are deactivated, never deleted.
type Vehicle struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	Plate        string    `gorm:"size:16;not null;uniqueIndex" json:"plate"`
	TypeLabel    string    `gorm:"size:32;default:INDEFINIDO" json:"type_label"`
	Description  string    `gorm:"size:128" json:"description"`
	LastOdometer int       `gorm:"default:0" json:"last_odometer"`
	RegisteredAt time.Time `json:"registered_at"`
	Active       bool      `gorm:"default:true;index" json:"active"`
}
