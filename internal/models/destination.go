package models

import "time"

// Destination is a registry entry for a workshop or maintenance location.
// Names are unique case-insensitively and stored uppercase.
type Destination struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	Name         string    `gorm:"size:128;not null;uniqueIndex" json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
	Active       bool      `gorm:"default:true;index" json:"active"`
}
