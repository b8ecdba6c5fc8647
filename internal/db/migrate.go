package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/alsfleet/fleetmaint/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.MaintenanceRecord{},
		&models.Vehicle{},
		&models.Destination{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedDestinations upserts the configured default workshop rows. Existing
// rows are left untouched so a deactivated default stays deactivated.
func SeedDestinations(db *gorm.DB, names []string) error {
	now := time.Now()
	for _, name := range names {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		dest := models.Destination{
			Name:         name,
			RegisteredAt: now,
			Active:       true,
		}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&dest)
		if result.Error != nil {
			return fmt.Errorf("db: seed destination %q: %w", name, result.Error)
		}
	}
	return nil
}
