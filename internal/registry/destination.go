package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alsfleet/fleetmaint/internal/models"
	"gorm.io/gorm"
)

// EnsureDestination registers a workshop name if it is not yet known. Names
// are case-insensitive and stored uppercase. Returns true on creation.
func EnsureDestination(db *gorm.DB, name string) (bool, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return false, fmt.Errorf("registry: destination name is required")
	}

	var count int64
	if err := db.Model(&models.Destination{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("registry: check destination %s: %w", name, err)
	}
	if count > 0 {
		return false, nil
	}

	d := models.Destination{
		Name:         name,
		RegisteredAt: time.Now(),
		Active:       true,
	}
	if err := db.Create(&d).Error; err != nil {
		return false, fmt.Errorf("registry: register destination %s: %w", name, err)
	}
	return true, nil
}

// AddDestination explicitly registers a workshop, failing if it exists.
func AddDestination(db *gorm.DB, name string) (*models.Destination, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("registry: destination name is required")
	}

	var count int64
	if err := db.Model(&models.Destination{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("registry: check destination %s: %w", name, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("registry: destination %s: %w", name, ErrExists)
	}

	d := models.Destination{
		Name:         name,
		RegisteredAt: time.Now(),
		Active:       true,
	}
	if err := db.Create(&d).Error; err != nil {
		return nil, fmt.Errorf("registry: register destination %s: %w", name, err)
	}
	return &d, nil
}

// GetDestination returns the registry entry for a workshop name.
func GetDestination(db *gorm.DB, name string) (*models.Destination, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	var d models.Destination
	if err := db.Where("name = ?", name).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("registry: destination %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("registry: get destination %s: %w", name, err)
	}
	return &d, nil
}

// ActiveDestinations returns all active destinations ordered by name.
func ActiveDestinations(db *gorm.DB) ([]models.Destination, error) {
	var dests []models.Destination
	if err := db.Where("active = ?", true).Order("name ASC").Find(&dests).Error; err != nil {
		return nil, fmt.Errorf("registry: list destinations: %w", err)
	}
	return dests, nil
}

// DeactivateDestination soft-deletes a destination. The row is never removed.
func DeactivateDestination(db *gorm.DB, name string) error {
	name = strings.ToUpper(strings.TrimSpace(name))
	result := db.Model(&models.Destination{}).Where("name = ?", name).Update("active", false)
	if result.Error != nil {
		return fmt.Errorf("registry: deactivate destination %s: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("registry: destination %s: %w", name, ErrNotFound)
	}
	return nil
}
