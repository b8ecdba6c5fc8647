// Package registry maintains the sets of known vehicles and destinations.
// Both registries expose lookup-or-create semantics for batch imports and
// soft deactivation instead of deletion.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alsfleet/fleetmaint/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrExists is returned by explicit registration of a key already present.
	ErrExists = errors.New("already registered")
	// ErrNotFound is returned when a registry key does not exist.
	ErrNotFound = errors.New("not found")
)

// EnsureVehicle registers the plate if it is not yet known. The vehicle type
// is inferred from the free-text label, which is also kept as the
// description. Returns true when a new registry entry was created.
func EnsureVehicle(db *gorm.DB, plate, vehicleLabel string) (bool, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return false, fmt.Errorf("registry: plate is required")
	}

	var count int64
	if err := db.Model(&models.Vehicle{}).Where("plate = ?", plate).Count(&count).Error; err != nil {
		return false, fmt.Errorf("registry: check vehicle %s: %w", plate, err)
	}
	if count > 0 {
		return false, nil
	}

	v := models.Vehicle{
		Plate:        plate,
		TypeLabel:    InferVehicleType(vehicleLabel),
		Description:  strings.TrimSpace(vehicleLabel),
		RegisteredAt: time.Now(),
		Active:       true,
	}
	if err := db.Create(&v).Error; err != nil {
		return false, fmt.Errorf("registry: register vehicle %s: %w", plate, err)
	}
	return true, nil
}

// AddVehicle explicitly registers a vehicle, failing if the plate exists.
func AddVehicle(db *gorm.DB, plate, typeLabel, description string, odometer int) (*models.Vehicle, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return nil, fmt.Errorf("registry: plate is required")
	}
	if typeLabel == "" {
		typeLabel = models.TypeUnclassified
	}

	var count int64
	if err := db.Model(&models.Vehicle{}).Where("plate = ?", plate).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("registry: check vehicle %s: %w", plate, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("registry: vehicle %s: %w", plate, ErrExists)
	}

	v := models.Vehicle{
		Plate:        plate,
		TypeLabel:    typeLabel,
		Description:  strings.TrimSpace(description),
		LastOdometer: odometer,
		RegisteredAt: time.Now(),
		Active:       true,
	}
	if err := db.Create(&v).Error; err != nil {
		return nil, fmt.Errorf("registry: register vehicle %s: %w", plate, err)
	}
	return &v, nil
}

// GetVehicle returns the registry entry for a plate.
func GetVehicle(db *gorm.DB, plate string) (*models.Vehicle, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	var v models.Vehicle
	if err := db.Where("plate = ?", plate).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("registry: vehicle %s: %w", plate, ErrNotFound)
		}
		return nil, fmt.Errorf("registry: get vehicle %s: %w", plate, err)
	}
	return &v, nil
}

// ActiveVehicles returns all active vehicles ordered by plate.
func ActiveVehicles(db *gorm.DB) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := db.Where("active = ?", true).Order("plate ASC").Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("registry: list vehicles: %w", err)
	}
	return vehicles, nil
}

// DeactivateVehicle soft-deletes a vehicle. The row is never removed.
func DeactivateVehicle(db *gorm.DB, plate string) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	result := db.Model(&models.Vehicle{}).Where("plate = ?", plate).Update("active", false)
	if result.Error != nil {
		return fmt.Errorf("registry: deactivate vehicle %s: %w", plate, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("registry: vehicle %s: %w", plate, ErrNotFound)
	}
	return nil
}

// UpdateOdometer records the latest odometer reading for a plate. Readings
// lower than the stored one are kept anyway; the store is authoritative for
// per-event values, this is only the registry's last-known figure.
func UpdateOdometer(db *gorm.DB, plate string, odometer int) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	result := db.Model(&models.Vehicle{}).Where("plate = ?", plate).Update("last_odometer", odometer)
	if result.Error != nil {
		return fmt.Errorf("registry: update odometer for %s: %w", plate, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("registry: vehicle %s: %w", plate, ErrNotFound)
	}
	return nil
}
