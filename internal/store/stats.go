package store

import (
	"fmt"

	"github.com/alsfleet/fleetmaint/internal/models"
	"gorm.io/gorm"
)

// FleetStats summarizes the record store for reports and the dashboard.
type FleetStats struct {
	TotalRecords   int64   `json:"total_records"`
	InService      int64   `json:"in_service"`
	Finished       int64   `json:"finished"`
	MeanDuration   float64 `json:"mean_duration_days"`
	DistinctPlates int64   `json:"distinct_plates"`
}

// Stats computes fleet-wide maintenance statistics.
func Stats(db *gorm.DB) (*FleetStats, error) {
	var s FleetStats

	if err := db.Model(&models.MaintenanceRecord{}).Count(&s.TotalRecords).Error; err != nil {
		return nil, fmt.Errorf("store: stats: total: %w", err)
	}
	if err := db.Model(&models.MaintenanceRecord{}).
		Where("status = ?", models.StatusInService).
		Count(&s.InService).Error; err != nil {
		return nil, fmt.Errorf("store: stats: in service: %w", err)
	}
	if err := db.Model(&models.MaintenanceRecord{}).
		Where("status = ?", models.StatusFinished).
		Count(&s.Finished).Error; err != nil {
		return nil, fmt.Errorf("store: stats: finished: %w", err)
	}
	if s.TotalRecords > 0 {
		var mean *float64
		if err := db.Model(&models.MaintenanceRecord{}).
			Select("AVG(duration_days)").
			Scan(&mean).Error; err != nil {
			return nil, fmt.Errorf("store: stats: mean duration: %w", err)
		}
		if mean != nil {
			s.MeanDuration = *mean
		}
	}
	if err := db.Model(&models.MaintenanceRecord{}).
		Distinct("plate").
		Count(&s.DistinctPlates).Error; err != nil {
		return nil, fmt.Errorf("store: stats: distinct plates: %w", err)
	}
	return &s, nil
}
