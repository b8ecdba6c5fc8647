package store

import (
	"testing"

	"github.com/alsfleet/fleetmaint/internal/models"
)

func TestStats_Empty(t *testing.T) {
	db := openTestDB(t)

	s, err := Stats(db)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.TotalRecords != 0 || s.InService != 0 || s.Finished != 0 || s.DistinctPlates != 0 {
		t.Errorf("empty stats = %+v", s)
	}
	if s.MeanDuration != 0 {
		t.Errorf("mean = %v, want 0 on empty store", s.MeanDuration)
	}
}

func TestStats(t *testing.T) {
	db := openTestDB(t)
	now := day(2025, 3, 10)

	seed := []models.MaintenanceRecord{
		{Plate: "AAA0001", ScheduledDate: day(2025, 3, 1), EntryDate: dayPtr(2025, 3, 2)},
		{Plate: "AAA0001", ScheduledDate: day(2025, 3, 5), EntryDate: dayPtr(2025, 3, 5), ExitDate: dayPtr(2025, 3, 7)},
		{Plate: "BBB0002", ScheduledDate: day(2025, 3, 3)},
	}
	for i := range seed {
		if err := Insert(db, &seed[i], now); err != nil {
			t.Fatalf("Insert seed %d: %v", i, err)
		}
	}

	s, err := Stats(db)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.TotalRecords != 3 {
		t.Errorf("total = %d, want 3", s.TotalRecords)
	}
	if s.InService != 1 {
		t.Errorf("in service = %d, want 1", s.InService)
	}
	if s.Finished != 1 {
		t.Errorf("finished = %d, want 1", s.Finished)
	}
	if s.DistinctPlates != 2 {
		t.Errorf("plates = %d, want 2", s.DistinctPlates)
	}
	// Durations: 8 (open since 02/03), 2 (closed), 0 (no entry).
	want := (8.0 + 2.0 + 0.0) / 3.0
	if diff := s.MeanDuration - want; diff > 0.001 || diff < -0.001 {
		t.Errorf("mean = %v, want %v", s.MeanDuration, want)
	}
}
