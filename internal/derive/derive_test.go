package derive

import (
	"testing"
	"time"

	"github.com/alsfleet/fleetmaint/internal/models"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDays(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry *time.Time
		exit  *time.Time
		want  int
	}{
		{"no entry", nil, nil, 0},
		{"no entry with exit", nil, date(2025, 3, 5), 0},
		{"open interval uses now", date(2025, 3, 1), nil, 9},
		{"closed interval", date(2025, 3, 1), date(2025, 3, 6), 5},
		{"same day", date(2025, 3, 1), date(2025, 3, 1), 0},
		{"exit before entry clamps to zero", date(2025, 3, 6), date(2025, 3, 1), 0},
		{"entry in the future clamps to zero", date(2025, 4, 1), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Days(tt.entry, tt.exit, now)
			if got != tt.want {
				t.Errorf("Days() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDays_NeverNegative(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []*time.Time{nil, date(2020, 1, 1), date(2030, 1, 1)}
	exits := []*time.Time{nil, date(2019, 1, 1), date(2031, 1, 1)}
	for _, entry := range entries {
		for _, exit := range exits {
			if got := Days(entry, exit, now); got < 0 {
				t.Errorf("Days(%v, %v) = %d, want >= 0", entry, exit, got)
			}
		}
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		entry   *time.Time
		exit    *time.Time
		current string
		want    string
	}{
		{"entry only", date(2025, 1, 1), nil, "", models.StatusInService},
		{"entry only overrides current", date(2025, 1, 1), nil, models.StatusInTransit, models.StatusInService},
		{"both dates", date(2025, 1, 1), date(2025, 1, 5), "", models.StatusFinished},
		{"both dates override current", date(2025, 1, 1), date(2025, 1, 5), "whatever", models.StatusFinished},
		{"no dates keeps current", nil, nil, models.StatusInTransit, models.StatusInTransit},
		{"no dates keeps legacy value", nil, nil, "AGUARDANDO PEÇA", "AGUARDANDO PEÇA"},
		{"no dates empty stays empty", nil, nil, "", ""},
		{"exit only keeps current", nil, date(2025, 1, 5), "x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Status(tt.entry, tt.exit, tt.current)
			if got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}
