// Package derive computes maintenance duration and lifecycle status from
// entry/exit dates. Both functions are pure; the "explicit user status wins"
// precedence rule is enforced by callers, not here.
package derive

import (
	"time"

	"github.com/alsfleet/fleetmaint/internal/models"
)

// Days returns the number of days a vehicle has been in maintenance. An open
// interval (no exit date) is measured against now. Never negative.
func Days(entry, exit *time.Time, now time.Time) int {
	if entry == nil {
		return 0
	}
	end := now
	if exit != nil {
		end = *exit
	}
	days := int(end.Sub(*entry).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Status returns the lifecycle status the dates alone imply. With no entry
// date the current status is passed through unchanged (empty stays empty).
func Status(entry, exit *time.Time, current string) string {
	switch {
	case entry != nil && exit == nil:
		return models.StatusInService
	case entry != nil && exit != nil:
		return models.StatusFinished
	default:
		return current
	}
}
