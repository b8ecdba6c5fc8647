package registry

import (
	"strings"

	"github.com/alsfleet/fleetmaint/internal/models"
)

// InferVehicleType deduces a vehicle category from a free-text label found
// in a batch row. Keyword matches follow the fleet's naming habits; CARRETA
// and BUG carry a trailer position suffix when the label names one.
func InferVehicleType(label string) string {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return models.TypeUnclassified
	}
	switch {
	case strings.Contains(label, models.TypeCavalo):
		return models.TypeCavalo
	case strings.Contains(label, models.TypeCarreta):
		return withPosition(models.TypeCarreta, label)
	case strings.Contains(label, models.TypeBug):
		return withPosition(models.TypeBug, label)
	case strings.Contains(label, models.TypeLS):
		return models.TypeLS
	default:
		return models.TypeUnclassified
	}
}

func withPosition(base, label string) string {
	if strings.Contains(label, "1") {
		return base + " 1"
	}
	if strings.Contains(label, "2") {
		return base + " 2"
	}
	return base
}
