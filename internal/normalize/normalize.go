// Package normalize cleans raw batch rows into the internal field schema.
//
// Incoming rows use the spreadsheet's display column labels (PLACA, DATA,
// ...). An explicit mapping table binds each label to one internal field;
// core logic never sees display labels.
package normalize

import (
	"strings"
	"time"
)

// Display column labels accepted from batch input. These are the external
// schema; everything downstream works on the Row struct.
const (
	ColScheduled   = "DATA"
	ColPlate       = "PLACA"
	ColOdometer    = "KM"
	ColVehicle     = "VEÍCULO"
	ColDestination = "DESTINO PROGRAMADO"
	ColService     = "SERVIÇO A EXECUTAR"
	ColStatus      = "STATUS"
	ColEntryDate   = "DATA ENTRADA"
	ColExitDate    = "DATA SAÍDA"
	ColWorkOrder   = "NR° OF"
	ColNotes       = "OBS"
)

// Columns returns the canonical display labels in spreadsheet order.
func Columns() []string {
	return []string{
		ColScheduled,
		ColPlate,
		ColOdometer,
		ColVehicle,
		ColDestination,
		ColService,
		ColStatus,
		ColEntryDate,
		ColExitDate,
		ColWorkOrder,
		ColNotes,
	}
}

// Row is a normalized batch row. All fields are trimmed; Plate is uppercased.
// Dates stay as strings here; parsing happens when a record is built so a
// malformed optional date fails one row, not the whole batch.
type Row struct {
	Plate        string
	Scheduled    string
	Odometer     string
	VehicleLabel string
	Destination  string
	Service      string
	Status       string
	EntryDate    string
	ExitDate     string
	WorkOrder    string
	Notes        string
}

// Outcome classifies a normalized row.
type Outcome int

const (
	// Accepted rows have both plate and scheduled date.
	Accepted Outcome = iota
	// Blank rows have no value in any canonical field and are silently dropped.
	Blank
	// Rejected rows are missing plate or scheduled date and are counted.
	Rejected
)

// fieldSetters is the exhaustive label-to-field mapping table.
var fieldSetters = map[string]func(*Row, string){
	ColScheduled:   func(r *Row, v string) { r.Scheduled = v },
	ColPlate:       func(r *Row, v string) { r.Plate = strings.ToUpper(v) },
	ColOdometer:    func(r *Row, v string) { r.Odometer = v },
	ColVehicle:     func(r *Row, v string) { r.VehicleLabel = v },
	ColDestination: func(r *Row, v string) { r.Destination = v },
	ColService:     func(r *Row, v string) { r.Service = v },
	ColStatus:      func(r *Row, v string) { r.Status = v },
	ColEntryDate:   func(r *Row, v string) { r.EntryDate = v },
	ColExitDate:    func(r *Row, v string) { r.ExitDate = v },
	ColWorkOrder:   func(r *Row, v string) { r.WorkOrder = v },
	ColNotes:       func(r *Row, v string) { r.Notes = v },
}

// Normalize cleans a raw row keyed by display label. Unknown labels are
// dropped. The returned Outcome decides whether the row enters the batch.
func Normalize(raw map[string]string) (Row, Outcome) {
	var row Row
	empty := true
	for label, set := range fieldSetters {
		v := Clean(raw[label])
		if v != "" {
			empty = false
		}
		set(&row, v)
	}
	if empty {
		return row, Blank
	}
	if row.Plate == "" || row.Scheduled == "" {
		return row, Rejected
	}
	return row, Accepted
}

// Clean trims surrounding whitespace from a raw field value.
func Clean(s string) string {
	return strings.TrimSpace(s)
}

// dateLayouts are tried in order when parsing batch dates.
var dateLayouts = []string{"02/01/2006", "2006-01-02", "02-01-2006"}

// ParseDate parses a batch date value. Day-first Brazilian format is the
// primary layout; ISO and dash-separated forms are accepted as fallbacks.
func ParseDate(s string) (time.Time, bool) {
	s = Clean(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseOdometer coerces a raw odometer value to a non-negative integer.
// Thousand separators are stripped; anything unparseable is 0.
func ParseOdometer(s string) int {
	s = Clean(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
