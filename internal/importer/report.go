package importer

import (
	"fmt"
	"strings"
)

// Report summarizes one reconciliation run. It is fully built before
// ImportBatch returns and is the only value surfaced to collaborators.
type Report struct {
	TotalRows              int      `json:"total_rows"`
	ValidRows              int      `json:"valid_rows"`
	RejectedRows           int      `json:"rejected_rows"`
	Inserted               int      `json:"inserted"`
	Updated                int      `json:"updated"`
	Duplicates             int      `json:"duplicates"`
	VehiclesRegistered     int      `json:"vehicles_registered"`
	DestinationsRegistered int      `json:"destinations_registered"`
	Errors                 int      `json:"errors"`
	Lines                  []string `json:"lines"`
}

// addLine appends a trace line in operation order.
func (r *Report) addLine(format string, args ...interface{}) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// rowError tallies a per-row failure and records it in the trace.
func (r *Report) rowError(format string, args ...interface{}) {
	r.Errors++
	r.addLine(format, args...)
}

// RenderText formats the report for display.
func (r *Report) RenderText() string {
	rule := strings.Repeat("=", 50)
	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "IMPORT REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Rows in batch:                  %d\n", r.TotalRows)
	fmt.Fprintf(&b, "Valid rows (plate + date):      %d\n", r.ValidRows)
	fmt.Fprintf(&b, "Rejected rows:                  %d\n", r.RejectedRows)
	fmt.Fprintf(&b, "Vehicles auto-registered:       %d\n", r.VehiclesRegistered)
	fmt.Fprintf(&b, "Destinations auto-registered:   %d\n", r.DestinationsRegistered)
	fmt.Fprintf(&b, "Records inserted:               %d\n", r.Inserted)
	fmt.Fprintf(&b, "Records updated:                %d\n", r.Updated)
	fmt.Fprintf(&b, "Duplicates skipped:             %d\n", r.Duplicates)
	fmt.Fprintf(&b, "Errors:                         %d\n", r.Errors)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "TRACE:")
	for _, line := range r.Lines {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	fmt.Fprintln(&b, rule)

	return b.String()
}
