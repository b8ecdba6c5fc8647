// Package sheet reads maintenance batches from xlsx workbooks. The fleet's
// workbook format carries a banner row above the column header, so the
// header lives on the second row.
package sheet

import (
	"fmt"
	"strings"

	"github.com/alsfleet/fleetmaint/internal/importer"
	"github.com/xuri/excelize/v2"
)

// HeaderRow is the zero-based index of the column header row.
const HeaderRow = 1

// Read loads the first sheet of an xlsx workbook into a Batch. Cell values
// are passed through raw; normalization is the import engine's job.
func Read(path string) (importer.Batch, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return importer.Batch{}, fmt.Errorf("sheet: open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return importer.Batch{}, fmt.Errorf("sheet: %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return importer.Batch{}, fmt.Errorf("sheet: read %s: %w", path, err)
	}
	if len(rows) <= HeaderRow {
		return importer.Batch{}, fmt.Errorf("sheet: %s has no header row", path)
	}

	header := make([]string, len(rows[HeaderRow]))
	var columns []string
	for i, cell := range rows[HeaderRow] {
		label := strings.TrimSpace(cell)
		header[i] = label
		if label != "" {
			columns = append(columns, label)
		}
	}

	batch := importer.Batch{Columns: columns}
	for _, cells := range rows[HeaderRow+1:] {
		row := make(map[string]string, len(columns))
		for i, cell := range cells {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = cell
		}
		batch.Rows = append(batch.Rows, row)
	}
	return batch, nil
}
