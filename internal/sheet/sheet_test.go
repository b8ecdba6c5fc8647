package sheet

import (
	"path/filepath"
	"testing"

	"github.com/alsfleet/fleetmaint/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, cells := range rows {
		for j, cell := range cells {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, axis, cell))
		}
	}

	path := filepath.Join(t.TempDir(), "fleet.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRead(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"CONTROLE DE MANUTENÇÃO DA FROTA"},
		{normalize.ColScheduled, normalize.ColPlate, normalize.ColDestination, ""},
		{"01/03/2025", "ABC1234", "AGYLE", "cell under blank header"},
		{"02/03/2025", "DEF5678", ""},
	})

	batch, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{normalize.ColScheduled, normalize.ColPlate, normalize.ColDestination}, batch.Columns)
	require.Len(t, batch.Rows, 2)

	assert.Equal(t, "ABC1234", batch.Rows[0][normalize.ColPlate])
	assert.Equal(t, "01/03/2025", batch.Rows[0][normalize.ColScheduled])
	assert.Equal(t, "AGYLE", batch.Rows[0][normalize.ColDestination])
	// Cells under a blank header label are dropped.
	assert.Len(t, batch.Rows[0], 3)

	assert.Equal(t, "DEF5678", batch.Rows[1][normalize.ColPlate])
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
}

func TestRead_NoHeaderRow(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"only a banner row"},
	})

	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}
