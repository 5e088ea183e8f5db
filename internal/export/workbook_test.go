package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ToolCrib/internal/model"
)

func TestExportWorkbook_SheetPerMagazine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "magazines.xlsx")
	require.NoError(t, ExportWorkbook(path, buildTestMachine(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Magazine 0", "Magazine 1"}, f.GetSheetList())

	rows, err := f.GetRows("Magazine 0")
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, workbookHeaders, rows[0])
	assert.Equal(t, []string{"0", "Drill", "Drill 8", "8", "", "ER32", "", "coolant through"}, rows[1])
	assert.Equal(t, "HSK63", rows[3][6])

	rows, err = f.GetRows("Magazine 1")
	require.NoError(t, err)
	assert.Equal(t, "35", rows[5][4])
}

func TestExportWorkbook_NoMagazines(t *testing.T) {
	err := ExportWorkbook(filepath.Join(t.TempDir(), "x.xlsx"), model.Machine{Name: "Broken"})
	assert.Error(t, err)
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{}

	assert.Equal(t, "Front_Rear", sheetName("Front/Rear", 0, used))
	assert.Equal(t, "Magazine 1", sheetName("  ", 1, used))
	assert.Equal(t, "front_rear (2)", sheetName("front_rear", 2, used))

	long := sheetName("A magazine name that is far too long for Excel", 3, used)
	assert.Len(t, long, maxSheetName)
}
