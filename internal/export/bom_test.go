package export

import (
	"testing"

	"github.com/piwi3910/foilplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openBOM(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestExportBOM_Sheets(t *testing.T) {
	cfg := buildTestPlan(t, model.ModeMinRolls)
	path := tempPath(t, "bom.xlsx")

	require.NoError(t, ExportBOM(path, cfg, nil, 0))

	f := openBOM(t, path)
	assert.Equal(t, []string{SheetSummary, SheetRolls, SheetStrips, SheetOffcuts}, f.GetSheetList())

	strips, err := f.GetRows(SheetStrips)
	require.NoError(t, err)
	assert.Len(t, strips, countStrips(cfg)+1)
	assert.Equal(t, "Surface", strips[0][0])

	rolls, err := f.GetRows(SheetRolls)
	require.NoError(t, err)
	assert.Len(t, rolls, cfg.TotalRolls165+cfg.TotalRolls205+1)
}

func TestExportBOM_WithProductAddsCost(t *testing.T) {
	cfg := buildTestPlan(t, model.ModeMinWaste)
	product := model.NewFoilProduct("Reinforced Blue", model.SubtypeStandard, "blue", 690, 850)
	path := tempPath(t, "bom_cost.xlsx")

	require.NoError(t, ExportBOM(path, cfg, &product, 4.5))

	f := openBOM(t, path)
	assert.Contains(t, f.GetSheetList(), SheetCost)

	total, err := f.GetCellValue(SheetCost, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)

	foil, err := f.GetCellValue(SheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, "Rolls 1.65m", mustCell(t, f, SheetSummary, "A5"))
	assert.NotEmpty(t, foil)
}

func TestExportBOM_EmptyPlan(t *testing.T) {
	assert.Error(t, ExportBOM(tempPath(t, "empty.xlsx"), model.MixConfiguration{}, nil, 0))
}

func mustCell(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return v
}
