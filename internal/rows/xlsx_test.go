package rows_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/goosebones/pokemon/internal/rows"
	domain "github.com/goosebones/pokemon/pkg/types"
)

var header = []any{
	"Processed", "ID", "Name", "Number", "Foil", "Rarity", "Set",
	"Condition", "Defect", "Defect Location", "Price",
}

// writeWorkbook creates a workbook whose first sheet holds header plus data.
func writeWorkbook(t *testing.T, sheet string, data ...[]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, r := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	path := filepath.Join(t.TempDir(), "inventory.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXSource_ReadAll(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "Cards",
		[]any{"N", "C1", "Pikachu", "025/189", "Holo", "Rare", "Crown Zenith", "NM", "", "", 9.99},
		[]any{"Y", "C2", "Charizard", "4/102", "Holo", "Rare Holo", "Base Set", "LP", "crease", "back", "$350"},
		[]any{},
		[]any{"", "C4", "Eevee"},
	)

	src, err := rows.OpenXLSX(path, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	got, err := src.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 2, got[0].Index)
	assert.False(t, got[0].Processed)
	assert.Equal(t, "Pikachu", got[0].Name)
	assert.Equal(t, domain.ConditionNearMint, got[0].Condition)
	assert.InDelta(t, 9.99, got[0].StartPrice, 1e-9)

	assert.Equal(t, 3, got[1].Index)
	assert.True(t, got[1].Processed)
	assert.Equal(t, "crease", got[1].DefectNote)
	assert.InDelta(t, 350.0, got[1].StartPrice, 1e-9)

	// row 4 is blank and dropped; indexes keep their sheet position
	assert.Equal(t, 5, got[2].Index)
	assert.Equal(t, domain.ConditionUnknown, got[2].Condition)
}

func TestXLSXSource_MarkProcessed(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "Sheet1",
		[]any{"N", "C1", "Pikachu"},
		[]any{"", "C2", "Raichu"},
	)

	src, err := rows.OpenXLSX(path, "Sheet1")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, src.MarkProcessed(ctx, 3))
	require.NoError(t, src.Flush(ctx))
	require.NoError(t, src.Close())

	// the flag is on disk after reopening
	reopened, err := rows.OpenXLSX(path, "Sheet1")
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.False(t, got[0].Processed)
	assert.True(t, got[1].Processed)
}

func TestXLSXSource_MarkProcessed_HeaderRow(t *testing.T) {
	t.Parallel()

	src, err := rows.OpenXLSX(writeWorkbook(t, "Sheet1"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	err = src.MarkProcessed(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a data row")
}

func TestXLSXSource_ImportRows(t *testing.T) {
	t.Parallel()

	src, err := rows.OpenXLSX(writeWorkbook(t, "Sheet1",
		[]any{"", "C1", "Mew", "", "", "", "", "nm/m"},
	), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	got, err := src.ImportRows(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "nm/m", got[0].ConditionCode)
	assert.Equal(t, domain.ConditionNearMint, got[0].Card.Condition)
}

func TestOpenXLSX_Errors(t *testing.T) {
	t.Parallel()

	_, err := rows.OpenXLSX(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening workbook")

	_, err = rows.OpenXLSX(writeWorkbook(t, "Sheet1"), "Inventory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no sheet "Inventory"`)
}
