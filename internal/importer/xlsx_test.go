package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseWorkbook(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Выгрузка остатков от 21.01.2025"}, // preamble before the header
		{colSku, colName, colPrimary, colSecondary, colPreOrder},
		{"SKU-001", "Шкаф", 3, 12, ""},
		{"SKU-002", "Стол", 0, 0, "1"},
		{"", "строка без артикула", 5, 5, ""},
		{"SKU-003", "Стул", "abc", 1, ""},
		{"SKU-004", "Полка", "2,0", 0, ""},
	})

	result, err := ParseWorkbook(buf)
	require.NoError(t, err)

	require.Len(t, result.Items, 3)

	assert.Equal(t, Item{Sku: "SKU-001", QuantityPrimary: 3, QuantitySecondary: 12}, result.Items[0])
	assert.Equal(t, Item{Sku: "SKU-002", PreOrder: true}, result.Items[1])
	assert.Equal(t, Item{Sku: "SKU-004", QuantityPrimary: 2}, result.Items[2])

	// SKU-003 has a non-numeric quantity and is reported, not dropped silently.
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 6, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "SKU-003")
}

func TestParseWorkbook_HeaderByPartialMatch(t *testing.T) {
	// Only two of four required captions present: still accepted as header.
	buf := buildWorkbook(t, [][]interface{}{
		{colSku, colPrimary},
		{"SKU-010", 1},
	})

	result, err := ParseWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, Item{Sku: "SKU-010", QuantityPrimary: 1}, result.Items[0])
}

func TestParseWorkbook_NoHeader(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"просто", "какая-то", "таблица"},
		{"1", "2", "3"},
	})

	_, err := ParseWorkbook(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestParseWorkbook_NegativeQuantityReported(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{colSku, colName, colPrimary, colSecondary},
		{"SKU-020", "Ковёр", -4, 0},
	})

	result, err := ParseWorkbook(buf)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "negative")
}
