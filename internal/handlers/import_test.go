package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func uploadWorkbook(t *testing.T, rows [][]interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	workbook, err := f.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "stock.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/import", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleImportStock(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	handler := NewStockHandler(queries)

	c, rec := uploadWorkbook(t, [][]interface{}{
		{"Артикул", "Наименование", "Магазин Горького 35, можно забрать сейчас", "Основной склад, заказать самовывоз на следующий день после 16:00 (кроме воскресенья)", "Предзаказ"},
		{"SKU-100", "Шкаф", 2, 6, ""},
		{"SKU-101", "Стол", 0, 0, "1"},
	})

	require.NoError(t, handler.HandleImportStock(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	stored, err := queries.GetStockBySku(context.Background(), "SKU-100")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stored.QuantityPrimary)
	assert.EqualValues(t, 6, stored.QuantitySecondary)

	stored, err = queries.GetStockBySku(context.Background(), "SKU-101")
	require.NoError(t, err)
	assert.True(t, stored.PreOrder)
}

func TestHandleImportStock_RowErrorsAreReported(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	handler := NewStockHandler(queries)

	c, rec := uploadWorkbook(t, [][]interface{}{
		{"Артикул", "Наименование", "Магазин Горького 35, можно забрать сейчас", "Основной склад, заказать самовывоз на следующий день после 16:00 (кроме воскресенья)"},
		{"SKU-102", "Стул", 1, 0},
		{"SKU-103", "Полка", "abc", 0},
	})

	require.NoError(t, handler.HandleImportStock(c))
	assert.Equal(t, http.StatusMultiStatus, rec.Code)

	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, false, body["success"])
	messages := body["messages"].(map[string]interface{})
	assert.Len(t, messages["successes"], 1)
	assert.Len(t, messages["errors"], 1)
}

func TestHandleImportStock_MissingFile(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	handler := NewStockHandler(queries)

	c, rec := NewTestContext(http.MethodPost, "/api/v1/stock/import", nil)
	require.NoError(t, handler.HandleImportStock(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
