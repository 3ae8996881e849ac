package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/creativemotion/smartspace/internal/importer"
	"github.com/labstack/echo/v4"
)

// HandleImportStock bootstraps the stock table from an uploaded .xlsx
// export (multipart field "file"). Parse errors for individual rows join
// the per-item error list; only an unreadable workbook is a 400.
func (h *StockHandler) HandleImportStock(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "multipart field \"file\" is required",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		slog.Error("failed to open uploaded workbook", "filename", fileHeader.Filename, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read upload")
	}
	defer src.Close()

	parsed, err := importer.ParseWorkbook(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": fmt.Sprintf("unreadable workbook: %v", err),
		})
	}

	items := make([]StockItemInput, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		primary, secondary := it.QuantityPrimary, it.QuantitySecondary
		items = append(items, StockItemInput{
			Sku:               it.Sku,
			QuantityPrimary:   &primary,
			QuantitySecondary: &secondary,
			PreOrder:          it.PreOrder,
		})
	}

	result := h.applyItems(c.Request().Context(), items)
	for _, rowErr := range parsed.Errors {
		result.Errors = append(result.Errors, ItemResult{
			Message: fmt.Sprintf("row %d: %s", rowErr.Row, rowErr.Message),
		})
	}

	status := http.StatusOK
	if len(result.Errors) > 0 {
		status = http.StatusMultiStatus
	}

	slog.Info("stock workbook imported",
		"filename", fileHeader.Filename,
		"succeeded", len(result.Successes),
		"failed", len(result.Errors),
	)

	return c.JSON(status, BatchResponse{
		Success:  len(result.Errors) == 0,
		Messages: result,
	})
}
