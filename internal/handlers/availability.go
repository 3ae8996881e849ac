package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/creativemotion/smartspace/internal/availability"
	"github.com/creativemotion/smartspace/storage/db"
	"github.com/labstack/echo/v4"
)

type AvailabilityHandler struct {
	queries *db.Queries
	now     func() time.Time
}

func NewAvailabilityHandler(queries *db.Queries) *AvailabilityHandler {
	return &AvailabilityHandler{queries: queries, now: time.Now}
}

type availabilityResponse struct {
	Sku string `json:"sku"`
	availability.Rendering
}

// HandleGetAvailability renders the availability messages for one SKU.
// ?context=category switches to the category-page strategy (summary line
// plus popup detail payload). A SKU without a stock record is a plain 404,
// the storefront simply renders nothing.
func (h *AvailabilityHandler) HandleGetAvailability(c echo.Context) error {
	sku := c.Param("sku")
	if sku == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "sku is required")
	}

	rec, err := h.queries.GetStockBySku(c.Request().Context(), sku)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "no stock data"})
		}
		slog.Error("failed to load stock record", "sku", sku, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load stock record")
	}

	rendering := availability.Render(availability.Input{
		QuantityPrimary:   int(rec.QuantityPrimary),
		QuantitySecondary: int(rec.QuantitySecondary),
		PreOrder:          rec.PreOrder,
	}, h.now(), availability.ParsePageContext(c.QueryParam("context")))

	return c.JSON(http.StatusOK, availabilityResponse{Sku: sku, Rendering: rendering})
}
