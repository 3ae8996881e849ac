package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/creativemotion/smartspace/internal/availability"
	"github.com/creativemotion/smartspace/storage/db"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
)

type StockHandler struct {
	queries *db.Queries
	now     func() time.Time
}

func NewStockHandler(queries *db.Queries) *StockHandler {
	return &StockHandler{queries: queries, now: time.Now}
}

// StockItemInput is one feed tuple. Quantities are pointers so a missing
// field can be told apart from an explicit zero; the 1C export always sends
// both columns and omission means a broken row.
type StockItemInput struct {
	Sku               string `json:"sku"`
	QuantityPrimary   *int64 `json:"quantity_primary"`
	QuantitySecondary *int64 `json:"quantity_secondary"`
	PreOrder          bool   `json:"pre_order"`
}

type ItemResult struct {
	Sku     string `json:"sku"`
	Message string `json:"message"`
}

type BatchMessages struct {
	Successes []ItemResult `json:"successes"`
	Errors    []ItemResult `json:"errors"`
}

type BatchResponse struct {
	Success  bool          `json:"success"`
	Messages BatchMessages `json:"messages"`
}

type updateStockRequest struct {
	Items []StockItemInput `json:"items"`
}

// HandleUpdateStock is the bulk feed endpoint. Every item is processed
// independently: one bad row never aborts the batch. 200 when everything
// landed, 207 when some rows failed, 400 when the payload itself is broken.
func (h *StockHandler) HandleUpdateStock(c echo.Context) error {
	var req updateStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Некорректные или отсутствующие данные о товарах.",
		})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Не переданы данные о товарах или данные имеют неверный формат.",
		})
	}

	ctx := c.Request().Context()
	result := h.applyItems(ctx, req.Items)

	status := http.StatusOK
	if len(result.Errors) > 0 {
		status = http.StatusMultiStatus
	}

	slog.Info("stock feed processed",
		"items", len(req.Items),
		"succeeded", len(result.Successes),
		"failed", len(result.Errors),
	)

	return c.JSON(status, BatchResponse{
		Success:  len(result.Errors) == 0,
		Messages: result,
	})
}

// applyItems validates and upserts a batch, collecting per-item outcomes.
func (h *StockHandler) applyItems(ctx context.Context, items []StockItemInput) BatchMessages {
	var result BatchMessages
	now := h.now()

	for _, item := range items {
		if item.Sku == "" || item.QuantityPrimary == nil || item.QuantitySecondary == nil {
			result.Errors = append(result.Errors, ItemResult{
				Sku:     item.Sku,
				Message: "Отсутствуют обязательные поля",
			})
			continue
		}
		if *item.QuantityPrimary < 0 || *item.QuantitySecondary < 0 {
			result.Errors = append(result.Errors, ItemResult{
				Sku:     item.Sku,
				Message: "Количество не может быть отрицательным",
			})
			continue
		}

		_, err := h.queries.UpsertStock(ctx, db.UpsertStockParams{
			ID:                ulid.Make().String(),
			Sku:               item.Sku,
			QuantityPrimary:   *item.QuantityPrimary,
			QuantitySecondary: *item.QuantitySecondary,
			PreOrder:          item.PreOrder,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		if err != nil {
			slog.Error("failed to upsert stock record", "sku", item.Sku, "error", err)
			result.Errors = append(result.Errors, ItemResult{Sku: item.Sku, Message: "Не удалось обновить товар!"})
			continue
		}

		result.Successes = append(result.Successes, ItemResult{Sku: item.Sku, Message: "Данные о товаре успешно обновлены!"})
	}

	return result
}

type stockListItem struct {
	Sku               string    `json:"sku"`
	QuantityPrimary   int64     `json:"quantity_primary"`
	QuantitySecondary int64     `json:"quantity_secondary"`
	PreOrder          bool      `json:"pre_order"`
	State             string    `json:"state"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HandleListStock backs the storefront stock-status filter facet:
// ?status=instock|backorder|outofstock narrows the list to one availability
// bucket, no status returns everything.
func (h *StockHandler) HandleListStock(c echo.Context) error {
	status := c.QueryParam("status")
	switch status {
	case "", "instock", "backorder", "outofstock":
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown stock status: "+status)
	}

	records, err := h.queries.ListStock(c.Request().Context())
	if err != nil {
		slog.Error("failed to list stock", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list stock")
	}

	now := h.now()
	items := make([]stockListItem, 0, len(records))
	for _, rec := range records {
		state := availability.Classify(int(rec.QuantityPrimary), int(rec.QuantitySecondary), rec.PreOrder, now)
		if status != "" && statusBucket(state.Kind) != status {
			continue
		}
		items = append(items, stockListItem{
			Sku:               rec.Sku,
			QuantityPrimary:   rec.QuantityPrimary,
			QuantitySecondary: rec.QuantitySecondary,
			PreOrder:          rec.PreOrder,
			State:             state.Kind.String(),
			UpdatedAt:         rec.UpdatedAt,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

func statusBucket(kind availability.Kind) string {
	switch kind {
	case availability.AvailableNow, availability.AvailableNextDay:
		return "instock"
	case availability.PreOrder:
		return "backorder"
	default:
		return "outofstock"
	}
}
