package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/creativemotion/smartspace/storage"
	"github.com/creativemotion/smartspace/storage/db"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
)

// NewTestContext creates a new Echo context for testing
func NewTestContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	return c, rec
}

// NewTestDB creates a test database with migrations applied
func NewTestDB() (*sql.DB, *db.Queries, func()) {
	database, queries, cleanup, err := storage.NewTestDB()
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}
	return database, queries, cleanup
}

// CreateTestStock inserts a stock record directly, bypassing the handlers
func CreateTestStock(queries *db.Queries, sku string, primary, secondary int64, preOrder bool) (db.WarehouseStock, error) {
	now := time.Now()
	return queries.UpsertStock(context.Background(), db.UpsertStockParams{
		ID:                ulid.Make().String(),
		Sku:               sku,
		QuantityPrimary:   primary,
		QuantitySecondary: secondary,
		PreOrder:          preOrder,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

// AssertJSONResponse checks if the response is valid JSON and returns the parsed body
func AssertJSONResponse(rec *httptest.ResponseRecorder) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}
