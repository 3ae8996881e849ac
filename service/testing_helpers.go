package service

import (
	"testing"

	"github.com/creativemotion/smartspace/internal/handlers"
	"github.com/creativemotion/smartspace/storage"
	"github.com/creativemotion/smartspace/storage/db"
	"github.com/labstack/echo/v4"
)

// setupTestService creates a service instance with an in-memory database
// for testing. Background jobs are not started.
func setupTestService(t *testing.T) (*Service, *db.Queries) {
	t.Helper()

	_, queries, cleanup, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	store := &storage.Storage{
		Queries: queries,
	}

	svc := &Service{
		storage:             store,
		stockHandler:        handlers.NewStockHandler(queries),
		availabilityHandler: handlers.NewAvailabilityHandler(queries),
		config: &Config{
			Environment: "test",
			Port:        "8080",
		},
	}
	svc.config.API.Key = "test-key"

	return svc, queries
}

// setupTestEcho creates an Echo instance with routes registered
func setupTestEcho(t *testing.T) (*echo.Echo, *Service, *db.Queries) {
	t.Helper()

	e := echo.New()
	svc, queries := setupTestService(t)
	svc.RegisterRoutes(e)

	return e, svc, queries
}
