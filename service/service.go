package service

import (
	"context"
	"net/http"

	"github.com/creativemotion/smartspace/internal/auth"
	"github.com/creativemotion/smartspace/internal/handlers"
	"github.com/creativemotion/smartspace/internal/jobs"
	"github.com/creativemotion/smartspace/storage"
	"github.com/labstack/echo/v4"
)

type Service struct {
	storage             *storage.Storage
	config              *Config
	stockHandler        *handlers.StockHandler
	availabilityHandler *handlers.AvailabilityHandler
	staleWatchdog       *jobs.StaleStockWatchdog
}

func New(storage *storage.Storage, config *Config) *Service {
	staleWatchdog := jobs.NewStaleStockWatchdog(storage, config.Stock.StaleAfter)
	staleWatchdog.Start(context.Background())

	return &Service{
		storage:             storage,
		config:              config,
		stockHandler:        handlers.NewStockHandler(storage.Queries),
		availabilityHandler: handlers.NewAvailabilityHandler(storage.Queries),
		staleWatchdog:       staleWatchdog,
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")

	// Availability rendering is read by the storefront, no auth.
	api.GET("/availability/:sku", s.availabilityHandler.HandleGetAvailability)
	api.GET("/stock", s.stockHandler.HandleListStock)

	// Feed and import endpoints carry the shared secret.
	feed := api.Group("", auth.APIKeyAuth(s.config.API.Key))
	feed.POST("/stock/update", s.stockHandler.HandleUpdateStock)
	feed.POST("/stock/import", s.stockHandler.HandleImportStock)
}

// Shutdown stops background jobs.
func (s *Service) Shutdown() {
	if s.staleWatchdog != nil {
		s.staleWatchdog.Stop()
	}
}
