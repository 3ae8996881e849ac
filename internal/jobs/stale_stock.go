package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/creativemotion/smartspace/storage"
)

const (
	// DefaultStaleThreshold is how long a record may go without a feed
	// write before it is considered stale. The 1C export pushes at least
	// daily, so two days of silence means the feed is broken.
	DefaultStaleThreshold = 48 * time.Hour

	// CheckInterval is how often the watchdog scans for stale records.
	CheckInterval = 1 * time.Hour

	// maxLoggedSkus caps the per-scan log noise; the count is always exact.
	maxLoggedSkus = 20
)

// StaleStockWatchdog periodically reports SKUs whose stock record has not
// been refreshed by the feed. It only logs; the records stay served as-is.
type StaleStockWatchdog struct {
	storage   *storage.Storage
	threshold time.Duration
	ticker    *time.Ticker
	done      chan bool
}

func NewStaleStockWatchdog(storage *storage.Storage, threshold time.Duration) *StaleStockWatchdog {
	if threshold <= 0 {
		threshold = DefaultStaleThreshold
	}
	return &StaleStockWatchdog{
		storage:   storage,
		threshold: threshold,
		done:      make(chan bool),
	}
}

// Start begins the background scan loop.
func (w *StaleStockWatchdog) Start(ctx context.Context) {
	slog.Info("starting stale stock watchdog", "interval", CheckInterval, "threshold", w.threshold)

	// Run immediately on start
	w.scan(ctx)

	w.ticker = time.NewTicker(CheckInterval)

	go func() {
		for {
			select {
			case <-w.ticker.C:
				w.scan(ctx)
			case <-w.done:
				slog.Info("stale stock watchdog stopped")
				return
			}
		}
	}()
}

// Stop stops the background job
func (w *StaleStockWatchdog) Stop() {
	if w.ticker != nil {
		w.ticker.Stop()
	}
	close(w.done)
}

func (w *StaleStockWatchdog) scan(ctx context.Context) {
	cutoff := time.Now().Add(-w.threshold)

	stale, err := w.storage.Queries.ListStaleStock(ctx, cutoff)
	if err != nil {
		slog.Error("stale stock scan failed", "error", err)
		return
	}
	if len(stale) == 0 {
		slog.Debug("stale stock scan clean")
		return
	}

	for i, rec := range stale {
		if i == maxLoggedSkus {
			break
		}
		slog.Warn("stock record has not been refreshed by the feed",
			"sku", rec.Sku,
			"updated_at", rec.UpdatedAt,
		)
	}
	slog.Warn("stale stock scan finished", "stale_records", len(stale), "cutoff", cutoff)
}
