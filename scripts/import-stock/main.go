package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/creativemotion/smartspace/internal/importer"
	"golang.org/x/sync/errgroup"
)

// Pushes a 1C spreadsheet export to a running smartspace instance through
// the feed endpoint, in parallel batches.

type feedItem struct {
	Sku               string `json:"sku"`
	QuantityPrimary   int64  `json:"quantity_primary"`
	QuantitySecondary int64  `json:"quantity_secondary"`
	PreOrder          bool   `json:"pre_order"`
}

type feedResponse struct {
	Success  bool `json:"success"`
	Messages struct {
		Successes []json.RawMessage `json:"successes"`
		Errors    []json.RawMessage `json:"errors"`
	} `json:"messages"`
}

func main() {
	var (
		file      = flag.String("file", "", "path to the .xlsx stock export (required)")
		baseURL   = flag.String("url", "http://localhost:8000", "smartspace base URL")
		apiKey    = flag.String("key", os.Getenv("STOCK_API_KEY"), "feed API key")
		batchSize = flag.Int("batch", 100, "items per request")
		workers   = flag.Int("workers", 4, "concurrent requests")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *file, err)
	}
	defer f.Close()

	parsed, err := importer.ParseWorkbook(f)
	if err != nil {
		log.Fatalf("failed to parse workbook: %v", err)
	}
	for _, rowErr := range parsed.Errors {
		log.Printf("skipping row %d: %s", rowErr.Row, rowErr.Message)
	}
	if len(parsed.Items) == 0 {
		log.Fatal("workbook contains no usable rows")
	}

	items := make([]feedItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, feedItem{
			Sku:               it.Sku,
			QuantityPrimary:   it.QuantityPrimary,
			QuantitySecondary: it.QuantitySecondary,
			PreOrder:          it.PreOrder,
		})
	}

	client := &http.Client{Timeout: 30 * time.Second}
	endpoint := *baseURL + "/api/v1/stock/update"

	var succeeded, failed atomic.Int64

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)

	for start := 0; start < len(items); start += *batchSize {
		end := start + *batchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]

		g.Go(func() error {
			resp, err := pushBatch(ctx, client, endpoint, *apiKey, batch)
			if err != nil {
				return err
			}
			succeeded.Add(int64(len(resp.Messages.Successes)))
			failed.Add(int64(len(resp.Messages.Errors)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("feed push failed: %v", err)
	}

	fmt.Printf("pushed %d items: %d saved, %d rejected, %d unusable rows\n",
		len(items), succeeded.Load(), failed.Load(), len(parsed.Errors))
}

func pushBatch(ctx context.Context, client *http.Client, endpoint, apiKey string, batch []feedItem) (*feedResponse, error) {
	payload, err := json.Marshal(map[string]interface{}{"items": batch})
	if err != nil {
		return nil, fmt.Errorf("marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("push batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultiStatus {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &parsed, nil
}
