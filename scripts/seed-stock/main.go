package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/creativemotion/smartspace/storage"
	"github.com/creativemotion/smartspace/storage/db"
	"github.com/oklog/ulid/v2"
)

func main() {
	var (
		dbPath = flag.String("db", "./db/smartspace.db", "path to the SQLite database")
		count  = flag.Int("count", 50, "number of fake stock records to create")
		seed   = flag.Int64("seed", 0, "random seed (0 = random)")
	)
	flag.Parse()

	seedVal := *seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}
	if err := gofakeit.Seed(seedVal); err != nil {
		log.Fatalf("failed to seed faker: %v", err)
	}
	rng := rand.New(rand.NewSource(seedVal))

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	now := time.Now()

	for i := 0; i < *count; i++ {
		sku := fmt.Sprintf("%s-%d", gofakeit.LetterN(3), gofakeit.Number(10000, 99999))

		// Weight towards in-stock items, with a thin tail of pre-orders.
		var primary, secondary int64
		preOrder := false
		switch roll := rng.Intn(10); {
		case roll < 5:
			primary = int64(rng.Intn(12))
			secondary = int64(rng.Intn(40))
		case roll < 8:
			secondary = int64(rng.Intn(40) + 1)
		case roll < 9:
			preOrder = true
		}

		_, err := store.Queries.UpsertStock(ctx, db.UpsertStockParams{
			ID:                ulid.Make().String(),
			Sku:               sku,
			QuantityPrimary:   primary,
			QuantitySecondary: secondary,
			PreOrder:          preOrder,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		if err != nil {
			log.Fatalf("failed to insert %s: %v", sku, err)
		}
	}

	total, err := store.Queries.CountStock(ctx)
	if err != nil {
		log.Fatalf("failed to count records: %v", err)
	}

	fmt.Printf("seeded %d fake stock records (%d total in %s)\n", *count, total, *dbPath)
}
