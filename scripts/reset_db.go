// Скрипт для пересоздания таблицы listings и загрузки seed-каталога.
// Запуск: DATABASE_URL=postgres://... go run scripts/reset_db.go [seed/listings.json]

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"prop_search/internal/domain"
)

// seedListing — формат записи в seed-файле, как его читает SeedRepository.
type seedListing struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Address      string    `json:"address"`
	Neighborhood string    `json:"neighborhood"`
	City         string    `json:"city"`
	Latitude     float64   `json:"lat"`
	Longitude    float64   `json:"lng"`
	Price        *int64    `json:"price"`
	Currency     string    `json:"currency"`
	Operation    string    `json:"operation"`
	PropertyType string    `json:"property_type"`
	Rooms        *int32    `json:"rooms"`
	Bathrooms    *int32    `json:"bathrooms"`
	Features     []string  `json:"features"`
	PhotoKeys    []string  `json:"photo_keys"`
	Status       string    `json:"status"`
	AgentUserID  string    `json:"agent_user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func main() {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	seedPath := "seed/listings.json"
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}

	fmt.Println("Connecting to database...")
	fmt.Printf("Host: %s\n", extractHost(connStr))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close(ctx)

	fmt.Println("Connected successfully!")

	// SQL команды для выполнения
	commands := []string{
		// ЧАСТЬ 1: ОЧИСТКА
		"DROP TABLE IF EXISTS listings CASCADE",

		// ЧАСТЬ 2: СОЗДАНИЕ ТАБЛИЦЫ
		`CREATE TABLE IF NOT EXISTS listings (
			listing_id     UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title          TEXT        NOT NULL,
			description    TEXT        NOT NULL DEFAULT '',
			address        TEXT        NOT NULL DEFAULT '',
			neighborhood   TEXT        NOT NULL DEFAULT '',
			city           TEXT        NOT NULL DEFAULT '',
			latitude       DOUBLE PRECISION NOT NULL,
			longitude      DOUBLE PRECISION NOT NULL,
			price          BIGINT,
			currency       TEXT        NOT NULL DEFAULT 'USD',
			operation_type TEXT        NOT NULL,
			property_type  TEXT        NOT NULL,
			rooms          INT,
			bathrooms      INT,
			features       TEXT[]      NOT NULL DEFAULT '{}',
			photo_keys     TEXT[]      NOT NULL DEFAULT '{}',
			status         TEXT        NOT NULL DEFAULT 'ACTIVE',
			agent_user_id  UUID        NOT NULL DEFAULT '00000000-0000-0000-0000-000000000000',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// ЧАСТЬ 3: ИНДЕКСЫ ПОД ВЫБОРКУ КАТАЛОГА
		"CREATE INDEX IF NOT EXISTS idx_listings_status ON listings (status)",
		"CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings (created_at DESC, listing_id)",
	}

	fmt.Println("\nExecuting schema commands...")
	for i, cmd := range commands {
		_, err := conn.Exec(ctx, cmd)
		if err != nil {
			log.Printf("Warning on command %d: %v", i+1, err)
		} else {
			fmt.Printf("  [%d/%d] OK\n", i+1, len(commands))
		}
	}

	// ЧАСТЬ 4: ЗАГРУЗКА SEED-КАТАЛОГА
	fmt.Printf("\nLoading seed catalog from %s...\n", seedPath)
	data, err := os.ReadFile(seedPath)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	var records []seedListing
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	inserted := 0
	for _, rec := range records {
		status := rec.Status
		if status == "" {
			status = domain.ListingStatusActive.String()
		}
		agentID := rec.AgentUserID
		if agentID == "" {
			agentID = "00000000-0000-0000-0000-000000000000"
		}

		_, err := conn.Exec(ctx, `
			INSERT INTO listings (
				listing_id, title, description, address, neighborhood, city,
				latitude, longitude, price, currency,
				operation_type, property_type, rooms, bathrooms,
				features, photo_keys, status, agent_user_id,
				created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)
			ON CONFLICT (listing_id) DO NOTHING
		`,
			rec.ID, rec.Title, rec.Description, rec.Address, rec.Neighborhood, rec.City,
			rec.Latitude, rec.Longitude, rec.Price, rec.Currency,
			domain.OperationFromSlug(rec.Operation), domain.PropertyTypeFromSlug(rec.PropertyType),
			rec.Rooms, rec.Bathrooms,
			rec.Features, rec.PhotoKeys, status, agentID,
			rec.CreatedAt,
		)
		if err != nil {
			log.Printf("Warning inserting listing %s: %v", rec.ID, err)
		} else {
			inserted++
		}
	}
	fmt.Printf("  Listings inserted: %d/%d\n", inserted, len(records))

	// ЧАСТЬ 5: ПРОВЕРКА
	fmt.Println("\n=== VERIFICATION ===")

	var total, active int
	conn.QueryRow(ctx, "SELECT count(*) FROM listings").Scan(&total)
	conn.QueryRow(ctx, "SELECT count(*) FROM listings WHERE status = 'ACTIVE'").Scan(&active)

	fmt.Printf("Listings total:  %d\n", total)
	fmt.Printf("Listings active: %d\n", active)

	fmt.Println("\n=== DATABASE RESET COMPLETE ===")
}

func extractHost(connStr string) string {
	parts := strings.Split(connStr, "@")
	if len(parts) > 1 {
		hostPart := strings.Split(parts[1], "/")[0]
		return hostPart
	}
	return "unknown"
}
