package seed_repository

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"prop_search/internal/domain"
	"prop_search/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

const validSeed = `[
  {
    "id": "0b6c1a2e-4f3d-4a8b-9c1e-1a2b3c4d5e6f",
    "title": "Departamento en Palermo",
    "lat": -34.5889,
    "lng": -58.4298,
    "price": 185000,
    "operation": "venta",
    "property_type": "departamento",
    "rooms": 3,
    "status": "ACTIVE",
    "created_at": "2026-06-12T14:30:00Z"
  },
  {
    "id": "1c7d2b3f-5e4a-4b9c-8d2f-2b3c4d5e6f70",
    "title": "PH vendido",
    "lat": -34.6211,
    "lng": -58.3724,
    "operation": "venta",
    "property_type": "ph",
    "status": "SOLD",
    "created_at": "2026-01-05T17:40:00Z"
  }
]`

func TestSeedRepository_LoadsCatalog(t *testing.T) {
	path := writeSeed(t, validSeed)

	repo, err := NewSeedRepository(path, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	active, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active listing (SOLD excluded), got %d", len(active))
	}

	l := active[0]
	if l.Title != "Departamento en Palermo" {
		t.Errorf("unexpected title: %s", l.Title)
	}
	// Слаги из файла приводятся к каноническим ярлыкам
	if l.OperationType != domain.OperationVenta {
		t.Errorf("expected canonical operation label, got %s", l.OperationType)
	}
	if l.PropertyType != domain.PropertyTypeDepartamento {
		t.Errorf("expected canonical property type label, got %s", l.PropertyType)
	}
	if l.Rooms == nil || *l.Rooms != 3 {
		t.Errorf("expected 3 rooms, got %v", l.Rooms)
	}
}

func TestSeedRepository_GetByID(t *testing.T) {
	path := writeSeed(t, validSeed)
	repo, err := NewSeedRepository(path, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id := uuid.MustParse("1c7d2b3f-5e4a-4b9c-8d2f-2b3c4d5e6f70")
	l, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// GetByID видит и неактивные объявления
	if l.Status != domain.ListingStatusSold {
		t.Errorf("expected SOLD status, got %s", l.Status)
	}

	_, err = repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, repository.ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound, got %v", err)
	}
}

func TestSeedRepository_SchemaViolationRejected(t *testing.T) {
	// lat вне диапазона не проходит схему
	path := writeSeed(t, `[
	  {
	    "id": "0b6c1a2e-4f3d-4a8b-9c1e-1a2b3c4d5e6f",
	    "title": "Broken",
	    "lat": 120,
	    "lng": -58.43,
	    "operation": "venta",
	    "property_type": "departamento"
	  }
	]`)

	if _, err := NewSeedRepository(path, testLogger()); err == nil {
		t.Error("expected schema validation error")
	}
}

func TestSeedRepository_MalformedJSONRejected(t *testing.T) {
	path := writeSeed(t, `{"not": "an array"`)

	if _, err := NewSeedRepository(path, testLogger()); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestSeedRepository_MissingFile(t *testing.T) {
	if _, err := NewSeedRepository(filepath.Join(t.TempDir(), "missing.json"), testLogger()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSeedRepository_MissingStatusDefaultsToActive(t *testing.T) {
	path := writeSeed(t, `[
	  {
	    "id": "0b6c1a2e-4f3d-4a8b-9c1e-1a2b3c4d5e6f",
	    "title": "Sin estado",
	    "lat": -34.60,
	    "lng": -58.38,
	    "operation": "venta",
	    "property_type": "casa"
	  }
	]`)

	repo, err := NewSeedRepository(path, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	active, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("listing without status must default to ACTIVE, got %d active", len(active))
	}
}
