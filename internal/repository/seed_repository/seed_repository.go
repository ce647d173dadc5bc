package seed_repository

import (
	"bytes"
	"context"
	"encoding/json"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"prop_search/internal/domain"
	"prop_search/internal/repository"
)

//go:embed listing_schema.json
var listingSchemaJSON string

// SeedRepository — каталог объявлений из JSON-файла. Используется
// в локальной разработке и демо, когда Postgres не сконфигурирован.
// Файл валидируется по встроенной JSON-схеме при загрузке.
type SeedRepository struct {
	listings []domain.Listing
	log      *slog.Logger
}

// seedListing — формат записи в seed-файле.
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

// NewSeedRepository загружает и валидирует seed-файл каталога.
func NewSeedRepository(path string, log *slog.Logger) (*SeedRepository, error) {
	const op = "SeedRepository.New"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateSeed(data); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var records []seedListing
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	listings := make([]domain.Listing, 0, len(records))
	for _, rec := range records {
		l, err := rec.toDomain()
		if err != nil {
			// Битая запись не валит каталог целиком
			log.Warn("skipping malformed seed listing",
				slog.String("id", rec.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		listings = append(listings, l)
	}

	log.Info("seed catalog loaded",
		slog.String("path", path),
		slog.Int("listings", len(listings)),
	)

	return &SeedRepository{listings: listings, log: log}, nil
}

// ListActive возвращает активные объявления каталога.
func (r *SeedRepository) ListActive(_ context.Context) ([]domain.Listing, error) {
	var active []domain.Listing
	for _, l := range r.listings {
		if l.Status == domain.ListingStatusActive {
			active = append(active, l)
		}
	}
	return active, nil
}

// GetByID возвращает объявление по ID.
func (r *SeedRepository) GetByID(_ context.Context, id uuid.UUID) (domain.Listing, error) {
	const op = "SeedRepository.GetByID"

	for _, l := range r.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Listing{}, fmt.Errorf("%s: %w", op, repository.ErrListingNotFound)
}

func validateSeed(data []byte) error {
	schema, err := jsonschema.CompileString("listing_schema.json", listingSchemaJSON)
	if err != nil {
		return err
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return err
	}

	return schema.Validate(doc)
}

func (rec seedListing) toDomain() (domain.Listing, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("invalid listing id: %w", err)
	}

	agentID := uuid.Nil
	if rec.AgentUserID != "" {
		agentID, err = uuid.Parse(rec.AgentUserID)
		if err != nil {
			return domain.Listing{}, fmt.Errorf("invalid agent user id: %w", err)
		}
	}

	status := domain.ListingStatus(rec.Status)
	if status == domain.ListingStatusUnspecified {
		status = domain.ListingStatusActive
	}

	return domain.Listing{
		ID:            id,
		Title:         rec.Title,
		Description:   rec.Description,
		Address:       rec.Address,
		Neighborhood:  rec.Neighborhood,
		City:          rec.City,
		Latitude:      rec.Latitude,
		Longitude:     rec.Longitude,
		Price:         rec.Price,
		Currency:      rec.Currency,
		OperationType: domain.OperationFromSlug(rec.Operation),
		PropertyType:  domain.PropertyTypeFromSlug(rec.PropertyType),
		Rooms:         rec.Rooms,
		Bathrooms:     rec.Bathrooms,
		Features:      rec.Features,
		PhotoKeys:     rec.PhotoKeys,
		Status:        status,
		AgentUserID:   agentID,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.CreatedAt,
	}, nil
}
