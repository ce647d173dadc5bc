package listing_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"prop_search/internal/domain"
	"prop_search/internal/repository"
)

type ListingRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewListingRepository(db *pgxpool.Pool, log *slog.Logger) *ListingRepository {
	return &ListingRepository{db: db, log: log}
}

// ListActive — загружает активный каталог объявлений целиком.
// Поисковое ядро работает с материализованной выборкой,
// инкрементальных запросов к каталогу нет.
func (r *ListingRepository) ListActive(ctx context.Context) ([]domain.Listing, error) {
	const op = "ListingRepository.ListActive"

	query := `
		SELECT
			listing_id, title, description, address, neighborhood, city,
			latitude, longitude, price, currency,
			operation_type, property_type, rooms, bathrooms,
			features, photo_keys, status, agent_user_id,
			created_at, updated_at
		FROM listings
		WHERE status = $1
		ORDER BY created_at DESC, listing_id
	`

	rows, err := r.db.Query(ctx, query, domain.ListingStatusActive.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return listings, nil
}

// GetByID — получает объявление по ID.
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	const op = "ListingRepository.GetByID"

	query := `
		SELECT
			listing_id, title, description, address, neighborhood, city,
			latitude, longitude, price, currency,
			operation_type, property_type, rooms, bathrooms,
			features, photo_keys, status, agent_user_id,
			created_at, updated_at
		FROM listings
		WHERE listing_id = $1
	`

	row := r.db.QueryRow(ctx, query, id)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Listing{}, fmt.Errorf("%s: %w", op, repository.ErrListingNotFound)
		}
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	return l, nil
}

func scanListing(row pgx.Row) (domain.Listing, error) {
	var l domain.Listing
	var statusStr string

	err := row.Scan(
		&l.ID,
		&l.Title,
		&l.Description,
		&l.Address,
		&l.Neighborhood,
		&l.City,
		&l.Latitude,
		&l.Longitude,
		&l.Price,
		&l.Currency,
		&l.OperationType,
		&l.PropertyType,
		&l.Rooms,
		&l.Bathrooms,
		&l.Features,
		&l.PhotoKeys,
		&statusStr,
		&l.AgentUserID,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return domain.Listing{}, err
	}

	l.Status = domain.ListingStatus(statusStr)
	return l, nil
}
