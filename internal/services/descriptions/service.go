package descriptions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"prop_search/internal/domain"
	"prop_search/internal/lib/llm"
	"prop_search/internal/lib/logger/sl"
	"prop_search/internal/lib/metrics"
	"prop_search/internal/lib/ratelimit"
)

// ListingProvider нужен для получения данных объявления перед генерацией.
type ListingProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error)
}

var (
	ErrRateLimited = errors.New("description generation rate limit exceeded")
	ErrDisabled    = errors.New("description generation is disabled")
)

// Service — генерация описаний объявлений через внешний LLM.
// Контракт fire-and-forget: сбой генерации никогда не влияет
// на каталог или поиск.
type Service struct {
	log       *slog.Logger
	llmClient llm.Client
	listings  ListingProvider
	limiter   *ratelimit.Store
	metrics   *metrics.SearchMetrics
}

// New создаёт сервис генерации описаний.
func New(log *slog.Logger, llmClient llm.Client, listings ListingProvider, limiter *ratelimit.Store, m *metrics.SearchMetrics) *Service {
	return &Service{
		log:       log,
		llmClient: llmClient,
		listings:  listings,
		limiter:   limiter,
		metrics:   m,
	}
}

// GenerateForListing генерирует заголовок и описание для объявления.
// rateKey — идентификатор вызывающего пользователя для лимитирования.
func (s *Service) GenerateForListing(ctx context.Context, listingID uuid.UUID, rateKey string) (*llm.GenerateDescriptionResponse, error) {
	const op = "descriptions.Service.GenerateForListing"

	if !s.llmClient.IsEnabled() {
		return nil, fmt.Errorf("%s: %w", op, ErrDisabled)
	}

	if !s.limiter.Allow(rateKey) {
		s.log.Warn("description generation rate limited", slog.String("user", rateKey))
		return nil, fmt.Errorf("%s: %w", op, ErrRateLimited)
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req := llm.GenerateDescriptionRequest{
		PropertyType:        listing.PropertyType,
		Operation:           listing.OperationType,
		Address:             listing.Address,
		Neighborhood:        listing.Neighborhood,
		City:                listing.City,
		Price:               listing.Price,
		Currency:            listing.Currency,
		Rooms:               listing.Rooms,
		Bathrooms:           listing.Bathrooms,
		Features:            listing.Features,
		ExistingTitle:       listing.Title,
		ExistingDescription: listing.Description,
	}

	start := time.Now()
	resp, err := s.llmClient.GenerateDescription(ctx, req)
	if s.metrics != nil {
		s.metrics.RecordLLMCall(time.Since(start), err)
	}
	if err != nil {
		s.log.Error("failed to generate description",
			slog.String("listing_id", listingID.String()),
			sl.Err(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("description generated",
		slog.String("listing_id", listingID.String()),
		slog.Float64("confidence", resp.Confidence),
	)

	return resp, nil
}
