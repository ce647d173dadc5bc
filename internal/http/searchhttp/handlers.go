package searchhttp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"prop_search/internal/domain"
	"prop_search/internal/lib/jsonld"
	"prop_search/internal/lib/llm"
	"prop_search/internal/lib/logger/sl"
	"prop_search/internal/lib/metrics"
	"prop_search/internal/lib/urlquery"
	"prop_search/internal/repository"
	"prop_search/internal/services/descriptions"
	"prop_search/internal/services/geocode"
	"prop_search/internal/services/search"
)

// SearchService описывает поисковое ядро со стороны HTTP.
type SearchService interface {
	Search(ctx context.Context, spec domain.FilterSpecification, p domain.PaginationParams) (*search.Result, error)
	Clusters(ctx context.Context, spec domain.FilterSpecification, zoom int) ([]search.Cluster, error)
}

// ListingProvider — доступ к отдельным объявлениям каталога.
type ListingProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error)
}

// DescriptionService — генерация описаний объявлений.
type DescriptionService interface {
	GenerateForListing(ctx context.Context, listingID uuid.UUID, rateKey string) (*llm.GenerateDescriptionResponse, error)
}

type photoResolver interface {
	PhotoURLs(ctx context.Context, keys []string) []string
}

// Server — HTTP-слой поиска: разбирает канонические URL-параметры,
// зовёт поисковое ядро и отдаёт JSON.
type Server struct {
	log          *slog.Logger
	search       SearchService
	listings     ListingProvider
	descriptions DescriptionService
	geocoder     *geocode.Resolver
	photos       photoResolver
	metrics      *metrics.SearchMetrics
	jsonld       *jsonld.Generator
	baseURL      string
}

// NewServer создаёт HTTP-слой поиска.
func NewServer(
	log *slog.Logger,
	searchService SearchService,
	listings ListingProvider,
	descriptionService DescriptionService,
	geocoder *geocode.Resolver,
	photos photoResolver,
	m *metrics.SearchMetrics,
	baseURL string,
) *Server {
	return &Server{
		log:          log,
		search:       searchService,
		listings:     listings,
		descriptions: descriptionService,
		geocoder:     geocoder,
		photos:       photos,
		metrics:      m,
		jsonld:       jsonld.NewGenerator(),
		baseURL:      baseURL,
	}
}

// handleSearch — GET /api/v1/propiedades.
// Параметры фильтров разбираются снисходительно: битое значение
// отбрасывается, запрос никогда не падает из-за плохого URL.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	spec := urlquery.Parse(r.URL.Query())
	pagination := parsePagination(r)

	result, err := s.search.Search(r.Context(), spec, pagination)
	if err != nil {
		s.log.Error("search failed", sl.Err(err))
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, resultToResponse(r.Context(), result, s.photos))
}

// handleClusters — GET /api/v1/propiedades/clusters.
func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	spec := urlquery.Parse(r.URL.Query())

	zoom := domain.DefaultZoom
	if raw := r.URL.Query().Get("zoom"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			zoom = parsed
		}
	}

	clusters, err := s.search.Clusters(r.Context(), spec, zoom)
	if err != nil {
		s.log.Error("clusters failed", sl.Err(err))
		writeError(w, http.StatusInternalServerError, "clusters failed")
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(clusters, func(c search.Cluster, _ int) clusterResponse {
		return clusterToResponse(c)
	}))
}

// handleGetListing — GET /api/v1/propiedades/{id}.
func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	listing, err := s.listings.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}
		s.log.Error("failed to get listing", sl.Err(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, listingToResponse(listing, s.photos.PhotoURLs(r.Context(), listing.PhotoKeys)))
}

// handleListingJSONLD — GET /api/v1/propiedades/{id}/jsonld:
// schema.org разметка объявления для поисковой выдачи.
func (s *Server) handleListingJSONLD(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	listing, err := s.listings.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}
		s.log.Error("failed to get listing", sl.Err(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	doc := s.jsonld.GenerateListingJSONLD(listing, s.baseURL)
	s.jsonld.AddImages(doc, s.photos.PhotoURLs(r.Context(), listing.PhotoKeys))

	w.Header().Set("Content-Type", "application/ld+json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		s.log.Error("failed to encode JSON-LD", sl.Err(err))
	}
}

// handleCities — GET /api/v1/ciudades: таблица именованных областей.
func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lo.Map(s.geocoder.CityShortcuts(), func(c domain.CityShortcut, _ int) cityResponse {
		return cityToResponse(c)
	}))
}

// handleGenerateDescription — POST /api/v1/propiedades/{id}/descripcion.
// Требует роль агента; лимитируется по пользователю.
func (s *Server) handleGenerateDescription(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	resp, err := s.descriptions.GenerateForListing(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, descriptions.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		case errors.Is(err, descriptions.ErrDisabled):
			writeError(w, http.StatusServiceUnavailable, "description generation is disabled")
		case errors.Is(err, repository.ErrListingNotFound):
			writeError(w, http.StatusNotFound, "listing not found")
		default:
			s.log.Error("description generation failed", sl.Err(err))
			writeError(w, http.StatusBadGateway, "description generation failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleMetrics — GET /api/v1/metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.GetStats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parsePagination(r *http.Request) domain.PaginationParams {
	p := domain.PaginationParams{
		PageToken: r.URL.Query().Get("page_token"),
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if size, err := strconv.ParseInt(raw, 10, 32); err == nil {
			p.PageSize = int32(size)
		}
	}
	return p
}
