package searchhttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"prop_search/internal/domain"
	"prop_search/internal/lib/geo"
	"prop_search/internal/services/search"
)

type listingResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Address      string   `json:"address,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	City         string   `json:"city,omitempty"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Price        int64    `json:"price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	Operation    string   `json:"operation"`
	PropertyType string   `json:"property_type"`
	Rooms        int32    `json:"rooms,omitempty"`
	Bathrooms    int32    `json:"bathrooms,omitempty"`
	Features     []string `json:"features,omitempty"`
	PhotoURLs    []string `json:"photo_urls,omitempty"`
}

type statsResponse struct {
	Total      int  `json:"total"`
	Matched    int  `json:"matched"`
	Percentage int  `json:"percentage"`
	HasResults bool `json:"has_results"`
}

type viewportResponse struct {
	Center geo.Point `json:"center"`
	Zoom   int       `json:"zoom"`
}

type searchResponse struct {
	Listings      []listingResponse `json:"listings"`
	NextPageToken string            `json:"next_page_token,omitempty"`
	TotalCount    int32             `json:"total_count"`
	Stats         statsResponse     `json:"stats"`
	Viewport      viewportResponse  `json:"viewport"`
	CanonicalPath string            `json:"canonical_path"`
}

type clusterResponse struct {
	Geohash  string     `json:"geohash"`
	Center   geo.Point  `json:"center"`
	Bounds   geo.Bounds `json:"bounds"`
	Count    int        `json:"count"`
	MinPrice int64      `json:"min_price,omitempty"`
	MaxPrice int64      `json:"max_price,omitempty"`
	Listings []string   `json:"listing_ids"`
}

type cityResponse struct {
	Slug     string  `json:"slug"`
	Label    string  `json:"label"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius_km"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func listingToResponse(l domain.Listing, photoURLs []string) listingResponse {
	return listingResponse{
		ID:           l.ID.String(),
		Title:        l.Title,
		Description:  l.Description,
		Address:      l.Address,
		Neighborhood: l.Neighborhood,
		City:         l.City,
		Lat:          l.Latitude,
		Lng:          l.Longitude,
		Price:        l.PriceOrZero(),
		Currency:     l.Currency,
		Operation:    l.OperationType,
		PropertyType: l.PropertyType,
		Rooms:        lo.FromPtr(l.Rooms),
		Bathrooms:    lo.FromPtr(l.Bathrooms),
		Features:     l.Features,
		PhotoURLs:    photoURLs,
	}
}

func statsToResponse(s domain.ResultStats) statsResponse {
	return statsResponse{
		Total:      s.Total,
		Matched:    s.Matched,
		Percentage: s.Percentage,
		HasResults: s.HasResults,
	}
}

// viewportToResponse разворачивает состояние области карты для ответа.
// Отсутствующий центр заменяется центром по умолчанию: клиент карты
// всегда получает координаты для отрисовки.
func viewportToResponse(v domain.ViewportState) viewportResponse {
	center := domain.DefaultCenter
	if v.Center != nil {
		center = *v.Center
	}
	return viewportResponse{Center: center, Zoom: v.Zoom}
}

func resultToResponse(ctx context.Context, result *search.Result, photos photoResolver) searchResponse {
	return searchResponse{
		Listings: lo.Map(result.Listings.Items, func(l domain.Listing, _ int) listingResponse {
			return listingToResponse(l, photos.PhotoURLs(ctx, l.PhotoKeys))
		}),
		NextPageToken: result.Listings.NextPageToken,
		TotalCount:    result.Listings.TotalCount,
		Stats:         statsToResponse(result.Stats),
		Viewport:      viewportToResponse(result.Viewport),
		CanonicalPath: result.CanonicalPath,
	}
}

func clusterToResponse(c search.Cluster) clusterResponse {
	return clusterResponse{
		Geohash:  c.Geohash,
		Center:   c.Center,
		Bounds:   c.Bounds,
		Count:    c.Count,
		MinPrice: c.MinPrice,
		MaxPrice: c.MaxPrice,
		Listings: lo.Map(c.ListingIDs, func(id uuid.UUID, _ int) string {
			return id.String()
		}),
	}
}

func cityToResponse(c domain.CityShortcut) cityResponse {
	return cityResponse{
		Slug:     c.Slug,
		Label:    c.Label,
		Lat:      c.Latitude,
		Lng:      c.Longitude,
		RadiusKm: c.RadiusKm,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
