package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"prop_search/internal/domain"
	"prop_search/internal/lib/geo"
	"prop_search/internal/lib/logger/sl"
	"prop_search/internal/lib/metrics"
	"prop_search/internal/lib/urlquery"
)

// ListingSource поставляет каталог объявлений целиком.
// Ядро поиска не запрашивает каталог инкрементально.
type ListingSource interface {
	ListActive(ctx context.Context) ([]domain.Listing, error)
}

// Service — движок композиции фильтров: применяет спецификацию к каталогу
// и считает производные (статистику, область карты, канонический URL).
type Service struct {
	log     *slog.Logger
	source  ListingSource
	metrics *metrics.SearchMetrics
}

// New создаёт поисковый сервис.
func New(log *slog.Logger, source ListingSource, m *metrics.SearchMetrics) *Service {
	return &Service{
		log:     log,
		source:  source,
		metrics: m,
	}
}

// Result — полный результат одного поискового запроса.
type Result struct {
	Listings domain.PaginatedResult[domain.Listing]
	Stats    domain.ResultStats
	Viewport domain.ViewportState
	// CanonicalPath — каноническое представление запроса для навигации
	CanonicalPath string
}

// Search применяет спецификацию фильтров к каталогу.
func (s *Service) Search(ctx context.Context, spec domain.FilterSpecification, p domain.PaginationParams) (*Result, error) {
	const op = "search.Service.Search"

	start := time.Now()

	catalog, err := s.source.ListActive(ctx)
	if err != nil {
		s.log.Error("failed to load listing catalog", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filtered := ApplyAllFilters(catalog, spec)
	stats := domain.ComputeStats(len(catalog), len(filtered))
	viewport := ComputeViewport(spec, filtered)
	page := paginate(filtered, p)

	if s.metrics != nil {
		s.metrics.RecordSearch(time.Since(start), stats.HasResults)
	}

	s.log.Debug("search completed",
		slog.Int("total", stats.Total),
		slog.Int("matched", stats.Matched),
		slog.Int("percentage", stats.Percentage),
	)

	return &Result{
		Listings:      page,
		Stats:         stats,
		Viewport:      viewport,
		CanonicalPath: urlquery.SearchPath(spec),
	}, nil
}

// Clusters строит маркерные кластеры карты для текущей спецификации.
func (s *Service) Clusters(ctx context.Context, spec domain.FilterSpecification, zoom int) ([]Cluster, error) {
	const op = "search.Service.Clusters"

	catalog, err := s.source.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filtered := ApplyAllFilters(catalog, spec)
	return ClusterListings(filtered, zoom), nil
}

// ApplyAllFilters применяет активные предикаты в фиксированном порядке:
// локация, операция, тип, цена, комнаты, санузлы, особенности.
// Порядок влияет только на производительность (самый узкий — первым):
// предикаты — независимые пересечения множеств и коммутируют.
// Отсутствующие критерии прозрачно пропускают выборку дальше.
func ApplyAllFilters(listings []domain.Listing, spec domain.FilterSpecification) []domain.Listing {
	result := listings
	result = FilterByLocation(result, spec.Location, spec.EffectiveRadiusKm())
	result = FilterByOperation(result, spec.Operation)
	result = FilterByPropertyType(result, spec.PropertyType)
	result = FilterByPriceRange(result, spec.PriceMin, spec.PriceMax)
	result = FilterByRooms(result, spec.Rooms)
	result = FilterByBathrooms(result, spec.Bathrooms)
	result = FilterByFeatures(result, spec.Features)
	return result
}

// ComputeViewport выводит состояние области карты.
// При активном критерии локации центр — точка критерия, зум — по радиусу.
// Иначе центр — центроид совпавших объявлений (nil при пустом результате:
// вызывающий код откатывается на domain.DefaultCenter), зум — по умолчанию.
func ComputeViewport(spec domain.FilterSpecification, filtered []domain.Listing) domain.ViewportState {
	if spec.Location != nil {
		center := spec.Location.Point()
		return domain.ViewportState{
			Center: &center,
			Zoom:   domain.ZoomForRadius(spec.EffectiveRadiusKm()),
		}
	}

	var points []geo.Point
	for _, l := range filtered {
		if l.HasValidCoordinates() {
			points = append(points, l.Point())
		}
	}

	if center, ok := geo.Centroid(points); ok {
		return domain.ViewportState{Center: &center, Zoom: domain.DefaultZoom}
	}

	return domain.ViewportState{Zoom: domain.DefaultZoom}
}

// paginate нарезает отфильтрованную выборку по cursor-пагинации.
// Порядок детерминированный: новые объявления первыми.
func paginate(listings []domain.Listing, p domain.PaginationParams) domain.PaginatedResult[domain.Listing] {
	ordered := make([]domain.Listing, len(listings))
	copy(ordered, listings)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	start := 0
	// Некорректный курсор снисходительно трактуется как начало выборки
	if cursor, err := domain.DecodePageCursor(p.PageToken); err == nil && cursor != nil {
		for i, l := range ordered {
			if l.ID == cursor.LastID {
				start = i + 1
				break
			}
		}
	}

	size := int(domain.NormalizePageSize(p.PageSize))
	end := start + size
	if end > len(ordered) {
		end = len(ordered)
	}

	items := ordered[start:end]
	result := domain.PaginatedResult[domain.Listing]{
		Items:      items,
		TotalCount: int32(len(ordered)),
		HasMore:    end < len(ordered),
	}

	if result.HasMore && len(items) > 0 {
		last := items[len(items)-1]
		cursor := domain.PageCursor{LastID: last.ID, LastCreatedAt: last.CreatedAt}
		result.NextPageToken = cursor.Encode()
	}

	return result
}
