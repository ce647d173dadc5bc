package geocode

import (
	"log/slog"

	"prop_search/internal/domain"
	"prop_search/internal/lib/geo"
)

// Suggestion — результат выбора в автокомплите внешнего геокодера.
// Геокодер — чёрный ящик: при его сбое критерий локации просто
// не обновляется, ядро фильтрации сбоя не видит.
type Suggestion struct {
	Label     string
	Latitude  float64
	Longitude float64
	PlaceID   string
	Types     []string
	// Viewport — углы рекомендуемой области показа, если геокодер её дал
	Viewport *Viewport
}

// Viewport — два противоположных угла области от геокодера.
// Порядок углов не гарантируется: границы извлекаются как max/min.
type Viewport struct {
	CornerA geo.Point
	CornerB geo.Point
}

// Resolver — разрешение геозапросов: именованные области
// и конвертация подсказок геокодера в критерии локации.
type Resolver struct {
	log *slog.Logger
}

// New создаёт новый ресолвер.
func New(log *slog.Logger) *Resolver {
	return &Resolver{log: log}
}

// ResolveCity возвращает критерий локации и радиус поиска
// для именованной области.
func (r *Resolver) ResolveCity(slug string) (*domain.LocationCriterion, float64, bool) {
	shortcut, ok := domain.CityShortcutBySlug(slug)
	if !ok {
		r.log.Debug("unknown city shortcut", slog.String("slug", slug))
		return nil, 0, false
	}

	criterion := shortcut.Criterion()
	return &criterion, shortcut.RadiusKm, true
}

// CityShortcuts возвращает таблицу именованных областей.
func (r *Resolver) CityShortcuts() []domain.CityShortcut {
	return domain.CityShortcuts
}

// CriterionFromSuggestion конвертирует подсказку геокодера в критерий
// локации. Область подсказки извлекается как max/min углы; вырожденная
// область отбрасывается, и поиск пойдёт в режиме радиуса.
func CriterionFromSuggestion(s Suggestion) domain.LocationCriterion {
	criterion := domain.LocationCriterion{
		Label:     s.Label,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Types:     s.Types,
	}

	if s.PlaceID != "" {
		placeID := s.PlaceID
		criterion.PlaceID = &placeID
	}

	if s.Viewport != nil {
		bounds := geo.Bounds{
			North: max(s.Viewport.CornerA.Lat, s.Viewport.CornerB.Lat),
			South: min(s.Viewport.CornerA.Lat, s.Viewport.CornerB.Lat),
			East:  max(s.Viewport.CornerA.Lng, s.Viewport.CornerB.Lng),
			West:  min(s.Viewport.CornerA.Lng, s.Viewport.CornerB.Lng),
		}
		if bounds.Valid() {
			criterion.Bounds = &bounds
		}
	}

	return criterion
}
