package search

import (
	"prop_search/internal/domain"
)

// Session — контроллер состояния одной поисковой сессии: единственный
// источник истины для текущей FilterSpecification. Каждое изменение
// заменяет спецификацию целиком (поля никогда не мутируются на месте)
// и синхронно пересчитывает производные: выборку, статистику, область
// карты. Промежуточных наблюдаемых состояний между изменением и
// пересчётом нет.
//
// Сессия не предназначена для конкурентного использования: каждый
// поиск владеет собственным экземпляром.
type Session struct {
	catalog  []domain.Listing
	spec     domain.FilterSpecification
	filtered []domain.Listing
	stats    domain.ResultStats
	viewport domain.ViewportState
}

// NewSession создаёт сессию над материализованным каталогом
// с нейтральной спецификацией.
func NewSession(catalog []domain.Listing) *Session {
	s := &Session{catalog: catalog}
	s.replace(domain.DefaultFilterSpecification())
	return s
}

// FilterUpdate — частичное обновление спецификации.
type FilterUpdate func(*domain.FilterSpecification)

// WithLocation задаёт критерий локации.
func WithLocation(loc *domain.LocationCriterion) FilterUpdate {
	return func(spec *domain.FilterSpecification) {
		spec.Location = loc
	}
}

// WithRadius задаёт радиус поиска в километрах.
func WithRadius(radiusKm float64) FilterUpdate {
	return func(spec *domain.FilterSpecification) {
		spec.RadiusKm = radiusKm
	}
}

// WithOperation задаёт тип операции.
func WithOperation(operation *string) FilterUpdate {
	return func(spec *domain.FilterSpecification) {
		spec.Operation = operation
	}
}

// WithPropertyType задаёт тип недвижимости.
func WithPropertyType(propertyType *string) FilterUpdate {
	return func(spec *domain.FilterSpecification) {
		spec.PropertyType = propertyType
	}
}

// WithPriceRange задаёт ценовой диапазон.
func WithPriceRange(minPrice, maxPrice *int64) FilterUpdate {
	return func(spec *domain.FilterSpecification) {
		spec.PriceMin = minPrice
		spec.PriceMax = maxPrice
	}
}

// WithRooms задаёт количество комнат.
func WithRooms(rooms *int32) FilterUpdate {
	return func(spec *domain.FilterSpecification) {
		spec.Rooms = rooms
	}
}

// WithBathrooms задаёт количество санузлов.
func WithBathrooms(bathrooms *int32) FilterUpdate {
	return func(spec *domain.FilterSpecification) {
		spec.Bathrooms = bathrooms
	}
}

// WithFeatures задаёт теги особенностей.
func WithFeatures(features []string) FilterUpdate {
	return func(spec *domain.FilterSpecification) {
		spec.Features = features
	}
}

// UpdateFilters применяет произвольный набор обновлений одним атомарным
// шагом: несколько измерений меняются без промежуточного пересчёта
// (например, выбор именованной области задаёт локацию и радиус разом).
func (s *Session) UpdateFilters(updates ...FilterUpdate) {
	next := s.spec
	for _, update := range updates {
		update(&next)
	}
	s.replace(next)
}

// SetLocation заменяет только критерий локации.
func (s *Session) SetLocation(loc *domain.LocationCriterion) {
	s.UpdateFilters(WithLocation(loc))
}

// SetRadius заменяет только радиус поиска.
func (s *Session) SetRadius(radiusKm float64) {
	s.UpdateFilters(WithRadius(radiusKm))
}

// SetOperation заменяет только тип операции.
func (s *Session) SetOperation(operation *string) {
	s.UpdateFilters(WithOperation(operation))
}

// SetPropertyType заменяет только тип недвижимости.
func (s *Session) SetPropertyType(propertyType *string) {
	s.UpdateFilters(WithPropertyType(propertyType))
}

// SetPriceRange заменяет только ценовой диапазон.
func (s *Session) SetPriceRange(minPrice, maxPrice *int64) {
	s.UpdateFilters(WithPriceRange(minPrice, maxPrice))
}

// SetRooms заменяет только количество комнат.
func (s *Session) SetRooms(rooms *int32) {
	s.UpdateFilters(WithRooms(rooms))
}

// SetBathrooms заменяет только количество санузлов.
func (s *Session) SetBathrooms(bathrooms *int32) {
	s.UpdateFilters(WithBathrooms(bathrooms))
}

// SetFeatures заменяет только теги особенностей.
func (s *Session) SetFeatures(features []string) {
	s.UpdateFilters(WithFeatures(features))
}

// ClearFilters сбрасывает спецификацию в нейтральное значение.
func (s *Session) ClearFilters() {
	s.replace(domain.DefaultFilterSpecification())
}

// ClearLocation сбрасывает только критерий локации;
// радиус и остальные измерения не трогаются.
func (s *Session) ClearLocation() {
	next := s.spec
	next.Location = nil
	s.replace(next)
}

// Spec возвращает текущую спецификацию.
func (s *Session) Spec() domain.FilterSpecification {
	return s.spec
}

// Results возвращает текущую отфильтрованную выборку.
func (s *Session) Results() []domain.Listing {
	return s.filtered
}

// Stats возвращает текущую статистику результата.
func (s *Session) Stats() domain.ResultStats {
	return s.stats
}

// Viewport возвращает текущее состояние области карты.
func (s *Session) Viewport() domain.ViewportState {
	return s.viewport
}

// HasActiveFilters — true, если задано хоть одно ограничение
// помимо радиуса по умолчанию.
func (s *Session) HasActiveFilters() bool {
	return s.spec.HasActiveFilters()
}

// replace заменяет спецификацию целиком и пересчитывает производные.
func (s *Session) replace(next domain.FilterSpecification) {
	s.spec = next
	s.filtered = ApplyAllFilters(s.catalog, next)
	s.stats = domain.ComputeStats(len(s.catalog), len(s.filtered))
	s.viewport = ComputeViewport(next, s.filtered)
}
