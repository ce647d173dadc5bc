package domain

import (
	"math"

	"prop_search/internal/lib/geo"
)

const (
	// DefaultRadiusKm — радиус поиска по умолчанию.
	DefaultRadiusKm = 10.0
	// DefaultZoom — зум карты по умолчанию.
	DefaultZoom = 12
)

// DefaultCenter — центр карты по умолчанию (центр Буэнос-Айреса),
// используется когда нет ни критерия локации, ни совпавших объявлений.
var DefaultCenter = geo.Point{Lat: -34.6037, Lng: -58.3816}

// LocationCriterion — разрешённая точка географического запроса.
// Неизменяем после создания: при каждом новом выборе заменяется целиком.
type LocationCriterion struct {
	// Label — человекочитаемый адрес/название
	Label     string
	Latitude  float64
	Longitude float64
	// PlaceID — идентификатор от геокодера, если есть
	PlaceID *string
	// Types — классификация места от геокодера ("neighborhood", "street", ...)
	Types []string
	// Bounds — прямоугольная область; при наличии валидной области
	// фильтрация по ней имеет приоритет над радиусом
	Bounds *geo.Bounds
}

// HasBounds проверяет, что критерий несёт валидную область.
// Вырожденные области игнорируются — поиск откатывается в режим радиуса.
func (c LocationCriterion) HasBounds() bool {
	return c.Bounds != nil && c.Bounds.Valid()
}

// Point возвращает точку критерия.
func (c LocationCriterion) Point() geo.Point {
	return geo.Point{Lat: c.Latitude, Lng: c.Longitude}
}

// FilterSpecification — полное состояние поискового запроса.
// Все поля независимо опциональны: пустая спецификация совпадает
// с любым объявлением. Одна живая спецификация на поисковую сессию,
// при каждом изменении заменяется целиком.
type FilterSpecification struct {
	Location *LocationCriterion
	// RadiusKm — радиус поиска в километрах; имеет значение только
	// когда у критерия локации нет области
	RadiusKm float64
	// Operation — канонический ярлык операции; nil или сентинел
	// OperationAny означают отсутствие фильтра
	Operation *string
	// PropertyType — канонический ярлык типа; nil или PropertyTypeAny
	// означают отсутствие фильтра
	PropertyType *string
	PriceMin     *int64
	PriceMax     *int64
	// Rooms — точное количество комнат; nil означает отсутствие фильтра
	// (явный указатель вместо сентинела 0: ноль комнат — легитимное
	// значение для студий и участков)
	Rooms     *int32
	Bathrooms *int32
	Features  []string
}

// DefaultFilterSpecification — нейтральное значение спецификации.
func DefaultFilterSpecification() FilterSpecification {
	return FilterSpecification{RadiusKm: DefaultRadiusKm}
}

// EffectiveRadiusKm — радиус для фильтрации: неположительный или
// отсутствующий радиус заменяется значением по умолчанию.
func (s FilterSpecification) EffectiveRadiusKm() float64 {
	if s.RadiusKm <= 0 {
		return DefaultRadiusKm
	}
	return s.RadiusKm
}

// HasActiveFilters — true, если задано хоть одно ограничение
// помимо радиуса по умолчанию.
func (s FilterSpecification) HasActiveFilters() bool {
	if s.Location != nil {
		return true
	}
	if s.Operation != nil && *s.Operation != OperationAny {
		return true
	}
	if s.PropertyType != nil && *s.PropertyType != PropertyTypeAny {
		return true
	}
	if s.PriceMin != nil || s.PriceMax != nil {
		return true
	}
	if s.Rooms != nil || s.Bathrooms != nil {
		return true
	}
	if len(s.Features) > 0 {
		return true
	}
	return s.RadiusKm != 0 && s.RadiusKm != DefaultRadiusKm
}

// ResultStats — производная статистика результата поиска.
// Пересчитывается синхронно при каждом изменении спецификации.
type ResultStats struct {
	Total      int
	Matched    int
	// Percentage — доля совпавших объявлений, 0-100, округлённая
	Percentage int
	HasResults bool
}

// ComputeStats считает статистику по исходной и отфильтрованной выборкам.
// При пустой исходной выборке процент равен нулю.
func ComputeStats(total, matched int) ResultStats {
	stats := ResultStats{
		Total:      total,
		Matched:    matched,
		HasResults: matched > 0,
	}
	if total > 0 {
		stats.Percentage = int(math.Round(100 * float64(matched) / float64(total)))
	}
	return stats
}

// ViewportState — производное состояние области карты.
type ViewportState struct {
	// Center — центр карты; nil при нулевом результате без критерия локации,
	// вызывающий код откатывается на DefaultCenter
	Center *geo.Point
	Zoom   int
}

// radiusZoomTable — фиксированное соответствие радиуса поиска уровню зума.
// Только точные совпадения; остальные радиусы получают DefaultZoom.
var radiusZoomTable = map[float64]int{
	1:   15,
	3:   14,
	5:   13,
	10:  12,
	15:  11,
	25:  10,
	50:  9,
	100: 8,
}

// ZoomForRadius возвращает уровень зума для радиуса поиска.
func ZoomForRadius(radiusKm float64) int {
	if zoom, ok := radiusZoomTable[radiusKm]; ok {
		return zoom
	}
	return DefaultZoom
}
