package search

import (
	"strings"

	"github.com/samber/lo"

	"prop_search/internal/domain"
	"prop_search/internal/lib/geo"
)

// Предикаты фильтрации. Каждый предикат — чистая функция
// (listings, criterion) -> listings' с контрактом: отсутствующий или
// нейтральный критерий означает тождественное преобразование.

// FilterByLocation оставляет объявления, попадающие в географический критерий.
// Если критерий несёт валидную область, фильтрация идёт по вхождению
// в область; область строго приоритетнее радиуса. Иначе оставляются
// объявления в пределах radiusKm от точки критерия (неположительный
// радиус заменяется радиусом по умолчанию). Объявления с координатами
// вне допустимых диапазонов считаются несовпавшими.
func FilterByLocation(listings []domain.Listing, loc *domain.LocationCriterion, radiusKm float64) []domain.Listing {
	if loc == nil {
		return listings
	}

	if loc.HasBounds() {
		bounds := *loc.Bounds
		var filtered []domain.Listing
		for _, l := range listings {
			if l.HasValidCoordinates() && geo.PointInBounds(l.Latitude, l.Longitude, bounds) {
				filtered = append(filtered, l)
			}
		}
		return filtered
	}

	if radiusKm <= 0 {
		radiusKm = domain.DefaultRadiusKm
	}

	var filtered []domain.Listing
	for _, l := range listings {
		if !l.HasValidCoordinates() {
			continue
		}
		if geo.DistanceKm(loc.Latitude, loc.Longitude, l.Latitude, l.Longitude) <= radiusKm {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

// FilterByOperation фильтрует по типу операции. Известные слаги приводятся
// к каноническому ярлыку, неизвестные сравниваются буквально.
// Сентинел «любая операция» — нейтральное значение.
func FilterByOperation(listings []domain.Listing, operation *string) []domain.Listing {
	if operation == nil {
		return listings
	}

	label := domain.OperationFromSlug(*operation)
	if label == domain.OperationAny {
		return listings
	}

	return lo.Filter(listings, func(l domain.Listing, _ int) bool {
		return l.OperationType == label
	})
}

// FilterByPropertyType фильтрует по типу недвижимости, по той же схеме
// слагов, что и операции. Сентинел «любой тип» — нейтральное значение.
func FilterByPropertyType(listings []domain.Listing, propertyType *string) []domain.Listing {
	if propertyType == nil {
		return listings
	}

	label := domain.PropertyTypeFromSlug(*propertyType)
	if label == domain.PropertyTypeAny {
		return listings
	}

	return lo.Filter(listings, func(l domain.Listing, _ int) bool {
		return l.PropertyType == label
	})
}

// FilterByPriceRange фильтрует по диапазону цены (границы включительно).
// Объявление без цены трактуется как цена 0 и не пройдёт диапазон
// с положительным минимумом.
func FilterByPriceRange(listings []domain.Listing, minPrice, maxPrice *int64) []domain.Listing {
	if minPrice == nil && maxPrice == nil {
		return listings
	}

	return lo.Filter(listings, func(l domain.Listing, _ int) bool {
		price := l.PriceOrZero()
		if minPrice != nil && price < *minPrice {
			return false
		}
		if maxPrice != nil && price > *maxPrice {
			return false
		}
		return true
	})
}

// FilterByRooms фильтрует по точному количеству комнат.
// nil означает отсутствие фильтра; явный 0 — поиск студий и участков
// без комнат (отсутствующее количество комнат трактуется как 0).
func FilterByRooms(listings []domain.Listing, rooms *int32) []domain.Listing {
	if rooms == nil {
		return listings
	}

	return lo.Filter(listings, func(l domain.Listing, _ int) bool {
		return countOrZero(l.Rooms) == *rooms
	})
}

// FilterByBathrooms фильтрует по точному количеству санузлов,
// по той же схеме, что и комнаты.
func FilterByBathrooms(listings []domain.Listing, bathrooms *int32) []domain.Listing {
	if bathrooms == nil {
		return listings
	}

	return lo.Filter(listings, func(l domain.Listing, _ int) bool {
		return countOrZero(l.Bathrooms) == *bathrooms
	})
}

// FilterByFeatures оставляет объявления, несущие все запрошенные
// теги особенностей (без учёта регистра).
func FilterByFeatures(listings []domain.Listing, features []string) []domain.Listing {
	if len(features) == 0 {
		return listings
	}

	return lo.Filter(listings, func(l domain.Listing, _ int) bool {
		for _, want := range features {
			if !hasFeature(l.Features, want) {
				return false
			}
		}
		return true
	})
}

func hasFeature(features []string, want string) bool {
	for _, f := range features {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

func countOrZero(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
