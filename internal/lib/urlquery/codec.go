package urlquery

import (
	"net/url"
	"strconv"

	"prop_search/internal/domain"
	"prop_search/internal/lib/geo"
)

// Канонические имена URL-параметров поиска.
const (
	ParamOperation    = "operacion"
	ParamPropertyType = "tipo"
	ParamLocation     = "ubicacion"
	ParamLat          = "lat"
	ParamLng          = "lng"
	ParamRadius       = "radio"
	ParamCity         = "ciudad"
	ParamPriceMin     = "precio_min"
	ParamPriceMax     = "precio_max"
	ParamRooms        = "ambientes"
	ParamBathrooms    = "banos"
)

// SearchBasePath — базовый путь страницы поиска.
const SearchBasePath = "/propiedades"

// Parse восстанавливает спецификацию фильтров из URL-параметров.
// Кодек намеренно снисходителен: URL может быть отредактирован вручную
// или устареть, поэтому некорректное значение любого параметра молча
// отбрасывается (поле остаётся в нейтральном значении), ошибок нет.
func Parse(values url.Values) domain.FilterSpecification {
	spec := domain.DefaultFilterSpecification()

	if slug := values.Get(ParamOperation); slug != "" {
		label := domain.OperationFromSlug(slug)
		spec.Operation = &label
	}

	if slug := values.Get(ParamPropertyType); slug != "" {
		label := domain.PropertyTypeFromSlug(slug)
		spec.PropertyType = &label
	}

	// Именованная область разрешается первой: явная тройка
	// ubicacion/lat/lng имеет приоритет и перезаписывает её.
	if slug := values.Get(ParamCity); slug != "" {
		if shortcut, ok := domain.CityShortcutBySlug(slug); ok {
			criterion := shortcut.Criterion()
			spec.Location = &criterion
			spec.RadiusKm = shortcut.RadiusKm
		}
	}

	if lat, lng, ok := parseCoordinates(values); ok {
		spec.Location = &domain.LocationCriterion{
			Label:     values.Get(ParamLocation),
			Latitude:  lat,
			Longitude: lng,
		}
		spec.RadiusKm = domain.DefaultRadiusKm
	}

	if raw := values.Get(ParamRadius); raw != "" {
		if radius, err := strconv.ParseFloat(raw, 64); err == nil && radius > 0 {
			spec.RadiusKm = radius
		}
	}

	spec.PriceMin = parseInt64(values.Get(ParamPriceMin))
	spec.PriceMax = parseInt64(values.Get(ParamPriceMax))
	// Перевёрнутый диапазон нарушает инвариант min <= max: оба поля отбрасываются
	if spec.PriceMin != nil && spec.PriceMax != nil && *spec.PriceMin > *spec.PriceMax {
		spec.PriceMin = nil
		spec.PriceMax = nil
	}

	spec.Rooms = parseCount(values.Get(ParamRooms))
	spec.Bathrooms = parseCount(values.Get(ParamBathrooms))

	return spec
}

// Serialize — обратная операция: спецификация в канонические URL-параметры.
// Поле опускается, когда равно значению по умолчанию, поэтому поиск
// по умолчанию даёт чистый URL без параметров.
func Serialize(spec domain.FilterSpecification) url.Values {
	values := url.Values{}

	if spec.Operation != nil && *spec.Operation != domain.OperationVenta && *spec.Operation != domain.OperationAny {
		values.Set(ParamOperation, domain.SlugForOperation(*spec.Operation))
	}

	if spec.PropertyType != nil && *spec.PropertyType != domain.PropertyTypeAny {
		values.Set(ParamPropertyType, domain.SlugForPropertyType(*spec.PropertyType))
	}

	// Область (bounds) критерия в URL не переносится: это сессионное
	// уточнение от геокодера, при переходе по ссылке поиск откатывается
	// в режим радиуса вокруг той же точки.
	radiusBaseline := domain.DefaultRadiusKm
	if spec.Location != nil {
		if shortcut, ok := domain.CityShortcutForLocation(*spec.Location); ok {
			values.Set(ParamCity, shortcut.Slug)
			radiusBaseline = shortcut.RadiusKm
		} else {
			if spec.Location.Label != "" {
				values.Set(ParamLocation, spec.Location.Label)
			}
			values.Set(ParamLat, formatFloat(spec.Location.Latitude))
			values.Set(ParamLng, formatFloat(spec.Location.Longitude))
		}
	}

	if spec.RadiusKm > 0 && spec.RadiusKm != radiusBaseline {
		values.Set(ParamRadius, formatFloat(spec.RadiusKm))
	}

	if spec.PriceMin != nil {
		values.Set(ParamPriceMin, strconv.FormatInt(*spec.PriceMin, 10))
	}
	if spec.PriceMax != nil {
		values.Set(ParamPriceMax, strconv.FormatInt(*spec.PriceMax, 10))
	}

	if spec.Rooms != nil && *spec.Rooms > 0 {
		values.Set(ParamRooms, strconv.FormatInt(int64(*spec.Rooms), 10))
	}
	if spec.Bathrooms != nil && *spec.Bathrooms > 0 {
		values.Set(ParamBathrooms, strconv.FormatInt(int64(*spec.Bathrooms), 10))
	}

	return values
}

// SearchPath собирает канонический путь страницы поиска.
// url.Values.Encode сортирует ключи, так что представление каноническое.
func SearchPath(spec domain.FilterSpecification) string {
	encoded := Serialize(spec).Encode()
	if encoded == "" {
		return SearchBasePath
	}
	return SearchBasePath + "?" + encoded
}

// parseCoordinates разбирает явную пару lat/lng. Пара принимается
// только целиком и только с координатами в допустимых диапазонах.
func parseCoordinates(values url.Values) (float64, float64, bool) {
	rawLat := values.Get(ParamLat)
	rawLng := values.Get(ParamLng)
	if rawLat == "" || rawLng == "" {
		return 0, 0, false
	}

	lat, errLat := strconv.ParseFloat(rawLat, 64)
	lng, errLng := strconv.ParseFloat(rawLng, 64)
	if errLat != nil || errLng != nil || !geo.ValidCoordinates(lat, lng) {
		return 0, 0, false
	}

	return lat, lng, true
}

func parseInt64(raw string) *int64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// parseCount разбирает счётчик комнат/санузлов. Ноль исторически означал
// «фильтр не задан», поэтому значение 0 отбрасывается так же, как
// отсутствующее; явный фильтр «ноль комнат» через URL не выражается.
func parseCount(raw string) *int32 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return nil
	}
	count := int32(v)
	return &count
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
