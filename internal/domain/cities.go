package domain

import "strings"

// CityShortcut — именованная область поиска с фиксированными координатами.
// Используется при навигации по районам без явных координат в URL.
type CityShortcut struct {
	Slug      string
	Label     string
	Latitude  float64
	Longitude float64
	// RadiusKm — радиус поиска для именованной области. Шире радиуса
	// по умолчанию: область покрывает район целиком, а не точку
	RadiusKm float64
}

// CityShortcutRadiusKm — радиус поиска для всех именованных областей.
const CityShortcutRadiusKm = 15.0

// CityShortcuts — фиксированная таблица именованных областей поиска
// (районы Буэнос-Айреса).
var CityShortcuts = []CityShortcut{
	{Slug: "palermo", Label: "Palermo", Latitude: -34.5889, Longitude: -58.4298, RadiusKm: CityShortcutRadiusKm},
	{Slug: "recoleta", Label: "Recoleta", Latitude: -34.5875, Longitude: -58.3974, RadiusKm: CityShortcutRadiusKm},
	{Slug: "belgrano", Label: "Belgrano", Latitude: -34.5627, Longitude: -58.4565, RadiusKm: CityShortcutRadiusKm},
	{Slug: "caballito", Label: "Caballito", Latitude: -34.6197, Longitude: -58.4456, RadiusKm: CityShortcutRadiusKm},
	{Slug: "san-telmo", Label: "San Telmo", Latitude: -34.6211, Longitude: -58.3724, RadiusKm: CityShortcutRadiusKm},
	{Slug: "puerto-madero", Label: "Puerto Madero", Latitude: -34.6118, Longitude: -58.3628, RadiusKm: CityShortcutRadiusKm},
	{Slug: "almagro", Label: "Almagro", Latitude: -34.6064, Longitude: -58.4206, RadiusKm: CityShortcutRadiusKm},
	{Slug: "flores", Label: "Flores", Latitude: -34.6287, Longitude: -58.4636, RadiusKm: CityShortcutRadiusKm},
	{Slug: "nunez", Label: "Núñez", Latitude: -34.5450, Longitude: -58.4636, RadiusKm: CityShortcutRadiusKm},
	{Slug: "colegiales", Label: "Colegiales", Latitude: -34.5735, Longitude: -58.4491, RadiusKm: CityShortcutRadiusKm},
	{Slug: "villa-crespo", Label: "Villa Crespo", Latitude: -34.5997, Longitude: -58.4386, RadiusKm: CityShortcutRadiusKm},
	{Slug: "villa-urquiza", Label: "Villa Urquiza", Latitude: -34.5702, Longitude: -58.4872, RadiusKm: CityShortcutRadiusKm},
	{Slug: "microcentro", Label: "Microcentro", Latitude: -34.6037, Longitude: -58.3816, RadiusKm: CityShortcutRadiusKm},
}

// CityShortcutBySlug возвращает именованную область по слагу.
func CityShortcutBySlug(slug string) (CityShortcut, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, c := range CityShortcuts {
		if c.Slug == slug {
			return c, true
		}
	}
	return CityShortcut{}, false
}

// CityShortcutForLocation подбирает именованную область, совпадающую
// с критерием локации (по ярлыку и координатам). Используется
// сериализацией URL для компактной записи ciudad=slug.
func CityShortcutForLocation(loc LocationCriterion) (CityShortcut, bool) {
	for _, c := range CityShortcuts {
		if c.Label == loc.Label && c.Latitude == loc.Latitude && c.Longitude == loc.Longitude {
			return c, true
		}
	}
	return CityShortcut{}, false
}

// Criterion строит критерий локации из именованной области.
func (c CityShortcut) Criterion() LocationCriterion {
	return LocationCriterion{
		Label:     c.Label,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Types:     []string{"neighborhood"},
	}
}
