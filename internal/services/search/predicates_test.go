package search

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"prop_search/internal/domain"
	"prop_search/internal/lib/geo"
)

func makeListing(title string, lat, lng float64) domain.Listing {
	return domain.Listing{
		ID:            uuid.New(),
		Title:         title,
		Latitude:      lat,
		Longitude:     lng,
		OperationType: domain.OperationVenta,
		PropertyType:  domain.PropertyTypeDepartamento,
		Status:        domain.ListingStatusActive,
		CreatedAt:     time.Now(),
	}
}

func ptrInt64(v int64) *int64 { return &v }
func ptrInt32(v int32) *int32 { return &v }
func ptrStr(v string) *string { return &v }

func testCatalog() []domain.Listing {
	// Обелиск, Palermo, Belgrano и Ла-Плата (~52 км от центра)
	obelisco := makeListing("Obelisco", -34.6037, -58.3816)
	obelisco.Price = ptrInt64(100000)
	obelisco.Rooms = ptrInt32(2)
	obelisco.Bathrooms = ptrInt32(1)

	palermo := makeListing("Palermo", -34.5889, -58.4298)
	palermo.Price = ptrInt64(185000)
	palermo.Rooms = ptrInt32(3)
	palermo.Bathrooms = ptrInt32(2)
	palermo.OperationType = domain.OperationAlquiler
	palermo.Features = []string{"balcón", "pileta"}

	belgrano := makeListing("Belgrano", -34.5627, -58.4565)
	belgrano.Price = ptrInt64(520000)
	belgrano.PropertyType = domain.PropertyTypeCasa
	belgrano.Rooms = ptrInt32(5)

	laPlata := makeListing("La Plata", -34.9215, -57.9545)
	laPlata.Price = ptrInt64(90000)

	return []domain.Listing{obelisco, palermo, belgrano, laPlata}
}

func titles(listings []domain.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.Title)
	}
	return out
}

func TestFilterByLocation_NilCriterionIsIdentity(t *testing.T) {
	catalog := testCatalog()

	got := FilterByLocation(catalog, nil, 5)
	if len(got) != len(catalog) {
		t.Errorf("nil criterion must pass everything, got %v", titles(got))
	}
}

func TestFilterByLocation_Radius(t *testing.T) {
	catalog := testCatalog()
	center := &domain.LocationCriterion{Label: "Obelisco", Latitude: -34.6037, Longitude: -58.3816}

	// 10 км вокруг Обелиска: Ла-Плата отсеивается
	got := FilterByLocation(catalog, center, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 listings within 10 km, got %v", titles(got))
	}

	// 1 км: остаётся только сам Обелиск
	got = FilterByLocation(catalog, center, 1)
	if len(got) != 1 || got[0].Title != "Obelisco" {
		t.Errorf("expected only Obelisco within 1 km, got %v", titles(got))
	}
}

func TestFilterByLocation_Monotonicity(t *testing.T) {
	catalog := testCatalog()
	center := &domain.LocationCriterion{Latitude: -34.6037, Longitude: -58.3816}

	// С ростом радиуса результат может только расширяться
	prev := 0
	for _, radius := range []float64{1, 5, 10, 25, 100} {
		got := len(FilterByLocation(catalog, center, radius))
		if got < prev {
			t.Errorf("radius %f shrank result: %d < %d", radius, got, prev)
		}
		prev = got
	}
}

func TestFilterByLocation_NonPositiveRadiusFallsBack(t *testing.T) {
	catalog := testCatalog()
	center := &domain.LocationCriterion{Latitude: -34.6037, Longitude: -58.3816}

	got := FilterByLocation(catalog, center, 0)
	want := FilterByLocation(catalog, center, domain.DefaultRadiusKm)
	if len(got) != len(want) {
		t.Errorf("zero radius must behave as default radius: %d vs %d", len(got), len(want))
	}
}

func TestFilterByLocation_BoundsTakePrecedenceOverRadius(t *testing.T) {
	catalog := testCatalog()
	criterion := &domain.LocationCriterion{
		Latitude:  -34.6037,
		Longitude: -58.3816,
		// Узкая область вокруг Обелиска
		Bounds: &geo.Bounds{North: -34.60, South: -34.61, East: -58.37, West: -58.39},
	}

	// Радиус покрыл бы весь город, но область строго приоритетнее
	got := FilterByLocation(catalog, criterion, 100)
	if len(got) != 1 || got[0].Title != "Obelisco" {
		t.Errorf("bounds must win over radius, got %v", titles(got))
	}
}

func TestFilterByLocation_DegenerateBoundsFallBackToRadius(t *testing.T) {
	catalog := testCatalog()
	criterion := &domain.LocationCriterion{
		Latitude:  -34.6037,
		Longitude: -58.3816,
		Bounds:    &geo.Bounds{North: -34.60, South: -34.60, East: -58.37, West: -58.39},
	}

	got := FilterByLocation(catalog, criterion, 10)
	if len(got) != 3 {
		t.Errorf("degenerate bounds must fall back to radius mode, got %v", titles(got))
	}
}

func TestFilterByLocation_InvalidCoordinatesExcluded(t *testing.T) {
	broken := makeListing("Broken", 120, -58.38)
	catalog := append(testCatalog(), broken)
	center := &domain.LocationCriterion{Latitude: -34.6037, Longitude: -58.3816}

	got := FilterByLocation(catalog, center, 10000)
	for _, l := range got {
		if l.Title == "Broken" {
			t.Error("listing with invalid coordinates must never match a geo criterion")
		}
	}
}

func TestFilterByOperation(t *testing.T) {
	catalog := testCatalog()

	if got := FilterByOperation(catalog, nil); len(got) != len(catalog) {
		t.Error("nil operation must be identity")
	}
	if got := FilterByOperation(catalog, ptrStr(domain.OperationAny)); len(got) != len(catalog) {
		t.Error("any-operation sentinel must be identity")
	}

	got := FilterByOperation(catalog, ptrStr(domain.OperationAlquiler))
	if len(got) != 1 || got[0].Title != "Palermo" {
		t.Errorf("expected only the rental listing, got %v", titles(got))
	}

	// Слаг эквивалентен каноническому ярлыку
	bySlug := FilterByOperation(catalog, ptrStr("alquiler"))
	if len(bySlug) != len(got) {
		t.Errorf("slug and label must filter identically: %v vs %v", titles(bySlug), titles(got))
	}
}

func TestFilterByPropertyType(t *testing.T) {
	catalog := testCatalog()

	got := FilterByPropertyType(catalog, ptrStr("casa"))
	if len(got) != 1 || got[0].Title != "Belgrano" {
		t.Errorf("expected only the house, got %v", titles(got))
	}

	if got := FilterByPropertyType(catalog, ptrStr(domain.PropertyTypeAny)); len(got) != len(catalog) {
		t.Error("any-type sentinel must be identity")
	}
}

func TestFilterByPriceRange(t *testing.T) {
	catalog := testCatalog()

	if got := FilterByPriceRange(catalog, nil, nil); len(got) != len(catalog) {
		t.Error("open range must be identity")
	}

	// Границы включительно
	got := FilterByPriceRange(catalog, ptrInt64(100000), ptrInt64(185000))
	if len(got) != 2 {
		t.Errorf("expected inclusive bounds to match 2 listings, got %v", titles(got))
	}

	got = FilterByPriceRange(catalog, ptrInt64(600000), nil)
	if len(got) != 0 {
		t.Errorf("expected no listings above 600000, got %v", titles(got))
	}
}

func TestFilterByPriceRange_MissingPriceActsAsZero(t *testing.T) {
	noPrice := makeListing("Sin precio", -34.60, -58.38)
	catalog := []domain.Listing{noPrice}

	if got := FilterByPriceRange(catalog, ptrInt64(1), nil); len(got) != 0 {
		t.Error("listing without price must fail a positive minimum")
	}
	if got := FilterByPriceRange(catalog, nil, ptrInt64(100)); len(got) != 1 {
		t.Error("listing without price must pass a pure maximum")
	}
}

func TestFilterByRooms(t *testing.T) {
	catalog := testCatalog()

	got := FilterByRooms(catalog, ptrInt32(3))
	if len(got) != 1 || got[0].Title != "Palermo" {
		t.Errorf("expected the 3-room listing, got %v", titles(got))
	}

	// Явный ноль: объявления без комнат (участки, студии)
	got = FilterByRooms(catalog, ptrInt32(0))
	if len(got) != 1 || got[0].Title != "La Plata" {
		t.Errorf("explicit zero must match listings without rooms, got %v", titles(got))
	}

	if got := FilterByRooms(catalog, nil); len(got) != len(catalog) {
		t.Error("nil rooms must be identity")
	}
}

func TestFilterByBathrooms(t *testing.T) {
	catalog := testCatalog()

	got := FilterByBathrooms(catalog, ptrInt32(2))
	if len(got) != 1 || got[0].Title != "Palermo" {
		t.Errorf("expected the 2-bathroom listing, got %v", titles(got))
	}
}

func TestFilterByFeatures(t *testing.T) {
	catalog := testCatalog()

	got := FilterByFeatures(catalog, []string{"balcón"})
	if len(got) != 1 || got[0].Title != "Palermo" {
		t.Errorf("expected the listing with balcón, got %v", titles(got))
	}

	// Все теги сразу, без учёта регистра
	got = FilterByFeatures(catalog, []string{"BALCÓN", "Pileta"})
	if len(got) != 1 {
		t.Errorf("feature match must be case-insensitive and conjunctive, got %v", titles(got))
	}

	got = FilterByFeatures(catalog, []string{"balcón", "cochera"})
	if len(got) != 0 {
		t.Errorf("missing tag must exclude the listing, got %v", titles(got))
	}

	if got := FilterByFeatures(catalog, nil); len(got) != len(catalog) {
		t.Error("empty feature list must be identity")
	}
}
