package urlquery

import (
	"net/url"
	"testing"

	"prop_search/internal/domain"
)

func TestParse_EmptyQuery(t *testing.T) {
	spec := Parse(url.Values{})

	if spec.Location != nil {
		t.Errorf("expected no location, got %+v", spec.Location)
	}
	if spec.RadiusKm != domain.DefaultRadiusKm {
		t.Errorf("expected default radius %f, got %f", domain.DefaultRadiusKm, spec.RadiusKm)
	}
	if spec.Operation != nil || spec.PropertyType != nil {
		t.Error("expected neutral operation and property type")
	}
	if spec.PriceMin != nil || spec.PriceMax != nil || spec.Rooms != nil || spec.Bathrooms != nil {
		t.Error("expected no numeric filters")
	}
	if spec.HasActiveFilters() {
		t.Error("default spec must not report active filters")
	}
}

func TestSearchPath_DefaultSpec(t *testing.T) {
	path := SearchPath(domain.DefaultFilterSpecification())
	if path != "/propiedades" {
		t.Errorf("expected clean base path, got %s", path)
	}
}

func TestParse_CityShortcut(t *testing.T) {
	values := url.Values{}
	values.Set(ParamCity, "palermo")

	spec := Parse(values)

	if spec.Location == nil {
		t.Fatal("expected location from city shortcut")
	}
	if spec.Location.Label != "Palermo" {
		t.Errorf("expected label Palermo, got %s", spec.Location.Label)
	}
	if spec.Location.Latitude != -34.5889 || spec.Location.Longitude != -58.4298 {
		t.Errorf("unexpected shortcut coordinates: %f, %f", spec.Location.Latitude, spec.Location.Longitude)
	}
	if spec.RadiusKm != domain.CityShortcutRadiusKm {
		t.Errorf("expected shortcut radius %f, got %f", domain.CityShortcutRadiusKm, spec.RadiusKm)
	}
}

func TestParse_UnknownCityIgnored(t *testing.T) {
	values := url.Values{}
	values.Set(ParamCity, "atlantida")

	spec := Parse(values)

	if spec.Location != nil {
		t.Errorf("unknown city must be dropped, got %+v", spec.Location)
	}
}

func TestParse_ExplicitCoordinatesOverrideCity(t *testing.T) {
	values := url.Values{}
	values.Set(ParamCity, "palermo")
	values.Set(ParamLocation, "Obelisco")
	values.Set(ParamLat, "-34.6037")
	values.Set(ParamLng, "-58.3816")

	spec := Parse(values)

	if spec.Location == nil {
		t.Fatal("expected location")
	}
	if spec.Location.Label != "Obelisco" {
		t.Errorf("explicit triple must win over ciudad, got label %s", spec.Location.Label)
	}
	if spec.RadiusKm != domain.DefaultRadiusKm {
		t.Errorf("explicit coordinates reset radius to default, got %f", spec.RadiusKm)
	}
}

func TestParse_MalformedValuesDropped(t *testing.T) {
	values := url.Values{}
	values.Set(ParamLat, "abc")
	values.Set(ParamLng, "-58.38")
	values.Set(ParamRadius, "-3")
	values.Set(ParamPriceMin, "-100")
	values.Set(ParamPriceMax, "mucho")
	values.Set(ParamRooms, "0")
	values.Set(ParamBathrooms, "x")

	spec := Parse(values)

	if spec.Location != nil {
		t.Error("partial/invalid coordinate pair must be dropped")
	}
	if spec.RadiusKm != domain.DefaultRadiusKm {
		t.Errorf("negative radius must fall back to default, got %f", spec.RadiusKm)
	}
	if spec.PriceMin != nil || spec.PriceMax != nil {
		t.Error("invalid prices must be dropped")
	}
	if spec.Rooms != nil || spec.Bathrooms != nil {
		t.Error("invalid counts must be dropped")
	}
}

func TestParse_CoordinatesOutOfRange(t *testing.T) {
	values := url.Values{}
	values.Set(ParamLat, "91")
	values.Set(ParamLng, "-58.38")

	spec := Parse(values)
	if spec.Location != nil {
		t.Error("out-of-range latitude must invalidate the pair")
	}
}

func TestParse_InvertedPriceRangeDropped(t *testing.T) {
	values := url.Values{}
	values.Set(ParamPriceMin, "300000")
	values.Set(ParamPriceMax, "200000")

	spec := Parse(values)

	if spec.PriceMin != nil || spec.PriceMax != nil {
		t.Error("inverted price range must drop both bounds")
	}
}

func TestSerialize_OmitsDefaults(t *testing.T) {
	venta := domain.OperationVenta
	anyType := domain.PropertyTypeAny

	spec := domain.DefaultFilterSpecification()
	spec.Operation = &venta
	spec.PropertyType = &anyType

	values := Serialize(spec)
	if len(values) != 0 {
		t.Errorf("default-valued fields must be omitted, got %v", values)
	}
}

func TestSerialize_CityShortcutCompactForm(t *testing.T) {
	shortcut, ok := domain.CityShortcutBySlug("palermo")
	if !ok {
		t.Fatal("palermo shortcut missing")
	}

	criterion := shortcut.Criterion()
	spec := domain.DefaultFilterSpecification()
	spec.Location = &criterion
	spec.RadiusKm = shortcut.RadiusKm

	values := Serialize(spec)

	if values.Get(ParamCity) != "palermo" {
		t.Errorf("expected compact ciudad form, got %v", values)
	}
	if values.Get(ParamLat) != "" || values.Get(ParamLng) != "" {
		t.Error("ciudad form must not carry explicit coordinates")
	}
	if values.Get(ParamRadius) != "" {
		t.Error("shortcut radius is the baseline and must be omitted")
	}
}

func TestRoundTrip_FullSpec(t *testing.T) {
	values := url.Values{}
	values.Set(ParamOperation, "alquiler")
	values.Set(ParamPropertyType, "departamento")
	values.Set(ParamLocation, "Plaza Serrano")
	values.Set(ParamLat, "-34.5889")
	values.Set(ParamLng, "-58.4298")
	values.Set(ParamRadius, "5")
	values.Set(ParamPriceMin, "100000")
	values.Set(ParamPriceMax, "250000")
	values.Set(ParamRooms, "3")
	values.Set(ParamBathrooms, "2")

	spec := Parse(values)
	reparsed := Parse(Serialize(spec))

	if reparsed.Location == nil || spec.Location == nil {
		t.Fatal("location lost in round trip")
	}
	if reparsed.Location.Label != spec.Location.Label ||
		reparsed.Location.Latitude != spec.Location.Latitude ||
		reparsed.Location.Longitude != spec.Location.Longitude {
		t.Errorf("location mismatch: %+v vs %+v", *reparsed.Location, *spec.Location)
	}
	if reparsed.RadiusKm != spec.RadiusKm {
		t.Errorf("radius mismatch: %f vs %f", reparsed.RadiusKm, spec.RadiusKm)
	}
	if *reparsed.Operation != *spec.Operation || *reparsed.PropertyType != *spec.PropertyType {
		t.Error("operation/type mismatch after round trip")
	}
	if *reparsed.PriceMin != *spec.PriceMin || *reparsed.PriceMax != *spec.PriceMax {
		t.Error("price range mismatch after round trip")
	}
	if *reparsed.Rooms != *spec.Rooms || *reparsed.Bathrooms != *spec.Bathrooms {
		t.Error("counts mismatch after round trip")
	}
}

func TestRoundTrip_SerializationIsStable(t *testing.T) {
	values := url.Values{}
	values.Set(ParamCity, "recoleta")
	values.Set(ParamOperation, "alquiler-temporal")
	values.Set(ParamPriceMax, "500000")

	first := Serialize(Parse(values)).Encode()
	second := Serialize(Parse(mustParseQuery(t, first))).Encode()

	if first != second {
		t.Errorf("canonical encoding is not stable: %q vs %q", first, second)
	}
}

func TestSearchPath_SortedParams(t *testing.T) {
	alquiler := domain.OperationAlquiler
	rooms := int32(2)
	priceMax := int64(900000)

	spec := domain.DefaultFilterSpecification()
	spec.Operation = &alquiler
	spec.Rooms = &rooms
	spec.PriceMax = &priceMax

	path := SearchPath(spec)
	want := "/propiedades?ambientes=2&operacion=alquiler&precio_max=900000"
	if path != want {
		t.Errorf("expected %s, got %s", want, path)
	}
}

func mustParseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("failed to parse query %q: %v", raw, err)
	}
	return values
}
