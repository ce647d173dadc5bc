package jsonld

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"prop_search/internal/domain"
)

func sampleListing() domain.Listing {
	price := int64(185000)
	rooms := int32(3)
	return domain.Listing{
		ID:            uuid.MustParse("0b6c1a2e-4f3d-4a8b-9c1e-1a2b3c4d5e6f"),
		Title:         "Departamento 3 ambientes en Palermo",
		Description:   "Luminoso, con balcón.",
		Address:       "Honduras 4800",
		Neighborhood:  "Palermo",
		City:          "Buenos Aires",
		Latitude:      -34.5897,
		Longitude:     -58.4301,
		Price:         &price,
		Currency:      "USD",
		OperationType: domain.OperationVenta,
		PropertyType:  domain.PropertyTypeDepartamento,
		Rooms:         &rooms,
		Features:      []string{"balcón"},
		Status:        domain.ListingStatusActive,
		CreatedAt:     time.Date(2026, 6, 12, 14, 30, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 6, 12, 14, 30, 0, 0, time.UTC),
	}
}

func TestGenerateListingJSONLD(t *testing.T) {
	g := NewGenerator()
	doc := g.GenerateListingJSONLD(sampleListing(), "https://example.com")

	if doc.Context != "https://schema.org" {
		t.Errorf("unexpected context: %s", doc.Context)
	}
	if doc.Type != "Apartment" {
		t.Errorf("departamento must map to Apartment, got %s", doc.Type)
	}
	if doc.URL != "https://example.com/propiedades/0b6c1a2e-4f3d-4a8b-9c1e-1a2b3c4d5e6f" {
		t.Errorf("unexpected URL: %s", doc.URL)
	}

	if doc.Offers == nil {
		t.Fatal("expected offer for priced listing")
	}
	if doc.Offers.Price != 185000 || doc.Offers.PriceCurrency != "USD" {
		t.Errorf("unexpected offer: %+v", doc.Offers)
	}
	if doc.Offers.BusinessFunction != "http://purl.org/goodrelations/v1#Sell" {
		t.Errorf("venta must map to Sell, got %s", doc.Offers.BusinessFunction)
	}

	if doc.Geo == nil || doc.Geo.Latitude != -34.5897 {
		t.Errorf("expected geo coordinates, got %+v", doc.Geo)
	}
	if doc.Address == nil || doc.Address.AddressCountry != "AR" {
		t.Errorf("expected AR address, got %+v", doc.Address)
	}
	if doc.NumberOfRooms == nil || *doc.NumberOfRooms != 3 {
		t.Errorf("expected 3 rooms, got %v", doc.NumberOfRooms)
	}
	if len(doc.AdditionalProperty) != 1 || doc.AdditionalProperty[0].Value != "balcón" {
		t.Errorf("expected feature property, got %+v", doc.AdditionalProperty)
	}
}

func TestGenerateListingJSONLD_RentalAndSold(t *testing.T) {
	g := NewGenerator()

	l := sampleListing()
	l.OperationType = domain.OperationAlquiler
	l.Status = domain.ListingStatusSold

	doc := g.GenerateListingJSONLD(l, "https://example.com")
	if doc.Offers.BusinessFunction != "http://purl.org/goodrelations/v1#LeaseOut" {
		t.Errorf("alquiler must map to LeaseOut, got %s", doc.Offers.BusinessFunction)
	}
	if doc.Offers.Availability != "https://schema.org/SoldOut" {
		t.Errorf("sold listing must be SoldOut, got %s", doc.Offers.Availability)
	}
}

func TestGenerateListingJSONLD_NoPriceNoOffer(t *testing.T) {
	g := NewGenerator()

	l := sampleListing()
	l.Price = nil

	doc := g.GenerateListingJSONLD(l, "https://example.com")
	if doc.Offers != nil {
		t.Error("listing without price must have no offer")
	}
}

func TestGenerateListingJSONLD_MissingCurrencyDefaultsToARS(t *testing.T) {
	g := NewGenerator()

	l := sampleListing()
	l.Currency = ""

	doc := g.GenerateListingJSONLD(l, "https://example.com")
	if doc.Offers.PriceCurrency != "ARS" {
		t.Errorf("expected ARS fallback, got %s", doc.Offers.PriceCurrency)
	}
}

func TestGenerateListingJSONLDBytes_ValidJSON(t *testing.T) {
	g := NewGenerator()

	data, err := g.GenerateListingJSONLDBytes(sampleListing(), "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output must be valid JSON: %v", err)
	}
	if decoded["@type"] != "Apartment" {
		t.Errorf("unexpected @type: %v", decoded["@type"])
	}
}

func TestGenerateSearchResultsJSONLD(t *testing.T) {
	g := NewGenerator()

	a := sampleListing()
	b := sampleListing()
	b.ID = uuid.New()
	b.Title = "Otro departamento"

	list := g.GenerateSearchResultsJSONLD([]domain.Listing{a, b}, "https://example.com")

	if list.Type != "ItemList" || list.NumberOfItems != 2 {
		t.Errorf("unexpected list: %+v", list)
	}
	if list.ItemListElement[0].Position != 1 || list.ItemListElement[1].Position != 2 {
		t.Error("positions must be 1-based and ordered")
	}
	if list.ItemListElement[1].Name != "Otro departamento" {
		t.Errorf("unexpected item name: %s", list.ItemListElement[1].Name)
	}
}
