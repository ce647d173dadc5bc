package jsonld

import (
	"encoding/json"
	"fmt"
	"time"

	"prop_search/internal/domain"
)

// Generator — генератор JSON-LD разметки (schema.org) для страниц
// объявлений и результатов поиска.
type Generator struct{}

// NewGenerator создаёт новый генератор JSON-LD.
func NewGenerator() *Generator {
	return &Generator{}
}

// RealEstateListing — JSON-LD структура объявления (schema.org).
type RealEstateListing struct {
	Context      string `json:"@context"`
	Type         string `json:"@type"`
	ID           string `json:"@id,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	URL          string `json:"url,omitempty"`
	DatePosted   string `json:"datePosted,omitempty"`
	DateModified string `json:"dateModified,omitempty"`

	Offers *Offer `json:"offers,omitempty"`

	Address *PostalAddress  `json:"address,omitempty"`
	Geo     *GeoCoordinates `json:"geo,omitempty"`

	NumberOfRooms         *int32 `json:"numberOfRooms,omitempty"`
	NumberOfBathroomsTotal *int32 `json:"numberOfBathroomsTotal,omitempty"`

	PropertyType string `json:"propertyType,omitempty"`

	Image []string `json:"image,omitempty"`

	AdditionalProperty []PropertyValue `json:"additionalProperty,omitempty"`
}

// Offer — предложение (цена) по schema.org.
type Offer struct {
	Type          string `json:"@type"`
	Price         int64  `json:"price,omitempty"`
	PriceCurrency string `json:"priceCurrency"`
	Availability  string `json:"availability,omitempty"`
	// BusinessFunction различает продажу и аренду
	BusinessFunction string `json:"businessFunction,omitempty"`
}

// PostalAddress — почтовый адрес по schema.org.
type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

// GeoCoordinates — географические координаты.
type GeoCoordinates struct {
	Type      string  `json:"@type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PropertyValue — дополнительное свойство.
type PropertyValue struct {
	Type  string      `json:"@type"`
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// GenerateListingJSONLD генерирует JSON-LD разметку для объявления.
func (g *Generator) GenerateListingJSONLD(listing domain.Listing, baseURL string) *RealEstateListing {
	url := fmt.Sprintf("%s/propiedades/%s", baseURL, listing.ID.String())

	doc := &RealEstateListing{
		Context:      "https://schema.org",
		Type:         g.mapPropertyType(listing.PropertyType),
		ID:           url,
		Name:         listing.Title,
		Description:  listing.Description,
		URL:          url,
		DatePosted:   listing.CreatedAt.Format(time.RFC3339),
		DateModified: listing.UpdatedAt.Format(time.RFC3339),
		PropertyType: listing.PropertyType,
	}

	if listing.Price != nil {
		currency := listing.Currency
		if currency == "" {
			currency = "ARS"
		}
		doc.Offers = &Offer{
			Type:             "Offer",
			Price:            *listing.Price,
			PriceCurrency:    currency,
			Availability:     g.mapStatus(listing.Status),
			BusinessFunction: g.mapOperation(listing.OperationType),
		}
	}

	doc.Address = &PostalAddress{
		Type:            "PostalAddress",
		StreetAddress:   listing.Address,
		AddressLocality: listing.City,
		AddressRegion:   listing.Neighborhood,
		AddressCountry:  "AR",
	}

	if listing.HasValidCoordinates() {
		doc.Geo = &GeoCoordinates{
			Type:      "GeoCoordinates",
			Latitude:  listing.Latitude,
			Longitude: listing.Longitude,
		}
	}

	doc.NumberOfRooms = listing.Rooms
	doc.NumberOfBathroomsTotal = listing.Bathrooms

	for _, f := range listing.Features {
		doc.AdditionalProperty = append(doc.AdditionalProperty, PropertyValue{
			Type:  "PropertyValue",
			Name:  "feature",
			Value: f,
		})
	}

	return doc
}

// GenerateListingJSONLDBytes генерирует JSON-LD объявления в байтах.
func (g *Generator) GenerateListingJSONLDBytes(listing domain.Listing, baseURL string) ([]byte, error) {
	data, err := json.MarshalIndent(g.GenerateListingJSONLD(listing, baseURL), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON-LD: %w", err)
	}
	return data, nil
}

// AddImages добавляет URL изображений к разметке.
func (g *Generator) AddImages(doc *RealEstateListing, imageURLs []string) {
	doc.Image = append(doc.Image, imageURLs...)
}

// ItemList — JSON-LD список результатов поиска.
type ItemList struct {
	Context         string         `json:"@context"`
	Type            string         `json:"@type"`
	NumberOfItems   int            `json:"numberOfItems"`
	ItemListElement []ListItem     `json:"itemListElement"`
}

// ListItem — элемент списка результатов.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	URL      string `json:"url"`
	Name     string `json:"name"`
}

// GenerateSearchResultsJSONLD генерирует JSON-LD список для страницы
// результатов поиска.
func (g *Generator) GenerateSearchResultsJSONLD(listings []domain.Listing, baseURL string) *ItemList {
	list := &ItemList{
		Context:       "https://schema.org",
		Type:          "ItemList",
		NumberOfItems: len(listings),
	}

	for i, l := range listings {
		list.ItemListElement = append(list.ItemListElement, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			URL:      fmt.Sprintf("%s/propiedades/%s", baseURL, l.ID.String()),
			Name:     l.Title,
		})
	}

	return list
}

// mapPropertyType преобразует тип недвижимости в schema.org тип.
func (g *Generator) mapPropertyType(pt string) string {
	switch pt {
	case domain.PropertyTypeDepartamento, domain.PropertyTypeDuplex:
		return "Apartment"
	case domain.PropertyTypeCasa, domain.PropertyTypePH:
		return "House"
	default:
		return "RealEstateListing"
	}
}

// mapOperation преобразует тип операции в schema.org businessFunction.
func (g *Generator) mapOperation(op string) string {
	switch op {
	case domain.OperationAlquiler, domain.OperationAlquilerTemporal:
		return "http://purl.org/goodrelations/v1#LeaseOut"
	default:
		return "http://purl.org/goodrelations/v1#Sell"
	}
}

// mapStatus преобразует статус объявления в schema.org availability.
func (g *Generator) mapStatus(status domain.ListingStatus) string {
	switch status {
	case domain.ListingStatusSold:
		return "https://schema.org/SoldOut"
	default:
		return "https://schema.org/InStock"
	}
}
