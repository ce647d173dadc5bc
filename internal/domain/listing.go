package domain

import (
	"time"

	"github.com/google/uuid"

	"prop_search/internal/lib/geo"
)

// Listing — доменная сущность объявления о недвижимости.
// Каталог объявлений создаётся и изменяется внешним хранилищем;
// поисковое ядро никогда не мутирует Listing.
type Listing struct {
	ID          uuid.UUID
	Title       string
	Description string
	Address     string
	// Neighborhood — район для отображения и текстового поиска
	Neighborhood string
	City         string
	// Latitude/Longitude — позиция в градусах; объявления с координатами
	// вне допустимых диапазонов исключаются из гео-фильтрации
	Latitude  float64
	Longitude float64
	// Price — цена в целых единицах валюты; nil трактуется как 0 при фильтрации
	Price    *int64
	Currency string
	// OperationType — канонический ярлык операции ("Venta", "Alquiler", ...)
	OperationType string
	// PropertyType — канонический ярлык типа недвижимости ("Departamento", ...)
	PropertyType string
	Rooms        *int32
	Bathrooms    *int32
	Features     []string
	// PhotoKeys — ключи фотографий в объектном хранилище
	PhotoKeys   []string
	Status      ListingStatus
	AgentUserID uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasValidCoordinates проверяет, что позиция объявления пригодна для гео-фильтрации.
func (l Listing) HasValidCoordinates() bool {
	return geo.ValidCoordinates(l.Latitude, l.Longitude)
}

// Point возвращает позицию объявления.
func (l Listing) Point() geo.Point {
	return geo.Point{Lat: l.Latitude, Lng: l.Longitude}
}

// PriceOrZero — цена объявления; отсутствующая цена считается нулевой.
func (l Listing) PriceOrZero() int64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}

// ListingStatus — статус объявления.
type ListingStatus string

const (
	ListingStatusUnspecified ListingStatus = ""
	ListingStatusActive      ListingStatus = "ACTIVE"    // Опубликовано, участвует в поиске
	ListingStatusPaused      ListingStatus = "PAUSED"    // Скрыто агентом
	ListingStatusSold        ListingStatus = "SOLD"      // Продано/сдано
	ListingStatusDeleted     ListingStatus = "DELETED"   // Удалено
)

func (s ListingStatus) String() string {
	return string(s)
}
