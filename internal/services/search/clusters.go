package search

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"

	"prop_search/internal/domain"
	"prop_search/internal/lib/geo"
)

// Cluster — маркерный кластер карты: группа объявлений в одной
// геохеш-ячейке с агрегатами для отрисовки.
type Cluster struct {
	Geohash    string
	Center     geo.Point
	Bounds     geo.Bounds
	Count      int
	MinPrice   int64
	MaxPrice   int64
	ListingIDs []uuid.UUID
}

// precisionForZoom — длина геохеша для уровня зума карты:
// чем ближе зум, тем мельче ячейки.
func precisionForZoom(zoom int) uint {
	switch {
	case zoom <= 7:
		return 3
	case zoom <= 10:
		return 4
	case zoom <= 13:
		return 5
	case zoom <= 16:
		return 6
	default:
		return 7
	}
}

// ClusterListings группирует объявления в маркерные кластеры по
// геохеш-ячейкам для заданного зума. Объявления с невалидными
// координатами в кластеры не попадают. Результат отсортирован
// по геохешу для детерминированной отрисовки.
func ClusterListings(listings []domain.Listing, zoom int) []Cluster {
	precision := precisionForZoom(zoom)

	groups := make(map[string][]domain.Listing)
	for _, l := range listings {
		if !l.HasValidCoordinates() {
			continue
		}
		hash := geohash.EncodeWithPrecision(l.Latitude, l.Longitude, precision)
		groups[hash] = append(groups[hash], l)
	}

	clusters := make([]Cluster, 0, len(groups))
	for hash, members := range groups {
		box := geohash.BoundingBox(hash)
		centerLat, centerLng := box.Center()

		cluster := Cluster{
			Geohash: hash,
			Center:  geo.Point{Lat: centerLat, Lng: centerLng},
			Bounds: geo.Bounds{
				North: box.MaxLat,
				South: box.MinLat,
				East:  box.MaxLng,
				West:  box.MinLng,
			},
			Count: len(members),
		}

		for _, m := range members {
			cluster.ListingIDs = append(cluster.ListingIDs, m.ID)
			price := m.PriceOrZero()
			if price <= 0 {
				continue
			}
			if cluster.MinPrice == 0 || price < cluster.MinPrice {
				cluster.MinPrice = price
			}
			if price > cluster.MaxPrice {
				cluster.MaxPrice = price
			}
		}

		clusters = append(clusters, cluster)
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Geohash < clusters[j].Geohash
	})

	return clusters
}
