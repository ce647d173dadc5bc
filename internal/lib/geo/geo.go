package geo

import "math"

// EarthRadiusKm — средний радиус Земли в километрах.
const EarthRadiusKm = 6371.0

// Point — географическая точка (широта и долгота в градусах).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds — прямоугольная область в градусах широты/долготы.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Valid проверяет, что область не вырождена.
// Области, пересекающие антимеридиан (east <= west), не поддерживаются
// и считаются невалидными — вызывающий код переходит в режим радиуса.
func (b Bounds) Valid() bool {
	return b.North > b.South && b.East > b.West
}

// ValidCoordinates проверяет, что координаты лежат в допустимых диапазонах.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// DistanceKm — расстояние большого круга между двумя точками
// по формуле гаверсинусов. Симметрична и равна нулю при совпадении точек.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLng := degreesToRadians(lng2 - lng1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// PointInBounds проверяет вхождение точки в область (границы включительно).
func PointInBounds(lat, lng float64, b Bounds) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

// Centroid — среднее арифметическое координат набора точек.
// Возвращает false, если точек нет.
func Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	n := float64(len(points))
	return Point{Lat: sumLat / n, Lng: sumLng / n}, true
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
