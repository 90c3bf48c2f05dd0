package pricing

import (
	"math"

	"depotquote/internal/service/quoting/domain"
)

const (
	// EarthRadiusKm 地球半径（公里）
	EarthRadiusKm = 6371.0
	// KmPerMile 与原报价表保持一致，使用 1.609 而不是 1.609344
	KmPerMile = 1.609
)

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceMiles 用 haversine 公式计算两点间的大圆距离（英里）。
func DistanceMiles(from, to domain.Coordinate) float64 {
	dLat := toRadians(to.Latitude - from.Latitude)
	dLon := toRadians(to.Longitude - from.Longitude)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(from.Latitude))*math.Cos(toRadians(to.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c / KmPerMile
}
