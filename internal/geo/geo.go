// Package geo provides the great-circle math used to order flights by
// distance from the observer.
package geo

import (
	"math"
	"sort"
)

// earthRadiusKM is the mean Earth radius used by the haversine formula.
const earthRadiusKM = 6371.0

// Distance returns the great-circle distance in kilometres between two
// points given in decimal degrees. Symmetric in its arguments and zero
// (within floating-point tolerance) for identical points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

// Positioned is anything with a latitude and longitude.
type Positioned interface {
	Position() (lat, lon float64)
}

// SortByDistance orders items ascending by distance from the observer.
// The sort is stable: equal-distance items keep their input order.
func SortByDistance[T Positioned](items []T, obsLat, obsLon float64) {
	sort.SliceStable(items, func(i, j int) bool {
		li, gi := items[i].Position()
		lj, gj := items[j].Position()
		return Distance(obsLat, obsLon, li, gi) < Distance(obsLat, obsLon, lj, gj)
	})
}
