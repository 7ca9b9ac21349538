package mtree

import (
	"fmt"

	"github.com/umahmood/haversine"
)

// GeoPoint is a point on the Earth's surface, given as WGS84 latitude and
// longitude in degrees.
type GeoPoint struct {
	Lat, Lon float64
}

// Key renders the coordinates into a stable string for entry-map storage.
func (p GeoPoint) Key() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

// Haversine is a DistanceFunc over GeoPoint values, returning great-circle
// distance in kilometers. Use it to index geo-tagged records — points of
// interest, vehicle telemetry, delivery/job locations — where raw lat/lon
// Euclidean distance badly distorts real-world distance away from the
// equator or across large spans.
func Haversine(a, b Point) (float64, error) {
	pa, aok := a.(GeoPoint)
	pb, bok := b.(GeoPoint)
	if !aok || !bok {
		return 0, fmt.Errorf("%w: Haversine requires mtree.GeoPoint points", ErrDimensionMismatch)
	}

	origin := haversine.Coord{Lat: pa.Lat, Lon: pa.Lon}
	dest := haversine.Coord{Lat: pb.Lat, Lon: pb.Lon}
	_, km := haversine.Distance(origin, dest)

	return km, nil
}
