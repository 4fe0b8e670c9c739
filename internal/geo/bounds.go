package geo

import (
	"github.com/golang/geo/s2"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

// boundsRect converts a zone bounding box into an s2 lat/lng rectangle.
func boundsRect(b domain.BoundingBox) s2.Rect {
	return s2.RectFromLatLng(s2.LatLngFromDegrees(b.MinLat, b.MinLon)).
		AddPoint(s2.LatLngFromDegrees(b.MaxLat, b.MaxLon))
}

// InBounds reports whether a coordinate lies inside a zone bounding box.
func InBounds(b domain.BoundingBox, c domain.Coordinate) bool {
	return boundsRect(b).ContainsLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

// ExpandBounds grows a bounding box to include a coordinate. A zero box
// (all fields zero) is treated as empty and snaps to the coordinate.
func ExpandBounds(b domain.BoundingBox, c domain.Coordinate, first bool) domain.BoundingBox {
	if first {
		return domain.BoundingBox{MinLat: c.Lat, MaxLat: c.Lat, MinLon: c.Lon, MaxLon: c.Lon}
	}
	if c.Lat < b.MinLat {
		b.MinLat = c.Lat
	}
	if c.Lat > b.MaxLat {
		b.MaxLat = c.Lat
	}
	if c.Lon < b.MinLon {
		b.MinLon = c.Lon
	}
	if c.Lon > b.MaxLon {
		b.MaxLon = c.Lon
	}
	return b
}
