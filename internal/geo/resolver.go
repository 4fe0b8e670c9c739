// Package geo owns deterministic geographic lookups over the static,
// preloaded facility and zone set: zone assignment by scaled-centroid
// distance and k-nearest facility search by great-circle distance. The
// package is purely functional over immutable data; no request mutates
// shared state, so a single Resolver is safe for concurrent use.
package geo

import (
	"context"
	"fmt"
	"sort"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

// DefaultNearestK is the neighbor count used when callers pass k <= 0.
const DefaultNearestK = 5

// Resolver answers zone and nearest-facility queries.
type Resolver struct {
	facilities []domain.Facility
	zones      []domain.Zone
	scaler     Scaler
	tree       *kdTree

	// byType holds insertion-ordered facility indices per type for the
	// filtered fallback scan.
	byType map[domain.FacilityType][]int
}

// NewResolver builds the spatial index over a validated dataset.
// Fails only on an empty zone index, which is fatal at startup.
func NewResolver(ds *Dataset) (*Resolver, error) {
	if len(ds.Zones) == 0 {
		return nil, domain.ErrEmptyZoneIndex
	}

	coords := make([]domain.Coordinate, len(ds.Facilities))
	byType := make(map[domain.FacilityType][]int)
	for i, f := range ds.Facilities {
		coords[i] = f.Coord
		byType[f.Type] = append(byType[f.Type], i)
	}

	return &Resolver{
		facilities: ds.Facilities,
		zones:      ds.Zones,
		scaler:     ds.Scaler,
		tree:       newKDTree(coords),
		byType:     byType,
	}, nil
}

// ResolveZone assigns a coordinate to its zone: the query is standardized
// with the dataset's scaler and matched to the nearest scaled centroid,
// exactly the assignment rule the partition was computed with.
func (r *Resolver) ResolveZone(coord domain.Coordinate) (domain.ZoneSummary, error) {
	if err := coord.Validate(); err != nil {
		return domain.ZoneSummary{}, err
	}

	scaled := r.scaler.Transform(coord)

	best := -1
	bestDist := 0.0
	for i, z := range r.zones {
		dLat := scaled[0] - z.ScaledCentroid[0]
		dLon := scaled[1] - z.ScaledCentroid[1]
		d := dLat*dLat + dLon*dLon
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}

	z := r.zones[best]
	name := z.Name
	if name == "" {
		name = fmt.Sprintf("Zona %d", z.ID+1)
	}
	return domain.ZoneSummary{
		ZoneID:        z.ID,
		Name:          name,
		FacilityCount: z.FacilityCount,
		Centroid:      z.Centroid,
	}, nil
}

// FindNearest returns up to k facilities ranked by ascending great-circle
// distance from coord, with ETA at the nominal urban speed. When a type
// filter is set and the index candidates contain fewer than k matches, the
// search falls back to an exact linear scan over that type. An empty result
// is not an error.
func (r *Resolver) FindNearest(ctx context.Context, coord domain.Coordinate, k int, typeFilter domain.FacilityType) ([]domain.FacilityMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := coord.Validate(); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultNearestK
	}

	var indices []int
	if typeFilter == "" {
		indices = r.tree.nearest(coord, k)
	} else {
		indices = r.nearestOfType(coord, k, typeFilter)
	}

	matches := make([]domain.FacilityMatch, 0, len(indices))
	for rank, idx := range indices {
		f := r.facilities[idx]
		dist := Haversine(coord, f.Coord)
		matches = append(matches, domain.FacilityMatch{
			Facility:   f,
			DistanceKm: dist,
			ETAMinutes: ETAMinutes(dist),
			Rank:       rank + 1,
		})
	}
	return matches, nil
}

// nearestOfType filters the tree candidates by type, falling back to a full
// scan of that type when the candidate set comes up short.
func (r *Resolver) nearestOfType(coord domain.Coordinate, k int, typeFilter domain.FacilityType) []int {
	candidates := r.tree.nearest(coord, k)
	filtered := candidates[:0]
	for _, idx := range candidates {
		if r.facilities[idx].Type == typeFilter {
			filtered = append(filtered, idx)
		}
	}
	if len(filtered) >= k {
		return filtered[:k]
	}

	return r.scanOfType(coord, k, typeFilter)
}

// scanOfType computes exact distances to every facility of the type and
// keeps the k smallest, stable on insertion order for equal distances.
func (r *Resolver) scanOfType(coord domain.Coordinate, k int, typeFilter domain.FacilityType) []int {
	members := r.byType[typeFilter]
	if len(members) == 0 {
		return nil
	}

	type scored struct {
		dist float64
		idx  int
	}
	all := make([]scored, 0, len(members))
	for _, idx := range members {
		all = append(all, scored{dist: Haversine(coord, r.facilities[idx].Coord), idx: idx})
	}

	// Insertion index is the secondary key, so exactly equal distances keep
	// dataset order.
	sort.Slice(all, func(i, j int) bool {
		if all[i].dist != all[j].dist {
			return all[i].dist < all[j].dist
		}
		return all[i].idx < all[j].idx
	})

	if len(all) > k {
		all = all[:k]
	}
	indices := make([]int, len(all))
	for i, s := range all {
		indices[i] = s.idx
	}
	return indices
}

// FacilitiesOfType returns the insertion-ordered facilities of one type.
func (r *Resolver) FacilitiesOfType(typeFilter domain.FacilityType) []domain.Facility {
	members := r.byType[typeFilter]
	out := make([]domain.Facility, len(members))
	for i, idx := range members {
		out[i] = r.facilities[idx]
	}
	return out
}

// ZoneFacilities returns the facilities recorded as members of a zone.
func (r *Resolver) ZoneFacilities(zoneID int) []domain.Facility {
	var out []domain.Facility
	for _, f := range r.facilities {
		if f.Zone == zoneID {
			out = append(out, f)
		}
	}
	return out
}
