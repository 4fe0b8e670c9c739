// Command validate performs integrity checks over the facility and zone
// documents the service loads at startup: document load and referential
// integrity, zone name/count consistency, partition round-trip through the
// live resolver, and bounds containment.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -facilities data/facilities.json \
//	  -zones data/zones.json
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/geo"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	facilitiesPath := flag.String("facilities", "data/facilities.json", "path to facilities.json")
	zonesPath := flag.String("zones", "data/zones.json", "path to zones.json")
	flag.Parse()

	if code := run(*facilitiesPath, *zonesPath); code != 0 {
		os.Exit(code)
	}
}

func run(facilitiesPath, zonesPath string) int {
	fmt.Println("=== Facility Dataset Integrity Validation ===")
	fmt.Println()

	// Phase 1 is the service's own loader, so the validator checks the exact
	// documents and referential rules the service enforces at startup.
	loadPhase := &phase{name: "Phase 1: Dataset Load"}
	ds, err := geo.LoadDataset(facilitiesPath, zonesPath)
	if err != nil {
		loadPhase.errorf("%v", err)
	}

	phases := []*phase{loadPhase}
	if ds != nil {
		phases = append(phases,
			validateZoneIntegrity(ds),
			validatePartitionRoundTrip(ds),
			validateBounds(ds),
		)
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	if ds != nil {
		fmt.Println()
		fmt.Printf("Records: %d facilities, %d zones\n", len(ds.Facilities), len(ds.Zones))
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 2: Zone Integrity ──
// Names and per-zone facility counts must match the loaded records. The
// loader already rejects duplicate ids, unknown zone references, and a
// degenerate scaler.

func validateZoneIntegrity(ds *geo.Dataset) *phase {
	p := &phase{name: "Phase 2: Zone Integrity"}

	counts := map[int]int{}
	for _, f := range ds.Facilities {
		counts[f.Zone]++
	}
	for _, z := range ds.Zones {
		if z.Name == "" {
			p.errorf("zone %d: missing name", z.ID)
		}
		if counts[z.ID] != z.FacilityCount {
			p.errorf("zone %d: num_instalaciones says %d, found %d facilities", z.ID, z.FacilityCount, counts[z.ID])
		}
	}
	return p
}

// ── Phase 3: Partition Round-Trip ──
// Re-resolving every facility coordinate through the live resolver must land
// in the facility's recorded zone, and each centroid must resolve to its own
// zone.

func validatePartitionRoundTrip(ds *geo.Dataset) *phase {
	p := &phase{name: "Phase 3: Partition Round-Trip"}

	resolver, err := geo.NewResolver(ds)
	if err != nil {
		p.errorf("build resolver: %v", err)
		return p
	}

	for i, f := range ds.Facilities {
		summary, err := resolver.ResolveZone(f.Coord)
		if err != nil {
			p.errorf("facility %d (%s): resolve failed: %v", i, f.ID, err)
			continue
		}
		if summary.ZoneID != f.Zone {
			p.errorf("facility %d (%s): recorded zone %d, resolves to %d", i, f.ID, f.Zone, summary.ZoneID)
		}
	}

	for _, z := range ds.Zones {
		if z.FacilityCount == 0 {
			continue
		}
		summary, err := resolver.ResolveZone(z.Centroid)
		if err != nil {
			p.errorf("zone %d: centroid resolve failed: %v", z.ID, err)
			continue
		}
		if summary.ZoneID != z.ID {
			p.errorf("zone %d: own centroid resolves to zone %d", z.ID, summary.ZoneID)
		}
	}
	return p
}

// ── Phase 4: Bounds Containment ──
// Every facility must sit inside its zone's bounding box, and each non-empty
// zone's centroid inside its own box.

func validateBounds(ds *geo.Dataset) *phase {
	p := &phase{name: "Phase 4: Bounds Containment"}

	byID := map[int]domain.Zone{}
	for _, z := range ds.Zones {
		byID[z.ID] = z
	}

	for i, f := range ds.Facilities {
		z, ok := byID[f.Zone]
		if !ok {
			continue
		}
		if !geo.InBounds(z.Bounds, f.Coord) {
			p.errorf("facility %d (%s): (%.4f, %.4f) outside zone %d bounds [%.4f..%.4f, %.4f..%.4f]",
				i, f.ID, f.Coord.Lat, f.Coord.Lon, z.ID,
				z.Bounds.MinLat, z.Bounds.MaxLat, z.Bounds.MinLon, z.Bounds.MaxLon)
		}
	}

	for _, z := range ds.Zones {
		if z.FacilityCount == 0 {
			continue
		}
		if !inBox(z.Centroid, z.Bounds) {
			p.errorf("zone %d: centroid (%.4f, %.4f) outside own bounds", z.ID, z.Centroid.Lat, z.Centroid.Lon)
		}
	}
	return p
}

func inBox(c domain.Coordinate, b domain.BoundingBox) bool {
	const eps = 1e-9
	return c.Lat >= b.MinLat-eps && c.Lat <= b.MaxLat+eps &&
		c.Lon >= b.MinLon-eps && c.Lon <= b.MaxLon+eps
}
