// Command genzones reads a facility CSV, partitions the facilities into
// geographic zones with seeded k-means over standardized coordinates, and
// writes the facilities.json and zones.json documents the service loads at
// startup. The same CSV, k, and seed always produce the same partition.
//
// Usage:
//
//	go run ./cmd/genzones \
//	  -csv data/facilities.csv \
//	  -facilities-out data/facilities.json \
//	  -zones-out data/zones.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/geo"
)

type facilityOut struct {
	ID      string  `json:"id"`
	Name    string  `json:"nombre"`
	Type    string  `json:"tipo"`
	Lat     float64 `json:"latitud"`
	Lon     float64 `json:"longitud"`
	Zone    int     `json:"zona"`
	Address string  `json:"direccion,omitempty"`
	Phone   string  `json:"telefono,omitempty"`
	Hours   string  `json:"horario,omitempty"`
}

type zoneOut struct {
	ID             int                `json:"id"`
	Name           string             `json:"nombre"`
	CentroidLat    float64            `json:"centroide_lat"`
	CentroidLon    float64            `json:"centroide_lon"`
	ScaledCentroid [2]float64         `json:"centroide_escalado"`
	Bounds         domain.BoundingBox `json:"limites"`
	FacilityCount  int                `json:"num_instalaciones"`
}

type zonesOut struct {
	GeneratedAt string     `json:"generado_en"`
	Scaler      geo.Scaler `json:"scaler"`
	Zones       []zoneOut  `json:"zonas"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "facility CSV input path")
	facilitiesOut := flag.String("facilities-out", "data/facilities.json", "output path for facilities.json")
	zonesOutPath := flag.String("zones-out", "data/zones.json", "output path for zones.json")
	k := flag.Int("k", 8, "number of zones")
	seed := flag.Int64("seed", 42, "clustering seed")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -csv")
	}

	facilities, err := readFacilityCSV(*csvPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *csvPath, err)
	}
	log.Printf("read %d facilities", len(facilities))

	coords := make([]domain.Coordinate, len(facilities))
	for i, f := range facilities {
		coords[i] = domain.Coordinate{Lat: f.Lat, Lon: f.Lon}
	}
	scaler := geo.FitScaler(coords)

	scaled := make([][2]float64, len(coords))
	for i, c := range coords {
		scaled[i] = scaler.Transform(c)
	}

	centroids, assignments, err := geo.KMeans(scaled, *k, *seed)
	if err != nil {
		return fmt.Errorf("clustering: %w", err)
	}

	zones := buildZones(facilities, coords, centroids, assignments)
	for i := range facilities {
		facilities[i].Zone = assignments[i]
	}

	if err := writeJSON(*facilitiesOut, facilities); err != nil {
		return fmt.Errorf("writing facilities: %w", err)
	}
	log.Printf("wrote %s", *facilitiesOut)

	doc := zonesOut{
		GeneratedAt: domain.Now().UTC().Format(time.RFC3339),
		Scaler:      scaler,
		Zones:       zones,
	}
	if err := writeJSON(*zonesOutPath, doc); err != nil {
		return fmt.Errorf("writing zones: %w", err)
	}
	log.Printf("wrote %s", *zonesOutPath)

	for _, z := range zones {
		log.Printf("%s: %d facilities, centroid (%.4f, %.4f)",
			z.Name, z.FacilityCount, z.CentroidLat, z.CentroidLon)
	}
	return nil
}

func buildZones(facilities []facilityOut, coords []domain.Coordinate, centroids [][2]float64, assignments []int) []zoneOut {
	zones := make([]zoneOut, len(centroids))
	first := make([]bool, len(centroids))
	sums := make([]domain.Coordinate, len(centroids))

	for z := range zones {
		zones[z] = zoneOut{
			ID:             z,
			Name:           fmt.Sprintf("Zona %d", z+1),
			ScaledCentroid: centroids[z],
		}
		first[z] = true
	}

	for i := range facilities {
		z := assignments[i]
		sums[z].Lat += coords[i].Lat
		sums[z].Lon += coords[i].Lon
		zones[z].FacilityCount++
		zones[z].Bounds = geo.ExpandBounds(zones[z].Bounds, coords[i], first[z])
		first[z] = false
	}

	for z := range zones {
		if zones[z].FacilityCount == 0 {
			continue
		}
		n := float64(zones[z].FacilityCount)
		zones[z].CentroidLat = sums[z].Lat / n
		zones[z].CentroidLon = sums[z].Lon / n
	}
	return zones
}

func readFacilityCSV(path string) ([]facilityOut, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, col := range []string{"id", "nombre", "tipo", "latitud", "longitud"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	facilities := make([]facilityOut, 0, len(rows)-1)
	for n, row := range rows[1:] {
		lat, err := strconv.ParseFloat(get(row, colIdx, "latitud"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad latitud: %w", n+2, err)
		}
		lon, err := strconv.ParseFloat(get(row, colIdx, "longitud"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad longitud: %w", n+2, err)
		}

		out := facilityOut{
			ID:      get(row, colIdx, "id"),
			Name:    get(row, colIdx, "nombre"),
			Type:    get(row, colIdx, "tipo"),
			Lat:     lat,
			Lon:     lon,
			Address: get(row, colIdx, "direccion"),
			Phone:   get(row, colIdx, "telefono"),
			Hours:   get(row, colIdx, "horario"),
		}
		if !domain.FacilityType(out.Type).Valid() {
			return nil, fmt.Errorf("row %d: unknown facility type %q", n+2, out.Type)
		}
		facilities = append(facilities, out)
	}
	return facilities, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
