package geo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

// facilityRecord is the flat JSON shape the dataset production step writes.
// Field names mirror the exported model assets.
type facilityRecord struct {
	ID      string  `json:"id"`
	Name    string  `json:"nombre"`
	Type    string  `json:"tipo"`
	Lat     float64 `json:"latitud"`
	Lon     float64 `json:"longitud"`
	Zone    int     `json:"zona"`
	Address string  `json:"direccion"`
	Phone   string  `json:"telefono"`
	Hours   string  `json:"horario"`
}

// zonesDocument is the zone-partition JSON document: the fitted scaler plus
// one record per zone.
type zonesDocument struct {
	GeneratedAt string       `json:"generado_en"`
	Scaler      Scaler       `json:"scaler"`
	Zones       []zoneRecord `json:"zonas"`
}

type zoneRecord struct {
	ID             int                `json:"id"`
	Name           string             `json:"nombre"`
	CentroidLat    float64            `json:"centroide_lat"`
	CentroidLon    float64            `json:"centroide_lon"`
	ScaledCentroid [2]float64         `json:"centroide_escalado"`
	Bounds         domain.BoundingBox `json:"limites"`
	FacilityCount  int                `json:"num_instalaciones"`
}

// Dataset is the parsed, validated facility/zone collection.
type Dataset struct {
	Facilities []domain.Facility
	Zones      []domain.Zone
	Scaler     Scaler
}

// LoadDataset reads and validates the facility and zone documents. Any
// inconsistency is a startup failure.
func LoadDataset(facilitiesPath, zonesPath string) (*Dataset, error) {
	facilities, err := loadFacilities(facilitiesPath)
	if err != nil {
		return nil, fmt.Errorf("load facilities: %w", err)
	}

	zones, scaler, err := loadZones(zonesPath)
	if err != nil {
		return nil, fmt.Errorf("load zones: %w", err)
	}

	ds := &Dataset{Facilities: facilities, Zones: zones, Scaler: scaler}
	if err := ds.validate(); err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}
	return ds, nil
}

func loadFacilities(path string) ([]domain.Facility, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []facilityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	facilities := make([]domain.Facility, len(records))
	for i, r := range records {
		facilities[i] = domain.Facility{
			ID:      r.ID,
			Name:    r.Name,
			Type:    domain.FacilityType(r.Type),
			Coord:   domain.Coordinate{Lat: r.Lat, Lon: r.Lon},
			Zone:    r.Zone,
			Address: r.Address,
			Phone:   r.Phone,
			Hours:   r.Hours,
		}
	}
	return facilities, nil
}

func loadZones(path string) ([]domain.Zone, Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Scaler{}, err
	}

	var doc zonesDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, Scaler{}, fmt.Errorf("parse: %w", err)
	}

	zones := make([]domain.Zone, len(doc.Zones))
	for i, z := range doc.Zones {
		zones[i] = domain.Zone{
			ID:             z.ID,
			Name:           z.Name,
			Centroid:       domain.Coordinate{Lat: z.CentroidLat, Lon: z.CentroidLon},
			ScaledCentroid: z.ScaledCentroid,
			Bounds:         z.Bounds,
			FacilityCount:  z.FacilityCount,
		}
	}
	return zones, doc.Scaler, nil
}

func (ds *Dataset) validate() error {
	if len(ds.Zones) == 0 {
		return domain.ErrEmptyZoneIndex
	}
	if err := ds.Scaler.Validate(); err != nil {
		return err
	}

	zoneIDs := make(map[int]bool, len(ds.Zones))
	for _, z := range ds.Zones {
		if zoneIDs[z.ID] {
			return fmt.Errorf("duplicate zone id %d", z.ID)
		}
		zoneIDs[z.ID] = true
	}

	seen := make(map[string]bool, len(ds.Facilities))
	for _, f := range ds.Facilities {
		if err := f.Validate(); err != nil {
			return err
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate facility id %s", f.ID)
		}
		seen[f.ID] = true
		if !zoneIDs[f.Zone] {
			return fmt.Errorf("facility %s references unknown zone %d", f.ID, f.Zone)
		}
	}
	return nil
}
