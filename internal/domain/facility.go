package domain

import "fmt"

// FacilityType enumerates the emergency-service facility categories.
type FacilityType string

const (
	FacilityHospital        FacilityType = "hospital"
	FacilityClinic          FacilityType = "clinica"
	FacilityRedCross        FacilityType = "cruz_roja"
	FacilityFireStation     FacilityType = "bomberos"
	FacilityPoliceStation   FacilityType = "policia"
	FacilityCivilProtection FacilityType = "proteccion_civil"
	FacilityShelter         FacilityType = "refugio"
	FacilityPharmacy        FacilityType = "farmacia"
)

// FacilityTypes lists every valid facility type.
var FacilityTypes = []FacilityType{
	FacilityHospital,
	FacilityClinic,
	FacilityRedCross,
	FacilityFireStation,
	FacilityPoliceStation,
	FacilityCivilProtection,
	FacilityShelter,
	FacilityPharmacy,
}

// Valid reports whether t is one of the enumerated facility types.
func (t FacilityType) Valid() bool {
	for _, ft := range FacilityTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// Facility is an immutable emergency-service location. Facilities are created
// by the dataset production step and read-only at decision time.
type Facility struct {
	ID      string       `json:"id"`
	Name    string       `json:"nombre"`
	Type    FacilityType `json:"tipo"`
	Coord   Coordinate   `json:"coordenada"`
	Zone    int          `json:"zona"`
	Address string       `json:"direccion,omitempty"`
	Phone   string       `json:"telefono,omitempty"`
	Hours   string       `json:"horario,omitempty"`
}

// Validate checks the facility record's invariants.
func (f Facility) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("facility %q: missing id", f.Name)
	}
	if f.Name == "" {
		return fmt.Errorf("facility %s: missing name", f.ID)
	}
	if !f.Type.Valid() {
		return fmt.Errorf("facility %s: unknown type %q", f.ID, f.Type)
	}
	if err := f.Coord.Validate(); err != nil {
		return fmt.Errorf("facility %s: %v", f.ID, err)
	}
	return nil
}

// BoundingBox is a min/max latitude/longitude rectangle.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Zone is a precomputed geographic partition cell over the facility set.
// Every facility belongs to exactly one zone; the zone set is immutable once
// loaded.
type Zone struct {
	ID             int         `json:"id"`
	Name           string      `json:"nombre"`
	Centroid       Coordinate  `json:"centroide"`
	ScaledCentroid [2]float64  `json:"centroide_escalado"`
	Bounds         BoundingBox `json:"limites"`
	FacilityCount  int         `json:"num_instalaciones"`
}

// ZoneSummary is the result of a zone lookup.
type ZoneSummary struct {
	ZoneID        int        `json:"zone_id"`
	Name          string     `json:"zone_name"`
	FacilityCount int        `json:"n_facilities"`
	Centroid      Coordinate `json:"centroide"`
}

// FacilityMatch is one ranked nearest-facility result.
type FacilityMatch struct {
	Facility   Facility `json:"instalacion"`
	DistanceKm float64  `json:"distancia_km"`
	ETAMinutes float64  `json:"tiempo_estimado_min"`
	Rank       int      `json:"rank"`
}
