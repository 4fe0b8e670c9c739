package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

const facilitiesJSON = `[
  {"id": "fac-001", "nombre": "Hospital General", "tipo": "hospital", "latitud": 24.0250, "longitud": -104.6600, "zona": 0, "direccion": "Av. 5 de Febrero 501", "telefono": "618-811-9191", "horario": "24h"},
  {"id": "fac-002", "nombre": "Policía Centro", "tipo": "policia", "latitud": 24.0200, "longitud": -104.6550, "zona": 0}
]`

const zonesJSON = `{
  "generado_en": "2026-08-15T00:00:00Z",
  "scaler": {"mean_lat": 24.0225, "mean_lon": -104.6575, "std_lat": 0.0025, "std_lon": 0.0025},
  "zonas": [
    {"id": 0, "nombre": "Zona 1", "centroide_lat": 24.0225, "centroide_lon": -104.6575,
     "centroide_escalado": [0, 0],
     "limites": {"min_lat": 24.0200, "max_lat": 24.0250, "min_lon": -104.6600, "max_lon": -104.6550},
     "num_instalaciones": 2}
  ]
}`

func writeDataset(t *testing.T, facilities, zones string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	fPath := filepath.Join(dir, "facilities.json")
	zPath := filepath.Join(dir, "zones.json")
	require.NoError(t, os.WriteFile(fPath, []byte(facilities), 0o644))
	require.NoError(t, os.WriteFile(zPath, []byte(zones), 0o644))
	return fPath, zPath
}

func TestLoadDataset(t *testing.T) {
	fPath, zPath := writeDataset(t, facilitiesJSON, zonesJSON)

	ds, err := LoadDataset(fPath, zPath)
	require.NoError(t, err)

	require.Len(t, ds.Facilities, 2)
	f := ds.Facilities[0]
	assert.Equal(t, "fac-001", f.ID)
	assert.Equal(t, domain.FacilityHospital, f.Type)
	assert.Equal(t, 24.0250, f.Coord.Lat)
	assert.Equal(t, "Av. 5 de Febrero 501", f.Address)
	assert.Equal(t, "24h", f.Hours)

	require.Len(t, ds.Zones, 1)
	assert.Equal(t, "Zona 1", ds.Zones[0].Name)
	assert.Equal(t, 2, ds.Zones[0].FacilityCount)
	assert.NoError(t, ds.Scaler.Validate())
}

func TestLoadDataset_Errors(t *testing.T) {
	t.Run("missing facilities file", func(t *testing.T) {
		_, zPath := writeDataset(t, facilitiesJSON, zonesJSON)
		_, err := LoadDataset(filepath.Join(t.TempDir(), "nope.json"), zPath)
		require.Error(t, err)
	})

	t.Run("empty zone index", func(t *testing.T) {
		fPath, zPath := writeDataset(t, facilitiesJSON, `{"scaler": {"std_lat": 1, "std_lon": 1}, "zonas": []}`)
		_, err := LoadDataset(fPath, zPath)
		require.ErrorIs(t, err, domain.ErrEmptyZoneIndex)
	})

	t.Run("unknown facility type", func(t *testing.T) {
		bad := `[{"id": "fac-001", "nombre": "Escuela", "tipo": "escuela", "latitud": 24, "longitud": -104, "zona": 0}]`
		fPath, zPath := writeDataset(t, bad, zonesJSON)
		_, err := LoadDataset(fPath, zPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown type")
	})

	t.Run("facility references unknown zone", func(t *testing.T) {
		bad := `[{"id": "fac-001", "nombre": "Hospital", "tipo": "hospital", "latitud": 24, "longitud": -104, "zona": 7}]`
		fPath, zPath := writeDataset(t, bad, zonesJSON)
		_, err := LoadDataset(fPath, zPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown zone")
	})

	t.Run("duplicate facility id", func(t *testing.T) {
		bad := `[
		  {"id": "fac-001", "nombre": "A", "tipo": "hospital", "latitud": 24, "longitud": -104, "zona": 0},
		  {"id": "fac-001", "nombre": "B", "tipo": "hospital", "latitud": 24, "longitud": -104, "zona": 0}
		]`
		fPath, zPath := writeDataset(t, bad, zonesJSON)
		_, err := LoadDataset(fPath, zPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate facility")
	})

	t.Run("degenerate scaler", func(t *testing.T) {
		bad := `{"scaler": {"std_lat": 0, "std_lon": 1}, "zonas": [{"id": 0}]}`
		fPath, zPath := writeDataset(t, facilitiesJSON, bad)
		_, err := LoadDataset(fPath, zPath)
		require.Error(t, err)
	})

	t.Run("malformed facilities JSON", func(t *testing.T) {
		fPath, zPath := writeDataset(t, "{not json", zonesJSON)
		_, err := LoadDataset(fPath, zPath)
		require.Error(t, err)
	})
}
