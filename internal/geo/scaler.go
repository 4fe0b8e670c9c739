package geo

import (
	"fmt"
	"math"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

// Scaler standardizes coordinates with the mean/deviation captured when the
// zones were computed. Zone assignment compares scaled coordinates against
// scaled centroids; using any other scaling would break the partition.
type Scaler struct {
	MeanLat float64 `json:"mean_lat"`
	MeanLon float64 `json:"mean_lon"`
	StdLat  float64 `json:"std_lat"`
	StdLon  float64 `json:"std_lon"`
}

// Validate rejects degenerate scalers.
func (s Scaler) Validate() error {
	if s.StdLat <= 0 || s.StdLon <= 0 {
		return fmt.Errorf("scaler deviations must be positive, got (%g, %g)", s.StdLat, s.StdLon)
	}
	return nil
}

// Transform maps a coordinate into the scaled feature space.
func (s Scaler) Transform(c domain.Coordinate) [2]float64 {
	return [2]float64{
		(c.Lat - s.MeanLat) / s.StdLat,
		(c.Lon - s.MeanLon) / s.StdLon,
	}
}

// FitScaler computes a standardizing scaler over a coordinate set, using the
// population standard deviation. Exported for the dataset production command
// so serving and production share one definition.
func FitScaler(coords []domain.Coordinate) Scaler {
	n := float64(len(coords))
	if n == 0 {
		return Scaler{StdLat: 1, StdLon: 1}
	}

	var sumLat, sumLon float64
	for _, c := range coords {
		sumLat += c.Lat
		sumLon += c.Lon
	}
	meanLat := sumLat / n
	meanLon := sumLon / n

	var varLat, varLon float64
	for _, c := range coords {
		varLat += (c.Lat - meanLat) * (c.Lat - meanLat)
		varLon += (c.Lon - meanLon) * (c.Lon - meanLon)
	}
	stdLat := sqrtOrOne(varLat / n)
	stdLon := sqrtOrOne(varLon / n)

	return Scaler{MeanLat: meanLat, MeanLon: meanLon, StdLat: stdLat, StdLon: stdLon}
}

func sqrtOrOne(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return math.Sqrt(v)
}
