package geo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMeans_SeparatedClusters(t *testing.T) {
	// Three tight blobs far apart; k-means must recover them exactly.
	rng := rand.New(rand.NewSource(7))
	centers := [][2]float64{{0, 0}, {10, 10}, {-10, 5}}
	var points [][2]float64
	var truth []int
	for c, center := range centers {
		for i := 0; i < 20; i++ {
			points = append(points, [2]float64{
				center[0] + rng.Float64()*0.1,
				center[1] + rng.Float64()*0.1,
			})
			truth = append(truth, c)
		}
	}

	centroids, assignments, err := KMeans(points, 3, 42)
	require.NoError(t, err)
	require.Len(t, centroids, 3)
	require.Len(t, assignments, len(points))

	// Cluster labels are arbitrary; check that points in the same blob share
	// a label and points in different blobs do not.
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if truth[i] == truth[j] {
				assert.Equal(t, assignments[i], assignments[j])
			} else {
				assert.NotEqual(t, assignments[i], assignments[j])
			}
		}
	}
}

func TestKMeans_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	points := make([][2]float64, 50)
	for i := range points {
		points[i] = [2]float64{rng.Float64() * 10, rng.Float64() * 10}
	}

	c1, a1, err := KMeans(points, 5, 42)
	require.NoError(t, err)
	c2, a2, err := KMeans(points, 5, 42)
	require.NoError(t, err)

	assert.Equal(t, c1, c2)
	assert.Equal(t, a1, a2)
}

func TestKMeans_AssignmentsMatchNearestCentroid(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	points := make([][2]float64, 80)
	for i := range points {
		points[i] = [2]float64{rng.Float64() * 4, rng.Float64() * 4}
	}

	centroids, assignments, err := KMeans(points, 8, 42)
	require.NoError(t, err)

	// The converged partition must agree with the query-time rule: every
	// point sits in the cluster of its nearest centroid.
	for i, p := range points {
		assert.Equal(t, nearestCentroid(p, centroids), assignments[i], "point %d", i)
	}
}

func TestKMeans_Errors(t *testing.T) {
	points := [][2]float64{{0, 0}, {1, 1}}

	_, _, err := KMeans(points, 0, 42)
	require.Error(t, err)

	_, _, err = KMeans(points, 3, 42)
	require.Error(t, err)
}
