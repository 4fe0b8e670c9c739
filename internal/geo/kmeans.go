package geo

import (
	"fmt"
	"math/rand"
)

const kmeansMaxIterations = 100

// KMeans partitions 2D points into k clusters with Lloyd's algorithm and a
// seeded initialization, so the same inputs always produce the same
// partition. It returns the final centroids and the cluster index assigned
// to each point. Points are assigned to the nearest centroid by squared
// Euclidean distance, the same rule the zone resolver applies at query time.
func KMeans(points [][2]float64, k int, seed int64) ([][2]float64, []int, error) {
	if k <= 0 {
		return nil, nil, fmt.Errorf("kmeans: k must be positive, got %d", k)
	}
	if len(points) < k {
		return nil, nil, fmt.Errorf("kmeans: %d points cannot form %d clusters", len(points), k)
	}

	// Farthest-first seeding: the first centroid comes from the seeded RNG,
	// each following one is the point farthest from all chosen so far. Spread
	// starts cover every dense region, so Lloyd's iterations never strand a
	// cluster.
	rng := rand.New(rand.NewSource(seed))
	centroids := make([][2]float64, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])
	for len(centroids) < k {
		farthest, farthestDist := 0, -1.0
		for i, p := range points {
			d := squaredDist(p, centroids[0])
			for _, c := range centroids[1:] {
				if dc := squaredDist(p, c); dc < d {
					d = dc
				}
			}
			if d > farthestDist {
				farthest, farthestDist = i, d
			}
		}
		centroids = append(centroids, points[farthest])
	}

	assignments := make([]int, len(points))
	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i, p := range points {
			c := nearestCentroid(p, centroids)
			if assignments[i] != c {
				assignments[i] = c
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][2]float64, k)
		counts := make([]int, k)
		for i, p := range points {
			c := assignments[i]
			sums[c][0] += p[0]
			sums[c][1] += p[1]
			counts[c]++
		}
		for c := range centroids {
			// An emptied cluster keeps its previous centroid.
			if counts[c] == 0 {
				continue
			}
			centroids[c][0] = sums[c][0] / float64(counts[c])
			centroids[c][1] = sums[c][1] / float64(counts[c])
		}
	}

	return centroids, assignments, nil
}

func nearestCentroid(p [2]float64, centroids [][2]float64) int {
	best, bestDist := 0, squaredDist(p, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := squaredDist(p, centroids[c]); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func squaredDist(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}
