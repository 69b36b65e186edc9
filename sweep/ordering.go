/*
Package sweep implements the Fast Sweeping driver: reference-
point orderings precomputed once per grid, and a raytrace call that resets,
seeds, and repeatedly sweeps the vertex set in ascending/descending
reference order until the update norm converges or the iteration cap is
reached.
*/
package sweep

import (
	"sort"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/mesh"
)

// Metric selects the distance function initOrdering sorts vertices by,
// matching Grid2Duifs::initOrdering's order parameter.
type Metric int

const (
	// MetricL1 sorts by Manhattan distance to the reference point.
	MetricL1 Metric = 1
	// MetricL2 sorts by Euclidean distance to the reference point.
	MetricL2 Metric = 2
)

// InitOrdering precomputes, for each reference point, the ascending
// vertex ordering by distance under metric. The result is reusable across
// every subsequent raytrace call on the same grid: it depends only on
// vertex coordinates, not on slowness or sources.
func InitOrdering(g *mesh.Grid2D, refPts []geometry.Point2, metric Metric) [][]int {
	sorted := make([][]int, len(refPts))
	for k, p := range refPts {
		order := make([]int, len(g.Vertices))
		for i := range order {
			order[i] = i
		}
		dist := func(vi int) float64 {
			if metric == MetricL1 {
				return p.ManhattanDistance(g.Vertices[vi].P)
			}
			return p.Distance(g.Vertices[vi].P)
		}
		sort.Slice(order, func(a, b int) bool {
			return dist(order[a]) < dist(order[b])
		})
		sorted[k] = order
	}
	return sorted
}
