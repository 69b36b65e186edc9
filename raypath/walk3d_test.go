package raypath

import (
	"testing"

	"github.com/gophysics/traveltime/geometry"
	"github.com/gophysics/traveltime/march"
	"github.com/gophysics/traveltime/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleTet builds one tetrahedron with the source at its right-angle
// corner, so the source-seeding cone update alone fully determines the
// travel-time field with no further Fast Marching relaxation needed.
func singleTet(numWorkers int) *mesh.Grid3D {
	coords := []geometry.Point3{
		geometry.NewPoint3(0, 0, 0),
		geometry.NewPoint3(2, 0, 0),
		geometry.NewPoint3(0, 2, 0),
		geometry.NewPoint3(0, 0, 2),
	}
	tets := [][4]int{{0, 1, 2, 3}}
	g := mesh.NewGrid3D(coords, tets, numWorkers)
	g.SetSlownessScalar(1.0)
	return g
}

func TestTrace3DStraightLineToSource(t *testing.T) {
	g := singleTet(1)
	tx := []geometry.Point3{geometry.NewPoint3(0, 0, 0)}
	t0 := []float64{0.0}

	err := march.Propagate(g, tx, nil, t0, 0, 0)
	require.NoError(t, err)

	rx := geometry.NewPoint3(0.5, 0.5, 0.5)
	path, err := Trace3D(g, rx, tx, 0, Options{Tol: 1e-6, MaxSteps: 50})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(path), 2)
	assert.True(t, path[0].Equal(rx, 1e-9))
	assert.True(t, path[len(path)-1].Equal(tx[0], 1e-6))
}

func TestTrace3DTerminatesAtSourceInteriorToCell(t *testing.T) {
	g := singleTet(1)
	// Tx sits inside the tetrahedron's interior -- coincident with
	// neither a vertex nor a face.
	tx := []geometry.Point3{geometry.NewPoint3(0.5, 0.5, 0.5)}
	rx := geometry.NewPoint3(0.3, 0.3, 0.3) // also interior to the same cell

	path, err := Trace3D(g, rx, tx, 0, Options{Tol: 1e-6, MaxSteps: 50})
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.True(t, path[0].Equal(rx, 1e-9))
	assert.True(t, path[1].Equal(tx[0], 1e-9))
}

func TestTrace3DReceiverAtSourceVertex(t *testing.T) {
	g := singleTet(1)
	tx := []geometry.Point3{geometry.NewPoint3(0, 0, 0)}
	t0 := []float64{0.0}

	err := march.Propagate(g, tx, nil, t0, 0, 0)
	require.NoError(t, err)

	path, err := Trace3D(g, tx[0], tx, 0, Options{Tol: 1e-6, MaxSteps: 50})
	require.NoError(t, err)
	assert.Len(t, path, 1)
	assert.True(t, path[0].Equal(tx[0], 1e-9))
}
