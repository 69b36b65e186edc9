package cmd

import (
	"encoding/json"
	"os"

	"github.com/gophysics/traveltime/geometry"
)

// scene is the CLI's flat mesh-and-source-and-receiver description. The
// engine package takes no position on file formats; this is the driver's
// own minimal format, read with the standard library's encoding/json
// since no library in the retrieval pack parses a comparable flat scene
// description (the corpus's own grid readers are fixed-width Gambit
// .neu parsers tied to DG-specific element metadata this engine has no
// use for).
type scene struct {
	Vertices [][]float64 `json:"vertices"` // 2 or 3 coordinates per row
	Cells    [][]int     `json:"cells"`    // 3 (triangles) or 4 (tetrahedra) indices per row
	Slowness []float64   `json:"slowness"` // one per cell
	Tx       [][]float64 `json:"tx"`
	T0       []float64   `json:"t0"`
	Rx       [][]float64 `json:"rx"`
}

func loadScene(path string) (*scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := &scene{}
	if err := json.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *scene) points2() []geometry.Point2 {
	pts := make([]geometry.Point2, len(s.Vertices))
	for i, v := range s.Vertices {
		pts[i] = geometry.NewPoint2(v[0], v[1])
	}
	return pts
}

func (s *scene) points3() []geometry.Point3 {
	pts := make([]geometry.Point3, len(s.Vertices))
	for i, v := range s.Vertices {
		pts[i] = geometry.NewPoint3(v[0], v[1], v[2])
	}
	return pts
}

func (s *scene) triangles() [][3]int {
	tris := make([][3]int, len(s.Cells))
	for i, c := range s.Cells {
		tris[i] = [3]int{c[0], c[1], c[2]}
	}
	return tris
}

func (s *scene) tets() [][4]int {
	tets := make([][4]int, len(s.Cells))
	for i, c := range s.Cells {
		tets[i] = [4]int{c[0], c[1], c[2], c[3]}
	}
	return tets
}

func (s *scene) tx2() []geometry.Point2 {
	pts := make([]geometry.Point2, len(s.Tx))
	for i, v := range s.Tx {
		pts[i] = geometry.NewPoint2(v[0], v[1])
	}
	return pts
}

func (s *scene) tx3() []geometry.Point3 {
	pts := make([]geometry.Point3, len(s.Tx))
	for i, v := range s.Tx {
		pts[i] = geometry.NewPoint3(v[0], v[1], v[2])
	}
	return pts
}

func (s *scene) rx2() []geometry.Point2 {
	pts := make([]geometry.Point2, len(s.Rx))
	for i, v := range s.Rx {
		pts[i] = geometry.NewPoint2(v[0], v[1])
	}
	return pts
}

func (s *scene) rx3() []geometry.Point3 {
	pts := make([]geometry.Point3, len(s.Rx))
	for i, v := range s.Rx {
		pts[i] = geometry.NewPoint3(v[0], v[1], v[2])
	}
	return pts
}
