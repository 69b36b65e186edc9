/*
Package config loads the engine's tunable parameters from a YAML file,
grounded on InputParameters/InputParameters.go's Parse/Print pattern:
unmarshal into a tagged struct, then print a human-readable summary.
*/
package config

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Solver selects which eikonal driver a Parameters value configures.
type Solver string

const (
	SolverSweeping Solver = "sweeping" // Fast Sweeping, triangular meshes
	SolverMarching Solver = "marching" // Fast Marching, tetrahedral meshes
)

// Parameters holds the engine's tunables: convergence, worker count,
// source-radius seeding, the Fast Sweeping reference-point metric, and
// solver selection.
type Parameters struct {
	Title         string  `yaml:"Title"`
	Solver        Solver  `yaml:"Solver"`
	Epsilon       float64 `yaml:"Epsilon"`
	MaxIterations int     `yaml:"MaxIterations"`
	NumWorkers    int     `yaml:"NumWorkers"`
	SourceRadius  float64 `yaml:"SourceRadius"`
	Order         int     `yaml:"Order"` // 1 (L1) or 2 (L2), initOrdering metric
	MeshFile      string  `yaml:"MeshFile"`
	OutputFile    string  `yaml:"OutputFile"`
}

// Default returns the engine's default tunables: tight convergence, a
// generous iteration cap, single-worker execution, no radius seeding, and
// the L2 reference-point metric.
func Default() Parameters {
	return Parameters{
		Solver:        SolverSweeping,
		Epsilon:       1e-9,
		MaxIterations: 500,
		NumWorkers:    1,
		SourceRadius:  0,
		Order:         2,
	}
}

// Parse unmarshals YAML-encoded parameter data into p.
func (p *Parameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, p)
}

// Print writes a human-readable summary of p to stdout, matching
// InputParameters2D.Print's plain fmt.Printf texture.
func (p *Parameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", p.Title)
	fmt.Printf("[%s]\t\t= Solver\n", p.Solver)
	fmt.Printf("%g\t\t= Epsilon\n", p.Epsilon)
	fmt.Printf("%d\t\t\t= MaxIterations\n", p.MaxIterations)
	fmt.Printf("%d\t\t\t= NumWorkers\n", p.NumWorkers)
	fmt.Printf("%g\t\t= SourceRadius\n", p.SourceRadius)
	fmt.Printf("%d\t\t\t= Order\n", p.Order)
	fmt.Printf("[%s]\t\t= MeshFile\n", p.MeshFile)
}

// Validate reports a *InvalidParameter for the first tunable outside its
// allowed range, applying the same "fail before any mutation" texture to
// configuration that a raytrace call applies to its own inputs.
func (p *Parameters) Validate() error {
	if p.Solver != SolverSweeping && p.Solver != SolverMarching {
		return &InvalidParameter{Field: "Solver", Reason: "must be \"sweeping\" or \"marching\""}
	}
	if p.Epsilon <= 0 {
		return &InvalidParameter{Field: "Epsilon", Reason: "must be positive"}
	}
	if p.MaxIterations <= 0 {
		return &InvalidParameter{Field: "MaxIterations", Reason: "must be positive"}
	}
	if p.NumWorkers <= 0 {
		return &InvalidParameter{Field: "NumWorkers", Reason: "must be positive"}
	}
	if p.SourceRadius < 0 {
		return &InvalidParameter{Field: "SourceRadius", Reason: "must be non-negative"}
	}
	if p.Order != 1 && p.Order != 2 {
		return &InvalidParameter{Field: "Order", Reason: "must be 1 or 2"}
	}
	return nil
}
