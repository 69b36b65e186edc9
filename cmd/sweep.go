/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/gophysics/traveltime/config"
	"github.com/gophysics/traveltime/engine"
	"github.com/gophysics/traveltime/sweep"
	"github.com/spf13/cobra"
)

// sweepCmd represents the sweep command: Fast Sweeping over a triangular
// mesh.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Fast Sweeping first-arrival travel times on a triangular mesh",
	Long:  `Fast Sweeping first-arrival travel times on a triangular mesh`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sweep called")
		scenePath, _ := cmd.Flags().GetString("scene")
		paramsPath, _ := cmd.Flags().GetString("params")
		runSweep(scenePath, paramsPath)
	},
}

func loadParams(paramsPath string) *config.Parameters {
	p := config.Default()
	if paramsPath != "" {
		data, err := os.ReadFile(paramsPath)
		if err != nil {
			panic(err)
		}
		if err := p.Parse(data); err != nil {
			panic(err)
		}
	}
	if err := p.Validate(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	p.Print()
	return &p
}

func runSweep(scenePath, paramsPath string) {
	if scenePath == "" {
		fmt.Println("error: must supply a scene file (-s, --scene)")
		os.Exit(1)
	}
	sc, err := loadScene(scenePath)
	if err != nil {
		panic(err)
	}
	p := loadParams(paramsPath)

	g := engine.NewGrid2D(sc.points2(), sc.triangles(), p.NumWorkers)
	if err := g.SetSlowness(sc.Slowness); err != nil {
		panic(err)
	}
	g.Params = sweep.Params{Epsilon: p.Epsilon, NIterMax: p.MaxIterations, SourceRadius: p.SourceRadius}

	metric := sweep.MetricL2
	if p.Order == 1 {
		metric = sweep.MetricL1
	}
	g.InitOrdering(sc.tx2(), metric)

	tt, err := g.Raytrace(sc.tx2(), sc.T0, sc.rx2(), 0)
	if err != nil {
		fmt.Printf("warning: %s\n", err.Error())
	}
	for i, t := range tt {
		fmt.Printf("Rx[%d]: TT = %g\n", i, t)
	}
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().StringP("scene", "s", "", "JSON scene file (vertices, cells, slowness, tx, t0, rx)")
	sweepCmd.Flags().StringP("params", "p", "", "YAML engine parameters file")
}
