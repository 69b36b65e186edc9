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

	"github.com/gophysics/traveltime/engine"
	"github.com/spf13/cobra"
)

// marchCmd represents the march command: Fast Marching over a
// tetrahedral mesh.
var marchCmd = &cobra.Command{
	Use:   "march",
	Short: "Fast Marching first-arrival travel times on a tetrahedral mesh",
	Long:  `Fast Marching first-arrival travel times on a tetrahedral mesh`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("march called")
		scenePath, _ := cmd.Flags().GetString("scene")
		paramsPath, _ := cmd.Flags().GetString("params")
		runMarch(scenePath, paramsPath)
	},
}

func runMarch(scenePath, paramsPath string) {
	if scenePath == "" {
		fmt.Println("error: must supply a scene file (-s, --scene)")
		os.Exit(1)
	}
	sc, err := loadScene(scenePath)
	if err != nil {
		panic(err)
	}
	p := loadParams(paramsPath)

	g := engine.NewGrid3D(sc.points3(), sc.tets(), p.NumWorkers)
	if err := g.SetSlowness(sc.Slowness); err != nil {
		panic(err)
	}
	g.SourceRadius = p.SourceRadius

	tt, err := g.Raytrace(sc.tx3(), sc.T0, sc.rx3(), 0)
	if err != nil {
		fmt.Printf("warning: %s\n", err.Error())
	}
	for i, t := range tt {
		fmt.Printf("Rx[%d]: TT = %g\n", i, t)
	}
}

func init() {
	rootCmd.AddCommand(marchCmd)
	marchCmd.Flags().StringP("scene", "s", "", "JSON scene file (vertices, cells, slowness, tx, t0, rx)")
	marchCmd.Flags().StringP("params", "p", "", "YAML engine parameters file")
}
