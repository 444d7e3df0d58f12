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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wydh/aronnax/InputParameters"
	"github.com/wydh/aronnax/geometry2D"
	"github.com/wydh/aronnax/readfiles"
)

type InputsRun struct {
	Dir          string
	F0, Beta     *float64 // Coriolis plane, written when either is set
	WindX, WindY *float64 // uniform wind stress
	Pool         bool
}

// InputsCmd represents the inputs command
var InputsCmd = &cobra.Command{
	Use:   "inputs",
	Short: "Write model input files from a YAML parameters file",
	Long: `Writes initH.bin from InitialH on the run's grid, and optionally a
Coriolis plane (fu.bin, fv.bin), uniform wind stress (wind_x.bin, wind_y.bin)
and a rectangular pool wet mask (wetmask.bin).`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ir    = &InputsRun{Dir: viper.GetString("inputs.dir")}
			flags = cmd.Flags()
		)
		optional := func(flag string) *float64 {
			if !flags.Changed(flag) {
				return nil
			}
			val, _ := flags.GetFloat64(flag)
			return &val
		}
		ir.F0, ir.Beta = optional("f0"), optional("beta")
		ir.WindX, ir.WindY = optional("windX"), optional("windY")
		ir.Pool, _ = flags.GetBool("pool")
		ip, err := readInput(viper.GetString("inputs.inputConditionsFile"))
		if err != nil {
			return
		}
		_, err = WriteInputs(ip, ir)
		return
	},
}

func WriteInputs(ip *InputParameters.InputParameters, ir *InputsRun) (names []string, err error) {
	var (
		g    *geometry2D.Grid
		name string
	)
	if len(ip.InitialH) != ip.Layers {
		err = fmt.Errorf("InitialH has %d values for %d layers", len(ip.InitialH), ip.Layers)
		return
	}
	if g, err = geometry2D.NewGrid(ip.Nx, ip.Ny, ip.Dx, ip.Dy, ip.X0, ip.Y0); err != nil {
		return
	}
	if err = os.MkdirAll(ir.Dir, 0755); err != nil {
		return
	}
	hFuncs := make([]readfiles.FieldFunc, len(ip.InitialH))
	for k, h := range ip.InitialH {
		hFuncs[k] = readfiles.Constant(h)
	}
	if name, err = readfiles.WriteInitialHeights(ir.Dir, g, hFuncs); err != nil {
		return
	}
	names = append(names, name)
	if ir.F0 != nil || ir.Beta != nil {
		var f0, beta float64
		if ir.F0 != nil {
			f0 = *ir.F0
		}
		if ir.Beta != nil {
			beta = *ir.Beta
		}
		var fu, fv string
		if beta == 0 {
			fu, fv, err = readfiles.WriteFPlane(ir.Dir, g, f0)
		} else {
			fu, fv, err = readfiles.WriteBetaPlane(ir.Dir, g, f0, beta)
		}
		if err != nil {
			return
		}
		names = append(names, fu, fv)
	}
	if ir.WindX != nil {
		if name, err = readfiles.WriteWindX(ir.Dir, g, readfiles.Constant(*ir.WindX)); err != nil {
			return
		}
		names = append(names, name)
	}
	if ir.WindY != nil {
		if name, err = readfiles.WriteWindY(ir.Dir, g, readfiles.Constant(*ir.WindY)); err != nil {
			return
		}
		names = append(names, name)
	}
	if ir.Pool {
		if name, err = readfiles.WriteRectangularPool(ir.Dir, ip.Nx, ip.Ny); err != nil {
			return
		}
		names = append(names, name)
	}
	for _, name := range names {
		log.WithField("file", name).Info("wrote input")
	}
	return
}

func init() {
	rootCmd.AddCommand(InputsCmd)
	InputsCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
	InputsCmd.Flags().StringP("dir", "d", ".", "directory for the written files")
	InputsCmd.Flags().Float64("f0", 0, "Coriolis parameter at y = 0")
	InputsCmd.Flags().Float64("beta", 0, "meridional Coriolis gradient")
	InputsCmd.Flags().Float64("windX", 0, "uniform zonal wind stress")
	InputsCmd.Flags().Float64("windY", 0, "uniform meridional wind stress")
	InputsCmd.Flags().Bool("pool", false, "write a rectangular pool wet mask")
	_ = viper.BindPFlag("inputs.inputConditionsFile", InputsCmd.Flags().Lookup("inputConditionsFile"))
	_ = viper.BindPFlag("inputs.dir", InputsCmd.Flags().Lookup("dir"))
}
