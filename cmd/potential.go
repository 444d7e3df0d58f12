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
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wydh/aronnax/readfiles"
)

type PotentialRun struct {
	ICFile  string
	OutFile string
	Profile string
}

// PotentialCmd represents the potential command
var PotentialCmd = &cobra.Command{
	Use:   "potential",
	Short: "Evaluate the Bernoulli potential once for the input state",
	Long: `Builds the grid and layer fields from a YAML parameters file, evaluates
the Bernoulli potential once and logs per layer statistics.
Optionally writes the interior of the result as a Fortran unformatted record.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		pr := &PotentialRun{
			ICFile:  viper.GetString("potential.inputConditionsFile"),
			OutFile: viper.GetString("potential.out"),
			Profile: viper.GetString("potential.profile"),
		}
		return RunPotential(pr)
	},
}

func RunPotential(pr *PotentialRun) (err error) {
	var r *Run
	if stop, err := startProfile(pr.Profile); err != nil {
		return err
	} else if stop != nil {
		defer stop()
	}
	ip, err := readInput(pr.ICFile)
	if err != nil {
		return
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		ip.Print()
	}
	if r, err = NewRun(ip); err != nil {
		return
	}
	start := time.Now()
	if err = r.Evaluate(); err != nil {
		return
	}
	log.WithFields(logrus.Fields{
		"model":   r.Model.Print(),
		"grid":    fmt.Sprintf("%dx%dx%d", ip.Nx, ip.Ny, ip.Layers),
		"wrap":    r.Wrap.String(),
		"elapsed": time.Since(start),
	}).Info("evaluated")
	r.Report()
	if pr.OutFile != "" {
		if err = readfiles.WriteField3D(pr.OutFile, r.B); err != nil {
			return
		}
		log.WithField("file", pr.OutFile).Info("wrote bernoulli potential")
	}
	return
}

func startProfile(kind string) (stop func(), err error) {
	var mode func(*profile.Profile)
	switch kind {
	case "":
		return
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	default:
		err = fmt.Errorf("unknown profile %q, use cpu or mem", kind)
		return
	}
	p := profile.Start(mode, profile.ProfilePath("."), profile.Quiet)
	stop = p.Stop
	return
}

func init() {
	rootCmd.AddCommand(PotentialCmd)
	PotentialCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Model, GVec\n\t- Nx, Ny, Layers\n\t- InitialH, Depth")
	PotentialCmd.Flags().StringP("out", "o", "", "write the potential to this file")
	PotentialCmd.Flags().String("profile", "", "write a cpu or mem profile to the current directory")
	_ = viper.BindPFlag("potential.inputConditionsFile", PotentialCmd.Flags().Lookup("inputConditionsFile"))
	_ = viper.BindPFlag("potential.out", PotentialCmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("potential.profile", PotentialCmd.Flags().Lookup("profile"))
}
