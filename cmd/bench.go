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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wydh/aronnax/utils"
)

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time repeated evaluations and check they are bit identical",
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := readInput(viper.GetString("bench.inputConditionsFile"))
		if err != nil {
			return err
		}
		r, err := NewRun(ip)
		if err != nil {
			return err
		}
		_, err = RunBench(r, viper.GetInt("bench.repeats"))
		return err
	},
}

type BenchResult struct {
	Repeats int
	Total   time.Duration
	PerCall time.Duration
}

// RunBench evaluates n times and fails if any result differs from the first
func RunBench(r *Run, n int) (res BenchResult, err error) {
	var first *utils.Field3D
	if n < 1 {
		err = fmt.Errorf("repeats must be >= 1, have %d", n)
		return
	}
	start := time.Now()
	for it := 0; it < n; it++ {
		if err = r.Evaluate(); err != nil {
			return
		}
		if first == nil {
			first = r.B.Copy()
			continue
		}
		if !first.Equal(r.B) {
			err = fmt.Errorf("evaluation %d differs from the first", it)
			return
		}
	}
	res = BenchResult{
		Repeats: n,
		Total:   time.Since(start),
	}
	res.PerCall = res.Total / time.Duration(n)
	log.WithFields(logrus.Fields{
		"repeats":  res.Repeats,
		"total":    res.Total,
		"per_call": res.PerCall,
		"parallel": r.IP.ParallelDegree,
	}).Info("bench")
	log.Debug(utils.GetMemUsage())
	return
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
	BenchCmd.Flags().IntP("repeats", "n", 100, "number of evaluations")
	_ = viper.BindPFlag("bench.inputConditionsFile", BenchCmd.Flags().Lookup("inputConditionsFile"))
	_ = viper.BindPFlag("bench.repeats", BenchCmd.Flags().Lookup("repeats"))
}
