package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/wydh/aronnax/InputParameters"
	"github.com/wydh/aronnax/boundary"
	"github.com/wydh/aronnax/geometry2D"
	"github.com/wydh/aronnax/model_problems/Bernoulli"
	"github.com/wydh/aronnax/readfiles"
	"github.com/wydh/aronnax/types"
	"github.com/wydh/aronnax/utils"
)

// Run holds one configured evaluator and the fields it reads and writes
type Run struct {
	IP         *InputParameters.InputParameters
	Model      Bernoulli.ModelType
	Grid       *geometry2D.Grid
	Wrap       *boundary.AxisWrap
	Evaluator  Bernoulli.Evaluator
	B, H, U, V *utils.Field3D
	Depth      *utils.Field2D
}

func readInput(fileName string) (ip *InputParameters.InputParameters, err error) {
	var (
		data []byte
	)
	if len(fileName) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		exampleFile := `
########################################
Title: "Two layer basin"
Model: n-layer # Can be "redgrav"
Nx: 50
Ny: 50
Layers: 2
Dx: 2.e4
Dy: 2.e4
GVec: [9.8, 0.01]
BoundaryX: periodic # Can be "copy"
BoundaryY: periodic
InitialH: [400, 1600]
Depth: 2000
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		return
	}
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	ip = &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		return
	}
	ip.SetDefaults()
	err = ip.Validate()
	return
}

func NewRun(ip *InputParameters.InputParameters) (r *Run, err error) {
	var (
		xBC, yBC  types.BCFLAG
		summation Bernoulli.SummationType
	)
	r = &Run{IP: ip}
	if r.Model, err = Bernoulli.NewModelType(ip.Model); err != nil {
		return
	}
	if r.Model == Bernoulli.Isopycnal && ip.Files["depth"] == "" && ip.Depth <= 0 {
		err = fmt.Errorf("isopycnal model needs a positive Depth or a depth file, have %v", ip.Depth)
		return
	}
	if summation, err = Bernoulli.NewSummationType(ip.Summation); err != nil {
		return
	}
	if xBC, err = types.NewBCFLAG(ip.BoundaryX); err != nil {
		return
	}
	if yBC, err = types.NewBCFLAG(ip.BoundaryY); err != nil {
		return
	}
	if r.Wrap, err = boundary.NewWrapper(xBC, yBC); err != nil {
		return
	}
	if r.Grid, err = geometry2D.NewGrid(ip.Nx, ip.Ny, ip.Dx, ip.Dy, ip.X0, ip.Y0); err != nil {
		return
	}
	if err = r.initializeFields(); err != nil {
		return
	}
	r.Evaluator, err = Bernoulli.NewEvaluator(Bernoulli.Config{
		Model:          r.Model,
		Nx:             ip.Nx,
		Ny:             ip.Ny,
		Layers:         ip.Layers,
		Gravity:        ip.GVec,
		Depth:          r.Depth,
		Wrap:           r.Wrap,
		ParallelDegree: ip.ParallelDegree,
		Summation:      summation,
	})
	return
}

// initializeFields fills h, u, v and depth from files or the uniform values,
// then populates their halos with the run's boundary condition
func (r *Run) initializeFields() (err error) {
	var (
		ip             = r.IP
		nx, ny, layers = ip.Nx, ip.Ny, ip.Layers
	)
	r.B = utils.NewField3D(nx, ny, layers)
	r.H = utils.NewField3D(nx, ny, layers)
	r.U = utils.NewField3D(nx, ny, layers)
	r.V = utils.NewField3D(nx, ny, layers)
	r.Depth = utils.NewField2DConst(nx, ny, ip.Depth)

	for k := 1; k <= layers && ip.Files["h"] == ""; k++ {
		hk := ip.InitialH[k-1]
		r.Grid.TracerField(r.H.Layer(k), func(x, y float64) float64 { return hk })
	}
	for k := 1; k <= layers; k++ {
		r.Grid.UField(r.U.Layer(k), func(x, y float64) float64 { return ip.InitialU })
		r.Grid.VField(r.V.Layer(k), func(x, y float64) float64 { return ip.InitialV })
	}
	fields := map[string]*utils.Field3D{"h": r.H, "u": r.U, "v": r.V}
	for _, key := range []string{"h", "u", "v"} {
		name := ip.Files[key]
		if name == "" {
			continue
		}
		var (
			data []float64
			st   readfiles.Staggering
		)
		if data, st, err = readfiles.ReadSnapshot(name, nx, ny, layers); err != nil {
			return
		}
		if err = readfiles.LoadField3D(fields[key], data, st); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		log.WithFields(logrus.Fields{"field": key, "file": name}).Debug("loaded snapshot")
	}
	if name := ip.Files["depth"]; name != "" {
		var (
			data []float64
			st   readfiles.Staggering
		)
		if data, st, err = readfiles.ReadSnapshot(name, nx, ny, 1); err != nil {
			return
		}
		if err = readfiles.LoadField2D(r.Depth, data, st); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	r.Wrap.Wrap3D(r.H)
	r.Wrap.WrapU3D(r.U)
	r.Wrap.WrapV3D(r.V)
	r.Wrap.Wrap2D(r.Depth)
	if utils.IsNan(r.H) || utils.IsNan(r.U) || utils.IsNan(r.V) || utils.IsNan(r.Depth) {
		err = fmt.Errorf("initial fields contain NaN")
	}
	return
}

func (r *Run) Evaluate() (err error) {
	if err = r.Evaluator.Evaluate(r.B, r.H, r.U, r.V); err != nil {
		return
	}
	if utils.IsNan(r.B) {
		err = fmt.Errorf("bernoulli potential contains NaN")
	}
	return
}

type LayerStats struct {
	Layer          int
	Min, Max, Mean float64
}

// Stats summarizes the interior of b per layer
func (r *Run) Stats() (stats []LayerStats) {
	stats = make([]LayerStats, r.B.Layers)
	for k := 1; k <= r.B.Layers; k++ {
		vals := r.B.Interior(k)
		stats[k-1] = LayerStats{
			Layer: k,
			Min:   floats.Min(vals),
			Max:   floats.Max(vals),
			Mean:  floats.Sum(vals) / float64(len(vals)),
		}
	}
	return
}

func (r *Run) Report() {
	for _, s := range r.Stats() {
		log.WithFields(logrus.Fields{
			"layer": s.Layer,
			"min":   s.Min,
			"max":   s.Max,
			"mean":  s.Mean,
		}).Info("bernoulli potential")
	}
}
