package Bernoulli

import (
	"fmt"
	"strings"

	"github.com/wydh/aronnax/boundary"
	"github.com/wydh/aronnax/utils"
)

/*
	The Bernoulli potential b = M + KE forces the layer momentum equations. It is
	evaluated once per timestep at every cell center of every layer, then the
	halo of b is filled by the boundary wrap.

	Two models are supported, selected once when the run is configured:
		- Isopycnal: n layers over bathymetry, M from interface elevations
		- ReducedGravity: n layers over an infinitely deep, quiescent abyss
*/

type Evaluator interface {
	// Evaluate overwrites every value of b, halo included
	Evaluate(b, h, u, v *utils.Field3D) error
}

type ModelType uint8

const (
	Isopycnal ModelType = iota
	ReducedGravity
)

var (
	ModelNames = map[string]ModelType{
		"iso":             Isopycnal,
		"isopycnal":       Isopycnal,
		"n-layer":         Isopycnal,
		"redgrav":         ReducedGravity,
		"reduced-gravity": ReducedGravity,
		"n+1/2-layer":     ReducedGravity,
	}
	ModelPrintNames = []string{"Isopycnal (n layer)", "Reduced Gravity (n+1/2 layer)"}
)

func (mt ModelType) Print() (txt string) {
	if int(mt) < len(ModelPrintNames) {
		return ModelPrintNames[mt]
	}
	return fmt.Sprintf("ModelType(%d)", uint8(mt))
}

func NewModelType(label string) (mt ModelType, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if mt, ok = ModelNames[label]; !ok {
		err = fmt.Errorf("unable to use model named %q", label)
	}
	return
}

// Gravity is the buoyancy jump at each interface, surface first. It holds its
// own copy so a run's profile can't change under it.
type Gravity struct {
	g []float64
}

func NewGravity(g []float64) (gr Gravity, err error) {
	if len(g) == 0 {
		err = fmt.Errorf("%w: gravity profile is empty", utils.ErrBadDimensions)
		return
	}
	gr.g = make([]float64, len(g))
	copy(gr.g, g)
	return
}

func (gr Gravity) Layers() int { return len(gr.g) }

// At is indexed from 1, the surface interface
func (gr Gravity) At(k int) float64 { return gr.g[k-1] }

func (gr Gravity) Values() (g []float64) {
	g = make([]float64, len(gr.g))
	copy(g, gr.g)
	return
}

type Config struct {
	Model          ModelType
	Nx, Ny, Layers int
	Gravity        []float64      // g_vec or gr, length Layers
	Depth          *utils.Field2D // Isopycnal only, positive column depth at rest
	Wrap           boundary.Wrapper
	ParallelDegree int // 0 uses every CPU
	Summation      SummationType
}

// NewEvaluator builds the evaluator for cfg.Model
func NewEvaluator(cfg Config) (ev Evaluator, err error) {
	switch cfg.Model {
	case Isopycnal:
		return NewIsopycnal(cfg)
	case ReducedGravity:
		return NewReducedGravity(cfg)
	}
	err = fmt.Errorf("unknown model type %d", cfg.Model)
	return
}

func (cfg Config) check() (g Gravity, err error) {
	if err = utils.CheckDims(cfg.Nx, cfg.Ny, cfg.Layers); err != nil {
		return
	}
	if len(cfg.Gravity) != cfg.Layers {
		err = fmt.Errorf("%w: gravity has %d entries for %d layers",
			utils.ErrShapeMismatch, len(cfg.Gravity), cfg.Layers)
		return
	}
	return NewGravity(cfg.Gravity)
}

func checkFields(nx, ny, layers int, b, h, u, v *utils.Field3D) (err error) {
	var (
		names  = []string{"b", "h", "u", "v"}
		fields = []*utils.Field3D{b, h, u, v}
	)
	for n, f := range fields {
		if err = f.CheckShape(nx, ny, layers, names[n]); err != nil {
			return
		}
	}
	// Writing b while reading from the same storage would corrupt the result
	for n := 1; n < len(fields); n++ {
		if b.Overlaps(fields[n]) {
			return fmt.Errorf("%w: output b shares storage with input %s",
				utils.ErrShapeMismatch, names[n])
		}
	}
	return
}

// kineticEnergy averages the squared velocities on the four faces of a cell.
// The conversions force each product to round on its own; without them the
// compiler may fuse a multiply into the following add on some platforms.
func kineticEnergy(uW, uE, vS, vN float64) float64 {
	return (float64(uW*uW) + float64(uE*uE) + float64(vS*vS) + float64(vN*vN)) / 4.0
}

// KineticEnergy at the center of cell (i,j) in layer k
func KineticEnergy(u, v *utils.Field3D, i, j, k int) float64 {
	return kineticEnergy(u.At(i, j, k), u.At(i+1, j, k), v.At(i, j, k), v.At(i, j+1, k))
}

// addKineticEnergy sets b = p + KE over interior rows [jMin, jMax) of every
// layer, where p shares the layout of b
func addKineticEnergy(b, p, u, v *utils.Field3D, jMin, jMax int) {
	var (
		nx     = b.Nx
		sj, sk = b.Strides()
		bD, pD = b.DataP, p.DataP
		uD, vD = u.DataP, v.DataP
	)
	for k := 0; k < b.Layers; k++ {
		for j := jMin; j < jMax; j++ {
			row := j*sj + k*sk
			for i := 1; i <= nx; i++ {
				ind := row + i
				bD[ind] = pD[ind] + kineticEnergy(uD[ind], uD[ind+1], vD[ind], vD[ind+sj])
			}
		}
	}
}
