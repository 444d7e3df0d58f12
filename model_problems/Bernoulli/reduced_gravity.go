package Bernoulli

import (
	"fmt"

	"github.com/wydh/aronnax/boundary"
	"github.com/wydh/aronnax/utils"
)

// SummationType picks the reduction order of the reduced gravity pressure term
type SummationType uint8

const (
	// Naive is the triple loop, summing l and m upward, O(layers^3) per cell
	Naive SummationType = iota
	// PrefixSum takes a thickness prefix sum then a bottom up suffix sum,
	// O(layers) per cell. The suffix runs in the opposite l order to Naive, so
	// results may differ from it in the last bits, within PrefixSumRelTol.
	PrefixSum
)

// PrefixSumRelTol bounds the relative difference between PrefixSum and Naive
const PrefixSumRelTol = 1.e-12

var SummationNames = map[string]SummationType{
	"":          Naive,
	"naive":     Naive,
	"prefix":    PrefixSum,
	"prefixsum": PrefixSum,
}

func NewSummationType(label string) (st SummationType, err error) {
	var ok bool
	if st, ok = SummationNames[label]; !ok {
		err = fmt.Errorf("unable to use summation named %q", label)
	}
	return
}

func (st SummationType) Print() string {
	if st == PrefixSum {
		return "Prefix/Suffix Sum"
	}
	return "Naive"
}

/*
	ReducedGravityModel evaluates b for n layers over a motionless abyss. For
	layer k the pressure term is

		b_proto = sum_{l=k..layers} gr[l] * sum_{m=1..l} h[m]

	so every layer feels the thickness of all the fluid above each interface at
	or below it. There is no bathymetry coupling.
*/
type ReducedGravityModel struct {
	Nx, Ny, Layers int
	G              Gravity
	Wrap           boundary.Wrapper
	Summation      SummationType
	bProto         *utils.Field3D
	prefix         [][]float64 // one per partition
	rows           *utils.PartitionMap
}

func NewReducedGravity(cfg Config) (c *ReducedGravityModel, err error) {
	var (
		g Gravity
	)
	if g, err = cfg.check(); err != nil {
		return
	}
	switch cfg.Summation {
	case Naive, PrefixSum:
	default:
		err = fmt.Errorf("unknown summation type %d", cfg.Summation)
		return
	}
	c = &ReducedGravityModel{
		Nx:        cfg.Nx,
		Ny:        cfg.Ny,
		Layers:    cfg.Layers,
		G:         g,
		Wrap:      cfg.Wrap,
		Summation: cfg.Summation,
		bProto:    utils.NewField3D(cfg.Nx, cfg.Ny, cfg.Layers),
	}
	if c.Wrap == nil {
		c.Wrap = boundary.Periodic()
	}
	c.rows = utils.NewPartitionMap(utils.ParallelDegree(cfg.ParallelDegree, cfg.Ny), 1, cfg.Ny+1)
	c.prefix = make([][]float64, c.rows.ParallelDegree)
	for n := range c.prefix {
		c.prefix[n] = make([]float64, cfg.Layers+1)
	}
	return
}

// EvaluateBRedGrav is a single call form of ReducedGravityModel.Evaluate using
// the reference summation order and a periodic boundary when wrap is nil
func EvaluateBRedGrav(b, h, u, v *utils.Field3D, gr []float64, wrap boundary.Wrapper) (err error) {
	var (
		c *ReducedGravityModel
	)
	if h == nil {
		return fmt.Errorf("%w: field h is nil", utils.ErrShapeMismatch)
	}
	if c, err = NewReducedGravity(Config{
		Model:          ReducedGravity,
		Nx:             h.Nx,
		Ny:             h.Ny,
		Layers:         h.Layers,
		Gravity:        gr,
		Wrap:           wrap,
		ParallelDegree: 1,
	}); err != nil {
		return
	}
	return c.Evaluate(b, h, u, v)
}

func (c *ReducedGravityModel) Evaluate(b, h, u, v *utils.Field3D) (err error) {
	if err = checkFields(c.Nx, c.Ny, c.Layers, b, h, u, v); err != nil {
		return
	}
	b.Fill(0)
	c.rows.Run(func(bn, jMin, jMax int) {
		switch c.Summation {
		case PrefixSum:
			c.pressurePrefix(h, c.prefix[bn], jMin, jMax)
		default:
			c.pressureNaive(h, jMin, jMax)
		}
		addKineticEnergy(b, c.bProto, u, v, jMin, jMax)
	})
	c.Wrap.Wrap3D(b)
	return
}

// Pressure returns b_proto from the last call
func (c *ReducedGravityModel) Pressure() *utils.Field3D { return c.bProto }

func (c *ReducedGravityModel) pressureNaive(h *utils.Field3D, jMin, jMax int) {
	var (
		L      = c.Layers
		sj, sk = h.Strides()
		hD, pD = h.DataP, c.bProto.DataP
	)
	for k := 1; k <= L; k++ {
		for j := jMin; j < jMax; j++ {
			for i := 1; i <= c.Nx; i++ {
				var (
					cell   = i + j*sj
					bProto float64
				)
				for l := k; l <= L; l++ {
					var z float64
					for m := 1; m <= l; m++ {
						z += hD[cell+(m-1)*sk]
					}
					bProto += float64(c.G.At(l) * z)
				}
				pD[cell+(k-1)*sk] = bProto
			}
		}
	}
}

func (c *ReducedGravityModel) pressurePrefix(h *utils.Field3D, prefix []float64, jMin, jMax int) {
	var (
		L      = c.Layers
		sj, sk = h.Strides()
		hD, pD = h.DataP, c.bProto.DataP
	)
	for j := jMin; j < jMax; j++ {
		for i := 1; i <= c.Nx; i++ {
			cell := i + j*sj
			// prefix[l] matches the naive inner sum bit for bit
			prefix[0] = 0
			for l := 1; l <= L; l++ {
				prefix[l] = prefix[l-1] + hD[cell+(l-1)*sk]
			}
			var suffix float64
			for k := L; k >= 1; k-- {
				suffix += float64(c.G.At(k) * prefix[k])
				pD[cell+(k-1)*sk] = suffix
			}
		}
	}
}
