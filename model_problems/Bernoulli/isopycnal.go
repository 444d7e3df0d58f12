package Bernoulli

import (
	"fmt"

	"github.com/wydh/aronnax/boundary"
	"github.com/wydh/aronnax/utils"
)

/*
	IsopycnalModel evaluates b for n layers over bathymetry.

	Interface elevations are integrated up from the sea floor:
		z[layers] = -depth
		z[k]      = z[k+1] + h[k+1]
	The Montgomery potential accumulates from the surface down:
		M[1] = 0
		M[k] = M[k-1] + g[k] * z[k-1]
	M[1] is zero by construction, the surface pressure is handled by the free
	surface solver, so layer 1 needs no separate kinetic energy only branch.

	z and M are scratch owned by the evaluator and recomputed over the full halo
	inclusive extent on every call. An IsopycnalModel must not be shared between
	goroutines calling Evaluate concurrently.
*/
type IsopycnalModel struct {
	Nx, Ny, Layers int
	G              Gravity
	Depth          *utils.Field2D
	Wrap           boundary.Wrapper
	z, M           *utils.Field3D
	columns, rows  *utils.PartitionMap
}

func NewIsopycnal(cfg Config) (c *IsopycnalModel, err error) {
	var (
		g Gravity
	)
	if g, err = cfg.check(); err != nil {
		return
	}
	if err = cfg.Depth.CheckShape(cfg.Nx, cfg.Ny, "depth"); err != nil {
		return
	}
	c = &IsopycnalModel{
		Nx:     cfg.Nx,
		Ny:     cfg.Ny,
		Layers: cfg.Layers,
		G:      g,
		Depth:  cfg.Depth,
		Wrap:   cfg.Wrap,
		z:      utils.NewField3D(cfg.Nx, cfg.Ny, cfg.Layers),
		M:      utils.NewField3D(cfg.Nx, cfg.Ny, cfg.Layers),
	}
	if c.Wrap == nil {
		c.Wrap = boundary.Periodic()
	}
	c.columns = utils.NewPartitionMap(utils.ParallelDegree(cfg.ParallelDegree, cfg.Ny+2), 0, cfg.Ny+2)
	c.rows = utils.NewPartitionMap(utils.ParallelDegree(cfg.ParallelDegree, cfg.Ny), 1, cfg.Ny+1)
	return
}

// EvaluateBIso is a single call form of IsopycnalModel.Evaluate with a
// periodic boundary when wrap is nil
func EvaluateBIso(b, h, u, v *utils.Field3D, gVec []float64, depth *utils.Field2D,
	wrap boundary.Wrapper) (err error) {
	var (
		c *IsopycnalModel
	)
	if h == nil {
		return fmt.Errorf("%w: field h is nil", utils.ErrShapeMismatch)
	}
	if c, err = NewIsopycnal(Config{
		Model:          Isopycnal,
		Nx:             h.Nx,
		Ny:             h.Ny,
		Layers:         h.Layers,
		Gravity:        gVec,
		Depth:          depth,
		Wrap:           wrap,
		ParallelDegree: 1,
	}); err != nil {
		return
	}
	return c.Evaluate(b, h, u, v)
}

func (c *IsopycnalModel) Evaluate(b, h, u, v *utils.Field3D) (err error) {
	if err = checkFields(c.Nx, c.Ny, c.Layers, b, h, u, v); err != nil {
		return
	}
	c.columns.Run(func(_, jMin, jMax int) {
		c.interfaces(h, jMin, jMax)
		c.montgomery(jMin, jMax)
	})
	// Halo cells on an axis the wrap leaves alone stay zero
	b.Fill(0)
	c.rows.Run(func(_, jMin, jMax int) {
		addKineticEnergy(b, c.M, u, v, jMin, jMax)
	})
	c.Wrap.Wrap3D(b)
	return
}

// Interfaces returns the elevation of the top of each layer from the last call
func (c *IsopycnalModel) Interfaces() *utils.Field3D { return c.z }

// Montgomery returns the Montgomery potential from the last call
func (c *IsopycnalModel) Montgomery() *utils.Field3D { return c.M }

func (c *IsopycnalModel) interfaces(h *utils.Field3D, jMin, jMax int) {
	var (
		ni     = c.Nx + 2
		sj, sk = c.z.Strides()
		zD, hD = c.z.DataP, h.DataP
		dD     = c.Depth.DataP()
		bottom = (c.Layers - 1) * sk
	)
	for j := jMin; j < jMax; j++ {
		for i := 0; i < ni; i++ {
			zD[bottom+j*sj+i] = -dD[j*sj+i]
		}
	}
	for k := c.Layers - 1; k >= 1; k-- {
		// layer k sits at offset (k-1)*sk, k+1 at k*sk
		for j := jMin; j < jMax; j++ {
			above, below := (k-1)*sk+j*sj, k*sk+j*sj
			for i := 0; i < ni; i++ {
				zD[above+i] = zD[below+i] + hD[below+i]
			}
		}
	}
}

func (c *IsopycnalModel) montgomery(jMin, jMax int) {
	var (
		ni     = c.Nx + 2
		sj, sk = c.M.Strides()
		mD, zD = c.M.DataP, c.z.DataP
	)
	for j := jMin; j < jMax; j++ {
		for i := 0; i < ni; i++ {
			mD[j*sj+i] = 0
		}
	}
	for k := 2; k <= c.Layers; k++ {
		gk := c.G.At(k)
		for j := jMin; j < jMax; j++ {
			cur, up := (k-1)*sk+j*sj, (k-2)*sk+j*sj
			for i := 0; i < ni; i++ {
				mD[cur+i] = mD[up+i] + float64(gk*zD[up+i])
			}
		}
	}
}
