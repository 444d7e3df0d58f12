package geometry2D

import (
	"fmt"

	"github.com/wydh/aronnax/utils"
)

/*
Grid holds the horizontal axes of the C-grid.
  - XP1, YP1: cell edges (vorticity points), Nx+1 and Ny+1 values
  - X, Y: cell centers (tracer points), midpoints of the edges

Tracer fields (h, depth) live at (X, Y), u at (XP1, Y) and v at (X, YP1).
*/
type Grid struct {
	Nx, Ny   int
	Dx, Dy   float64
	X, Y     []float64
	XP1, YP1 []float64
}

func NewGrid(nx, ny int, dx, dy, x0, y0 float64) (g *Grid, err error) {
	if err = utils.CheckDims(nx, ny, 1); err != nil {
		return
	}
	if dx <= 0 || dy <= 0 {
		err = fmt.Errorf("grid spacing must be positive, have dx, dy = %v, %v", dx, dy)
		return
	}
	g = &Grid{
		Nx:  nx,
		Ny:  ny,
		Dx:  dx,
		Dy:  dy,
		XP1: Linspace(x0, float64(nx)*dx+x0, nx+1),
		YP1: Linspace(y0, float64(ny)*dy+y0, ny+1),
	}
	g.X = midpoints(g.XP1)
	g.Y = midpoints(g.YP1)
	return
}

// Linspace returns N evenly spaced values from start to stop inclusive
func Linspace(start, stop float64, N int) (x []float64) {
	x = make([]float64, N)
	if N == 1 {
		x[0] = start
		return
	}
	step := (stop - start) / float64(N-1)
	for i := range x {
		x[i] = start + float64(i)*step
	}
	x[N-1] = stop
	return
}

func midpoints(edges []float64) (mid []float64) {
	mid = make([]float64, len(edges)-1)
	for i := range mid {
		mid[i] = (edges[i+1] + edges[i]) / 2.
	}
	return
}

// TracerField evaluates f at cell centers into the interior of a layer. The
// halo is left for the boundary wrap.
func (g *Grid) TracerField(dst *utils.Field2D, f func(x, y float64) float64) {
	for j := 1; j <= g.Ny; j++ {
		for i := 1; i <= g.Nx; i++ {
			dst.Set(i, j, f(g.X[i-1], g.Y[j-1]))
		}
	}
}

// UField evaluates f on west faces, i = 1..Nx+1 where face i sits at XP1[i-1]
func (g *Grid) UField(dst *utils.Field2D, f func(x, y float64) float64) {
	for j := 1; j <= g.Ny; j++ {
		for i := 1; i <= g.Nx+1; i++ {
			dst.Set(i, j, f(g.XP1[i-1], g.Y[j-1]))
		}
	}
}

// VField evaluates f on south faces, j = 1..Ny+1 where face j sits at YP1[j-1]
func (g *Grid) VField(dst *utils.Field2D, f func(x, y float64) float64) {
	for j := 1; j <= g.Ny+1; j++ {
		for i := 1; i <= g.Nx; i++ {
			dst.Set(i, j, f(g.X[i-1], g.YP1[j-1]))
		}
	}
}
