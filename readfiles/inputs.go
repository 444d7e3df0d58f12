package readfiles

import (
	"fmt"
	"path/filepath"

	"github.com/wydh/aronnax/geometry2D"
)

/*
	Writers for the model's input files. Each samples a function of (x, y) at
	the grid points the file is staggered on and writes one record under dir,
	using the file names the model reads:
		initH.bin       tracer points, one plane per layer
		wind_x.bin      u points (XP1, Y)
		wind_y.bin      v points (X, YP1)
		fu.bin, fv.bin  Coriolis parameter at u and v points
		wetmask.bin     tracer points, 1 wet and 0 dry
*/

type FieldFunc func(x, y float64) float64

// Constant returns a FieldFunc with the same value everywhere
func Constant(val float64) FieldFunc {
	return func(x, y float64) float64 { return val }
}

// sample evaluates f over ys by xs, x fastest
func sample(xs, ys []float64, f FieldFunc) (data []float64) {
	data = make([]float64, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			data = append(data, f(x, y))
		}
	}
	return
}

// WriteInitialHeights writes initH.bin with one thickness function per layer,
// surface first
func WriteInitialHeights(dir string, g *geometry2D.Grid, hFuncs []FieldFunc) (name string, err error) {
	if len(hFuncs) == 0 {
		err = fmt.Errorf("initial heights need at least one layer")
		return
	}
	data := make([]float64, 0, g.Nx*g.Ny*len(hFuncs))
	for _, f := range hFuncs {
		data = append(data, sample(g.X, g.Y, f)...)
	}
	name = filepath.Join(dir, "initH.bin")
	err = writeRecordFile(name, data)
	return
}

func WriteWindX(dir string, g *geometry2D.Grid, f FieldFunc) (name string, err error) {
	name = filepath.Join(dir, "wind_x.bin")
	err = writeRecordFile(name, sample(g.XP1, g.Y, f))
	return
}

func WriteWindY(dir string, g *geometry2D.Grid, f FieldFunc) (name string, err error) {
	name = filepath.Join(dir, "wind_y.bin")
	err = writeRecordFile(name, sample(g.X, g.YP1, f))
	return
}

// WriteBetaPlane writes f = f0 + beta*y at u and v points
func WriteBetaPlane(dir string, g *geometry2D.Grid, f0, beta float64) (fu, fv string, err error) {
	coriolis := func(x, y float64) float64 { return f0 + beta*y }
	fu = filepath.Join(dir, "fu.bin")
	if err = writeRecordFile(fu, sample(g.XP1, g.Y, coriolis)); err != nil {
		return
	}
	fv = filepath.Join(dir, "fv.bin")
	err = writeRecordFile(fv, sample(g.X, g.YP1, coriolis))
	return
}

func WriteFPlane(dir string, g *geometry2D.Grid, coeff float64) (fu, fv string, err error) {
	fu = filepath.Join(dir, "fu.bin")
	if err = writeRecordFile(fu, sample(g.XP1, g.Y, Constant(coeff))); err != nil {
		return
	}
	fv = filepath.Join(dir, "fv.bin")
	err = writeRecordFile(fv, sample(g.X, g.YP1, Constant(coeff)))
	return
}

// WriteRectangularPool writes a wet mask that is dry only on the outermost
// ring of cells
func WriteRectangularPool(dir string, nx, ny int) (name string, err error) {
	data := make([]float64, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			if i > 0 && i < nx-1 && j > 0 && j < ny-1 {
				data[i+nx*j] = 1
			}
		}
	}
	name = filepath.Join(dir, "wetmask.bin")
	err = writeRecordFile(name, data)
	return
}
