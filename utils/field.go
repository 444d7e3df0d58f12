package utils

import (
	"fmt"
	"math"
	"unsafe"

	"gonum.org/v1/gonum/mat"
)

/*
	Fields carry a one cell halo on every horizontal side. Horizontal indices run
	0..Nx+1 and 0..Ny+1, with 1..Nx and 1..Ny the interior. Layers run 1..Layers,
	with layer 1 at the surface.

	Storage is contiguous and i fastest:
		idx = i + (Nx+2)*(j + (Ny+2)*(k-1))
*/

type Field3D struct {
	Nx, Ny, Layers int
	DataP          []float64
}

func NewField3D(nx, ny, layers int) (f *Field3D) {
	f = &Field3D{
		Nx:     nx,
		Ny:     ny,
		Layers: layers,
		DataP:  make([]float64, (nx+2)*(ny+2)*layers),
	}
	return
}

func CheckDims(nx, ny, layers int) (err error) {
	switch {
	case nx < 1, ny < 1:
		err = fmt.Errorf("%w: nx, ny = %d, %d, both must be >= 1", ErrBadDimensions, nx, ny)
	case layers < 1:
		err = fmt.Errorf("%w: layers = %d, must be >= 1", ErrBadDimensions, layers)
	}
	return
}

// Strides returns the offset between neighbouring j rows and between layers
func (f *Field3D) Strides() (sj, sk int) {
	sj = f.Nx + 2
	sk = sj * (f.Ny + 2)
	return
}

func (f *Field3D) Index(i, j, k int) int {
	if haloCheck {
		if i < 0 || i > f.Nx+1 || j < 0 || j > f.Ny+1 || k < 1 || k > f.Layers {
			panic(fmt.Errorf("index (%d,%d,%d) out of bounds for field [0:%d, 0:%d, 1:%d]",
				i, j, k, f.Nx+1, f.Ny+1, f.Layers))
		}
	}
	return i + (f.Nx+2)*(j+(f.Ny+2)*(k-1))
}

func (f *Field3D) At(i, j, k int) float64 {
	return f.DataP[f.Index(i, j, k)]
}

func (f *Field3D) Set(i, j, k int, val float64) {
	f.DataP[f.Index(i, j, k)] = val
}

func (f *Field3D) Fill(val float64) {
	for i := range f.DataP {
		f.DataP[i] = val
	}
}

func (f *Field3D) Copy() (g *Field3D) {
	g = NewField3D(f.Nx, f.Ny, f.Layers)
	copy(g.DataP, f.DataP)
	return
}

// Layer returns a 2D view of layer k sharing storage with f
func (f *Field3D) Layer(k int) (l *Field2D) {
	var (
		_, sk = f.Strides()
		off   = f.Index(0, 0, k)
	)
	return &Field2D{
		Nx: f.Nx,
		Ny: f.Ny,
		M:  mat.NewDense(f.Ny+2, f.Nx+2, f.DataP[off:off+sk]),
	}
}

func (f *Field3D) SameShape(g *Field3D) bool {
	return f.Nx == g.Nx && f.Ny == g.Ny && f.Layers == g.Layers
}

func (f *Field3D) CheckShape(nx, ny, layers int, name string) (err error) {
	if f == nil {
		return fmt.Errorf("%w: field %s is nil", ErrShapeMismatch, name)
	}
	if f.Nx != nx || f.Ny != ny || f.Layers != layers {
		return fmt.Errorf("%w: field %s is %dx%dx%d, grid is %dx%dx%d",
			ErrShapeMismatch, name, f.Nx, f.Ny, f.Layers, nx, ny, layers)
	}
	if len(f.DataP) != (nx+2)*(ny+2)*layers {
		return fmt.Errorf("%w: field %s has %d values, need %d",
			ErrShapeMismatch, name, len(f.DataP), (nx+2)*(ny+2)*layers)
	}
	return
}

// Overlaps reports whether f and g share any element of storage
func (f *Field3D) Overlaps(g *Field3D) bool {
	if len(f.DataP) == 0 || len(g.DataP) == 0 {
		return false
	}
	var (
		size   = uintptr(unsafe.Sizeof(float64(0)))
		fBegin = uintptr(unsafe.Pointer(unsafe.SliceData(f.DataP)))
		gBegin = uintptr(unsafe.Pointer(unsafe.SliceData(g.DataP)))
		fEnd   = fBegin + uintptr(len(f.DataP))*size
		gEnd   = gBegin + uintptr(len(g.DataP))*size
	)
	return fBegin < gEnd && gBegin < fEnd
}

// Equal compares bit patterns, so -0 != 0 and NaN payloads compare exactly
func (f *Field3D) Equal(g *Field3D) bool {
	if !f.SameShape(g) {
		return false
	}
	for i, val := range f.DataP {
		if math.Float64bits(val) != math.Float64bits(g.DataP[i]) {
			return false
		}
	}
	return true
}

// Interior copies the interior cells of layer k, i fastest
func (f *Field3D) Interior(k int) (vals []float64) {
	vals = make([]float64, 0, f.Nx*f.Ny)
	for j := 1; j <= f.Ny; j++ {
		for i := 1; i <= f.Nx; i++ {
			vals = append(vals, f.At(i, j, k))
		}
	}
	return
}

// Field2D is a single halo-inclusive plane, backed by a Dense of (Ny+2) rows
// and (Nx+2) columns so that i stays the fastest index
type Field2D struct {
	Nx, Ny int
	M      *mat.Dense
}

func NewField2D(nx, ny int) (f *Field2D) {
	return &Field2D{
		Nx: nx,
		Ny: ny,
		M:  mat.NewDense(ny+2, nx+2, nil),
	}
}

func NewField2DConst(nx, ny int, val float64) (f *Field2D) {
	f = NewField2D(nx, ny)
	d := f.DataP()
	for i := range d {
		d[i] = val
	}
	return
}

func (f *Field2D) DataP() []float64 {
	return f.M.RawMatrix().Data
}

func (f *Field2D) Index(i, j int) int {
	if haloCheck {
		if i < 0 || i > f.Nx+1 || j < 0 || j > f.Ny+1 {
			panic(fmt.Errorf("index (%d,%d) out of bounds for field [0:%d, 0:%d]",
				i, j, f.Nx+1, f.Ny+1))
		}
	}
	return i + (f.Nx+2)*j
}

func (f *Field2D) At(i, j int) float64 {
	return f.DataP()[f.Index(i, j)]
}

func (f *Field2D) Set(i, j int, val float64) {
	f.DataP()[f.Index(i, j)] = val
}

func (f *Field2D) CheckShape(nx, ny int, name string) (err error) {
	if f == nil || f.M == nil {
		return fmt.Errorf("%w: field %s is nil", ErrShapeMismatch, name)
	}
	r, c := f.M.Dims()
	if f.Nx != nx || f.Ny != ny || r != ny+2 || c != nx+2 {
		return fmt.Errorf("%w: field %s is %dx%d (storage %dx%d), grid is %dx%d",
			ErrShapeMismatch, name, f.Nx, f.Ny, c, r, nx, ny)
	}
	return
}
