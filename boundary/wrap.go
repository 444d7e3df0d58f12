package boundary

import (
	"fmt"

	"github.com/wydh/aronnax/types"
	"github.com/wydh/aronnax/utils"
)

// Wrapper fills the halo of a field in place from its interior. Interior
// cells are never written, and a second call changes nothing.
type Wrapper interface {
	Wrap3D(f *utils.Field3D)
	Wrap2D(f *utils.Field2D)
}

type AxisWrap struct {
	X, Y types.BCFLAG
}

func NewWrapper(xBC, yBC types.BCFLAG) (w *AxisWrap, err error) {
	for _, bc := range []types.BCFLAG{xBC, yBC} {
		switch bc {
		case types.BC_None, types.BC_Periodic, types.BC_Neuman:
		default:
			err = fmt.Errorf("unsupported boundary condition %s", bc)
			return
		}
	}
	w = &AxisWrap{X: xBC, Y: yBC}
	return
}

// Periodic wraps both axes, the model's default doubly periodic domain
func Periodic() *AxisWrap {
	return &AxisWrap{X: types.BC_Periodic, Y: types.BC_Periodic}
}

func (w *AxisWrap) String() string {
	return fmt.Sprintf("x: %s, y: %s", w.X, w.Y)
}

// Wrap3D treats the x axis first over every j row, halo rows included, then
// the y axis over every i column, so the corners come from the y pass
func (w *AxisWrap) Wrap3D(f *utils.Field3D) {
	for k := 1; k <= f.Layers; k++ {
		w.wrapPlane(f.Nx, f.Ny, f.DataP[f.Index(0, 0, k):], false, false)
	}
}

func (w *AxisWrap) Wrap2D(f *utils.Field2D) {
	w.wrapPlane(f.Nx, f.Ny, f.DataP(), false, false)
}

// WrapU3D fills the halo of a u field, whose face i sits on the west side of
// cell i. Under BC_Neuman the east wall face i = Nx+1 is data and is kept.
func (w *AxisWrap) WrapU3D(f *utils.Field3D) {
	for k := 1; k <= f.Layers; k++ {
		w.wrapPlane(f.Nx, f.Ny, f.DataP[f.Index(0, 0, k):], true, false)
	}
}

// WrapV3D is WrapU3D for v, keeping the north wall face j = Ny+1
func (w *AxisWrap) WrapV3D(f *utils.Field3D) {
	for k := 1; k <= f.Layers; k++ {
		w.wrapPlane(f.Nx, f.Ny, f.DataP[f.Index(0, 0, k):], false, true)
	}
}

func (w *AxisWrap) wrapPlane(nx, ny int, d []float64, faceX, faceY bool) {
	var (
		sj = nx + 2
	)
	switch w.X {
	case types.BC_Periodic:
		for j := 0; j <= ny+1; j++ {
			row := j * sj
			d[row] = d[row+nx]
			d[row+nx+1] = d[row+1]
		}
	case types.BC_Neuman:
		for j := 0; j <= ny+1; j++ {
			row := j * sj
			d[row] = d[row+1]
			if !faceX {
				d[row+nx+1] = d[row+nx]
			}
		}
	}
	var (
		south, north = 0, (ny + 1) * sj
	)
	switch w.Y {
	case types.BC_Periodic:
		for i := 0; i <= nx+1; i++ {
			d[south+i] = d[ny*sj+i]
			d[north+i] = d[sj+i]
		}
	case types.BC_Neuman:
		for i := 0; i <= nx+1; i++ {
			d[south+i] = d[sj+i]
			if !faceY {
				d[north+i] = d[ny*sj+i]
			}
		}
	}
}
