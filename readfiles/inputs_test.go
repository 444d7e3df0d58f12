package readfiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wydh/aronnax/geometry2D"
	"github.com/wydh/aronnax/utils"
)

func TestInputWriters(t *testing.T) {
	var (
		dir    = t.TempDir()
		nx, ny = 4, 3
	)
	g, err := geometry2D.NewGrid(nx, ny, 10, 20, 0, 0)
	require.NoError(t, err)
	{ // Initial heights read back as a layered tracer field
		bump := func(x, y float64) float64 { return 100 + x + 2*y }
		name, err := WriteInitialHeights(dir, g, []FieldFunc{Constant(400), bump})
		require.NoError(t, err)
		data, st, err := ReadSnapshot(name, nx, ny, 2)
		require.NoError(t, err)
		h := utils.NewField3D(nx, ny, 2)
		require.NoError(t, LoadField3D(h, data, st))
		want := utils.NewField3D(nx, ny, 2)
		g.TracerField(want.Layer(1), Constant(400))
		g.TracerField(want.Layer(2), bump)
		assert.True(t, want.Equal(h))
		// x = 15 and y = 50 at cell (2, 3)
		assert.Equal(t, 100+15+2*50., h.At(2, 3, 2))
		_, err = WriteInitialHeights(dir, g, nil)
		assert.Error(t, err)
	}
	{ // Wind on faces
		name, err := WriteWindX(dir, g, func(x, y float64) float64 { return x })
		require.NoError(t, err)
		data, st, err := ReadSnapshot(name, nx, ny, 1)
		require.NoError(t, err)
		assert.Equal(t, Staggering{DX: 1}, st)
		assert.Equal(t, []float64{0, 10, 20, 30, 40}, data[:nx+1])
		name, err = WriteWindY(dir, g, func(x, y float64) float64 { return y })
		require.NoError(t, err)
		data, _, err = ReadSnapshot(name, nx, ny, 1)
		require.NoError(t, err)
		require.Len(t, data, nx*(ny+1))
		assert.Equal(t, 60., data[nx*ny])
	}
	{ // Coriolis planes
		fu, fv, err := WriteBetaPlane(dir, g, 1.e-4, 1.e-6)
		require.NoError(t, err)
		data, _, err := ReadSnapshot(fu, nx, ny, 1)
		require.NoError(t, err)
		require.Len(t, data, (nx+1)*ny)
		assert.InDelta(t, 1.e-4+1.e-6*10, data[0], 1.e-18)
		data, _, err = ReadSnapshot(fv, nx, ny, 1)
		require.NoError(t, err)
		require.Len(t, data, nx*(ny+1))
		assert.Equal(t, 1.e-4, data[0])
		fu, _, err = WriteFPlane(dir, g, 2.e-4)
		require.NoError(t, err)
		data, _, err = ReadSnapshot(fu, nx, ny, 1)
		require.NoError(t, err)
		for _, val := range data {
			assert.Equal(t, 2.e-4, val)
		}
	}
	{ // Rectangular pool is dry on its outer ring
		name, err := WriteRectangularPool(dir, nx, ny)
		require.NoError(t, err)
		data, _, err := ReadSnapshot(name, nx, ny, 1)
		require.NoError(t, err)
		assert.Equal(t, []float64{
			0, 0, 0, 0,
			0, 1, 1, 0,
			0, 0, 0, 0,
		}, data)
	}
}
