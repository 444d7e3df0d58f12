package utils

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField3D(t *testing.T) {
	{ // Column major, i fastest, 1 based layers
		f := NewField3D(3, 2, 2)
		assert.Equal(t, 5*4*2, len(f.DataP))
		assert.Equal(t, 0, f.Index(0, 0, 1))
		assert.Equal(t, 1, f.Index(1, 0, 1))
		assert.Equal(t, 5, f.Index(0, 1, 1))
		assert.Equal(t, 20, f.Index(0, 0, 2))
		assert.Equal(t, 4+5*3+20, f.Index(4, 3, 2))
		sj, sk := f.Strides()
		assert.Equal(t, 5, sj)
		assert.Equal(t, 20, sk)
		f.Set(2, 1, 2, 7.5)
		assert.Equal(t, 7.5, f.DataP[2+5+20])
		assert.Equal(t, 7.5, f.At(2, 1, 2))
	}
	{ // Layer views share storage
		f := NewField3D(3, 2, 2)
		l := f.Layer(2)
		l.Set(1, 1, 3.)
		assert.Equal(t, 3., f.At(1, 1, 2))
		f.Set(3, 2, 2, -1.)
		assert.Equal(t, -1., l.At(3, 2))
		assert.Equal(t, -1., l.M.At(2, 3))
		assert.Equal(t, 0., f.At(1, 1, 1))
	}
	{ // Copy and bitwise equality
		f := NewField3D(2, 2, 1)
		f.Fill(1.25)
		g := f.Copy()
		assert.True(t, f.Equal(g))
		g.Set(1, 1, 1, math.Nextafter(1.25, 2))
		assert.False(t, f.Equal(g))
		assert.False(t, f.Equal(NewField3D(2, 2, 2)))
		z := NewField3D(1, 1, 1)
		nz := z.Copy()
		nz.Fill(math.Copysign(0, -1))
		assert.False(t, z.Equal(nz))
	}
	{ // Shape checks
		f := NewField3D(3, 2, 2)
		assert.NoError(t, f.CheckShape(3, 2, 2, "h"))
		err := f.CheckShape(3, 3, 2, "h")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrShapeMismatch))
		assert.Contains(t, err.Error(), "field h")
		var nilField *Field3D
		assert.True(t, errors.Is(nilField.CheckShape(1, 1, 1, "u"), ErrShapeMismatch))
		f.DataP = f.DataP[:10]
		assert.True(t, errors.Is(f.CheckShape(3, 2, 2, "h"), ErrShapeMismatch))
	}
	{ // Storage overlap
		backing := make([]float64, 20)
		a := &Field3D{Nx: 1, Ny: 1, Layers: 1, DataP: backing[:9]}
		b := &Field3D{Nx: 1, Ny: 1, Layers: 1, DataP: backing[8:17]}
		c := &Field3D{Nx: 1, Ny: 1, Layers: 1, DataP: backing[9:18]}
		assert.True(t, a.Overlaps(a))
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
		assert.False(t, a.Overlaps(c))
		assert.False(t, a.Overlaps(NewField3D(1, 1, 1)))
	}
	{ // Dimension checks
		assert.NoError(t, CheckDims(2, 2, 1))
		assert.True(t, errors.Is(CheckDims(2, 2, 0), ErrBadDimensions))
		assert.True(t, errors.Is(CheckDims(0, 2, 1), ErrBadDimensions))
	}
	{ // Interior statistics ignore the halo
		f := NewField3D(2, 2, 1)
		f.Fill(100)
		for j := 1; j <= 2; j++ {
			for i := 1; i <= 2; i++ {
				f.Set(i, j, 1, float64(i+2*j))
			}
		}
		assert.Equal(t, []float64{3, 4, 5, 6}, f.Interior(1))
	}
}

func TestField2D(t *testing.T) {
	f := NewField2DConst(4, 3, 2.5)
	r, c := f.M.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 6, c)
	assert.Equal(t, 2.5, f.At(5, 4))
	f.Set(5, 0, 1)
	assert.Equal(t, 1., f.DataP()[5])
	assert.NoError(t, f.CheckShape(4, 3, "depth"))
	assert.True(t, errors.Is(f.CheckShape(3, 4, "depth"), ErrShapeMismatch))
	var nilField *Field2D
	assert.True(t, errors.Is(nilField.CheckShape(4, 3, "depth"), ErrShapeMismatch))
	assert.False(t, IsNan(f))
	f.Set(1, 1, math.NaN())
	assert.True(t, IsNan(f))
}
