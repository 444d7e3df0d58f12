package geometry2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wydh/aronnax/utils"
)

func TestGrid(t *testing.T) {
	{
		g, err := NewGrid(4, 2, 0.5, 2, 1, -1)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 1.5, 2, 2.5, 3}, g.XP1)
		assert.Equal(t, []float64{-1, 1, 3}, g.YP1)
		assert.Equal(t, []float64{1.25, 1.75, 2.25, 2.75}, g.X)
		assert.Equal(t, []float64{0, 2}, g.Y)
	}
	{
		_, err := NewGrid(0, 2, 1, 1, 0, 0)
		assert.Error(t, err)
		_, err = NewGrid(2, 2, 0, 1, 0, 0)
		assert.Error(t, err)
		assert.Equal(t, []float64{3}, Linspace(3, 5, 1))
	}
	{ // Staggered evaluation
		g, err := NewGrid(2, 2, 1, 1, 0, 0)
		require.NoError(t, err)
		var (
			h = utils.NewField2D(2, 2)
			u = utils.NewField2D(2, 2)
			v = utils.NewField2D(2, 2)
			x = func(x, y float64) float64 { return x }
			y = func(x, y float64) float64 { return y }
		)
		g.TracerField(h, x)
		g.UField(u, x)
		g.VField(v, y)
		assert.Equal(t, 0.5, h.At(1, 1))
		assert.Equal(t, 1.5, h.At(2, 2))
		assert.Equal(t, 0., h.At(0, 1))
		assert.Equal(t, 0., u.At(1, 1))
		assert.Equal(t, 2., u.At(3, 2))
		assert.Equal(t, 0., v.At(1, 1))
		assert.Equal(t, 2., v.At(2, 3))
	}
}
