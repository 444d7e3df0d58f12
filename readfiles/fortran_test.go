package readfiles

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wydh/aronnax/utils"
)

func TestRecords(t *testing.T) {
	{ // Round trip, two records back to back
		var buf bytes.Buffer
		require.NoError(t, WriteRecord(&buf, []float64{1, 2.5, -3}))
		require.NoError(t, WriteRecord(&buf, []float64{4}))
		assert.Equal(t, 4+24+4+4+8+4, buf.Len())
		assert.Equal(t, uint32(24), binary.LittleEndian.Uint32(buf.Bytes()[:4]))
		d, err := ReadRecord(&buf)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2.5, -3}, d)
		d, err = ReadRecord(&buf)
		require.NoError(t, err)
		assert.Equal(t, []float64{4}, d)
	}
	{ // Mismatched trailing marker
		var buf bytes.Buffer
		require.NoError(t, WriteRecord(&buf, []float64{1, 2}))
		raw := buf.Bytes()
		binary.LittleEndian.PutUint32(raw[len(raw)-4:], 8)
		_, err := ReadRecord(bytes.NewReader(raw))
		assert.True(t, errors.Is(err, ErrRecordMarker))
	}
	{ // Truncated payload and odd lengths
		var buf bytes.Buffer
		require.NoError(t, WriteRecord(&buf, []float64{1, 2}))
		_, err := ReadRecord(bytes.NewReader(buf.Bytes()[:10]))
		assert.Error(t, err)
		odd := make([]byte, 4)
		binary.LittleEndian.PutUint32(odd, 12)
		_, err = ReadRecord(bytes.NewReader(odd))
		assert.Error(t, err)
	}
}

func TestStaggering(t *testing.T) {
	assert.Equal(t, Staggering{Layered: true}, StaggeringFor("out/snap.h.0000000100"))
	assert.Equal(t, Staggering{DX: 1, Layered: true}, StaggeringFor("snap.u.0000000100"))
	assert.Equal(t, Staggering{DY: 1, Layered: true}, StaggeringFor("av.v.0000000100"))
	assert.Equal(t, Staggering{}, StaggeringFor("snap.eta.0000000100"))
	assert.Equal(t, Staggering{DX: 1}, StaggeringFor("wind_x.bin"))
	assert.Equal(t, Staggering{DY: 1}, StaggeringFor("wind_y.bin"))
	assert.Equal(t, [3]int{5, 4, 1}, StaggeringFor("wind_x.bin").Dims(4, 4, 3))
	assert.Equal(t, [3]int{4, 5, 3}, StaggeringFor("snap.v.1").Dims(4, 4, 3))
	assert.Equal(t, Staggering{DX: 1}, StaggeringFor("fu.bin"))
	assert.Equal(t, Staggering{DY: 1}, StaggeringFor("fv.bin"))
	assert.Equal(t, Staggering{}, StaggeringFor("wetmask.bin"))
	assert.Equal(t, Staggering{Layered: true}, StaggeringFor("initH.bin"))
}

func TestSnapshots(t *testing.T) {
	var (
		dir    = t.TempDir()
		nx, ny = 3, 2
	)
	{ // u faces fill i = 1..nx+1
		name := filepath.Join(dir, "snap.u.0000000001")
		data := make([]float64, (nx+1)*ny*2)
		for n := range data {
			data[n] = float64(n)
		}
		var buf bytes.Buffer
		require.NoError(t, WriteRecord(&buf, data))
		require.NoError(t, os.WriteFile(name, buf.Bytes(), 0644))
		d, st, err := ReadSnapshot(name, nx, ny, 2)
		require.NoError(t, err)
		u := utils.NewField3D(nx, ny, 2)
		require.NoError(t, LoadField3D(u, d, st))
		assert.Equal(t, 0., u.At(1, 1, 1))
		assert.Equal(t, 3., u.At(4, 1, 1))
		assert.Equal(t, 4., u.At(1, 2, 1))
		assert.Equal(t, 8., u.At(1, 1, 2))
		_, _, err = ReadSnapshot(name, nx, ny, 3)
		assert.True(t, errors.Is(err, utils.ErrShapeMismatch))
		assert.Error(t, LoadField3D(utils.NewField3D(nx, ny, 3), d, st))
	}
	{ // Tracer field written then read back
		name := filepath.Join(dir, "snap.h.0000000001")
		f := utils.NewField3D(nx, ny, 2)
		f.Fill(-1)
		for k := 1; k <= 2; k++ {
			for j := 1; j <= ny; j++ {
				for i := 1; i <= nx; i++ {
					f.Set(i, j, k, float64(100*k+10*j+i))
				}
			}
		}
		require.NoError(t, WriteField3D(name, f))
		d, st, err := ReadSnapshot(name, nx, ny, 2)
		require.NoError(t, err)
		assert.Equal(t, nx*ny*2, len(d))
		assert.Equal(t, 111., d[0])
		g := utils.NewField3D(nx, ny, 2)
		require.NoError(t, LoadField3D(g, d, st))
		assert.Equal(t, f.At(3, 2, 2), g.At(3, 2, 2))
		assert.Equal(t, 0., g.At(0, 1, 1))
	}
	{ // 2D fields
		depth := utils.NewField2D(nx, ny)
		require.NoError(t, LoadField2D(depth, []float64{1, 2, 3, 4, 5, 6}, Staggering{}))
		assert.Equal(t, 6., depth.At(3, 2))
		assert.Error(t, LoadField2D(depth, []float64{1}, Staggering{}))
		_, _, err := ReadSnapshot(filepath.Join(dir, "missing"), nx, ny, 1)
		assert.Error(t, err)
	}
}
