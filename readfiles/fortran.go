package readfiles

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/wydh/aronnax/utils"
)

/*
	Aronnax reads and writes Fortran sequential unformatted files: each record is
	a 4 byte little endian byte count, the payload, and the same count again.
	Payloads here are always float64 arrays in Fortran order (i fastest).
*/

var ErrRecordMarker = errors.New("fortran record markers disagree")

func ReadRecord(r io.Reader) (data []float64, err error) {
	var (
		head, tail uint32
	)
	if err = binary.Read(r, binary.LittleEndian, &head); err != nil {
		return
	}
	if head%8 != 0 {
		err = fmt.Errorf("record length %d is not a whole number of float64", head)
		return
	}
	data = make([]float64, head/8)
	if err = binary.Read(r, binary.LittleEndian, data); err != nil {
		err = fmt.Errorf("reading %d byte record: %w", head, err)
		return
	}
	if err = binary.Read(r, binary.LittleEndian, &tail); err != nil {
		err = fmt.Errorf("reading trailing marker: %w", err)
		return
	}
	if head != tail {
		err = fmt.Errorf("%w: leading %d, trailing %d", ErrRecordMarker, head, tail)
	}
	return
}

func WriteRecord(w io.Writer, data []float64) (err error) {
	if uint64(len(data))*8 > math.MaxUint32 {
		return fmt.Errorf("record of %d values is too large for a 4 byte marker", len(data))
	}
	marker := uint32(len(data) * 8)
	if err = binary.Write(w, binary.LittleEndian, marker); err != nil {
		return
	}
	if err = binary.Write(w, binary.LittleEndian, data); err != nil {
		return
	}
	return binary.Write(w, binary.LittleEndian, marker)
}

// Staggering describes where a file's values sit relative to cell centers
type Staggering struct {
	DX, DY  int // extra point in x (u faces) or y (v faces)
	Layered bool
}

// StaggeringFor infers the array shape from the Aronnax file naming convention
func StaggeringFor(name string) (st Staggering) {
	var (
		file = filepath.Base(name)
	)
	st.Layered = true
	switch {
	case strings.HasPrefix(file, "snap.u"), strings.HasPrefix(file, "av.u"):
		st.DX = 1
	case strings.HasPrefix(file, "snap.v"), strings.HasPrefix(file, "av.v"):
		st.DY = 1
	case strings.HasPrefix(file, "snap.eta"), strings.HasPrefix(file, "av.eta"):
		st.Layered = false
	case strings.HasPrefix(file, "wind_x"):
		st.DX = 1
		st.Layered = false
	case strings.HasPrefix(file, "wind_y"):
		st.DY = 1
		st.Layered = false
	case strings.HasPrefix(file, "fu"):
		st.DX = 1
		st.Layered = false
	case strings.HasPrefix(file, "fv"):
		st.DY = 1
		st.Layered = false
	case strings.HasPrefix(file, "wetmask"):
		st.Layered = false
	}
	return
}

// Dims returns the i, j and layer extents stored in the file
func (st Staggering) Dims(nx, ny, layers int) (dims [3]int) {
	dims = [3]int{nx + st.DX, ny + st.DY, 1}
	if st.Layered {
		dims[2] = layers
	}
	return
}

func ReadSnapshot(name string, nx, ny, layers int) (data []float64, st Staggering, err error) {
	var (
		file *os.File
	)
	st = StaggeringFor(name)
	if file, err = os.Open(name); err != nil {
		return
	}
	defer file.Close()
	if data, err = ReadRecord(bufio.NewReader(file)); err != nil {
		err = fmt.Errorf("%s: %w", name, err)
		return
	}
	dims := st.Dims(nx, ny, layers)
	if len(data) != dims[0]*dims[1]*dims[2] {
		err = fmt.Errorf("%w: %s holds %d values, expected %dx%dx%d",
			utils.ErrShapeMismatch, name, len(data), dims[0], dims[1], dims[2])
	}
	return
}

// LoadField3D copies file data into dst starting at interior index (1,1).
// Face staggered data fills one more column or row, u to i = Nx+1, v to j = Ny+1.
func LoadField3D(dst *utils.Field3D, data []float64, st Staggering) (err error) {
	var (
		dims = st.Dims(dst.Nx, dst.Ny, dst.Layers)
		ind  int
	)
	if !st.Layered || len(data) != dims[0]*dims[1]*dims[2] {
		return fmt.Errorf("%w: %d values for a %dx%dx%d layered field",
			utils.ErrShapeMismatch, len(data), dims[0], dims[1], dims[2])
	}
	for k := 1; k <= dims[2]; k++ {
		for j := 1; j <= dims[1]; j++ {
			for i := 1; i <= dims[0]; i++ {
				dst.Set(i, j, k, data[ind])
				ind++
			}
		}
	}
	return
}

func LoadField2D(dst *utils.Field2D, data []float64, st Staggering) (err error) {
	var (
		dims = st.Dims(dst.Nx, dst.Ny, 1)
		ind  int
	)
	if len(data) != dims[0]*dims[1] {
		return fmt.Errorf("%w: %d values for a %dx%d field",
			utils.ErrShapeMismatch, len(data), dims[0], dims[1])
	}
	for j := 1; j <= dims[1]; j++ {
		for i := 1; i <= dims[0]; i++ {
			dst.Set(i, j, data[ind])
			ind++
		}
	}
	return
}

// WriteField3D writes the interior of a tracer point field as one record
func WriteField3D(name string, f *utils.Field3D) (err error) {
	var (
		data = make([]float64, 0, f.Nx*f.Ny*f.Layers)
	)
	for k := 1; k <= f.Layers; k++ {
		for j := 1; j <= f.Ny; j++ {
			for i := 1; i <= f.Nx; i++ {
				data = append(data, f.At(i, j, k))
			}
		}
	}
	return writeRecordFile(name, data)
}

// writeRecordFile creates name holding data as a single record
func writeRecordFile(name string, data []float64) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(name); err != nil {
		return
	}
	w := bufio.NewWriter(file)
	if err = WriteRecord(w, data); err != nil {
		file.Close()
		return
	}
	if err = w.Flush(); err != nil {
		file.Close()
		return
	}
	return file.Close()
}
