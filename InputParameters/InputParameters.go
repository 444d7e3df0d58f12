package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title          string    `yaml:"Title"`
	Model          string    `yaml:"Model"` // "n-layer" or "redgrav"
	Nx             int       `yaml:"Nx"`
	Ny             int       `yaml:"Ny"`
	Layers         int       `yaml:"Layers"`
	Dx             float64   `yaml:"Dx"`
	Dy             float64   `yaml:"Dy"`
	X0             float64   `yaml:"X0"`
	Y0             float64   `yaml:"Y0"`
	GVec           []float64 `yaml:"GVec"` // buoyancy jump per interface, surface first
	BoundaryX      string    `yaml:"BoundaryX"`
	BoundaryY      string    `yaml:"BoundaryY"`
	Summation      string    `yaml:"Summation"`
	ParallelDegree int       `yaml:"ParallelDegree"`
	// Uniform initial state, used where no file is given
	InitialH []float64 `yaml:"InitialH"` // one thickness per layer
	Depth    float64   `yaml:"Depth"`
	InitialU float64   `yaml:"InitialU"`
	InitialV float64   `yaml:"InitialV"`
	// Fortran unformatted snapshot files
	Files map[string]string `yaml:"Files"` // keys: h, u, v, depth
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Validate() (err error) {
	switch {
	case ip.Nx < 1 || ip.Ny < 1:
		err = fmt.Errorf("Nx and Ny must be >= 1, have %d, %d", ip.Nx, ip.Ny)
	case ip.Layers < 1:
		err = fmt.Errorf("Layers must be >= 1, have %d", ip.Layers)
	case len(ip.GVec) != ip.Layers:
		err = fmt.Errorf("GVec has %d values for %d layers", len(ip.GVec), ip.Layers)
	case ip.Files["h"] == "" && len(ip.InitialH) != ip.Layers:
		err = fmt.Errorf("InitialH has %d values for %d layers and no h file is given",
			len(ip.InitialH), ip.Layers)
	}
	if err != nil {
		return
	}
	for n, h := range ip.InitialH {
		if h <= 0 {
			return fmt.Errorf("InitialH[%d] = %v, layer thickness must be positive", n, h)
		}
	}
	for key := range ip.Files {
		switch key {
		case "h", "u", "v", "depth":
		default:
			return fmt.Errorf("unknown file key %q, use h, u, v or depth", key)
		}
	}
	return
}

// SetDefaults fills unset grid spacing and an unset model
func (ip *InputParameters) SetDefaults() {
	if ip.Dx == 0 {
		ip.Dx = 1
	}
	if ip.Dy == 0 {
		ip.Dy = 1
	}
	if ip.Model == "" {
		ip.Model = "n-layer"
	}
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Model\n", ip.Model)
	fmt.Printf("[%d x %d x %d]\t\t= Nx x Ny x Layers\n", ip.Nx, ip.Ny, ip.Layers)
	fmt.Printf("%8.5g, %8.5g\t= Dx, Dy\n", ip.Dx, ip.Dy)
	fmt.Printf("%v\t= GVec\n", ip.GVec)
	fmt.Printf("[%s, %s]\t= Boundary X, Y\n", ip.BoundaryX, ip.BoundaryY)
	fmt.Printf("[%d]\t\t\t= Parallel Degree\n", ip.ParallelDegree)
	keys := make([]string, len(ip.Files))
	i := 0
	for k := range ip.Files {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Files[%s] = %v\n", key, ip.Files[key])
	}
}
