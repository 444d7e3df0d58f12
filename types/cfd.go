package types

import (
	"fmt"
	"strings"
)

// BCFLAG selects how the halo of one horizontal axis is filled
type BCFLAG uint8

const (
	BC_None     BCFLAG = iota
	BC_Periodic        // halo takes the value on the opposite side of the domain
	BC_Neuman          // halo copies the adjacent interior value (zero gradient)
)

var BCNameMap = map[string]BCFLAG{
	"none":          BC_None,
	"periodic":      BC_Periodic,
	"wrap":          BC_Periodic,
	"neuman":        BC_Neuman,
	"neumann":       BC_Neuman,
	"copy":          BC_Neuman,
	"zero-gradient": BC_Neuman,
}

func (bc BCFLAG) String() string {
	switch bc {
	case BC_None:
		return "None"
	case BC_Periodic:
		return "Periodic"
	case BC_Neuman:
		return "Neuman"
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bc))
}

// NewBCFLAG parses a boundary name, matching case-insensitively. An empty
// name is periodic, matching the model's default domain.
func NewBCFLAG(name string) (bc BCFLAG, err error) {
	var (
		ok  bool
		key = strings.ToLower(strings.TrimSpace(name))
	)
	if key == "" {
		return BC_Periodic, nil
	}
	if bc, ok = BCNameMap[key]; !ok {
		err = fmt.Errorf("unknown boundary condition %q", name)
	}
	return
}
