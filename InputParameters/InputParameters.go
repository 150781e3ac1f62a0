package InputParameters

import (
	"fmt"
	"math"
	"runtime"

	"github.com/ghodss/yaml"

	"github.com/notargets/eulerflux/InviscidFlux"
	"github.com/notargets/eulerflux/types"
)

// Parameters obtained from the YAML input file
type FluxParameters struct {
	Title          string    `yaml:"Title"`
	FluxType       string    `yaml:"FluxType"`
	JacobianType   string    `yaml:"JacobianType"`
	Gamma          float64   `yaml:"Gamma"`
	Minf           float64   `yaml:"Minf"`
	Alpha          float64   `yaml:"Alpha"`
	LeftState      []float64 `yaml:"LeftState"`  // Conserved variables, free stream when omitted
	RightState     []float64 `yaml:"RightState"` // Conserved variables, left state when omitted
	Normal         []float64 `yaml:"Normal"`
	NumEdges       int       `yaml:"NumEdges"`
	ParallelDegree int       `yaml:"ParallelDegree"`
	Seed           int64     `yaml:"Seed"`
	Perturbation   float64   `yaml:"Perturbation"`
}

func (fp *FluxParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, fp)
}

// Validate fills defaults for omitted values and rejects inconsistent ones
func (fp *FluxParameters) Validate() (err error) {
	if fp.Gamma == 0 {
		fp.Gamma = 1.4
	}
	if fp.Gamma <= 1 {
		return fmt.Errorf("gamma must be greater than one, have %g", fp.Gamma)
	}
	if fp.FluxType == "" {
		return fmt.Errorf("FluxType is required")
	}
	if _, err = InviscidFlux.ParseFluxType(fp.FluxType); err != nil {
		return
	}
	if _, err = InviscidFlux.ParseJacobianType(fp.JacobianType); err != nil {
		return
	}
	for name, q := range map[string][]float64{"LeftState": fp.LeftState, "RightState": fp.RightState} {
		if len(q) != 0 && len(q) != types.NVARS {
			return fmt.Errorf("%s needs %d conserved variables, have %d", name, types.NVARS, len(q))
		}
	}
	switch len(fp.Normal) {
	case 0:
		fp.Normal = []float64{1, 0}
	case 2:
		mag := math.Hypot(fp.Normal[0], fp.Normal[1])
		if mag == 0 {
			return fmt.Errorf("normal has zero length")
		}
		fp.Normal = []float64{fp.Normal[0] / mag, fp.Normal[1] / mag}
	default:
		return fmt.Errorf("normal needs 2 components, have %d", len(fp.Normal))
	}
	if fp.NumEdges == 0 {
		fp.NumEdges = 1024
	}
	if fp.NumEdges < 3 {
		return fmt.Errorf("an edge ring needs at least 3 edges, have %d", fp.NumEdges)
	}
	if fp.ParallelDegree <= 0 {
		fp.ParallelDegree = runtime.NumCPU()
	}
	if fp.Seed == 0 {
		fp.Seed = 1
	}
	if fp.Perturbation < 0 || fp.Perturbation >= 1 {
		return fmt.Errorf("perturbation must be in [0,1), have %g", fp.Perturbation)
	}
	return
}

func (fp *FluxParameters) GetFluxType() InviscidFlux.FluxType {
	return InviscidFlux.NewFluxType(fp.FluxType)
}

func (fp *FluxParameters) GetJacobianType() (jt InviscidFlux.JacobianType) {
	var err error
	if jt, err = InviscidFlux.ParseJacobianType(fp.JacobianType); err != nil {
		panic(err)
	}
	return
}

func (fp *FluxParameters) GetNormal() types.Normal {
	return types.Normal{fp.Normal[0], fp.Normal[1]}
}

// GetStates returns the deck's states, or qinf where they are omitted
func (fp *FluxParameters) GetStates(qinf types.State) (ul, ur types.State) {
	ul = qinf
	if len(fp.LeftState) == types.NVARS {
		copy(ul[:], fp.LeftState)
	}
	ur = ul
	if len(fp.RightState) == types.NVARS {
		copy(ur[:], fp.RightState)
	}
	return
}

func (fp *FluxParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", fp.Title)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", fp.FluxType)
	fmt.Printf("[%s]\t\t\t= Jacobian Type\n", fp.GetJacobianType().Print())
	fmt.Printf("%8.5f\t\t= Gamma\n", fp.Gamma)
	fmt.Printf("%8.5f\t\t= Minf\n", fp.Minf)
	fmt.Printf("%8.5f\t\t= Alpha\n", fp.Alpha)
	if len(fp.LeftState) != 0 {
		fmt.Printf("%v\t= Left State\n", fp.LeftState)
	}
	if len(fp.RightState) != 0 {
		fmt.Printf("%v\t= Right State\n", fp.RightState)
	}
	fmt.Printf("%v\t\t= Normal\n", fp.Normal)
	fmt.Printf("[%d]\t\t\t= Number of Edges\n", fp.NumEdges)
	fmt.Printf("[%d]\t\t\t= Parallel Degree\n", fp.ParallelDegree)
	fmt.Printf("%8.5f\t\t= Perturbation\n", fp.Perturbation)
}
