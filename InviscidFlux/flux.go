package InviscidFlux

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

// GasPhysics is the equation of state a flux scheme needs from its caller
type GasPhysics interface {
	Gamma() float64
	// EvaluateNormalJacobian fills dfdu with the exact Jacobian of the physical normal flux at u
	EvaluateNormalJacobian(u types.State, n types.Normal, dfdu *types.Jacobian)
}

/*
FluxScheme computes the numerical flux across an interface with unit normal n pointing from the
left state ul to the right state ur.

Jacobian blocks follow the implicit solver's lower/upper convention:

	dfdl = -dF/dul
	dfdr = +dF/dur

No input is validated. Inadmissible states (non-positive density or pressure) and degenerate wave
speeds produce NaN or Inf in the outputs, which callers are expected to detect at the solver level.
*/
type FluxScheme interface {
	GetFlux(ul, ur types.State, n types.Normal) (flux types.Flux)
	// GetJacobian returns ErrJacobianNotImplemented, leaving dfdl and dfdr untouched, for schemes without a Jacobian
	GetJacobian(ul, ur types.State, n types.Normal, dfdl, dfdr *types.Jacobian) (err error)
	FluxType() FluxType
}

// FluxJacobianScheme computes the flux and both Jacobian blocks sharing the intermediate work
type FluxJacobianScheme interface {
	FluxScheme
	GetFluxJacobian(ul, ur types.State, n types.Normal, flux *types.Flux, dfdl, dfdr *types.Jacobian) (err error)
}

// FrozenJacobianScheme linearizes with the wave speeds held constant
type FrozenJacobianScheme interface {
	FluxScheme
	GetFrozenJacobian(ul, ur types.State, n types.Normal, dfdl, dfdr *types.Jacobian)
}

var ErrJacobianNotImplemented = errors.New("flux Jacobian not implemented")

type FluxType uint8

const (
	FLUX_LaxFriedrichs FluxType = iota
	FLUX_VanLeer
	FLUX_Roe
	FLUX_HLL
	FLUX_HLLC
)

var (
	FluxNames = map[string]FluxType{
		"lax":                FLUX_LaxFriedrichs,
		"llf":                FLUX_LaxFriedrichs,
		"laxfriedrichs":      FLUX_LaxFriedrichs,
		"locallaxfriedrichs": FLUX_LaxFriedrichs,
		"vanleer":            FLUX_VanLeer,
		"roe":                FLUX_Roe,
		"hll":                FLUX_HLL,
		"hllc":               FLUX_HLLC,
	}
	FluxPrintNames = []string{"Local Lax Friedrichs", "Van Leer", "Roe", "HLL", "HLLC"}
)

func (ft FluxType) Print() (txt string) {
	if int(ft) >= len(FluxPrintNames) {
		return fmt.Sprintf("FluxType(%d)", ft)
	}
	txt = FluxPrintNames[ft]
	return
}

func ParseFluxType(label string) (ft FluxType, err error) {
	var (
		ok bool
	)
	if ft, ok = FluxNames[normalizeLabel(label)]; !ok {
		err = fmt.Errorf("unable to use flux named %s", label)
	}
	return
}

func NewFluxType(label string) (ft FluxType) {
	var (
		err error
	)
	if ft, err = ParseFluxType(label); err != nil {
		panic(err)
	}
	return
}

type JacobianType uint8

const (
	JACOBIAN_Full JacobianType = iota
	JACOBIAN_Frozen
)

var (
	JacobianNames = map[string]JacobianType{
		"":       JACOBIAN_Full,
		"full":   JACOBIAN_Full,
		"exact":  JACOBIAN_Full,
		"frozen": JACOBIAN_Frozen,
	}
	JacobianPrintNames = []string{"Full", "Frozen"}
)

func (jt JacobianType) Print() (txt string) {
	if int(jt) >= len(JacobianPrintNames) {
		return fmt.Sprintf("JacobianType(%d)", jt)
	}
	txt = JacobianPrintNames[jt]
	return
}

func ParseJacobianType(label string) (jt JacobianType, err error) {
	var (
		ok bool
	)
	if jt, ok = JacobianNames[normalizeLabel(label)]; !ok {
		err = fmt.Errorf("unable to use Jacobian type named %s", label)
	}
	return
}

func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(label)
}

// NewInviscidFlux is the single point where a scheme is selected. A nil logger silences every
// diagnostic, including the unsupported Jacobian warning, so ErrJacobianNotImplemented is then the only signal.
func NewInviscidFlux(ft FluxType, phys GasPhysics, log *utils.Logger) (fs FluxScheme) {
	switch ft {
	case FLUX_LaxFriedrichs:
		fs = NewLaxFriedrichsFlux(phys, log)
	case FLUX_VanLeer:
		fs = NewVanLeerFlux(phys, log)
	case FLUX_Roe:
		fs = NewRoeFlux(phys, log)
	case FLUX_HLL:
		fs = NewHLLFlux(phys, log)
	case FLUX_HLLC:
		fs = NewHLLCFlux(phys, log)
	default:
		panic(fmt.Errorf("unknown flux type %d", ft))
	}
	return
}

// inviscidFlux holds what every scheme shares, the physics reference is not owned
type inviscidFlux struct {
	physics GasPhysics
	g       float64
	log     *utils.Logger
}

func newInviscidFlux(phys GasPhysics, log *utils.Logger) inviscidFlux {
	if log == nil {
		log = utils.NewNopLogger()
	}
	return inviscidFlux{
		physics: phys,
		g:       phys.Gamma(),
		log:     log,
	}
}

func (f *inviscidFlux) jacobianNotImplemented(ft FluxType) (err error) {
	f.log.Warn("flux Jacobian not implemented, output left unchanged",
		"scheme", ft.Print(), "operation", "GetJacobian")
	return fmt.Errorf("%s: %w", ft.Print(), ErrJacobianNotImplemented)
}

// primitives returns the normal velocity, pressure and sound speed of q
func (f *inviscidFlux) primitives(q types.State, n types.Normal) (vn, p, c float64) {
	var (
		g = f.g
	)
	p = (g - 1) * (q[3] - 0.5*(q[1]*q[1]+q[2]*q[2])/q[0])
	c = math.Sqrt(g * p / q[0])
	vn = (q[1]*n[0] + q[2]*n[1]) / q[0]
	return
}

func normalFlux(q types.State, vn, p float64, n types.Normal) (f types.Flux) {
	f = types.Flux{
		q[0] * vn,
		vn*q[1] + p*n[0],
		vn*q[2] + p*n[1],
		vn * (q[3] + p),
	}
	return
}
