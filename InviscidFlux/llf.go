package InviscidFlux

import (
	"math"

	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

// LaxFriedrichsFlux is the Rusanov flux, central average plus dissipation at the largest local wave speed
type LaxFriedrichsFlux struct {
	inviscidFlux
}

func NewLaxFriedrichsFlux(phys GasPhysics, log *utils.Logger) *LaxFriedrichsFlux {
	return &LaxFriedrichsFlux{inviscidFlux: newInviscidFlux(phys, log)}
}

func (lf *LaxFriedrichsFlux) FluxType() FluxType { return FLUX_LaxFriedrichs }

// spectralRadius is the largest |vn| + c of the two sides, the left side wins a tie
func (lf *LaxFriedrichsFlux) spectralRadius(ul, ur types.State, n types.Normal) (eig float64) {
	var (
		vni, _, ci = lf.primitives(ul, n)
		vnj, _, cj = lf.primitives(ur, n)
		eigi       = math.Abs(vni) + ci
		eigj       = math.Abs(vnj) + cj
	)
	eig = eigj
	if eigi >= eigj {
		eig = eigi
	}
	return
}

func (lf *LaxFriedrichsFlux) GetFlux(ul, ur types.State, n types.Normal) (flux types.Flux) {
	flux = lf.fluxAtSpeed(ul, ur, n, lf.spectralRadius(ul, ur, n))
	return
}

func (lf *LaxFriedrichsFlux) fluxAtSpeed(ul, ur types.State, n types.Normal, eig float64) (flux types.Flux) {
	var (
		vni, pi, _ = lf.primitives(ul, n)
		vnj, pj, _ = lf.primitives(ur, n)
		fi         = normalFlux(ul, vni, pi, n)
		fj         = normalFlux(ur, vnj, pj, n)
	)
	for i := 0; i < types.NVARS; i++ {
		flux[i] = 0.5 * (fi[i] + fj[i] - eig*(ur[i]-ul[i]))
	}
	return
}

// GetJacobian holds the spectral radius constant
func (lf *LaxFriedrichsFlux) GetJacobian(ul, ur types.State, n types.Normal, dfdl, dfdr *types.Jacobian) (err error) {
	var (
		eig = lf.spectralRadius(ul, ur, n)
	)
	lf.physics.EvaluateNormalJacobian(ul, n, dfdl)
	dfdl.AddDiagonal(eig)
	dfdl.Scale(-0.5)

	lf.physics.EvaluateNormalJacobian(ur, n, dfdr)
	dfdr.AddDiagonal(-eig)
	dfdr.Scale(0.5)
	return
}

func (lf *LaxFriedrichsFlux) GetFluxJacobian(ul, ur types.State, n types.Normal, flux *types.Flux, dfdl, dfdr *types.Jacobian) (err error) {
	*flux = lf.GetFlux(ul, ur, n)
	err = lf.GetJacobian(ul, ur, n, dfdl, dfdr)
	return
}
