package InviscidFlux

import (
	"math"

	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

// RoeFlux is the Roe approximate Riemann solver with the Harten-Hyman entropy fix
type RoeFlux struct {
	inviscidFlux
}

func NewRoeFlux(phys GasPhysics, log *utils.Logger) *RoeFlux {
	return &RoeFlux{inviscidFlux: newInviscidFlux(phys, log)}
}

func (rf *RoeFlux) FluxType() FluxType { return FLUX_Roe }

func (rf *RoeFlux) GetFlux(ul, ur types.State, n types.Normal) (flux types.Flux) {
	var (
		is                     = newInterfaceState(utils.ToReal(ul), utils.ToReal(ur), n, rf.g)
		nx, ny                 = n[0], n[1]
		vxi, vyi               = float64(is.vxi), float64(is.vyi)
		vxj, vyj               = float64(is.vxj), float64(is.vyj)
		vni, vnj               = float64(is.vni), float64(is.vnj)
		pi, pj                 = float64(is.pi), float64(is.pj)
		ci, cj                 = float64(is.ci), float64(is.cj)
		vxij, vyij             = float64(is.vxij), float64(is.vyij)
		Hij, vm2ij             = float64(is.Hij), float64(is.vm2ij)
		vnij, cij              = float64(is.vnij), float64(is.cij)
		rhoij                  = float64(is.Rij) * ul[0]
		fi                     = normalFlux(ul, vni, pi, n)
		fj                     = normalFlux(ur, vnj, pj, n)
		lambda, dw             [4]float64
		r                      [4][4]float64 // r[k] is the right eigenvector of wave k
		dp, dvn, oorhoc, rhoc2 = pj - pi, vnj - vni, 1. / (rhoij * cij), rhoij / (2 * cij)
	)
	lambda = [4]float64{vnij, vnij, vnij + cij, vnij - cij}
	lambda[0] = entropyFix(lambda[0], vni, vnj)
	lambda[1] = entropyFix(lambda[1], vni, vnj)
	lambda[2] = entropyFix(lambda[2], vni+ci, vnj+cj)
	lambda[3] = entropyFix(lambda[3], vni-ci, vnj-cj)

	r[0] = [4]float64{1, vxij, vyij, 0.5 * vm2ij}
	r[1] = [4]float64{0, cij * ny, -cij * nx, cij * (vxij*ny - vyij*nx)}
	r[2] = [4]float64{1, vxij + cij*nx, vyij + cij*ny, Hij + cij*vnij}
	r[3] = [4]float64{1, vxij - cij*nx, vyij - cij*ny, Hij - cij*vnij}
	for i := range r[2] {
		r[2][i] *= rhoc2
		r[3][i] *= rhoc2
	}

	dw[0] = (ur[0] - ul[0]) - dp/(cij*cij)
	dw[1] = (vxj-vxi)*ny - (vyj-vyi)*nx
	dw[2] = dvn + dp*oorhoc
	dw[3] = -dvn + dp*oorhoc

	for i := 0; i < types.NVARS; i++ {
		var diss float64
		for k := 0; k < 4; k++ {
			diss += math.Abs(lambda[k]) * dw[k] * r[k][i]
		}
		flux[i] = 0.5 * (fi[i] + fj[i] - diss)
	}
	return
}

// entropyFix replaces a wave speed too close to zero with the spread of the one sided speeds
func entropyFix(lambda, left, right float64) float64 {
	eps := math.Max(0, math.Max(lambda-left, right-lambda))
	if math.Abs(lambda) < eps {
		return eps
	}
	return lambda
}

func (rf *RoeFlux) GetJacobian(ul, ur types.State, n types.Normal, dfdl, dfdr *types.Jacobian) (err error) {
	err = rf.jacobianNotImplemented(FLUX_Roe)
	return
}
