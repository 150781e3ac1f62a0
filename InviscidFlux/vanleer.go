package InviscidFlux

import (
	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

// VanLeerFlux is the Van Leer flux vector splitting, F+(ul) + F-(ur)
type VanLeerFlux struct {
	inviscidFlux
}

func NewVanLeerFlux(phys GasPhysics, log *utils.Logger) *VanLeerFlux {
	return &VanLeerFlux{inviscidFlux: newInviscidFlux(phys, log)}
}

func (vl *VanLeerFlux) FluxType() FluxType { return FLUX_VanLeer }

func (vl *VanLeerFlux) GetFlux(ul, ur types.State, n types.Normal) (flux types.Flux) {
	var (
		fplus  = vl.splitFlux(ul, n, 1)
		fminus = vl.splitFlux(ur, n, -1)
	)
	for i := 0; i < types.NVARS; i++ {
		flux[i] = fplus[i] + fminus[i]
	}
	return
}

// splitFlux is the forward (sgn = 1) or backward (sgn = -1) part of the normal flux of q
func (vl *VanLeerFlux) splitFlux(q types.State, n types.Normal, sgn float64) (f types.Flux) {
	var (
		g        = vl.g
		vn, p, c = vl.primitives(q, n)
		M        = vn / c
		u, v     = q[1] / q[0], q[2] / q[0]
		vmag2    = u*u + v*v
		a        float64
	)
	switch {
	case sgn*M > 1: // supersonic in the splitting direction carries the whole flux
		f = normalFlux(q, vn, p, n)
		return
	case sgn*M < -1:
		return
	}
	a = sgn * 0.25 * q[0] * c * utils.POW(M+sgn, 2)
	f[0] = a
	f[1] = a * (u + n[0]*(sgn*2*c-vn)/g)
	f[2] = a * (v + n[1]*(sgn*2*c-vn)/g)
	f[3] = a * (0.5*(vmag2-vn*vn) + utils.POW((g-1)*vn+sgn*2*c, 2)/(2*(g*g-1)))
	return
}

func (vl *VanLeerFlux) GetJacobian(ul, ur types.State, n types.Normal, dfdl, dfdr *types.Jacobian) (err error) {
	err = vl.jacobianNotImplemented(FLUX_VanLeer)
	return
}
