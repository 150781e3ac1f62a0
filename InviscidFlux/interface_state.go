package InviscidFlux

import (
	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

// interfaceState holds the one sided primitives of the left (i) and right (j) states and their Roe average (ij)
type interfaceState[T utils.Scalar[T]] struct {
	vxi, vyi, vxj, vyj T
	vni, vnj           T
	pi, pj             T
	ci, cj             T
	Rij                T // sqrt(rho_j/rho_i)
	vxij, vyij, Hij    T
	vm2ij, vnij, cij   T
}

func newInterfaceState[T utils.Scalar[T]](ul, ur [types.NVARS]T, n types.Normal, g float64) (is interfaceState[T]) {
	var (
		nx, ny         = n[0], n[1]
		vmag2i, vmag2j T
		Hi, Hj, Rp1    T
	)
	is.vxi, is.vyi = ul[1].Div(ul[0]), ul[2].Div(ul[0])
	is.vxj, is.vyj = ur[1].Div(ur[0]), ur[2].Div(ur[0])
	is.vni = is.vxi.MulC(nx).Add(is.vyi.MulC(ny))
	is.vnj = is.vxj.MulC(nx).Add(is.vyj.MulC(ny))
	vmag2i = is.vxi.Mul(is.vxi).Add(is.vyi.Mul(is.vyi))
	vmag2j = is.vxj.Mul(is.vxj).Add(is.vyj.Mul(is.vyj))

	is.pi = ul[3].Sub(ul[0].Mul(vmag2i).MulC(0.5)).MulC(g - 1)
	is.pj = ur[3].Sub(ur[0].Mul(vmag2j).MulC(0.5)).MulC(g - 1)
	is.ci = is.pi.MulC(g).Div(ul[0]).Sqrt()
	is.cj = is.pj.MulC(g).Div(ur[0]).Sqrt()
	Hi = ul[3].Add(is.pi).Div(ul[0])
	Hj = ur[3].Add(is.pj).Div(ur[0])

	// Roe average
	is.Rij = ur[0].Div(ul[0]).Sqrt()
	Rp1 = is.Rij.AddC(1)
	is.vxij = is.Rij.Mul(is.vxj).Add(is.vxi).Div(Rp1)
	is.vyij = is.Rij.Mul(is.vyj).Add(is.vyi).Div(Rp1)
	is.Hij = is.Rij.Mul(Hj).Add(Hi).Div(Rp1)
	is.vm2ij = is.vxij.Mul(is.vxij).Add(is.vyij.Mul(is.vyij))
	is.vnij = is.vxij.MulC(nx).Add(is.vyij.MulC(ny))
	is.cij = is.Hij.Sub(is.vm2ij.MulC(0.5)).MulC(g - 1).Sqrt()
	return
}

// signalSpeeds are the Einfeldt estimates of the slowest and fastest waves
func (is interfaceState[T]) signalSpeeds() (sl, sr T) {
	var (
		slij = is.vnij.Sub(is.cij)
		srij = is.vnij.Add(is.cij)
	)
	sl = is.vni.Sub(is.ci)
	if sl.Value() > slij.Value() {
		sl = slij
	}
	sr = is.vnj.Add(is.cj)
	if sr.Value() < srij.Value() {
		sr = srij
	}
	return
}

func physicalFlux[T utils.Scalar[T]](u [types.NVARS]T, vn, p T, n types.Normal) (f [types.NVARS]T) {
	f[0] = vn.Mul(u[0])
	f[1] = vn.Mul(u[1]).Add(p.MulC(n[0]))
	f[2] = vn.Mul(u[2]).Add(p.MulC(n[1]))
	f[3] = vn.Mul(u[3].Add(p))
	return
}
