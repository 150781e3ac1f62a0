package InviscidFlux

import (
	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

// HLLCFlux restores the contact wave missing from HLL with a middle wave of speed sm
type HLLCFlux struct {
	inviscidFlux
}

func NewHLLCFlux(phys GasPhysics, log *utils.Logger) *HLLCFlux {
	return &HLLCFlux{inviscidFlux: newInviscidFlux(phys, log)}
}

func (hc *HLLCFlux) FluxType() FluxType { return FLUX_HLLC }

type hllcRegion uint8

const (
	hllcLeft hllcRegion = iota
	hllcLeftStar
	hllcRightStar
	hllcRight
)

func selectHLLCRegion(sl, sm, sr float64) hllcRegion {
	switch {
	case sl > 0:
		return hllcLeft
	case sm > 0:
		return hllcLeftStar
	case sr >= 0:
		return hllcRightStar
	default:
		return hllcRight
	}
}

// contactSpeed is the speed of the middle wave given the outer signal speeds
func contactSpeed[T utils.Scalar[T]](ul, ur [types.NVARS]T, is interfaceState[T], sl, sr T) (sm T) {
	var (
		dl = sl.Sub(is.vni)
		dr = sr.Sub(is.vnj)
	)
	sm = ur[0].Mul(is.vnj).Mul(dr).Sub(ul[0].Mul(is.vni).Mul(dl)).Add(is.pi).Sub(is.pj).
		Div(ur[0].Mul(dr).Sub(ul[0].Mul(dl)))
	return
}

// starFlux is F + s*(u* - u) for the star state between the wave of speed s and the contact
func starFlux[T utils.Scalar[T]](u, f [types.NVARS]T, vn, p, s, sm T, n types.Normal) (flux [types.NVARS]T) {
	var (
		dsv   = s.Sub(vn)
		dsm   = s.Sub(sm)
		pstar = u[0].Mul(vn.Sub(s)).Mul(vn.Sub(sm)).Add(p)
		dp    = pstar.Sub(p)
		us    [types.NVARS]T
	)
	us[0] = u[0].Mul(dsv).Div(dsm)
	us[1] = dsv.Mul(u[1]).Add(dp.MulC(n[0])).Div(dsm)
	us[2] = dsv.Mul(u[2]).Add(dp.MulC(n[1])).Div(dsm)
	us[3] = dsv.Mul(u[3]).Sub(p.Mul(vn)).Add(pstar.Mul(sm)).Div(dsm)
	for i := range flux {
		flux[i] = f[i].Add(s.Mul(us[i].Sub(u[i])))
	}
	return
}

func hllcFlux[T utils.Scalar[T]](ul, ur [types.NVARS]T, n types.Normal, g float64) (flux [types.NVARS]T) {
	var (
		is     = newInterfaceState(ul, ur, n, g)
		sl, sr = is.signalSpeeds()
		sm     = contactSpeed(ul, ur, is, sl, sr)
		fi     = physicalFlux(ul, is.vni, is.pi, n)
		fj     = physicalFlux(ur, is.vnj, is.pj, n)
	)
	switch selectHLLCRegion(sl.Value(), sm.Value(), sr.Value()) {
	case hllcLeft:
		flux = fi
	case hllcLeftStar:
		flux = starFlux(ul, fi, is.vni, is.pi, sl, sm, n)
	case hllcRightStar:
		flux = starFlux(ur, fj, is.vnj, is.pj, sr, sm, n)
	case hllcRight:
		flux = fj
	}
	return
}

func (hc *HLLCFlux) GetFlux(ul, ur types.State, n types.Normal) (flux types.Flux) {
	flux = utils.FromReal(hllcFlux(utils.ToReal(ul), utils.ToReal(ur), n, hc.g))
	return
}

func (hc *HLLCFlux) GetJacobian(ul, ur types.State, n types.Normal, dfdl, dfdr *types.Jacobian) (err error) {
	var flux types.Flux
	err = hc.GetFluxJacobian(ul, ur, n, &flux, dfdl, dfdr)
	return
}

// GetFluxJacobian fills both blocks, the result has not been verified against a converged implicit solve
func (hc *HLLCFlux) GetFluxJacobian(ul, ur types.State, n types.Normal, flux *types.Flux, dfdl, dfdr *types.Jacobian) (err error) {
	hc.log.Warn("HLLC flux Jacobian is experimental and not validated", "scheme", FLUX_HLLC.Print())
	*flux, *dfdl = utils.SplitDual(hllcFlux(utils.Seed(ul), utils.Constants(ur), n, hc.g))
	dfdl.Scale(-1)
	_, *dfdr = utils.SplitDual(hllcFlux(utils.Constants(ul), utils.Seed(ur), n, hc.g))
	return
}
