package InviscidFlux

import (
	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

// HLLFlux is the two wave HLL solver with Einfeldt signal speeds
type HLLFlux struct {
	inviscidFlux
}

func NewHLLFlux(phys GasPhysics, log *utils.Logger) *HLLFlux {
	return &HLLFlux{inviscidFlux: newInviscidFlux(phys, log)}
}

func (hf *HLLFlux) FluxType() FluxType { return FLUX_HLL }

/*
hllWeights folds the three HLL cases into one blend:

	F = t1*FR + t2*FL - t3*(ur - ul)

which reduces to FL for sl > 0 and FR for sr < 0
*/
func hllWeights[T utils.Scalar[T]](sl, sr T) (t1, t2, t3 T) {
	var (
		zero     = sl.Const(0)
		sl0, sr0 = sl, sr
		ds       = sr.Sub(sl)
	)
	if sr.Value() > 0 {
		sr0 = zero
	}
	if sl.Value() > 0 {
		sl0 = zero
	}
	t1 = sr0.Sub(sl0).Div(ds)
	t2 = t1.Neg().AddC(1)
	t3 = sr.Mul(sl.Abs()).Sub(sl.Mul(sr.Abs())).MulC(0.5).Div(ds)
	return
}

func hllFlux[T utils.Scalar[T]](ul, ur [types.NVARS]T, n types.Normal, g float64) (flux [types.NVARS]T) {
	var (
		is         = newInterfaceState(ul, ur, n, g)
		sl, sr     = is.signalSpeeds()
		t1, t2, t3 = hllWeights(sl, sr)
		fi         = physicalFlux(ul, is.vni, is.pi, n)
		fj         = physicalFlux(ur, is.vnj, is.pj, n)
	)
	for i := range flux {
		flux[i] = t1.Mul(fj[i]).Add(t2.Mul(fi[i])).Sub(t3.Mul(ur[i].Sub(ul[i])))
	}
	return
}

func (hf *HLLFlux) GetFlux(ul, ur types.State, n types.Normal) (flux types.Flux) {
	flux = utils.FromReal(hllFlux(utils.ToReal(ul), utils.ToReal(ur), n, hf.g))
	return
}

// GetJacobian differentiates through the signal speeds as well as the fluxes
func (hf *HLLFlux) GetJacobian(ul, ur types.State, n types.Normal, dfdl, dfdr *types.Jacobian) (err error) {
	var flux types.Flux
	err = hf.GetFluxJacobian(ul, ur, n, &flux, dfdl, dfdr)
	return
}

func (hf *HLLFlux) GetFluxJacobian(ul, ur types.State, n types.Normal, flux *types.Flux, dfdl, dfdr *types.Jacobian) (err error) {
	*flux, *dfdl = utils.SplitDual(hllFlux(utils.Seed(ul), utils.Constants(ur), n, hf.g))
	dfdl.Scale(-1)
	_, *dfdr = utils.SplitDual(hllFlux(utils.Constants(ul), utils.Seed(ur), n, hf.g))
	return
}

// GetFrozenJacobian holds the signal speeds, and so the blend weights, constant
func (hf *HLLFlux) GetFrozenJacobian(ul, ur types.State, n types.Normal, dfdl, dfdr *types.Jacobian) {
	var (
		is         = newInterfaceState(utils.ToReal(ul), utils.ToReal(ur), n, hf.g)
		sl, sr     = is.signalSpeeds()
		t1, t2, t3 = hllWeights(sl, sr)
	)
	hf.physics.EvaluateNormalJacobian(ul, n, dfdl)
	dfdl.Scale(-float64(t2))
	dfdl.AddDiagonal(-float64(t3))

	hf.physics.EvaluateNormalJacobian(ur, n, dfdr)
	dfdr.Scale(float64(t1))
	dfdr.AddDiagonal(-float64(t3))
}
