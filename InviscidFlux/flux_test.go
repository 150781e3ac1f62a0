package InviscidFlux

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/eulerflux/physics"
	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

var allFluxTypes = []FluxType{FLUX_LaxFriedrichs, FLUX_VanLeer, FLUX_Roe, FLUX_HLL, FLUX_HLLC}

func TestFluxTypes(t *testing.T) {
	{ // Test label parsing
		for label, ft := range map[string]FluxType{
			"Lax": FLUX_LaxFriedrichs, "LLF": FLUX_LaxFriedrichs, "Lax-Friedrichs": FLUX_LaxFriedrichs,
			"Van Leer": FLUX_VanLeer, "vanleer": FLUX_VanLeer, "ROE": FLUX_Roe, "hll": FLUX_HLL, "HLLC": FLUX_HLLC,
		} {
			parsed, err := ParseFluxType(label)
			assert.NoError(t, err)
			assert.Equal(t, ft, parsed, label)
		}
		_, err := ParseFluxType("ausm")
		assert.Error(t, err)
		assert.Panics(t, func() { NewFluxType("ausm") })
		assert.Equal(t, FLUX_Roe, NewFluxType("roe"))
		assert.Equal(t, "Van Leer", FLUX_VanLeer.Print())
	}
	{ // Test Jacobian type parsing
		jt, err := ParseJacobianType("Frozen")
		assert.NoError(t, err)
		assert.Equal(t, JACOBIAN_Frozen, jt)
		jt, err = ParseJacobianType("")
		assert.NoError(t, err)
		assert.Equal(t, JACOBIAN_Full, jt)
		_, err = ParseJacobianType("approximate")
		assert.Error(t, err)
	}
	{ // Test factory
		ig := physics.NewIdealGas(1.4)
		for _, ft := range allFluxTypes {
			fs := NewInviscidFlux(ft, ig, nil)
			assert.Equal(t, ft, fs.FluxType())
		}
		_, ok := NewInviscidFlux(FLUX_HLL, ig, nil).(FrozenJacobianScheme)
		assert.True(t, ok)
		_, ok = NewInviscidFlux(FLUX_HLLC, ig, nil).(FluxJacobianScheme)
		assert.True(t, ok)
		_, ok = NewInviscidFlux(FLUX_Roe, ig, nil).(FluxJacobianScheme)
		assert.False(t, ok)
		assert.Panics(t, func() { NewInviscidFlux(FluxType(42), ig, nil) })
	}
}

func TestConsistency(t *testing.T) {
	ig := physics.NewIdealGas(1.4)
	{ // Test a uniform subsonic state returns the physical flux
		q := types.State{1, 0.1, 0, 2.5}
		n := types.Normal{1, 0}
		for _, ft := range allFluxTypes {
			f := NewInviscidFlux(ft, ig, nil).GetFlux(q, q, n)
			assert.InDeltaSlice(t, []float64{0.1, 1.008, 0, 0.3498}, f[:], 1.e-12, ft.Print())
		}
	}
	{ // Test random uniform states, including supersonic ones
		rng := rand.New(rand.NewSource(11))
		for trial := 0; trial < 20; trial++ {
			q := randomState(rng, ig, 3)
			n := randomNormal(rng)
			exact := ig.NormalFlux(q, n)
			for _, ft := range allFluxTypes {
				f := NewInviscidFlux(ft, ig, nil).GetFlux(q, q, n)
				nearFlux(t, exact, f, 1.e-11, ft.Print())
			}
		}
	}
}

func TestConservation(t *testing.T) {
	ig := physics.NewIdealGas(1.4)
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 50; trial++ {
		ul, ur := randomState(rng, ig, 1), randomState(rng, ig, 1)
		n := randomNormal(rng)
		for _, ft := range allFluxTypes {
			fs := NewInviscidFlux(ft, ig, nil)
			f := fs.GetFlux(ul, ur, n)
			fSwap := fs.GetFlux(ur, ul, n.Reverse())
			nearFlux(t, f, fSwap.Neg(), 1.e-10, ft.Print())
		}
	}
}

func TestVanLeer(t *testing.T) {
	ig := physics.NewIdealGas(1.4)
	vl := NewVanLeerFlux(ig, nil)
	n := types.Normal{1, 0}
	// Unit density and sound speed, so the Mach number is the x velocity
	stateAtMach := func(M float64) types.State { return ig.StateFromPrimitive(1, M, 0.2, 1/1.4) }
	{ // Test the split fluxes join the one sided limits at M = +-1
		for _, sgn := range []float64{1, -1} {
			q := stateAtMach(sgn)
			full := ig.NormalFlux(q, n)
			nearFlux(t, full, vl.splitFlux(q, n, sgn), 1.e-12)
			nearFlux(t, types.Flux{}, vl.splitFlux(q, n, -sgn), 1.e-12)
		}
	}
	{ // Test continuity across M = +-1 for both sides
		ur := stateAtMach(0.3)
		for _, M := range []float64{1, -1} {
			below := vl.GetFlux(stateAtMach(M-0.001), ur, n)
			above := vl.GetFlux(stateAtMach(M+0.001), ur, n)
			nearFlux(t, below, above, 1.e-2)
			below = vl.GetFlux(ur, stateAtMach(M-0.001), n)
			above = vl.GetFlux(ur, stateAtMach(M+0.001), n)
			nearFlux(t, below, above, 1.e-2)
		}
	}
	{ // Test supersonic upwinding
		ul, ur := stateAtMach(1.5), stateAtMach(2.5)
		nearFlux(t, ig.NormalFlux(ul, n), vl.GetFlux(ul, ur, n), 1.e-12)
		ul, ur = stateAtMach(-2.5), stateAtMach(-1.5)
		nearFlux(t, ig.NormalFlux(ur, n), vl.GetFlux(ul, ur, n), 1.e-12)
	}
}

func TestHLLCRegions(t *testing.T) {
	ig := physics.NewIdealGas(1.4)
	n := types.Normal{1, 0}
	speeds := func(ul, ur types.State) (sl, sm, sr float64) {
		is := newInterfaceState(utils.ToReal(ul), utils.ToReal(ur), n, 1.4)
		sL, sR := is.signalSpeeds()
		sM := contactSpeed(utils.ToReal(ul), utils.ToReal(ur), is, sL, sR)
		return float64(sL), float64(sM), float64(sR)
	}
	ul := ig.StateFromPrimitive(1, 0.1, 0, 1)
	{ // Test left star region, which returns the physical flux for a uniform state
		sl, sm, sr := speeds(ul, ul)
		assert.True(t, sl < 0 && sm > 0 && sr > sm)
		assert.Equal(t, hllcLeftStar, selectHLLCRegion(sl, sm, sr))
		assert.InDelta(t, 0.1, sm, 1.e-14)
		nearFlux(t, ig.NormalFlux(ul, n), NewHLLCFlux(ig, nil).GetFlux(ul, ul, n), 1.e-12)
	}
	{ // Test raising the right pressure moves the contact to the left
		ur := ig.StateFromPrimitive(1, 0.1, 0, 2)
		sl, sm, sr := speeds(ul, ur)
		assert.True(t, sm < 0)
		assert.Equal(t, hllcRightStar, selectHLLCRegion(sl, sm, sr))
	}
	{ // Test supersonic regions
		q := ig.StateFromPrimitive(1, 3, 0, 1)
		assert.Equal(t, hllcLeft, selectHLLCRegion(speeds(q, q)))
		q = ig.StateFromPrimitive(1, -3, 0, 1)
		assert.Equal(t, hllcRight, selectHLLCRegion(speeds(q, q)))
	}
	{ // Test both star fluxes agree when the contact is stationary
		pLo, pHi := 1., 2.
		var ur types.State
		for i := 0; i < 80; i++ {
			pMid := 0.5 * (pLo + pHi)
			ur = ig.StateFromPrimitive(1, 0.1, 0, pMid)
			if _, sm, _ := speeds(ul, ur); sm > 0 {
				pLo = pMid
			} else {
				pHi = pMid
			}
		}
		var (
			uL, uR = utils.ToReal(ul), utils.ToReal(ur)
			is     = newInterfaceState(uL, uR, n, 1.4)
			sl, sr = is.signalSpeeds()
			sm     = contactSpeed(uL, uR, is, sl, sr)
			fi     = physicalFlux(uL, is.vni, is.pi, n)
			fj     = physicalFlux(uR, is.vnj, is.pj, n)
		)
		assert.InDelta(t, 0, float64(sm), 1.e-12)
		left := utils.FromReal(starFlux(uL, fi, is.vni, is.pi, sl, sm, n))
		right := utils.FromReal(starFlux(uR, fj, is.vnj, is.pj, sr, sm, n))
		nearFlux(t, left, right, 1.e-9)
	}
}

func TestJacobianFiniteDifference(t *testing.T) {
	ig := physics.NewIdealGas(1.4)
	rng := rand.New(rand.NewSource(7))
	lf := NewLaxFriedrichsFlux(ig, nil)
	hf := NewHLLFlux(ig, nil)
	hc := NewHLLCFlux(ig, nil)
	for trial := 0; trial < 10; trial++ {
		var (
			ul, ur     = randomState(rng, ig, 1), randomState(rng, ig, 1)
			n          = randomNormal(rng)
			dfdl, dfdr types.Jacobian
		)
		{ // Test LLF against the flux with the spectral radius held fixed
			eig := lf.spectralRadius(ul, ur, n)
			require.NoError(t, lf.GetJacobian(ul, ur, n, &dfdl, &dfdr))
			nearJacobian(t, fdLeft(func(q types.State) types.Flux { return lf.fluxAtSpeed(q, ur, n, eig) }, ul), dfdl)
			nearJacobian(t, fdRight(func(q types.State) types.Flux { return lf.fluxAtSpeed(ul, q, n, eig) }, ur), dfdr)
		}
		{ // Test frozen HLL against the flux with the blend weights held fixed
			is := newInterfaceState(utils.ToReal(ul), utils.ToReal(ur), n, 1.4)
			sl, sr := is.signalSpeeds()
			t1, t2, t3 := hllWeights(sl, sr)
			frozen := func(ul, ur types.State) (f types.Flux) {
				fl, fr := ig.NormalFlux(ul, n), ig.NormalFlux(ur, n)
				for i := range f {
					f[i] = float64(t1)*fr[i] + float64(t2)*fl[i] - float64(t3)*(ur[i]-ul[i])
				}
				return
			}
			hf.GetFrozenJacobian(ul, ur, n, &dfdl, &dfdr)
			nearJacobian(t, fdLeft(func(q types.State) types.Flux { return frozen(q, ur) }, ul), dfdl)
			nearJacobian(t, fdRight(func(q types.State) types.Flux { return frozen(ul, q) }, ur), dfdr)
		}
		for _, fs := range []FluxJacobianScheme{hf, hc} { // Test full Jacobians against the flux itself
			var flux types.Flux
			require.NoError(t, fs.GetFluxJacobian(ul, ur, n, &flux, &dfdl, &dfdr))
			nearFlux(t, fs.GetFlux(ul, ur, n), flux, 1.e-14)
			nearJacobian(t, fdLeft(func(q types.State) types.Flux { return fs.GetFlux(q, ur, n) }, ul), dfdl)
			nearJacobian(t, fdRight(func(q types.State) types.Flux { return fs.GetFlux(ul, q, n) }, ur), dfdr)
		}
	}
}

func TestJacobianSignConvention(t *testing.T) {
	ig := physics.NewIdealGas(1.4)
	n := types.Normal{1, 0}
	{ // Test fully upwind HLL gives dfdl = -A(ul) and dfdr = 0
		ul := ig.StateFromPrimitive(1, 2, 0.1, 1/1.4)
		ur := ig.StateFromPrimitive(1.1, 2.1, 0, 0.8)
		var A, dfdl, dfdr types.Jacobian
		ig.EvaluateNormalJacobian(ul, n, &A)
		require.NoError(t, NewHLLFlux(ig, nil).GetJacobian(ul, ur, n, &dfdl, &dfdr))
		A.Scale(-1)
		assert.InDeltaSlice(t, A[:], dfdl[:], 1.e-12)
		assert.InDeltaSlice(t, make([]float64, 16), dfdr[:], 1.e-14)
	}
	{ // Test LLF blocks for a uniform state differ by the full dissipation
		q := ig.StateFromPrimitive(1, 0.3, 0.1, 1)
		lf := NewLaxFriedrichsFlux(ig, nil)
		eig := lf.spectralRadius(q, q, n)
		var dfdl, dfdr types.Jacobian
		require.NoError(t, lf.GetJacobian(q, q, n, &dfdl, &dfdr))
		// dfdl + dfdr = -eig*I
		for i := 0; i < types.NVARS; i++ {
			for j := 0; j < types.NVARS; j++ {
				expected := 0.
				if i == j {
					expected = -eig
				}
				assert.InDelta(t, expected, dfdl.At(i, j)+dfdr.At(i, j), 1.e-14)
			}
		}
	}
}

func TestUnsupportedJacobian(t *testing.T) {
	ig := physics.NewIdealGas(1.4)
	ul := ig.StateFromPrimitive(1, 0.3, 0.1, 1)
	ur := ig.StateFromPrimitive(0.8, 0.2, 0, 0.7)
	n := types.Normal{0, 1}
	for _, ft := range []FluxType{FLUX_VanLeer, FLUX_Roe} {
		core, logs := observer.New(zapcore.WarnLevel)
		fs := NewInviscidFlux(ft, ig, utils.NewLoggerFromZap(zap.New(core)))
		var dfdl, dfdr types.Jacobian
		for i := range dfdl {
			dfdl[i], dfdr[i] = 7, -7
		}
		err := fs.GetJacobian(ul, ur, n, &dfdl, &dfdr)
		assert.True(t, errors.Is(err, ErrJacobianNotImplemented))
		for i := range dfdl {
			assert.Equal(t, 7., dfdl[i])
			assert.Equal(t, -7., dfdr[i])
		}
		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, ft.Print(), fields["scheme"])
		assert.Equal(t, "GetJacobian", fields["operation"])
	}
	{ // Test a nil logger still reports through the error
		for _, ft := range []FluxType{FLUX_VanLeer, FLUX_Roe} {
			var dfdl, dfdr types.Jacobian
			err := NewInviscidFlux(ft, ig, nil).GetJacobian(ul, ur, n, &dfdl, &dfdr)
			assert.ErrorIs(t, err, ErrJacobianNotImplemented)
			assert.Contains(t, err.Error(), ft.Print())
		}
	}
}

func TestHLLCJacobianWarning(t *testing.T) {
	ig := physics.NewIdealGas(1.4)
	core, logs := observer.New(zapcore.WarnLevel)
	hc := NewHLLCFlux(ig, utils.NewLoggerFromZap(zap.New(core)))
	ul := ig.StateFromPrimitive(1, 0.3, 0.1, 1)
	ur := ig.StateFromPrimitive(0.8, 0.2, 0, 0.7)
	var dfdl, dfdr types.Jacobian
	for i := 0; i < 3; i++ {
		assert.NoError(t, hc.GetJacobian(ul, ur, types.Normal{1, 0}, &dfdl, &dfdr))
	}
	assert.Equal(t, 3, logs.Len())
	assert.NotEqual(t, types.Jacobian{}, dfdl)
	assert.NotEqual(t, types.Jacobian{}, dfdr)
}

func TestNonPhysicalStates(t *testing.T) {
	ig := physics.NewIdealGas(1.4)
	ur := ig.StateFromPrimitive(1, 0.3, 0.1, 1)
	{ // Test zero density propagates non finite values instead of failing
		ul := types.State{0, 0.1, 0, 1}
		for _, ft := range allFluxTypes {
			f := NewInviscidFlux(ft, ig, nil).GetFlux(ul, ur, types.Normal{1, 0})
			assert.False(t, utils.IsFinite(f), ft.Print())
		}
	}
	{ // Test negative pressure gives NaN sound speeds
		ul := types.State{1, 0, 0, -1}
		f := NewHLLFlux(ig, nil).GetFlux(ul, ur, types.Normal{1, 0})
		assert.True(t, utils.IsNan(f))
	}
}

// randomState is admissible with rho, p in [0.5, 2] and velocity components bounded by vmax
func randomState(rng *rand.Rand, ig *physics.IdealGas, vmax float64) types.State {
	var (
		rho = 0.5 + 1.5*rng.Float64()
		u   = vmax * (2*rng.Float64() - 1)
		v   = vmax * (2*rng.Float64() - 1)
		p   = 0.5 + 1.5*rng.Float64()
	)
	return ig.StateFromPrimitive(rho, u, v, p)
}

func randomNormal(rng *rand.Rand) types.Normal {
	theta := 2 * math.Pi * rng.Float64()
	return types.Normal{math.Cos(theta), math.Sin(theta)}
}

func fdLeft(F func(q types.State) types.Flux, q types.State) (J types.Jacobian) {
	J = utils.FiniteDifferenceJacobian(F, q, utils.FDSTEP)
	J.Scale(-1)
	return
}

func fdRight(F func(q types.State) types.Flux, q types.State) (J types.Jacobian) {
	return utils.FiniteDifferenceJacobian(F, q, utils.FDSTEP)
}

func nearJacobian(t *testing.T, expected, actual types.Jacobian) {
	t.Helper()
	for i := range expected {
		assert.True(t, near(expected[i], actual[i], 1.e-4*math.Max(1, math.Abs(expected[i]))),
			"entry %d: expected %g, got %g", i, expected[i], actual[i])
	}
}

func nearFlux(t *testing.T, expected, actual types.Flux, tol float64, msgAndArgs ...interface{}) {
	t.Helper()
	for i := range expected {
		assert.True(t, near(expected[i], actual[i], tol*math.Max(1, math.Abs(expected[i]))),
			append([]interface{}{"component %d: expected %g, got %g", i, expected[i], actual[i]}, msgAndArgs...)...)
	}
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	if math.Abs(a-b) <= tol {
		l = true
	}
	return
}
