package physics

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/eulerflux/types"
	"github.com/notargets/eulerflux/utils"
)

func TestIdealGas(t *testing.T) {
	ig := NewIdealGas(1.4)
	{ // Test flow functions
		q := ig.StateFromPrimitive(1.2, 0.3, -0.4, 0.9)
		assert.InDelta(t, 1.2, ig.GetFlowFunction(q, Density), 1.e-14)
		assert.InDelta(t, 0.9, ig.GetFlowFunction(q, StaticPressure), 1.e-14)
		assert.InDelta(t, 0.3, ig.GetFlowFunction(q, XVelocity), 1.e-14)
		assert.InDelta(t, -0.4, ig.GetFlowFunction(q, YVelocity), 1.e-14)
		assert.InDelta(t, 0.5, ig.GetFlowFunction(q, Velocity), 1.e-14)
		c := math.Sqrt(1.4 * 0.9 / 1.2)
		assert.InDelta(t, c, ig.GetFlowFunction(q, SoundSpeed), 1.e-14)
		assert.InDelta(t, 0.5/c, ig.GetFlowFunction(q, Mach), 1.e-14)
		assert.InDelta(t, (q[3]+0.9)/1.2, ig.GetFlowFunction(q, Enthalpy), 1.e-14)
		assert.Equal(t, "Static Pressure", StaticPressure.String())
	}
	{ // Test free stream non-dimensionalization
		fs := ig.NewFreeStream(0.5, 0)
		assert.InDelta(t, 1., fs.Cinf, 1.e-14)
		assert.InDelta(t, 1./1.4, fs.Pinf, 1.e-14)
		assert.InDelta(t, 0.125, fs.QQinf, 1.e-14)
		assert.InDelta(t, 0.5, fs.Qinf[1], 1.e-14)
		assert.InDelta(t, 0., fs.Qinf[2], 1.e-14)
	}
	{ // Test normal flux against the Cartesian fluxes
		q := ig.StateFromPrimitive(1, 0.1, 0, 1)
		f := ig.NormalFlux(q, types.Normal{1, 0})
		assert.InDeltaSlice(t, []float64{0.1, 1.01, 0, 0.1 * (q[3] + 1)}, f[:], 1.e-12)
		f = ig.NormalFlux(q, types.Normal{0, 1})
		assert.InDeltaSlice(t, []float64{0, 0, 1, 0}, f[:], 1.e-12)
	}
}

func TestNormalJacobian(t *testing.T) {
	ig := NewIdealGas(1.4)
	states := []types.State{
		ig.StateFromPrimitive(1, 0.1, 0, 1),
		ig.StateFromPrimitive(0.7, -0.8, 0.3, 1.6),
		ig.StateFromPrimitive(1.9, 0.2, -0.9, 0.6),
	}
	normals := []types.Normal{
		{1, 0},
		{0, -1},
		{math.Cos(0.7), math.Sin(0.7)},
	}
	for _, q := range states {
		for _, n := range normals {
			var J types.Jacobian
			ig.EvaluateNormalJacobian(q, n, &J)
			Jfd := utils.FiniteDifferenceJacobian(func(q types.State) types.Flux {
				return ig.NormalFlux(q, n)
			}, q, utils.FDSTEP)
			for i := range J {
				assert.InDelta(t, Jfd[i], J[i], 1.e-6*math.Max(1, math.Abs(Jfd[i])))
			}
			{ // Test eigenvalues are vn, vn, vn+c, vn-c
				var eig mat.Eigen
				assert.True(t, eig.Factorize(J.Dense(), mat.EigenNone))
				var vals []float64
				for _, v := range eig.Values(nil) {
					assert.InDelta(t, 0, imag(v), 1.e-10)
					vals = append(vals, real(v))
				}
				sort.Float64s(vals)
				vn := ig.NormalVelocity(q, n)
				c := ig.GetFlowFunction(q, SoundSpeed)
				assert.InDeltaSlice(t, []float64{vn - c, vn, vn, vn + c}, vals, 1.e-8)
			}
		}
	}
}
