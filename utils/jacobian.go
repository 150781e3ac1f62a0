package utils

import (
	"github.com/notargets/eulerflux/types"
)

// FiniteDifferenceJacobian approximates dF/dq by central differences with step h on each component
func FiniteDifferenceJacobian(F func(q types.State) types.Flux, q types.State, h float64) (J types.Jacobian) {
	for j := 0; j < types.NVARS; j++ {
		qp, qm := q, q
		qp[j] += h
		qm[j] -= h
		fp, fm := F(qp), F(qm)
		for i := 0; i < types.NVARS; i++ {
			J.Set(i, j, (fp[i]-fm[i])/(2*h))
		}
	}
	return
}
