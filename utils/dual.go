package utils

import (
	"math"

	"github.com/notargets/eulerflux/types"
)

/*
Scalar is the arithmetic needed to write a flux formula once and evaluate it either on plain
floating point values (Real) or on forward mode dual numbers (Dual), which carry the derivative of
the value with respect to NVARS independent directions alongside the value itself.

Branching inside a formula must be done on Value(), so both instantiations follow the same path.
*/
type Scalar[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	AddC(float64) T
	MulC(float64) T
	Neg() T
	Sqrt() T
	Abs() T
	Value() float64
	Const(float64) T
}

type Real float64

func (a Real) Add(b Real) Real      { return a + b }
func (a Real) Sub(b Real) Real      { return a - b }
func (a Real) Mul(b Real) Real      { return a * b }
func (a Real) Div(b Real) Real      { return a / b }
func (a Real) AddC(c float64) Real  { return a + Real(c) }
func (a Real) MulC(c float64) Real  { return a * Real(c) }
func (a Real) Neg() Real            { return -a }
func (a Real) Sqrt() Real           { return Real(math.Sqrt(float64(a))) }
func (a Real) Abs() Real            { return Real(math.Abs(float64(a))) }
func (a Real) Value() float64       { return float64(a) }
func (a Real) Const(c float64) Real { return Real(c) }

// Dual is a value with its derivative along NVARS directions
type Dual struct {
	V float64
	D [types.NVARS]float64
}

func (a Dual) Add(b Dual) (r Dual) {
	r.V = a.V + b.V
	for i := range r.D {
		r.D[i] = a.D[i] + b.D[i]
	}
	return
}

func (a Dual) Sub(b Dual) (r Dual) {
	r.V = a.V - b.V
	for i := range r.D {
		r.D[i] = a.D[i] - b.D[i]
	}
	return
}

func (a Dual) Mul(b Dual) (r Dual) {
	r.V = a.V * b.V
	for i := range r.D {
		r.D[i] = a.D[i]*b.V + a.V*b.D[i]
	}
	return
}

func (a Dual) Div(b Dual) (r Dual) {
	var (
		oob2 = 1. / (b.V * b.V)
	)
	r.V = a.V / b.V
	for i := range r.D {
		r.D[i] = (a.D[i]*b.V - a.V*b.D[i]) * oob2
	}
	return
}

func (a Dual) AddC(c float64) (r Dual) {
	r = a
	r.V += c
	return
}

func (a Dual) MulC(c float64) (r Dual) {
	r.V = a.V * c
	for i := range r.D {
		r.D[i] = a.D[i] * c
	}
	return
}

func (a Dual) Neg() Dual {
	return a.MulC(-1)
}

// Sqrt has a zero derivative at zero, rather than an infinite one
func (a Dual) Sqrt() (r Dual) {
	r.V = math.Sqrt(a.V)
	if a.V == 0 {
		return
	}
	oo2s := 0.5 / r.V
	for i := range r.D {
		r.D[i] = a.D[i] * oo2s
	}
	return
}

// Abs takes the positive branch derivative at zero
func (a Dual) Abs() Dual {
	if a.V >= 0 {
		return a
	}
	return a.Neg()
}

func (a Dual) Value() float64 { return a.V }

func (a Dual) Const(c float64) Dual { return Dual{V: c} }

// Seed returns the components of q as duals, each differentiated along its own direction
func Seed(q types.State) (u [types.NVARS]Dual) {
	for i := range u {
		u[i].V = q[i]
		u[i].D[i] = 1
	}
	return
}

// Constants returns the components of q as duals with zero derivative
func Constants(q types.State) (u [types.NVARS]Dual) {
	for i := range u {
		u[i].V = q[i]
	}
	return
}

func ToReal(q types.State) (u [types.NVARS]Real) {
	for i := range u {
		u[i] = Real(q[i])
	}
	return
}

func FromReal(u [types.NVARS]Real) (f types.Flux) {
	for i := range u {
		f[i] = float64(u[i])
	}
	return
}

// SplitDual separates dual flux components into values and the Jacobian of the seeded directions
func SplitDual(u [types.NVARS]Dual) (f types.Flux, J types.Jacobian) {
	for i := range u {
		f[i] = u[i].V
		for j := 0; j < types.NVARS; j++ {
			J.Set(i, j, u[i].D[j])
		}
	}
	return
}
