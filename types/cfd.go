package types

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// NVARS is the number of conserved variables of the 2D Euler equations
const NVARS = 4

// State is a conserved variable vector: rho, rho*u, rho*v, rho*E
type State [NVARS]float64

// Normal is a unit vector pointing from the left (interior) state to the right (neighbor) state
type Normal [2]float64

// Flux is a normal flux vector ordered the same way as State
type Flux [NVARS]float64

// Jacobian is a row major NVARSxNVARS block, row = flux component, column = state component
type Jacobian [NVARS * NVARS]float64

func (n Normal) Reverse() Normal {
	return Normal{-n[0], -n[1]}
}

func (q State) Sub(p State) (d State) {
	for i := 0; i < NVARS; i++ {
		d[i] = q[i] - p[i]
	}
	return
}

func (f Flux) Neg() (r Flux) {
	for i := 0; i < NVARS; i++ {
		r[i] = -f[i]
	}
	return
}

func (J *Jacobian) At(i, j int) float64 {
	return J[i*NVARS+j]
}

func (J *Jacobian) Set(i, j int, val float64) {
	J[i*NVARS+j] = val
}

func (J *Jacobian) Scale(a float64) {
	for i := range J {
		J[i] *= a
	}
}

// AddDiagonal adds val to every diagonal entry
func (J *Jacobian) AddDiagonal(val float64) {
	for i := 0; i < NVARS; i++ {
		J[i*NVARS+i] += val
	}
}

// Dense returns a gonum copy of the block
func (J *Jacobian) Dense() *mat.Dense {
	data := make([]float64, NVARS*NVARS)
	copy(data, J[:])
	return mat.NewDense(NVARS, NVARS, data)
}

func (J *Jacobian) String() string {
	var b strings.Builder
	for i := 0; i < NVARS; i++ {
		for j := 0; j < NVARS; j++ {
			b.WriteString(fmt.Sprintf("%14.6e ", J.At(i, j)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
