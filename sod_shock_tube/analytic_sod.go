package sod_shock_tube

import (
	"math"

	"github.com/notargets/eulerflux/physics"
	"github.com/notargets/eulerflux/types"
)

// Exact solution of the Sod shock tube, left state (1, 0, 1) and right state (0.125, 0, 0.1) in (rho, u, p)
type Sod struct {
	Gamma                float64
	RhoL, PL, RhoR, PR   float64
	CL                   float64
	PPost, VPost         float64 // Pressure and velocity between the rarefaction and the shock
	RhoPost, RhoMiddle   float64 // Density behind the shock and behind the rarefaction
	VShock, CMiddle, mu2 float64
}

func NewSod() (s *Sod) {
	var (
		gamma = 1.4
		mu2   = (gamma - 1) / (gamma + 1)
	)
	s = &Sod{
		Gamma: gamma,
		RhoL:  1,
		PL:    1,
		RhoR:  0.125,
		PR:    0.1,
		mu2:   mu2,
	}
	s.CL = math.Sqrt(gamma * s.PL / s.RhoL)
	s.PPost = fzero(s.pressureFunction, s.PR, s.PL)
	s.VPost = 2 * (math.Sqrt(gamma) / (gamma - 1)) * (1 - math.Pow(s.PPost, (gamma-1)/(2*gamma)))
	s.RhoPost = s.RhoR * ((s.PPost/s.PR + mu2) / (1 + mu2*(s.PPost/s.PR)))
	s.VShock = s.VPost * (s.RhoPost / s.RhoR) / ((s.RhoPost / s.RhoR) - 1)
	s.RhoMiddle = s.RhoL * math.Pow(s.PPost/s.PL, 1/gamma)
	s.CMiddle = s.CL - 0.5*(gamma-1)*s.VPost
	return
}

// Sample returns the self similar solution at xi = (x - x0)/t
func (s *Sod) Sample(xi float64) (rho, u, p float64) {
	var (
		gamma = s.Gamma
	)
	switch {
	case xi < -s.CL:
		rho, u, p = s.RhoL, 0, s.PL
	case xi <= s.VPost-s.CMiddle: // Rarefaction fan
		c := s.mu2*(-xi) + (1-s.mu2)*s.CL
		rho = s.RhoL * math.Pow(c/s.CL, 2/(gamma-1))
		p = s.PL * math.Pow(rho/s.RhoL, gamma)
		u = (1 - s.mu2) * (xi + s.CL)
	case xi <= s.VPost:
		rho, u, p = s.RhoMiddle, s.VPost, s.PPost
	case xi <= s.VShock:
		rho, u, p = s.RhoPost, s.VPost, s.PPost
	default:
		rho, u, p = s.RhoR, 0, s.PR
	}
	return
}

// Calc samples the solution on [0,1] with the diaphragm at 0.5, bracketing each wave position
func (s *Sod) Calc(t float64) (X, Rho, P, U, E []float64) {
	var (
		x0  = 0.5
		tol = 1.e-8
		x1  = x0 - s.CL*t
		x2  = x0 + t*(s.VPost-s.CMiddle)
		x3  = x0 + s.VPost*t
		x4  = x0 + s.VShock*t
	)
	X = []float64{
		0,
		x1 - tol, x1 + tol,
		x2 - tol, x2 + tol,
		x3 - tol, x3 + tol,
		x4 - tol, x4 + tol,
		1,
	}
	Rho = make([]float64, len(X))
	P = make([]float64, len(X))
	U = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		Rho[i], U[i], P[i] = s.Sample((x - x0) / t)
		E[i] = P[i] / ((s.Gamma - 1.) * Rho[i])
	}
	return
}

// GodunovFlux is the physical flux of the exact solution at the diaphragm
func (s *Sod) GodunovFlux(ig *physics.IdealGas) types.Flux {
	rho, u, p := s.Sample(0)
	return ig.NormalFlux(ig.StateFromPrimitive(rho, u, 0, p), types.Normal{1, 0})
}

// InitialStates are the conserved left and right states of the tube
func (s *Sod) InitialStates(ig *physics.IdealGas) (ul, ur types.State) {
	ul = ig.StateFromPrimitive(s.RhoL, 0, 0, s.PL)
	ur = ig.StateFromPrimitive(s.RhoR, 0, 0, s.PR)
	return
}

// fzero bisects a sign change of f inside [a, b]
func fzero(f func(P float64) (y float64), a, b float64) float64 {
	var (
		fa = f(a)
	)
	for i := 0; i < 200 && b-a > 1.e-15*b; i++ {
		mid := 0.5 * (a + b)
		fm := f(mid)
		if (fm < 0) == (fa < 0) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}
	return 0.5 * (a + b)
}

// pressureFunction is zero at the post shock pressure, it assumes unit left density and pressure
func (s *Sod) pressureFunction(P float64) (y float64) {
	var (
		gamma = s.Gamma
		mu2   = s.mu2
	)
	y = (P-s.PR)*math.Sqrt((1-mu2)/(s.RhoR*(P+mu2*s.PR))) -
		2*(math.Sqrt(gamma)/(gamma-1))*(1-math.Pow(P, (gamma-1)/(2*gamma)))
	return
}
