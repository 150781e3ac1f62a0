package physics

import (
	"math"

	"github.com/notargets/eulerflux/types"
)

type FlowFunction uint8

func (pm FlowFunction) String() string {
	strings := []string{
		"Density",
		"XMomentum",
		"YMomentum",
		"Energy",
		"Mach",
		"Static Pressure",
		"Dynamic Pressure",
		"Sound Speed",
		"Velocity",
		"XVelocity",
		"YVelocity",
		"Enthalpy",
		"Internal Energy",
	}
	return strings[int(pm)]
}

const (
	Density FlowFunction = iota
	XMomentum
	YMomentum
	Energy
	Mach            // 4
	StaticPressure  // 5
	DynamicPressure // 6
	SoundSpeed      // 7
	Velocity        // 8
	XVelocity       // 9
	YVelocity       // 10
	Enthalpy        // 11
	InternalEnergy  // 12
)

// IdealGas is the calorically perfect gas equation of state for the 2D Euler equations
type IdealGas struct {
	gamma float64
}

func NewIdealGas(Gamma float64) (ig *IdealGas) {
	ig = &IdealGas{gamma: Gamma}
	return
}

func (ig *IdealGas) Gamma() float64 { return ig.gamma }

// GetFlowFunction does not guard against non-physical states, a negative pressure gives a NaN sound speed
func (ig *IdealGas) GetFlowFunction(q types.State, pf FlowFunction) (f float64) {
	var (
		rho, rhoU, rhoV, E = q[0], q[1], q[2], q[3]
		Gamma              = ig.gamma
		GM1                = Gamma - 1.
		oorho              = 1. / rho
		qq, p              float64
	)
	switch pf {
	case StaticPressure, SoundSpeed, Enthalpy, Mach, InternalEnergy, DynamicPressure:
		qq = 0.5 * (rhoU*rhoU + rhoV*rhoV) * oorho
		p = GM1 * (E - qq)
	}

	switch pf {
	case Density:
		f = rho
	case XMomentum:
		f = rhoU
	case YMomentum:
		f = rhoV
	case Energy:
		f = E
	case StaticPressure:
		f = p
	case DynamicPressure:
		f = qq
	case SoundSpeed:
		f = math.Sqrt(Gamma * p * oorho)
	case Velocity:
		f = math.Sqrt(rhoU*rhoU+rhoV*rhoV) * oorho
	case XVelocity:
		f = rhoU * oorho
	case YVelocity:
		f = rhoV * oorho
	case Mach:
		C := math.Sqrt(Gamma * p * oorho)
		U := math.Sqrt(rhoU*rhoU+rhoV*rhoV) * oorho
		f = U / C
	case Enthalpy:
		f = (E + p) * oorho
	case InternalEnergy:
		f = (E - qq) * oorho
	}
	return
}

// NormalVelocity is the velocity component along n
func (ig *IdealGas) NormalVelocity(q types.State, n types.Normal) float64 {
	return (q[1]*n[0] + q[2]*n[1]) / q[0]
}

// NormalFlux is the exact Euler flux of q projected onto n
func (ig *IdealGas) NormalFlux(q types.State, n types.Normal) (f types.Flux) {
	var (
		vn = ig.NormalVelocity(q, n)
		p  = ig.GetFlowFunction(q, StaticPressure)
	)
	f = types.Flux{
		q[0] * vn,
		vn*q[1] + p*n[0],
		vn*q[2] + p*n[1],
		vn * (q[3] + p),
	}
	return
}

// EvaluateNormalJacobian fills dfdu with d(NormalFlux)/dq at q
func (ig *IdealGas) EvaluateNormalJacobian(q types.State, n types.Normal, dfdu *types.Jacobian) {
	var (
		g       = ig.gamma
		GM1     = g - 1.
		oorho   = 1. / q[0]
		u, v    = q[1] * oorho, q[2] * oorho
		nx, ny  = n[0], n[1]
		vn      = u*nx + v*ny
		phi     = 0.5 * GM1 * (u*u + v*v)
		p       = GM1 * (q[3] - 0.5*q[0]*(u*u+v*v))
		H       = (q[3] + p) * oorho
		J       = dfdu
		setRow  = func(i int, a, b, c, d float64) { J[4*i], J[4*i+1], J[4*i+2], J[4*i+3] = a, b, c, d }
		GM1u    = GM1 * u
		GM1v    = GM1 * v
		uvnPhix = phi*nx - u*vn
		vvnPhiy = phi*ny - v*vn
	)
	setRow(0, 0, nx, ny, 0)
	setRow(1, uvnPhix, vn+u*nx-GM1u*nx, u*ny-GM1v*nx, GM1*nx)
	setRow(2, vvnPhiy, v*nx-GM1u*ny, vn+v*ny-GM1v*ny, GM1*ny)
	setRow(3, vn*(phi-H), H*nx-GM1u*vn, H*ny-GM1v*vn, g*vn)
}

type FreeStream struct {
	Qinf              types.State
	Minf, Alpha       float64
	Pinf, QQinf, Cinf float64
}

// NewFreeStream non-dimensionalizes on density and sound speed, so rho = 1 and c = 1
func (ig *IdealGas) NewFreeStream(Minf, Alpha float64) (fs *FreeStream) {
	var (
		Gamma  = ig.gamma
		ooggm1 = 1. / (Gamma * (Gamma - 1.))
		uinf   = Minf * math.Cos(Alpha*math.Pi/180.)
		vinf   = Minf * math.Sin(Alpha*math.Pi/180.)
	)
	fs = &FreeStream{
		Qinf:  types.State{1, uinf, vinf, ooggm1 + 0.5*Minf*Minf},
		Minf:  Minf,
		Alpha: Alpha,
	}
	fs.Pinf = ig.GetFlowFunction(fs.Qinf, StaticPressure)
	fs.QQinf = ig.GetFlowFunction(fs.Qinf, DynamicPressure)
	fs.Cinf = ig.GetFlowFunction(fs.Qinf, SoundSpeed)
	return
}

// StateFromPrimitive builds conserved variables from density, velocity and pressure
func (ig *IdealGas) StateFromPrimitive(rho, u, v, p float64) (q types.State) {
	q = types.State{rho, rho * u, rho * v, p/(ig.gamma-1.) + 0.5*rho*(u*u+v*v)}
	return
}
