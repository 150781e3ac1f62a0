package utils

const (
	// FDSTEP is the central difference perturbation used to verify Jacobians
	FDSTEP = 1.e-6
)
