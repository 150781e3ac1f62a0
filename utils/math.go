package utils

import (
	"math"
)

// POW is an integer power that avoids math.Pow for the small exponents used in flux polynomials
func POW(x float64, pp int) (y float64) {
	var (
		p = pp
	)
	if pp > 8 || pp < -8 {
		return math.Pow(x, float64(pp))
	}
	if p < 0 {
		p = -p
	}
	y = 1
	for i := 0; i < p; i++ {
		y *= x
	}
	if pp < 0 {
		y = 1. / y
	}
	return
}
