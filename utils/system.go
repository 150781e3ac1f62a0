package utils

import (
	"fmt"
	"math"
	"runtime"

	"github.com/notargets/eulerflux/types"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

func IsNan(A any) bool {
	switch v := A.(type) {
	case float64:
		return math.IsNaN(v)
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) {
				return true
			}
		}
	case types.State:
		return IsNan(v[:])
	case types.Flux:
		return IsNan(v[:])
	case types.Jacobian:
		return IsNan(v[:])
	}
	return false
}

// IsFinite is false when any component is NaN or +-Inf
func IsFinite(A any) bool {
	check := func(v []float64) bool {
		for _, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
		return true
	}
	switch v := A.(type) {
	case float64:
		return check([]float64{v})
	case []float64:
		return check(v)
	case types.State:
		return check(v[:])
	case types.Flux:
		return check(v[:])
	case types.Jacobian:
		return check(v[:])
	}
	return true
}
