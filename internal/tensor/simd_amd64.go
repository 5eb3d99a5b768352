//go:build amd64

package tensor

import "github.com/klauspost/cpuid/v2"

// detectVectorBytes returns the widest float register the CPU supports, in bytes.
func detectVectorBytes() int {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F):
		return 64
	case cpuid.CPU.Supports(cpuid.AVX):
		return 32
	default:
		return 16 // SSE2 is part of the amd64 baseline
	}
}
