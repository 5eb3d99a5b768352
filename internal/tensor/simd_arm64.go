//go:build arm64

package tensor

import "golang.org/x/sys/cpu"

// detectVectorBytes returns the widest float register the CPU supports, in bytes.
func detectVectorBytes() int {
	if cpu.ARM64.HasASIMD {
		return 16
	}
	return 8
}
