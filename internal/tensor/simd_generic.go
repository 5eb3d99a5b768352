//go:build !amd64 && !arm64

package tensor

// detectVectorBytes assumes 128-bit vectors where no feature detection is available.
func detectVectorBytes() int {
	return 16
}
