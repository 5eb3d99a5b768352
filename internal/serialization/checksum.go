package serialization

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ComputeChecksumReader computes SHA-256 checksum from an io.Reader without buffering it whole.
// Model files are identified by this digest in CLI output.
func ComputeChecksumReader(r io.Reader) ([32]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// FormatChecksum renders a checksum as lowercase hex.
func FormatChecksum(sum [32]byte) string {
	return hex.EncodeToString(sum[:])
}

// ValidateChecksum compares computed checksum against an expected one.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, expected [32]byte) error {
	if computed != expected {
		return ErrChecksumMismatch
	}
	return nil
}

// ParseChecksum decodes a lowercase or uppercase hex SHA-256 digest.
func ParseChecksum(s string) ([32]byte, error) {
	var sum [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return sum, fmt.Errorf("invalid checksum %q: %w", s, err)
	}
	if len(b) != len(sum) {
		return sum, fmt.Errorf("invalid checksum %q: expected %d bytes, got %d", s, len(sum), len(b))
	}
	copy(sum[:], b)
	return sum, nil
}
