package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTPCode returns a fixed-width 6-digit numeric code drawn from
// crypto/rand. Never use a general-purpose PRNG here.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
