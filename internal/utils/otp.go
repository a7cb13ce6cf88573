package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP returns a random numeric code of the given number of digits.
// The first digit is never zero, so a 4-digit code is always 1000-9999.
func GenerateOTP(digits int) (string, error) {
	if digits < 1 {
		return "", fmt.Errorf("otp length must be positive, got %d", digits)
	}
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits-1)), nil)
	span := new(big.Int).Mul(low, big.NewInt(9))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return n.Add(n, low).String(), nil
}
