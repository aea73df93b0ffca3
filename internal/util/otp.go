package util

import (
	"crypto/rand"
	"math/big"
)

const (
	otpMin = 1000
	otpMax = 9999
)

// GenerateOtpCode draws a uniformly random 4-digit code in [1000, 9999]
// from the system CSPRNG. A seeded PRNG would make codes guessable.
func GenerateOtpCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, err
	}
	return otpMin + int(n.Int64()), nil
}
