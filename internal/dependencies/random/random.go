package random

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Code generates a uniformly random numeric code of the given number
	// of digits, preserving leading zeros
	Code(digits int) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fall back to 0 on error (should never happen with crypto/rand)
		return 0
	}
	return int(result.Int64())
}

// Code generates a zero-padded random numeric string of the given length
func (r *CryptoRandom) Code(digits int) string {
	if digits <= 0 {
		return ""
	}
	bound := 1
	for i := 0; i < digits; i++ {
		bound *= 10
	}
	n := strconv.Itoa(r.Intn(bound))
	return strings.Repeat("0", digits-len(n)) + n
}
