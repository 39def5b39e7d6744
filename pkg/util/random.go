package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateAuthNumber returns a random 6-digit code in [100000, 999999].
func GenerateAuthNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate auth number: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
