package random

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
)

// freshSeedBytes is the entropy behind NewSeed; 16 bytes render as 32 hex digits.
const freshSeedBytes = 16

// NewSeed returns a fresh hex seed read from crypto/rand. Callers should
// report it so the run can be reproduced.
func NewSeed() (string, error) {
	var b [freshSeedBytes]byte
	if _, err := crand.Read(b[:]); err != nil {
		return "", fmt.Errorf("read random seed: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
