package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the random source used for nonces, keys, and signatures.
// It defaults to crypto/rand but can be overridden for testing.
var randReader io.Reader = rand.Reader

// RandomBytes returns n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}
