package crypto

import "io"

// SetRandReaderForTesting sets the random reader used by key generation and
// nonce creation. Intended for tests only; returns a function that restores
// the original reader. Since this package is internal, external code cannot
// reach it.
func SetRandReaderForTesting(r io.Reader) func() {
	original := randReader
	randReader = r
	return func() { randReader = original }
}
