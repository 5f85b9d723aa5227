package secretsmanager

import (
	"errors"
	"fmt"

	"github.com/WinnerSoftLab/keeper-secrets-manager/internal/crypto"
)

// Sentinel errors for errors.Is() checks. The crypto-originated sentinels
// are shared with the internal primitives, so errors from any depth of the
// stack match the public values without rewrapping.
var (
	// ErrKeyNotFound is returned when a key identifier resolves to nothing
	// in the cache or the storage backend.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidKeyLength is returned when symmetric key material is not
	// exactly 32 bytes. Detected before any cipher operation is attempted.
	ErrInvalidKeyLength = crypto.ErrInvalidKeyLength

	// ErrAuthenticationFailed is returned when an authenticated
	// decryption's tag check fails, or a signature does not verify.
	ErrAuthenticationFailed = crypto.ErrAuthenticationFailed

	// ErrKeyGeneration is returned when the platform's key-pair
	// generation fails.
	ErrKeyGeneration = crypto.ErrKeyGeneration

	// ErrMalformedKey is returned when a structured key encoding cannot be
	// parsed, or a stored value is not valid base64.
	ErrMalformedKey = crypto.ErrMalformedKey

	// ErrInvalidPublicKey is returned when a raw public key is not a
	// valid uncompressed P-256 point.
	ErrInvalidPublicKey = crypto.ErrInvalidPublicKey

	// ErrInvalidEnvelope is returned when an envelope is too short to
	// hold its fixed-layout parts.
	ErrInvalidEnvelope = crypto.ErrInvalidEnvelope
)

// StorageError reports a failure in the storage backend during a vault
// operation. The cache may already hold the key when persistence fails.
type StorageError struct {
	Op  string // "get", "save"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// ExchangeError reports a non-success response from the remote service
// during a secure exchange. The body is the raw, undecrypted payload.
type ExchangeError struct {
	StatusCode int
	Body       []byte
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("exchange failed with status %d", e.StatusCode)
}
