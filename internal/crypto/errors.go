package crypto

import "errors"

var (
	// ErrInvalidKeyLength is returned when symmetric key material is not
	// exactly AESKeySize bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrAuthenticationFailed is returned when authenticated decryption's
	// tag check fails (tamper, corruption, or wrong key).
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidEnvelope is returned when an envelope is too short to hold
	// a nonce and a tag.
	ErrInvalidEnvelope = errors.New("invalid envelope")

	// ErrInvalidPublicKey is returned when a raw public key is not a valid
	// uncompressed P-256 point.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrMalformedKey is returned when a structured private key encoding
	// cannot be parsed as a P-256 private key.
	ErrMalformedKey = errors.New("malformed key encoding")

	// ErrKeyGeneration is returned when the platform's key-pair generation
	// fails.
	ErrKeyGeneration = errors.New("key generation failed")
)
