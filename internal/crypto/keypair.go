package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"fmt"
)

// GenerateKeyPair creates a fresh NIST P-256 key pair and returns the
// private key in PKCS8 DER. The public key is recoverable from the blob
// with PublicKeyFromPrivate.
func GenerateKeyPair() ([]byte, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), randReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	return der, nil
}

// ParsePrivateKey decodes a PKCS8 DER blob into a P-256 private key.
// Structured parsing is deliberate: deriving the public point by slicing the
// DER at a fixed offset breaks as soon as the encoding shifts.
func ParsePrivateKey(der []byte) (*ecdsa.PrivateKey, error) {
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}

	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an EC private key", ErrMalformedKey)
	}
	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: unexpected curve %s", ErrMalformedKey, key.Params().Name)
	}

	return key, nil
}

// PublicKeyFromPrivate re-derives the 65-byte uncompressed public point
// (0x04 || X || Y) from a PKCS8 private key blob.
func PublicKeyFromPrivate(der []byte) ([]byte, error) {
	key, err := ParsePrivateKey(der)
	if err != nil {
		return nil, err
	}

	// ecdh's Bytes() yields the uncompressed point in constant form.
	ecdhPub, err := key.PublicKey.ECDH()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}

	return ecdhPub.Bytes(), nil
}
