package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"fmt"
	"math/big"
)

// Hash returns the SHA-256 digest of data. Deterministic and total: any
// input, including empty, hashes successfully.
func Hash(data []byte) []byte {
	digest := sha256.Sum256(data)
	return digest[:]
}

// Sign computes an ECDSA signature over the SHA-256 digest of data using a
// PKCS8-encoded P-256 private key. The signature is ASN.1/DER encoded.
func Sign(data, privateKeyDER []byte) ([]byte, error) {
	key, err := ParsePrivateKey(privateKeyDER)
	if err != nil {
		return nil, err
	}

	signature, err := ecdsa.SignASN1(randReader, key, Hash(data))
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}

	return signature, nil
}

// Verify checks an ASN.1/DER ECDSA signature over the SHA-256 digest of
// data against a 65-byte uncompressed P-256 public point. It returns
// ErrAuthenticationFailed if the signature does not verify.
func Verify(data, signature, rawPublicKey []byte) error {
	pub, err := parseRawPublicKey(rawPublicKey)
	if err != nil {
		return err
	}

	if !ecdsa.VerifyASN1(pub, Hash(data), signature) {
		return ErrAuthenticationFailed
	}

	return nil
}

// parseRawPublicKey decodes an uncompressed P-256 point (0x04 || X || Y)
// into an ECDSA public key, validating that the point is on the curve.
func parseRawPublicKey(raw []byte) (*ecdsa.PublicKey, error) {
	if len(raw) != RawPublicKeySize || raw[0] != 0x04 {
		return nil, fmt.Errorf("%w: not an uncompressed P-256 point", ErrInvalidPublicKey)
	}

	curve := elliptic.P256()
	x := new(big.Int).SetBytes(raw[1:33])
	y := new(big.Int).SetBytes(raw[33:])
	if !curve.IsOnCurve(x, y) {
		return nil, fmt.Errorf("%w: point not on curve", ErrInvalidPublicKey)
	}

	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}
