package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// newGCM builds an AES-256-GCM AEAD for the given key, validating the key
// length before any cipher work.
func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(key), AESKeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	return cipher.NewGCM(block)
}

// EncryptAESGCM encrypts plaintext using AES-256-GCM with a fresh random
// nonce and no associated data.
// Returns: nonce (12 bytes) || ciphertext || tag (16 bytes)
func EncryptAESGCM(key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, err := RandomBytes(AESNonceSize)
	if err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// DecryptAESGCM decrypts an envelope produced by EncryptAESGCM.
// The envelope format is: nonce (12 bytes) || ciphertext || tag (16 bytes).
// A tag mismatch fails closed with ErrAuthenticationFailed; no partial
// plaintext is ever returned.
func DecryptAESGCM(key, envelope []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(envelope) < MinEnvelopeSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidEnvelope, len(envelope), MinEnvelopeSize)
	}

	nonce := envelope[:AESNonceSize]
	ciphertextWithTag := envelope[AESNonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertextWithTag, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}
