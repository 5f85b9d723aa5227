package crypto

import (
	"crypto/ecdh"
	"crypto/sha256"
	"fmt"
)

// sessionKey collapses an ECDH shared secret and an optional caller context
// into a fixed-length AES-256 key. The context binds the derived key to an
// application scope; an empty context is the documented default.
func sessionKey(sharedSecret, context []byte) []byte {
	buf := make([]byte, 0, len(sharedSecret)+len(context))
	buf = append(buf, sharedSecret...)
	buf = append(buf, context...)
	key := sha256.Sum256(buf)
	return key[:]
}

// PublicEncrypt encrypts plaintext for the holder of the private key
// matching recipientPublicKey (a 65-byte uncompressed P-256 point).
//
// A fresh ephemeral key pair is generated per call, giving per-message
// forward secrecy. The AES-256 key is SHA-256(ECDH secret || context).
// Returns: ephemeral public point (65 bytes) || nonce || ciphertext || tag.
//
// The scheme carries no signature; it does not authenticate the sender.
func PublicEncrypt(plaintext, recipientPublicKey, context []byte) ([]byte, error) {
	curve := ecdh.P256()

	remote, err := curve.NewPublicKey(recipientPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	ephemeral, err := curve.GenerateKey(randReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	sharedSecret, err := ephemeral.ECDH(remote)
	if err != nil {
		return nil, fmt.Errorf("ecdh: %w", err)
	}

	envelope, err := EncryptAESGCM(sessionKey(sharedSecret, context), plaintext)
	if err != nil {
		return nil, err
	}

	ephemeralRaw := ephemeral.PublicKey().Bytes()
	out := make([]byte, 0, len(ephemeralRaw)+len(envelope))
	out = append(out, ephemeralRaw...)
	out = append(out, envelope...)
	return out, nil
}

// PublicDecrypt opens a PublicEncrypt envelope with the recipient's private
// key (PKCS8 DER), mirroring the encryption steps with the static key in
// place of the ephemeral one. The context must match the one supplied at
// encryption time or the tag check fails.
func PublicDecrypt(blob, privateKeyDER, context []byte) ([]byte, error) {
	if len(blob) < MinPublicEnvelopeSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidEnvelope, len(blob), MinPublicEnvelopeSize)
	}

	key, err := ParsePrivateKey(privateKeyDER)
	if err != nil {
		return nil, err
	}
	ecdhPriv, err := key.ECDH()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}

	ephemeral, err := ecdh.P256().NewPublicKey(blob[:RawPublicKeySize])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	sharedSecret, err := ecdhPriv.ECDH(ephemeral)
	if err != nil {
		return nil, fmt.Errorf("ecdh: %w", err)
	}

	return DecryptAESGCM(sessionKey(sharedSecret, context), blob[RawPublicKeySize:])
}
