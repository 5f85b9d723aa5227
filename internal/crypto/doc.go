// Package crypto provides the cryptographic primitives for the Keeper
// Secrets Manager vault: authenticated symmetric envelopes, elliptic-curve
// key pairs, ECIES-style public-key encryption, and signing.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - AES-256-GCM: authenticated encryption with a 12-byte random nonce and
//     a 16-byte tag. Provides confidentiality and integrity for secrets and
//     wrapped keys.
//
//   - NIST P-256 (secp256r1): elliptic-curve key pairs. Private keys travel
//     in PKCS8 DER; public keys travel as 65-byte uncompressed points
//     (0x04 || X || Y).
//
//   - ECDH + SHA-256: ephemeral key agreement and key derivation for the
//     ECIES-style public-key encryption scheme. ECDH uses crypto/ecdh for
//     constant-time operations.
//
//   - ECDSA over SHA-256: message signing with ASN.1/DER signatures.
//
//   - HKDF-SHA-256 (RFC 5869): derivation of purpose-bound subkeys from a
//     base key.
//
// # Wire Formats
//
// A symmetric envelope is nonce(12) || ciphertext || tag(16), with no
// version byte and no length prefix. A public-key envelope prepends the
// 65-byte ephemeral public point: ephemeral(65) || envelope.
//
// # Security Model
//
//   - Decryption fails closed: a tag mismatch never releases partial
//     plaintext.
//   - Every envelope uses a fresh random nonce. Nonce reuse with the same
//     key completely breaks AES-GCM, allowing attackers to recover the
//     authentication key and forge messages.
//   - Every public-key encryption uses a fresh ephemeral key, giving
//     per-message forward secrecy. The scheme carries no signature, so it
//     does not authenticate the sender on its own.
package crypto
