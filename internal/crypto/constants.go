package crypto

const (
	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// MinEnvelopeSize is the smallest valid symmetric envelope:
	// a nonce plus a tag over an empty plaintext.
	MinEnvelopeSize = AESNonceSize + AESTagSize

	// RawPublicKeySize is the size of an uncompressed P-256 public point
	// (0x04 || X(32) || Y(32)).
	RawPublicKeySize = 65

	// MinPublicEnvelopeSize is the smallest valid public-key envelope:
	// an ephemeral public point plus a symmetric envelope.
	MinPublicEnvelopeSize = RawPublicKeySize + MinEnvelopeSize
)
