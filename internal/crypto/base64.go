package crypto

import (
	"encoding/base64"
)

// ToBase64 encodes bytes to standard base64 with padding. This is the
// encoding used for key material in the storage backend.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ToBase64URL encodes bytes to URL-safe base64 without padding.
func ToBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// FromBase64 decodes base64 text to bytes. Stored values and tokens come
// from several SDKs that disagree on alphabet and padding, so this decoder
// accepts standard and URL-safe variants, padded or not.
func FromBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	data, err = base64.RawStdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	data, err = base64.RawURLEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	return base64.URLEncoding.DecodeString(s)
}
