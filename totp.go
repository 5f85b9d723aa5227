package secretsmanager

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"hash"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// timeNow is swapped in tests to pin the TOTP clock.
var timeNow = time.Now

// TOTPCode is a generated one-time code together with its validity window.
type TOTPCode struct {
	// Code is the zero-padded numeric code.
	Code string
	// TimeLeft is the number of seconds before the code rotates.
	TimeLeft int
	// Period is the rotation period in seconds.
	Period int
}

// GetTOTPCode generates the current time-based one-time code for an
// otpauth:// URI (RFC 6238). Supported parameters: secret (required,
// base32), algorithm (SHA1, SHA256, SHA512; default SHA1), digits (6-8,
// default 6), period (default 30), counter (when positive, used as a
// fixed timestamp instead of the current time).
func GetTOTPCode(rawURL string) (*TOTPCode, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse otpauth URI: %w", err)
	}
	if u.Scheme != "otpauth" {
		return nil, fmt.Errorf("not an otpauth URI: scheme %q", u.Scheme)
	}

	query := u.Query()

	secret := query.Get("secret")
	if secret == "" {
		return nil, fmt.Errorf("TOTP secret not found in URI")
	}

	algorithm := strings.ToUpper(query.Get("algorithm"))
	var digest func() hash.Hash
	switch algorithm {
	case "", "SHA1":
		digest = sha1.New
	case "SHA256":
		digest = sha256.New
	case "SHA512":
		digest = sha512.New
	default:
		return nil, fmt.Errorf("invalid TOTP algorithm %q, must be SHA1, SHA256 or SHA512", algorithm)
	}

	digits := queryInt(query, "digits", 6)
	if digits < 6 || digits > 8 {
		return nil, fmt.Errorf("TOTP digits may only be 6, 7, or 8")
	}

	period := queryInt(query, "period", 30)
	counter := queryInt(query, "counter", 0)

	base := int64(counter)
	if base <= 0 {
		base = timeNow().Unix()
	}

	key, err := decodeBase32(secret)
	if err != nil {
		return nil, fmt.Errorf("decode TOTP secret: %w", err)
	}

	msg := make([]byte, 8)
	binary.BigEndian.PutUint64(msg, uint64(base/int64(period)))

	mac := hmac.New(digest, key)
	mac.Write(msg)
	sum := mac.Sum(nil)

	// Dynamic truncation per RFC 4226 §5.3.
	offset := sum[len(sum)-1] & 0x0f
	value := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	mod := uint32(1)
	for i := 0; i < digits; i++ {
		mod *= 10
	}
	code := fmt.Sprintf("%0*d", digits, value%mod)

	elapsed := int(base % int64(period))
	return &TOTPCode{
		Code:     code,
		TimeLeft: period - elapsed,
		Period:   period,
	}, nil
}

// queryInt reads a positive integer query parameter, falling back to def
// for anything missing or non-numeric.
func queryInt(query url.Values, name string, def int) int {
	raw := query.Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// decodeBase32 decodes a base32 secret, case-insensitively and with
// missing padding restored. Authenticator exports routinely strip the
// trailing '=' characters.
func decodeBase32(secret string) ([]byte, error) {
	s := strings.ToUpper(secret)
	switch len(s) % 8 {
	case 2, 4, 5, 7:
		s += strings.Repeat("=", 8-len(s)%8)
	}
	return base32.StdEncoding.DecodeString(s)
}
