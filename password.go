package secretsmanager

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Character classes for password generation.
const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	specialChars   = `"!@#$%()+;<>=?[]{}^.,`
)

// passwordConfig holds configuration for password generation.
type passwordConfig struct {
	length    int
	lowercase int
	uppercase int
	digits    int
	special   int
}

// PasswordOption configures GeneratePassword.
type PasswordOption func(*passwordConfig)

// WithPasswordLength sets the total password length. Ignored when any
// per-class count is given; the counts then determine the length.
// Default: 64.
func WithPasswordLength(n int) PasswordOption {
	return func(c *passwordConfig) {
		c.length = n
	}
}

// WithLowercase requires n lowercase characters.
func WithLowercase(n int) PasswordOption {
	return func(c *passwordConfig) {
		c.lowercase = n
	}
}

// WithUppercase requires n uppercase characters.
func WithUppercase(n int) PasswordOption {
	return func(c *passwordConfig) {
		c.uppercase = n
	}
}

// WithDigits requires n digit characters.
func WithDigits(n int) PasswordOption {
	return func(c *passwordConfig) {
		c.digits = n
	}
}

// WithSpecialCharacters requires n special characters.
func WithSpecialCharacters(n int) PasswordOption {
	return func(c *passwordConfig) {
		c.special = n
	}
}

// GeneratePassword generates a random password. With no per-class counts
// the length is split evenly across lowercase, uppercase, digits, and
// special characters, the remainder going to special characters. The
// result is shuffled so required classes do not cluster.
func GeneratePassword(opts ...PasswordOption) (string, error) {
	cfg := &passwordConfig{length: 64}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.length <= 0 {
		cfg.length = 64
	}
	if cfg.lowercase == 0 && cfg.uppercase == 0 && cfg.digits == 0 && cfg.special == 0 {
		increment := cfg.length / 4
		cfg.lowercase, cfg.uppercase, cfg.digits = increment, increment, increment
		cfg.special = increment + cfg.length%4
	}

	var b strings.Builder
	for _, class := range []struct {
		count int
		chars string
	}{
		{cfg.lowercase, lowercaseChars},
		{cfg.uppercase, uppercaseChars},
		{cfg.digits, digitChars},
		{cfg.special, specialChars},
	} {
		sample, err := randomSample(class.count, class.chars)
		if err != nil {
			return "", err
		}
		b.WriteString(sample)
	}

	password := []byte(b.String())
	if err := shuffle(password); err != nil {
		return "", err
	}
	return string(password), nil
}

// randomSample draws count characters from chars with replacement.
func randomSample(count int, chars string) (string, error) {
	var b strings.Builder
	for i := 0; i < count; i++ {
		idx, err := randomInt(len(chars))
		if err != nil {
			return "", err
		}
		b.WriteByte(chars[idx])
	}
	return b.String(), nil
}

// shuffle performs a Fisher-Yates shuffle with cryptographic randomness.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

// randomInt returns an unbiased random int in [0, n).
func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random int: %w", err)
	}
	return int(v.Int64()), nil
}
