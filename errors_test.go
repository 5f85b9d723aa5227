package secretsmanager

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrKeyNotFound", ErrKeyNotFound},
		{"ErrInvalidKeyLength", ErrInvalidKeyLength},
		{"ErrAuthenticationFailed", ErrAuthenticationFailed},
		{"ErrKeyGeneration", ErrKeyGeneration},
		{"ErrMalformedKey", ErrMalformedKey},
		{"ErrInvalidPublicKey", ErrInvalidPublicKey},
		{"ErrInvalidEnvelope", ErrInvalidEnvelope},
	}

	for _, s := range sentinels {
		t.Run(s.name, func(t *testing.T) {
			if s.err == nil {
				t.Error("sentinel error is nil")
			}
			if s.err.Error() == "" {
				t.Error("sentinel error has empty message")
			}
		})
	}
}

func TestStorageError(t *testing.T) {
	underlying := errors.New("disk full")
	err := &StorageError{Op: "save", Key: "master", Err: underlying}

	want := `storage save "master": disk full`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is() does not see the underlying error")
	}

	var storageErr *StorageError
	if !errors.As(fmt.Errorf("import: %w", err), &storageErr) {
		t.Error("errors.As() does not find the wrapped *StorageError")
	}
}

func TestExchangeError(t *testing.T) {
	err := &ExchangeError{StatusCode: 403, Body: []byte(`{"error": "access_denied"}`)}
	want := "exchange failed with status 403"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
