package secretsmanager

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/WinnerSoftLab/keeper-secrets-manager/internal/crypto"
	"github.com/WinnerSoftLab/keeper-secrets-manager/transport"
)

// securePayload is the wire shape of an exchange request. Both fields are
// base64 text: the transmission key protected for the server with
// public-key encryption, and the payload sealed under that key.
type securePayload struct {
	EncryptedTransmissionKey string `json:"encryptedTransmissionKey"`
	Payload                  string `json:"payload"`
}

// Exchange sends payload to the service at url so that only the holder of
// the private half of serverPublicKey can read it, and returns the
// decrypted response body.
//
// Per call, a fresh 32-byte transmission key is generated; the payload is
// sealed under it, and the key itself is protected for the server with
// PublicEncrypt. The server is expected to answer with an authenticated
// envelope under the same transmission key, so the response is
// confidential and tamper-evident even over plain HTTP.
//
// A non-2xx status yields an *ExchangeError carrying the raw body; an
// empty 2xx body yields (nil, nil).
func Exchange(ctx context.Context, client *transport.Client, url string, payload, serverPublicKey []byte, opts ...CryptOption) ([]byte, error) {
	cfg := newCryptConfig(opts)

	transmissionKey, err := crypto.RandomBytes(crypto.AESKeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	encryptedKey, err := crypto.PublicEncrypt(transmissionKey, serverPublicKey, cfg.context)
	if err != nil {
		return nil, err
	}

	sealed, err := crypto.EncryptAESGCM(transmissionKey, payload)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(securePayload{
		EncryptedTransmissionKey: crypto.ToBase64(encryptedKey),
		Payload:                  crypto.ToBase64(sealed),
	})
	if err != nil {
		return nil, fmt.Errorf("encode exchange request: %w", err)
	}

	resp, err := client.Post(ctx, url, body, map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ExchangeError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	if len(resp.Body) == 0 {
		return nil, nil
	}

	return crypto.DecryptAESGCM(transmissionKey, resp.Body)
}
