// Command testhelper is a JSON-over-stdio helper for exercising the vault
// from other SDK implementations: each command reads a request from stdin
// and writes a response to stdout, so interoperability suites in any
// language can drive the Go crypto end to end.
package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	secretsmanager "github.com/WinnerSoftLab/keeper-secrets-manager"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: testhelper <command> [args]")
	}

	configPath := os.Getenv("KSM_CONFIG_FILE")
	if configPath == "" {
		configPath = "ksm-config.json"
	}
	vault := secretsmanager.New(secretsmanager.NewFileStorage(configPath))

	switch args[0] {
	case "generate-keypair":
		if len(args) < 2 {
			return errors.New("usage: testhelper generate-keypair <key-id>")
		}
		return generateKeyPair(vault, args[1], stdout)
	case "public-encrypt":
		return publicEncrypt(stdin, stdout)
	case "public-decrypt":
		return publicDecrypt(vault, stdin, stdout)
	case "encrypt":
		return encrypt(vault, stdin, stdout)
	case "decrypt":
		return decrypt(vault, stdin, stdout)
	case "sign":
		return sign(vault, stdin, stdout)
	case "verify":
		return verify(vault, stdin, stdout)
	case "totp":
		if len(args) < 2 {
			return errors.New("usage: testhelper totp <otpauth-url>")
		}
		return totp(args[1], stdout)
	case "password":
		return password(stdout)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// cryptoRequest is the shared request shape. All byte fields are base64.
type cryptoRequest struct {
	KeyID     string `json:"keyId,omitempty"`
	PublicKey string `json:"publicKey,omitempty"`
	Data      string `json:"data,omitempty"`
	Blob      string `json:"blob,omitempty"`
	Signature string `json:"signature,omitempty"`
	Context   string `json:"context,omitempty"`
}

func readRequest(stdin io.Reader) (*cryptoRequest, error) {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	req := &cryptoRequest{}
	if err := json.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	return req, nil
}

func (r *cryptoRequest) decode(field, value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", field, err)
	}
	return decoded, nil
}

func (r *cryptoRequest) cryptOptions() ([]secretsmanager.CryptOption, error) {
	ctx, err := r.decode("context", r.Context)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		return nil, nil
	}
	return []secretsmanager.CryptOption{secretsmanager.WithEncryptionContext(ctx)}, nil
}

func writeResponse(stdout io.Writer, response any) error {
	if err := json.NewEncoder(stdout).Encode(response); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

func generateKeyPair(vault *secretsmanager.Vault, keyID string, stdout io.Writer) error {
	if err := vault.GenerateKeyPair(keyID); err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}
	publicKey, err := vault.ExportPublicKey(keyID)
	if err != nil {
		return fmt.Errorf("export public key: %w", err)
	}
	return writeResponse(stdout, map[string]string{
		"keyId":     keyID,
		"publicKey": base64.StdEncoding.EncodeToString(publicKey),
	})
}

func publicEncrypt(stdin io.Reader, stdout io.Writer) error {
	req, err := readRequest(stdin)
	if err != nil {
		return err
	}
	publicKey, err := req.decode("publicKey", req.PublicKey)
	if err != nil {
		return err
	}
	data, err := req.decode("data", req.Data)
	if err != nil {
		return err
	}
	opts, err := req.cryptOptions()
	if err != nil {
		return err
	}

	blob, err := secretsmanager.PublicEncrypt(data, publicKey, opts...)
	if err != nil {
		return fmt.Errorf("public encrypt: %w", err)
	}
	return writeResponse(stdout, map[string]string{
		"blob": base64.StdEncoding.EncodeToString(blob),
	})
}

func publicDecrypt(vault *secretsmanager.Vault, stdin io.Reader, stdout io.Writer) error {
	req, err := readRequest(stdin)
	if err != nil {
		return err
	}
	blob, err := req.decode("blob", req.Blob)
	if err != nil {
		return err
	}
	opts, err := req.cryptOptions()
	if err != nil {
		return err
	}

	plaintext, err := vault.PublicDecrypt(blob, req.KeyID, opts...)
	if err != nil {
		return fmt.Errorf("public decrypt: %w", err)
	}
	return writeResponse(stdout, map[string]string{
		"data": base64.StdEncoding.EncodeToString(plaintext),
	})
}

func encrypt(vault *secretsmanager.Vault, stdin io.Reader, stdout io.Writer) error {
	req, err := readRequest(stdin)
	if err != nil {
		return err
	}
	data, err := req.decode("data", req.Data)
	if err != nil {
		return err
	}

	envelope, err := vault.Encrypt(data, req.KeyID)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	return writeResponse(stdout, map[string]string{
		"blob": base64.StdEncoding.EncodeToString(envelope),
	})
}

func decrypt(vault *secretsmanager.Vault, stdin io.Reader, stdout io.Writer) error {
	req, err := readRequest(stdin)
	if err != nil {
		return err
	}
	envelope, err := req.decode("blob", req.Blob)
	if err != nil {
		return err
	}

	plaintext, err := vault.Decrypt(envelope, req.KeyID)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}
	return writeResponse(stdout, map[string]string{
		"data": base64.StdEncoding.EncodeToString(plaintext),
	})
}

func sign(vault *secretsmanager.Vault, stdin io.Reader, stdout io.Writer) error {
	req, err := readRequest(stdin)
	if err != nil {
		return err
	}
	data, err := req.decode("data", req.Data)
	if err != nil {
		return err
	}

	signature, err := vault.Sign(data, req.KeyID)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	return writeResponse(stdout, map[string]string{
		"signature": base64.StdEncoding.EncodeToString(signature),
	})
}

func verify(vault *secretsmanager.Vault, stdin io.Reader, stdout io.Writer) error {
	req, err := readRequest(stdin)
	if err != nil {
		return err
	}
	data, err := req.decode("data", req.Data)
	if err != nil {
		return err
	}
	signature, err := req.decode("signature", req.Signature)
	if err != nil {
		return err
	}

	verifyErr := vault.Verify(data, signature, req.KeyID)
	if verifyErr != nil && !errors.Is(verifyErr, secretsmanager.ErrAuthenticationFailed) {
		return fmt.Errorf("verify: %w", verifyErr)
	}
	return writeResponse(stdout, map[string]bool{"valid": verifyErr == nil})
}

func totp(rawURL string, stdout io.Writer) error {
	code, err := secretsmanager.GetTOTPCode(rawURL)
	if err != nil {
		return fmt.Errorf("totp: %w", err)
	}
	return writeResponse(stdout, map[string]any{
		"code":     code.Code,
		"timeLeft": code.TimeLeft,
		"period":   code.Period,
	})
}

func password(stdout io.Writer) error {
	generated, err := secretsmanager.GeneratePassword()
	if err != nil {
		return fmt.Errorf("password: %w", err)
	}
	return writeResponse(stdout, map[string]string{"password": generated})
}
