//go:build integration

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"

	secretsmanager "github.com/WinnerSoftLab/keeper-secrets-manager"
	"github.com/WinnerSoftLab/keeper-secrets-manager/internal/crypto"
	"github.com/WinnerSoftLab/keeper-secrets-manager/transport"
)

var (
	serverURL       string
	serverPublicKey []byte
)

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	serverURL = os.Getenv("KSM_SERVER_URL")
	rawKey := os.Getenv("KSM_SERVER_PUBLIC_KEY")

	if serverURL == "" {
		os.Stderr.WriteString("Skipping integration tests: KSM_SERVER_URL not set\n")
		os.Exit(0)
	}
	if rawKey == "" {
		os.Stderr.WriteString("Skipping integration tests: KSM_SERVER_PUBLIC_KEY not set\n")
		os.Exit(0)
	}

	key, err := crypto.FromBase64(rawKey)
	if err != nil {
		os.Stderr.WriteString("Invalid KSM_SERVER_PUBLIC_KEY: " + err.Error() + "\n")
		os.Exit(1)
	}
	serverPublicKey = key

	os.Stderr.WriteString("Running integration tests...\n")
	os.Stderr.WriteString("Server URL: " + serverURL + "\n")

	os.Exit(m.Run())
}

func TestIntegration_Exchange(t *testing.T) {
	client := transport.New()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, err := secretsmanager.Exchange(ctx, client, serverURL,
		[]byte(`{"clientVersion": "go-1.0"}`), serverPublicKey)
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}

	t.Logf("Exchange response: %d bytes", len(response))
}

func TestIntegration_VaultLifecycleOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ksm-config.json")
	vault := secretsmanager.New(secretsmanager.NewFileStorage(path))

	if err := vault.GenerateKeyPair("device-key"); err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	sig, err := vault.Sign([]byte("device attestation"), "device-key")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	// A fresh vault over the same file recovers the key and verifies.
	reopened := secretsmanager.New(secretsmanager.NewFileStorage(path))
	if err := reopened.Verify([]byte("device attestation"), sig, "device-key"); err != nil {
		t.Fatalf("Verify() after reopen error = %v", err)
	}
}
