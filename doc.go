// Package secretsmanager provides the local cryptographic key vault and
// secure-envelope engine for the Keeper Secrets Manager client. It protects
// secrets in transit and at rest without the caller ever handling raw key
// bytes directly.
//
// The central type is [Vault]: an in-memory cache of key material, lazily
// populated from a pluggable [KeyValueStorage] backend, with operations for
// key-pair generation, authenticated envelope encryption, key wrapping,
// ECIES-style public-key encryption, and message signing.
//
// Basic usage:
//
//	vault := secretsmanager.New(secretsmanager.NewFileStorage("client-config.json"))
//
//	// Generate a key pair and export the public half
//	if err := vault.GenerateKeyPair("acct-key"); err != nil {
//	    log.Fatal(err)
//	}
//	pub, err := vault.ExportPublicKey("acct-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encrypt for the key holder
//	blob, err := secretsmanager.PublicEncrypt([]byte("hello"), pub)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Open it with the stored private key
//	plaintext, err := vault.PublicDecrypt(blob, "acct-key")
//
// Key material held by the vault lives in sealed memory enclaves and is
// only opened for the duration of an operation. Each Vault is an isolated
// instance; construct one per session and pass it where needed.
package secretsmanager
