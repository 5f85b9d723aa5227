package secretsmanager

// importConfig holds configuration for operations that install key
// material into the vault.
type importConfig struct {
	persist bool
}

// cryptConfig holds configuration for public-key encryption operations.
type cryptConfig struct {
	context []byte
}

// ImportOption configures Import and Unwrap.
type ImportOption func(*importConfig)

// CryptOption configures PublicEncrypt and Vault.PublicDecrypt.
type CryptOption func(*cryptConfig)

// WithoutPersistence keeps the imported key in memory only, skipping the
// storage backend. The key lives for the lifetime of the vault and never
// touches disk; this is the mechanism for ephemeral session keys.
// Default: keys are persisted.
func WithoutPersistence() ImportOption {
	return func(c *importConfig) {
		c.persist = false
	}
}

// WithEncryptionContext binds the derived encryption key to an
// application-supplied context. Decryption must supply the identical
// context or the tag check fails. Default: empty context.
func WithEncryptionContext(context []byte) CryptOption {
	return func(c *cryptConfig) {
		c.context = context
	}
}

func newImportConfig(opts []ImportOption) *importConfig {
	cfg := &importConfig{persist: true}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func newCryptConfig(opts []CryptOption) *cryptConfig {
	cfg := &cryptConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
