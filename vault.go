package secretsmanager

import (
	"context"
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/WinnerSoftLab/keeper-secrets-manager/internal/crypto"
)

// instrumentationName identifies this library to OpenTelemetry. The
// counters are no-ops unless the host application installs a meter
// provider.
const instrumentationName = "github.com/WinnerSoftLab/keeper-secrets-manager"

// Vault is an in-memory cache of key material keyed by opaque string
// identifiers, lazily populated from a KeyValueStorage backend. It is the
// single source of truth for "is this key available".
//
// Cached key bytes are held in sealed memory enclaves and opened only for
// the duration of an operation. Entries are overwritten by explicit
// Import/GenerateKeyPair/Unwrap calls and never evicted automatically; the
// cache lives as long as the vault.
//
// A Vault is safe for concurrent use, but two concurrent writes to the same
// identifier have no defined winner; callers that need key continuity must
// serialize writes per identifier.
type Vault struct {
	mu      sync.RWMutex
	storage KeyValueStorage
	keys    map[string]*memguard.Enclave

	cacheHits    metric.Int64Counter
	cacheMisses  metric.Int64Counter
	storageReads metric.Int64Counter
}

// New creates a vault backed by the given storage. A nil storage is
// allowed: the vault is then purely in-memory and Load misses surface as
// ErrKeyNotFound.
func New(storage KeyValueStorage) *Vault {
	meter := otel.Meter(instrumentationName)
	cacheHits, _ := meter.Int64Counter("keeper.vault.cache_hits",
		metric.WithDescription("Key lookups served from the in-memory cache"))
	cacheMisses, _ := meter.Int64Counter("keeper.vault.cache_misses",
		metric.WithDescription("Key lookups that fell through to storage"))
	storageReads, _ := meter.Int64Counter("keeper.vault.storage_reads",
		metric.WithDescription("Reads issued to the storage backend"))

	return &Vault{
		storage:      storage,
		keys:         make(map[string]*memguard.Enclave),
		cacheHits:    cacheHits,
		cacheMisses:  cacheMisses,
		storageReads: storageReads,
	}
}

// Load returns the key material for id. The cache is checked first; on a
// miss the storage backend is queried, the base64 value decoded, and the
// result memoized, so repeated loads of the same identifier cost one
// storage read at most. Returns ErrKeyNotFound when the identifier
// resolves to nothing in either place, or when storage is unavailable and
// the cache is empty.
//
// The returned slice is the caller's copy; mutating it does not affect the
// cached material.
func (v *Vault) Load(id string) ([]byte, error) {
	v.mu.RLock()
	enclave, ok := v.keys[id]
	v.mu.RUnlock()

	if ok {
		v.cacheHits.Add(context.Background(), 1)
		return openEnclave(enclave)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	// Another loader may have backfilled while we upgraded the lock. That
	// is a hit: no storage read happens on this path.
	if enclave, ok := v.keys[id]; ok {
		v.cacheHits.Add(context.Background(), 1)
		return openEnclave(enclave)
	}
	v.cacheMisses.Add(context.Background(), 1)

	if v.storage == nil {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
	}

	v.storageReads.Add(context.Background(), 1)
	value, ok, err := v.storage.GetValue(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: storage unavailable: %v", ErrKeyNotFound, id, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
	}

	key, err := crypto.FromBase64(value)
	if err != nil {
		return nil, fmt.Errorf("%w: stored value for %s: %v", ErrMalformedKey, id, err)
	}

	v.keys[id] = sealKey(key)
	return key, nil
}

// Import installs key material under id, overwriting any prior entry.
// The key is persisted to storage unless WithoutPersistence is given.
func (v *Vault) Import(id string, key []byte, opts ...ImportOption) error {
	cfg := newImportConfig(opts)

	v.mu.Lock()
	v.keys[id] = sealKey(key)
	v.mu.Unlock()

	if cfg.persist {
		return v.persist(id, key)
	}
	return nil
}

// GenerateKeyPair generates a fresh P-256 key pair, installs the PKCS8
// private key under id, and persists it. Any prior key material under the
// same identifier is overwritten; callers that need key continuity must
// choose fresh identifiers.
func (v *Vault) GenerateKeyPair(id string) error {
	der, err := crypto.GenerateKeyPair()
	if err != nil {
		return err
	}
	return v.Import(id, der)
}

// ExportPublicKey loads the private key stored under id and re-derives the
// 65-byte uncompressed public point.
func (v *Vault) ExportPublicKey(id string) ([]byte, error) {
	der, err := v.Load(id)
	if err != nil {
		return nil, err
	}
	return crypto.PublicKeyFromPrivate(der)
}

// Encrypt seals plaintext in an authenticated envelope under the symmetric
// key stored at keyID. The wire format is identical to the raw-key cipher:
// nonce(12) || ciphertext || tag(16).
func (v *Vault) Encrypt(plaintext []byte, keyID string) ([]byte, error) {
	key, err := v.Load(keyID)
	if err != nil {
		return nil, err
	}
	return crypto.EncryptAESGCM(key, plaintext)
}

// Decrypt opens an envelope under the symmetric key stored at keyID.
// Fails closed with ErrAuthenticationFailed on any tamper.
func (v *Vault) Decrypt(envelope []byte, keyID string) ([]byte, error) {
	key, err := v.Load(keyID)
	if err != nil {
		return nil, err
	}
	return crypto.DecryptAESGCM(key, envelope)
}

// Wrap seals targetKey under the wrapping key stored at wrappingKeyID, for
// transport or storage without exposure. The result opens with Unwrap.
func (v *Vault) Wrap(targetKey []byte, wrappingKeyID string) ([]byte, error) {
	return v.Encrypt(targetKey, wrappingKeyID)
}

// Unwrap decrypts a wrapped key blob under the unwrapping key stored at
// unwrappingKeyID and installs the plaintext key under targetID. With
// WithoutPersistence the unwrapped key exists only in memory for the
// lifetime of the vault.
//
// Returns ErrKeyNotFound when the unwrapping key is unresolvable and
// ErrAuthenticationFailed when the wrapped blob's tag does not verify
// (wrong unwrapping key, corruption, or tamper).
func (v *Vault) Unwrap(wrapped []byte, targetID, unwrappingKeyID string, opts ...ImportOption) error {
	key, err := v.Decrypt(wrapped, unwrappingKeyID)
	if err != nil {
		return err
	}
	return v.Import(targetID, key, opts...)
}

// PublicDecrypt opens a PublicEncrypt envelope using the private key
// stored at keyID. The encryption context, if any, must match.
func (v *Vault) PublicDecrypt(blob []byte, keyID string, opts ...CryptOption) ([]byte, error) {
	cfg := newCryptConfig(opts)

	der, err := v.Load(keyID)
	if err != nil {
		return nil, err
	}
	return crypto.PublicDecrypt(blob, der, cfg.context)
}

// Sign computes an ECDSA signature over the SHA-256 digest of data using
// the private key stored at keyID. The signature is ASN.1/DER encoded.
func (v *Vault) Sign(data []byte, keyID string) ([]byte, error) {
	der, err := v.Load(keyID)
	if err != nil {
		return nil, err
	}
	return crypto.Sign(data, der)
}

// Verify checks a signature produced by Sign against the public half of
// the key pair stored at keyID. Returns ErrAuthenticationFailed when the
// signature does not verify.
func (v *Vault) Verify(data, signature []byte, keyID string) error {
	pub, err := v.ExportPublicKey(keyID)
	if err != nil {
		return err
	}
	return crypto.Verify(data, signature, pub)
}

// DeriveKey derives a purpose-bound subkey of the given length from the
// key stored at baseKeyID using HKDF-SHA-256, without exposing the base
// key to the caller's code paths.
func (v *Vault) DeriveKey(baseKeyID string, info []byte, length int) ([]byte, error) {
	base, err := v.Load(baseKeyID)
	if err != nil {
		return nil, err
	}
	return crypto.DeriveKey(base, nil, info, length)
}

// persist writes the base64 representation of key to storage. The cache
// entry is already installed when this runs; a storage failure is reported
// but does not roll the cache back.
func (v *Vault) persist(id string, key []byte) error {
	if v.storage == nil {
		return nil
	}
	if err := v.storage.SaveValue(id, crypto.ToBase64(key)); err != nil {
		return &StorageError{Op: "save", Key: id, Err: err}
	}
	return nil
}

// sealKey copies key into a sealed enclave. memguard wipes the buffer it
// is given, so the caller's slice must stay intact.
func sealKey(key []byte) *memguard.Enclave {
	buf := make([]byte, len(key))
	copy(buf, key)
	return memguard.NewEnclave(buf)
}

// openEnclave opens a sealed enclave and returns a plain copy of its
// contents, destroying the locked buffer before returning.
func openEnclave(enclave *memguard.Enclave) ([]byte, error) {
	buf, err := enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("open key enclave: %w", err)
	}
	defer buf.Destroy()

	key := make([]byte, len(buf.Bytes()))
	copy(key, buf.Bytes())
	return key, nil
}

// PublicEncrypt encrypts plaintext for the holder of the private key
// matching recipientPublicKey, a 65-byte uncompressed P-256 point. The
// scheme is ECIES-style: a fresh ephemeral ECDH key per call (per-message
// forward secrecy), SHA-256 key derivation, and an authenticated envelope.
// Output: ephemeral public point (65 bytes) || nonce || ciphertext || tag.
//
// No signature is involved; the recipient learns nothing about who
// produced the envelope.
func PublicEncrypt(plaintext, recipientPublicKey []byte, opts ...CryptOption) ([]byte, error) {
	cfg := newCryptConfig(opts)
	return crypto.PublicEncrypt(plaintext, recipientPublicKey, cfg.context)
}

// Hash returns the SHA-256 digest of data. Deterministic, keyless, and
// total: any input hashes successfully, including empty input.
func Hash(data []byte) []byte {
	return crypto.Hash(data)
}
