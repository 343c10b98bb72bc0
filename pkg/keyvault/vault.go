// Package keyvault stores exchange signing keys encrypted at rest, keyed by
// wallet id. Three interchangeable backends are provided: sqlite (local
// single-writer file), postgres (shared deployments) and badger (embedded
// KV). Callers depend only on the Vault interface.
package keyvault

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound means no key is stored for the wallet; callers recover by
	// provisioning one.
	ErrNotFound = errors.New("keyvault: no key stored for wallet")

	// ErrCorruptRecord means the stored value neither decrypts with the
	// configured secret nor passes the legacy plaintext-hex check. Requires
	// operator intervention; never auto-repaired.
	ErrCorruptRecord = errors.New("keyvault: stored key is neither valid ciphertext nor plaintext hex")

	// ErrMissingEncryptionSecret is a fatal configuration error.
	ErrMissingEncryptionSecret = errors.New("keyvault: encryption secret is required (set ORDERLYBOT_VAULT_KEY)")
)

// StoredKey is a decrypted key record.
type StoredKey struct {
	WalletID      string
	PublicKey     string
	PrivateKeyHex string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Vault is the four-operation key persistence contract. Save upserts (last
// write wins, at most one record per wallet). Load returns ErrNotFound when
// no record exists. Delete reports whether a record existed.
type Vault interface {
	Save(ctx context.Context, walletID, publicKey, privateKeyHex string) error
	Load(ctx context.Context, walletID string) (*StoredKey, error)
	Delete(ctx context.Context, walletID string) (bool, error)
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string // sqlite | postgres | badger
	Path    string // sqlite file or badger directory
	DSN     string // postgres connection string
	Cipher  *Cipher
}

// Open constructs the configured backend.
func Open(ctx context.Context, opts Options) (Vault, error) {
	if opts.Cipher == nil {
		return nil, ErrMissingEncryptionSecret
	}
	switch opts.Backend {
	case "sqlite":
		return OpenSQLite(opts.Path, opts.Cipher)
	case "postgres":
		return OpenPostgres(ctx, opts.DSN, opts.Cipher)
	case "badger":
		return OpenBadger(opts.Path, opts.Cipher)
	default:
		return nil, fmt.Errorf("keyvault: unknown backend %q", opts.Backend)
	}
}
