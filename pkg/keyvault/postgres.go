package keyvault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresVault stores key records in a shared Postgres database, for
// deployments where several processes serve the same wallets.
type PostgresVault struct {
	pool   *pgxpool.Pool
	cipher *Cipher
}

func OpenPostgres(ctx context.Context, dsn string, cipher *Cipher) (*PostgresVault, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("keyvault: postgres dsn is required (DATABASE_URL)")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	v := &PostgresVault{pool: pool, cipher: cipher}
	if err := v.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return v, nil
}

func (v *PostgresVault) migrate(ctx context.Context) error {
	_, err := v.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS orderly_account_keys (
  wallet_id VARCHAR(255) PRIMARY KEY,
  orderly_key TEXT NOT NULL,
  orderly_private_key TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`)
	if err != nil {
		return fmt.Errorf("migrate keyvault: %w", err)
	}
	return nil
}

func (v *PostgresVault) Save(ctx context.Context, walletID, publicKey, privateKeyHex string) error {
	enc, err := v.cipher.EncryptString(privateKeyHex)
	if err != nil {
		return fmt.Errorf("encrypt private key: %w", err)
	}
	_, err = v.pool.Exec(ctx, `
INSERT INTO orderly_account_keys (wallet_id, orderly_key, orderly_private_key, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (wallet_id) DO UPDATE SET
  orderly_key = EXCLUDED.orderly_key,
  orderly_private_key = EXCLUDED.orderly_private_key,
  updated_at = NOW()
`, walletID, publicKey, enc)
	return err
}

func (v *PostgresVault) Load(ctx context.Context, walletID string) (*StoredKey, error) {
	row := v.pool.QueryRow(ctx, `
SELECT orderly_key, orderly_private_key, created_at, updated_at
FROM orderly_account_keys WHERE wallet_id = $1
`, walletID)

	var rec StoredKey
	var stored string
	var created, updated time.Time
	if err := row.Scan(&rec.PublicKey, &stored, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	pk, err := v.cipher.DecryptStored(stored)
	if err != nil {
		return nil, fmt.Errorf("wallet %s: %w", walletID, err)
	}
	rec.WalletID = walletID
	rec.PrivateKeyHex = pk
	rec.CreatedAt = created
	rec.UpdatedAt = updated
	return &rec, nil
}

func (v *PostgresVault) Delete(ctx context.Context, walletID string) (bool, error) {
	tag, err := v.pool.Exec(ctx, `DELETE FROM orderly_account_keys WHERE wallet_id = $1`, walletID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (v *PostgresVault) Close() error {
	v.pool.Close()
	return nil
}
