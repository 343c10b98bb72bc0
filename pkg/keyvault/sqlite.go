package keyvault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteVault stores key records in a local sqlite file. Single connection;
// sqlite's own locking is the only concurrency control (last write wins).
type SQLiteVault struct {
	db     *sql.DB
	cipher *Cipher
}

func OpenSQLite(path string, cipher *Cipher) (*SQLiteVault, error) {
	if path == "" {
		return nil, errors.New("keyvault: sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir vault dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	v := &SQLiteVault{db: db, cipher: cipher}
	if err := v.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return v, nil
}

func (v *SQLiteVault) migrate() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`
CREATE TABLE IF NOT EXISTS orderly_account_keys (
  wallet_id TEXT PRIMARY KEY,
  orderly_key TEXT NOT NULL,
  orderly_private_key TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`,
	}
	for _, q := range stmts {
		if _, err := v.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate keyvault: %w", err)
		}
	}
	return nil
}

func (v *SQLiteVault) Save(ctx context.Context, walletID, publicKey, privateKeyHex string) error {
	enc, err := v.cipher.EncryptString(privateKeyHex)
	if err != nil {
		return fmt.Errorf("encrypt private key: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = v.db.ExecContext(ctx, `
INSERT INTO orderly_account_keys (wallet_id, orderly_key, orderly_private_key, created_at, updated_at)
VALUES (?,?,?,?,?)
ON CONFLICT(wallet_id) DO UPDATE SET
  orderly_key=excluded.orderly_key,
  orderly_private_key=excluded.orderly_private_key,
  updated_at=excluded.updated_at
`, walletID, publicKey, enc, now, now)
	return err
}

func (v *SQLiteVault) Load(ctx context.Context, walletID string) (*StoredKey, error) {
	row := v.db.QueryRowContext(ctx, `
SELECT orderly_key, orderly_private_key, created_at, updated_at
FROM orderly_account_keys WHERE wallet_id=?
`, walletID)

	var rec StoredKey
	var stored, created, updated string
	if err := row.Scan(&rec.PublicKey, &stored, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return &rec, nil
}

func (v *SQLiteVault) Delete(ctx context.Context, walletID string) (bool, error) {
	res, err := v.db.ExecContext(ctx, `DELETE FROM orderly_account_keys WHERE wallet_id=?`, walletID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (v *SQLiteVault) Close() error {
	return v.db.Close()
}
