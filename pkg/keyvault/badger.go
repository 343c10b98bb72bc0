package keyvault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerVault stores key records in an embedded Badger KV store. Values are
// JSON records with the private key field individually encrypted, so the
// record layout stays inspectable while the secret is not.
type BadgerVault struct {
	db     *badger.DB
	cipher *Cipher
}

type badgerRecord struct {
	PublicKey     string    `json:"orderly_key"`
	PrivateKeyEnc string    `json:"orderly_private_key"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func OpenBadger(dir string, cipher *Cipher) (*BadgerVault, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("keyvault: badger directory is required")
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerVault{db: db, cipher: cipher}, nil
}

func badgerKey(walletID string) []byte {
	return []byte("orderly_key/" + walletID)
}

func (v *BadgerVault) Save(ctx context.Context, walletID, publicKey, privateKeyHex string) error {
	enc, err := v.cipher.EncryptString(privateKeyHex)
	if err != nil {
		return fmt.Errorf("encrypt private key: %w", err)
	}
	now := time.Now().UTC()
	return v.db.Update(func(txn *badger.Txn) error {
		rec := badgerRecord{
			PublicKey:     publicKey,
			PrivateKeyEnc: enc,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		// Preserve created_at across upserts.
		if item, err := txn.Get(badgerKey(walletID)); err == nil {
			var prev badgerRecord
			_ = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &prev)
			})
			if !prev.CreatedAt.IsZero() {
				rec.CreatedAt = prev.CreatedAt
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return txn.Set(badgerKey(walletID), b)
	})
}

func (v *BadgerVault) Load(ctx context.Context, walletID string) (*StoredKey, error) {
	var rec badgerRecord
	err := v.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(walletID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	pk, err := v.cipher.DecryptStored(rec.PrivateKeyEnc)
	if err != nil {
		return nil, fmt.Errorf("wallet %s: %w", walletID, err)
	}
	return &StoredKey{
		WalletID:      walletID,
		PublicKey:     rec.PublicKey,
		PrivateKeyHex: pk,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}, nil
}

func (v *BadgerVault) Delete(ctx context.Context, walletID string) (bool, error) {
	existed := false
	err := v.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(badgerKey(walletID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		existed = true
		return txn.Delete(badgerKey(walletID))
	})
	return existed, err
}

func (v *BadgerVault) Close() error {
	return v.db.Close()
}
