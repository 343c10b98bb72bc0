package keyvault

import (
	"context"
	"errors"
	"testing"
)

func testBadger(t *testing.T) *BadgerVault {
	t.Helper()
	c, err := NewCipher("test-passphrase", "test-salt")
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	v, err := OpenBadger(t.TempDir(), c)
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	t.Cleanup(func() { _ = v.Close() })
	return v
}

func TestBadgerVaultRoundTrip(t *testing.T) {
	v := testBadger(t)
	ctx := context.Background()

	if _, err := v.Load(ctx, "w"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty vault: want ErrNotFound, got %v", err)
	}
	if err := v.Save(ctx, "w", "ed25519:k", testSeedHex); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rec, err := v.Load(ctx, "w")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.PublicKey != "ed25519:k" || rec.PrivateKeyHex != testSeedHex {
		t.Fatalf("record mismatch: %+v", rec)
	}

	existed, err := v.Delete(ctx, "w")
	if err != nil || !existed {
		t.Fatalf("Delete: existed=%v err=%v", existed, err)
	}
	if _, err := v.Load(ctx, "w"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete: want ErrNotFound, got %v", err)
	}
}

func TestBadgerVaultPreservesCreatedAt(t *testing.T) {
	v := testBadger(t)
	ctx := context.Background()

	if err := v.Save(ctx, "w", "ed25519:a", testSeedHex); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first, err := v.Load(ctx, "w")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := v.Save(ctx, "w", "ed25519:b", testSeedHex); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	rec, err := v.Load(ctx, "w")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.PublicKey != "ed25519:b" {
		t.Errorf("upsert did not replace public key: %q", rec.PublicKey)
	}
	if !rec.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed on upsert: %v -> %v", first.CreatedAt, rec.CreatedAt)
	}
}
