package signing

import (
	"strings"
	"testing"
)

func TestGenerateKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	if !strings.HasPrefix(kp.PublicKey, PublicKeyPrefix) {
		t.Errorf("public key %q missing %q prefix", kp.PublicKey, PublicKeyPrefix)
	}
	if len(kp.PrivateKeyHex()) != 64 {
		t.Errorf("seed hex length = %d, want 64", len(kp.PrivateKeyHex()))
	}
}

func TestKeyPairFromHexRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	restored, err := KeyPairFromHex(kp.PublicKey, kp.PrivateKeyHex())
	if err != nil {
		t.Fatalf("KeyPairFromHex: %v", err)
	}
	if restored.PublicKey != kp.PublicKey {
		t.Errorf("public key changed: %q vs %q", restored.PublicKey, kp.PublicKey)
	}
	if !restored.PrivateKey.Equal(kp.PrivateKey) {
		t.Error("restored private key differs")
	}
}

func TestKeyPairFromHexRederivesPublicKey(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	restored, err := KeyPairFromHex("", kp.PrivateKeyHex())
	if err != nil {
		t.Fatalf("KeyPairFromHex: %v", err)
	}
	if restored.PublicKey != kp.PublicKey {
		t.Errorf("re-derived public key %q, want %q", restored.PublicKey, kp.PublicKey)
	}
}

func TestKeyPairFromHexRejectsBadSeed(t *testing.T) {
	for _, bad := range []string{"", "zz", "abcd", strings.Repeat("ab", 31)} {
		if _, err := KeyPairFromHex("", bad); err == nil {
			t.Errorf("KeyPairFromHex(%q) accepted a bad seed", bad)
		}
	}
}
