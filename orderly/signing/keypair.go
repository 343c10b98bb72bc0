package signing

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// PublicKeyPrefix tags encoded public keys with their algorithm, matching
// the format the exchange expects in the orderly-key header.
const PublicKeyPrefix = "ed25519:"

// KeyPair is an exchange signing key: the tagged public key string plus the
// raw ed25519 key. The private half never leaves the process except through
// the vault.
type KeyPair struct {
	PublicKey  string
	PrivateKey ed25519.PrivateKey
}

// GenerateKeyPair creates a fresh ed25519 pair for key provisioning.
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ed25519 key: %w", err)
	}
	return &KeyPair{
		PublicKey:  EncodePublicKey(pub),
		PrivateKey: priv,
	}, nil
}

// EncodePublicKey renders a public key as "ed25519:<base58>".
func EncodePublicKey(pub ed25519.PublicKey) string {
	return PublicKeyPrefix + base58.Encode(pub)
}

// PrivateKeyHex returns the 32-byte seed as hex, the storage format.
func (k *KeyPair) PrivateKeyHex() string {
	return hex.EncodeToString(k.PrivateKey.Seed())
}

// KeyPairFromHex rebuilds a key pair from a stored seed. The stored public
// key (if non-empty) is kept as-is; otherwise it is re-derived.
func KeyPairFromHex(publicKey, privateKeyHex string) (*KeyPair, error) {
	seed, err := hex.DecodeString(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decode private key hex: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	if publicKey == "" {
		publicKey = EncodePublicKey(priv.Public().(ed25519.PublicKey))
	}
	return &KeyPair{PublicKey: publicKey, PrivateKey: priv}, nil
}
