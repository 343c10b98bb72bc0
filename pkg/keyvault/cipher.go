package keyvault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// defaultSalt is used for passphrase derivation when no salt is configured.
// Changing it invalidates every record written with a derived key.
const defaultSalt = "orderlybot-vault-v1"

// Cipher encrypts private keys with AES-256-GCM. The stored form is
// base64(nonce | ciphertext).
type Cipher struct {
	key []byte
}

// NewCipher builds a cipher from the configured secret. A secret that
// decodes to exactly 32 bytes (base64 or hex) is used verbatim; anything
// else is treated as a passphrase and stretched with argon2id.
func NewCipher(secret, salt string) (*Cipher, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrMissingEncryptionSecret
	}
	if key := tryRawKey(secret); key != nil {
		return &Cipher{key: key}, nil
	}
	if salt == "" {
		salt = defaultSalt
	}
	key := argon2.IDKey([]byte(secret), []byte(salt), 2, 64*1024, 1, 32)
	return &Cipher{key: key}, nil
}

// tryRawKey accepts base64(32 bytes) or hex(32 bytes), optionally
// 0x-prefixed. Returns nil when the secret is not a raw key.
func tryRawKey(raw string) []byte {
	if b, err := base64.StdEncoding.DecodeString(raw); err == nil && len(b) == 32 {
		return b
	}
	h := strings.TrimPrefix(raw, "0x")
	if b, err := hex.DecodeString(h); err == nil && len(b) == 32 {
		return b
	}
	return nil
}

// EncryptString seals plaintext, returning base64(nonce | ciphertext).
func (c *Cipher) EncryptString(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	ct := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, ct...)), nil
}

// DecryptString opens a value produced by EncryptString.
func (c *Cipher) DecryptString(enc string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(enc))
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	if len(raw) < gcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}
	pt, err := gcm.Open(nil, raw[:gcm.NonceSize()], raw[gcm.NonceSize():], nil)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// DecryptStored opens a value read from a backend. Records written before
// encryption was introduced hold the bare private key hex; those are
// accepted as a one-time migration path when decryption fails and the value
// matches the hex shape of a key. Anything else is a corrupt record.
func (c *Cipher) DecryptStored(value string) (string, error) {
	pt, err := c.DecryptString(value)
	if err == nil {
		return pt, nil
	}
	if isLegacyKeyHex(value) {
		return value, nil
	}
	return "", fmt.Errorf("%w: %v", ErrCorruptRecord, err)
}

// isLegacyKeyHex matches the storage format of pre-encryption records: an
// even-length run of hex digits at least one 32-byte key long.
func isLegacyKeyHex(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 64 || len(s)%2 != 0 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
