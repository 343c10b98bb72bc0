package signing

import (
	"crypto/ed25519"
	"encoding/base64"
	"net/http"
	"strconv"
	"time"
)

// Header names for authenticated exchange calls.
const (
	HeaderContentType = "Content-Type"
	HeaderTimestamp   = "orderly-timestamp"
	HeaderAccountID   = "orderly-account-id"
	HeaderKey         = "orderly-key"
	HeaderSignature   = "orderly-signature"
)

// RequestSigner produces the authentication headers for trading-API calls:
// an ed25519 signature over "timestamp + method + path + body".
type RequestSigner struct {
	AccountID string
	Key       *KeyPair
}

// Headers signs the request with a fresh millisecond timestamp. The
// exchange uses the timestamp as an anti-replay checkpoint, so it must not
// be reused across calls.
func (s *RequestSigner) Headers(method, path string, body []byte) map[string]string {
	return s.HeadersAt(time.Now().UnixMilli(), method, path, body)
}

// HeadersAt is the pure form of Headers: identical inputs (timestamp
// included) reproduce the identical signature.
func (s *RequestSigner) HeadersAt(timestampMs int64, method, path string, body []byte) map[string]string {
	ts := strconv.FormatInt(timestampMs, 10)

	message := ts + method + path
	if len(body) > 0 {
		message += string(body)
	}
	sig := ed25519.Sign(s.Key.PrivateKey, []byte(message))

	return map[string]string{
		HeaderContentType: ContentTypeFor(method),
		HeaderTimestamp:   ts,
		HeaderAccountID:   s.AccountID,
		HeaderKey:         s.Key.PublicKey,
		HeaderSignature:   base64.StdEncoding.EncodeToString(sig),
	}
}

// ContentTypeFor returns the content type the exchange expects per method:
// form-encoded for reads and deletes, JSON for everything else.
func ContentTypeFor(method string) string {
	switch method {
	case http.MethodGet, http.MethodDelete:
		return "application/x-www-form-urlencoded"
	default:
		return "application/json"
	}
}
