package custody

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/starchild/orderlybot/pkg/config"
	"github.com/starchild/orderlybot/pkg/logger"
)

// PrivySigner signs typed data through Privy's wallet API. The wallet's
// private key never leaves the custodian; we send the typed payload and
// get the signature back.
type PrivySigner struct {
	http     *resty.Client
	appID    string
	walletID string
	authKey  *ecdsa.PrivateKey // optional, for privy-authorization-signature

	addr string // cached after first lookup
}

func NewPrivySigner(cfg config.CustodyConfig) (*PrivySigner, error) {
	if cfg.AppID == "" || cfg.AppSecret == "" {
		return nil, errors.New("custody: privy app_id and app_secret are required")
	}
	if cfg.WalletID == "" {
		return nil, errors.New("custody: privy wallet_id is required")
	}

	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(30*time.Second).
		SetBasicAuth(cfg.AppID, cfg.AppSecret).
		SetHeader("privy-app-id", cfg.AppID)

	s := &PrivySigner{
		http:     rc,
		appID:    cfg.AppID,
		walletID: cfg.WalletID,
	}
	if cfg.AuthorizationSecret != "" {
		key, err := parseAuthorizationKey(cfg.AuthorizationSecret)
		if err != nil {
			return nil, fmt.Errorf("custody: parse privy authorization key: %w", err)
		}
		s.authKey = key
	}
	return s, nil
}

// parseAuthorizationKey decodes Privy's "wallet-auth:" prefixed base64
// PKCS8 P-256 private key.
func parseAuthorizationKey(secret string) (*ecdsa.PrivateKey, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(secret), "wallet-auth:")
	der, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, errors.New("authorization key is not an ECDSA key")
	}
	return key, nil
}

type privyWallet struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

func (s *PrivySigner) Address(ctx context.Context) (string, error) {
	if s.addr != "" {
		return s.addr, nil
	}
	var w privyWallet
	resp, err := s.http.R().
		SetContext(ctx).
		SetResult(&w).
		Get("/wallets/" + s.walletID)
	if err != nil {
		return "", errors.Wrap(err, "fetch privy wallet")
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch privy wallet: status %d: %.200s", resp.StatusCode(), resp.Body())
	}
	if w.Address == "" {
		return "", errors.New("privy wallet has no address")
	}
	s.addr = w.Address
	return s.addr, nil
}

type privyRPCRequest struct {
	Method string         `json:"method"`
	Params privyRPCParams `json:"params"`
}

type privyRPCParams struct {
	TypedData apitypes.TypedData `json:"typed_data"`
}

type privyRPCResponse struct {
	Method string `json:"method"`
	Data   struct {
		Signature string `json:"signature"`
	} `json:"data"`
}

func (s *PrivySigner) SignTypedData(ctx context.Context, td apitypes.TypedData) (string, error) {
	path := "/wallets/" + s.walletID + "/rpc"
	reqBody := privyRPCRequest{
		Method: "eth_signTypedData_v4",
		Params: privyRPCParams{TypedData: td},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal typed data: %v", ErrSigningFailed, err)
	}

	r := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if s.authKey != nil {
		sig, err := s.authorizationSignature(http.MethodPost, path, body)
		if err != nil {
			return "", fmt.Errorf("%w: authorization signature: %v", ErrSigningFailed, err)
		}
		r.SetHeader("privy-authorization-signature", sig)
	}

	resp, err := r.Post(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	if resp.IsError() {
		logger.Warnf("privy rejected signing request for wallet %s: status %d: %.200s",
			s.walletID, resp.StatusCode(), resp.Body())
		return "", fmt.Errorf("%w: privy status %d", ErrSigningFailed, resp.StatusCode())
	}
	var out privyRPCResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("%w: decode privy response: %v", ErrSigningFailed, err)
	}
	if out.Data.Signature == "" {
		return "", fmt.Errorf("%w: privy returned no signature", ErrSigningFailed)
	}
	return out.Data.Signature, nil
}

// authorizationSignature signs the canonical request payload with the
// app's authorization key, as Privy requires for key-quorum wallets.
func (s *PrivySigner) authorizationSignature(method, path string, body []byte) (string, error) {
	var bodyJSON any
	if err := json.Unmarshal(body, &bodyJSON); err != nil {
		return "", err
	}
	payload := map[string]any{
		"version": 1,
		"method":  method,
		"url":     strings.TrimSuffix(s.http.BaseURL, "/") + path,
		"body":    bodyJSON,
		"headers": map[string]string{"privy-app-id": s.appID},
	}
	canonical, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(canonical)
	der, err := ecdsa.SignASN1(rand.Reader, s.authKey, digest[:])
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(der), nil
}
