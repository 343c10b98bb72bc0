package client

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/starchild/orderlybot/orderly/signing"
)

// ErrNonceUnavailable reports that the exchange did not hand out a
// usable nonce. Flows that need one must stop; nonces are never invented
// locally.
var ErrNonceUnavailable = errors.New("exchange did not provide a nonce")

// nonceValue tolerates the exchange returning nonces as either JSON
// numbers or strings.
type nonceValue struct {
	Registration json.Number `json:"registration_nonce"`
	Withdraw     json.Number `json:"withdraw_nonce"`
	Settle       json.Number `json:"settle_nonce"`
}

func pickNonce(n json.Number) (int64, error) {
	v, err := n.Int64()
	if err != nil || v <= 0 {
		return 0, ErrNonceUnavailable
	}
	return v, nil
}

// RegistrationNonce fetches a nonce for account registration. The
// endpoint is public; no key is needed yet at that point.
func (c *Client) RegistrationNonce(ctx context.Context) (int64, error) {
	var data nonceValue
	if err := c.get(ctx, "/v1/registration_nonce", nil, &data); err != nil {
		return 0, errors.Wrap(ErrNonceUnavailable, err.Error())
	}
	return pickNonce(data.Registration)
}

// WithdrawNonce fetches a single-use nonce for a withdrawal.
func (c *Client) WithdrawNonce(ctx context.Context, signer *signing.RequestSigner) (int64, error) {
	var data nonceValue
	if err := c.get(ctx, "/v1/withdraw_nonce", signer, &data); err != nil {
		return 0, errors.Wrap(ErrNonceUnavailable, err.Error())
	}
	return pickNonce(data.Withdraw)
}

// SettleNonce fetches a single-use nonce for a PnL settlement.
func (c *Client) SettleNonce(ctx context.Context, signer *signing.RequestSigner) (int64, error) {
	var data nonceValue
	if err := c.get(ctx, "/v1/settle_nonce", signer, &data); err != nil {
		return 0, errors.Wrap(ErrNonceUnavailable, err.Error())
	}
	return pickNonce(data.Settle)
}
