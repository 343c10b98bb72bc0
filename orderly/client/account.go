package client

import (
	"context"

	"github.com/starchild/orderlybot/orderly/types"
)

// RegisterAccount creates an exchange account bound to the wallet that
// produced the EIP-712 signature in req. Public endpoint; the signature
// in the body is the authentication.
func (c *Client) RegisterAccount(ctx context.Context, req types.RegisterAccountRequest) (*types.RegisterAccountResult, error) {
	var out types.RegisterAccountResult
	if err := c.post(ctx, "/v1/register_account", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddOrderlyKey announces a new ed25519 trading key for an already
// registered account. Like registration, the wallet signature in the
// body authenticates the call.
func (c *Client) AddOrderlyKey(ctx context.Context, req types.AddKeyRequest) (*types.AddKeyResult, error) {
	var out types.AddKeyResult
	if err := c.post(ctx, "/v1/orderly_key", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
