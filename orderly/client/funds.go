package client

import (
	"context"

	"github.com/starchild/orderlybot/orderly/signing"
	"github.com/starchild/orderlybot/orderly/types"
)

// Withdraw submits an on-chain withdrawal request. The EIP-712 wallet
// signature and the withdraw nonce must already be in req.
func (c *Client) Withdraw(ctx context.Context, signer *signing.RequestSigner, req types.WithdrawRequest) (*types.WithdrawResult, error) {
	var out types.WithdrawResult
	if err := c.post(ctx, "/v1/withdraw_request", signer, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SettlePnl asks the exchange to settle unrealized PnL into the
// account's balance.
func (c *Client) SettlePnl(ctx context.Context, signer *signing.RequestSigner, req types.SettleRequest) error {
	return c.post(ctx, "/v1/settle_pnl", signer, req, nil)
}

// RequestFaucetUSDC asks the testnet faucet to credit the wallet with
// test USDC. faucetURL is absolute: the faucet lives on the operator
// host, not the trading API. Public endpoint, no signature.
func (c *Client) RequestFaucetUSDC(ctx context.Context, faucetURL string, req types.FaucetRequest) error {
	return c.post(ctx, faucetURL, nil, req, nil)
}
