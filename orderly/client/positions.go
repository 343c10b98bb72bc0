package client

import (
	"context"
	"net/url"

	"github.com/starchild/orderlybot/orderly/signing"
	"github.com/starchild/orderlybot/orderly/types"
)

// GetPositions returns every position row the exchange tracks for the
// account, including flat ones. Callers filter on Open().
func (c *Client) GetPositions(ctx context.Context, signer *signing.RequestSigner) (*types.PositionList, error) {
	var out types.PositionList
	if err := c.get(ctx, "/v1/positions", signer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPosition returns the single position row for one symbol.
func (c *Client) GetPosition(ctx context.Context, signer *signing.RequestSigner, symbol string) (*types.Position, error) {
	var out types.Position
	if err := c.get(ctx, "/v1/position/"+url.PathEscape(symbol), signer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHolding returns the account's token balances.
func (c *Client) GetHolding(ctx context.Context, signer *signing.RequestSigner) (*types.HoldingList, error) {
	var out types.HoldingList
	if err := c.get(ctx, "/v1/client/holding", signer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
