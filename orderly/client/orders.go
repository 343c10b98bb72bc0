package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/starchild/orderlybot/orderly/signing"
	"github.com/starchild/orderlybot/orderly/types"
)

// CreateOrder places an order. The request is validated locally first so
// obviously broken parameter combinations never reach the wire.
func (c *Client) CreateOrder(ctx context.Context, signer *signing.RequestSigner, req types.CreateOrderRequest) (*types.CreateOrderResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}
	var out types.CreateOrderResult
	if err := c.post(ctx, "/v1/order", signer, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrders lists orders matching the filter, one page at a time.
func (c *Client) GetOrders(ctx context.Context, signer *signing.RequestSigner, f types.GetOrdersFilter) (*types.OrderList, error) {
	q := url.Values{}
	if f.Symbol != "" {
		q.Set("symbol", f.Symbol)
	}
	if f.Side != "" {
		q.Set("side", string(f.Side))
	}
	if f.OrderType != "" {
		q.Set("order_type", string(f.OrderType))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.OrderTag != "" {
		q.Set("order_tag", f.OrderTag)
	}
	if f.StartTime > 0 {
		q.Set("start_t", strconv.FormatInt(f.StartTime, 10))
	}
	if f.EndTime > 0 {
		q.Set("end_t", strconv.FormatInt(f.EndTime, 10))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size > 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
	}

	path := "/v1/orders"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var out types.OrderList
	if err := c.get(ctx, path, signer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelOrder cancels one open order by exchange order id.
func (c *Client) CancelOrder(ctx context.Context, signer *signing.RequestSigner, symbol string, orderID int64) (*types.CancelOrderResult, error) {
	q := url.Values{}
	q.Set("order_id", strconv.FormatInt(orderID, 10))
	q.Set("symbol", symbol)

	var out types.CancelOrderResult
	if err := c.delete(ctx, "/v1/order?"+q.Encode(), signer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
