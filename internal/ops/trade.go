package ops

import (
	"context"

	"github.com/starchild/orderlybot/orderly/types"
)

// PlaceOrder places a single order under the vaulted trading key.
func (s *Service) PlaceOrder(ctx context.Context, req types.CreateOrderRequest) (*types.CreateOrderResult, error) {
	trader, err := s.trader(ctx)
	if err != nil {
		return nil, err
	}
	return s.exchange.CreateOrder(ctx, trader, req)
}

// CancelOrder cancels one order by exchange order id.
func (s *Service) CancelOrder(ctx context.Context, symbol string, orderID int64) (*types.CancelOrderResult, error) {
	trader, err := s.trader(ctx)
	if err != nil {
		return nil, err
	}
	return s.exchange.CancelOrder(ctx, trader, symbol, orderID)
}

// Orders lists orders matching the filter.
func (s *Service) Orders(ctx context.Context, f types.GetOrdersFilter) (*types.OrderList, error) {
	trader, err := s.trader(ctx)
	if err != nil {
		return nil, err
	}
	return s.exchange.GetOrders(ctx, trader, f)
}

// Positions lists all position rows.
func (s *Service) Positions(ctx context.Context) (*types.PositionList, error) {
	trader, err := s.trader(ctx)
	if err != nil {
		return nil, err
	}
	return s.exchange.GetPositions(ctx, trader)
}

// Holding lists token balances.
func (s *Service) Holding(ctx context.Context) (*types.HoldingList, error) {
	trader, err := s.trader(ctx)
	if err != nil {
		return nil, err
	}
	return s.exchange.GetHolding(ctx, trader)
}
