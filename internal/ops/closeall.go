package ops

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/starchild/orderlybot/orderly/types"
	"github.com/starchild/orderlybot/pkg/logger"
)

// CloseAll flattens every open position with reduce-only market orders.
// A long is closed with a SELL, a short with a BUY, always for the full
// absolute quantity. Reduce-only guarantees a racing fill can shrink but
// never flip the position.
func (s *Service) CloseAll(ctx context.Context) (*Summary, error) {
	trader, err := s.trader(ctx)
	if err != nil {
		return nil, err
	}

	positions, err := s.exchange.GetPositions(ctx, trader)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, p := range positions.Rows {
		if !p.Open() {
			continue
		}
		if summary.Attempted > 0 {
			if err := pause(ctx, s.closeDelay); err != nil {
				return summary, err
			}
		}
		res, cerr := s.exchange.CreateOrder(ctx, trader, closeOrder(p))
		if cerr != nil {
			logger.Warnf("close position %s (qty %v) failed: %v", p.Symbol, p.PositionQty, cerr)
			summary.record(p.Symbol, 0, cerr)
			continue
		}
		summary.record(p.Symbol, res.OrderID, nil)
	}

	logger.Infof("close-all done: %d attempted, %d succeeded, %d failed",
		summary.Attempted, summary.Succeeded, summary.Failed)
	return summary, nil
}

// closeOrder builds the reduce-only market order that flattens p.
func closeOrder(p types.Position) types.CreateOrderRequest {
	side := types.SideSell
	if p.PositionQty < 0 {
		side = types.SideBuy
	}
	qty := math.Abs(p.PositionQty)
	return types.CreateOrderRequest{
		Symbol:        p.Symbol,
		OrderType:     types.OrderTypeMarket,
		Side:          side,
		OrderQuantity: &qty,
		ReduceOnly:    true,
		ClientOrderID: newClientOrderID(),
	}
}

// newClientOrderID yields a 32-char id within the exchange's 36-char
// alphanumeric limit.
func newClientOrderID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
