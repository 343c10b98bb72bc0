package ops

import (
	"context"

	"github.com/starchild/orderlybot/orderly/types"
	"github.com/starchild/orderlybot/pkg/logger"
)

// CancelAll cancels every live order, optionally narrowed to one symbol.
// The scan runs first, then cancels go out one at a time; one rejected
// cancel does not stop the rest.
func (s *Service) CancelAll(ctx context.Context, symbol string) (*Summary, error) {
	trader, err := s.trader(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.allOrders(ctx, trader, types.GetOrdersFilter{Symbol: symbol})
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, o := range orders {
		if !o.Status.Live() {
			continue
		}
		if summary.Attempted > 0 {
			if err := pause(ctx, s.cancelDelay); err != nil {
				return summary, err
			}
		}
		_, cerr := s.exchange.CancelOrder(ctx, trader, o.Symbol, o.OrderID)
		if cerr != nil {
			logger.Warnf("cancel order %d (%s) failed: %v", o.OrderID, o.Symbol, cerr)
		}
		summary.record(o.Symbol, o.OrderID, cerr)
	}

	logger.Infof("cancel-all done: %d attempted, %d succeeded, %d failed",
		summary.Attempted, summary.Succeeded, summary.Failed)
	return summary, nil
}
