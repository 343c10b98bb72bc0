package ops

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/starchild/orderlybot/orderly/signing"
	"github.com/starchild/orderlybot/orderly/types"
)

// pageSize is the page size used when sweeping orders.
const pageSize = 500

// ErrInconsistentPagination reports that the order book changed shape
// mid-scan in a way that makes the page walk unreliable.
var ErrInconsistentPagination = errors.New("pagination changed while scanning")

// ItemResult records the outcome of one item in a bulk sweep.
type ItemResult struct {
	Symbol  string `json:"symbol"`
	OrderID int64  `json:"order_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Summary is the aggregate outcome of a bulk sweep. A sweep with
// failures is not an error: each item fails or succeeds on its own.
type Summary struct {
	Attempted int          `json:"attempted"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

// Success reports a fully clean sweep.
func (s *Summary) Success() bool {
	return s.Failed == 0
}

func (s *Summary) record(symbol string, orderID int64, err error) {
	item := ItemResult{Symbol: symbol, OrderID: orderID}
	s.Attempted++
	if err != nil {
		s.Failed++
		item.Error = err.Error()
	} else {
		s.Succeeded++
	}
	s.Items = append(s.Items, item)
}

// allOrders walks every page of GET /v1/orders for the filter. The page
// bound is fixed from the first response; a page that comes back labeled
// with a different index than requested aborts the walk.
func (s *Service) allOrders(ctx context.Context, trader *signing.RequestSigner, f types.GetOrdersFilter) ([]types.Order, error) {
	f.Size = pageSize
	f.Page = 1

	first, err := s.exchange.GetOrders(ctx, trader, f)
	if err != nil {
		return nil, err
	}
	orders := append([]types.Order(nil), first.Rows...)

	pages := (first.Meta.Total + pageSize - 1) / pageSize
	for page := 2; page <= pages; page++ {
		f.Page = page
		list, err := s.exchange.GetOrders(ctx, trader, f)
		if err != nil {
			return nil, err
		}
		if list.Meta.CurrentPage != page {
			return nil, errors.Wrapf(ErrInconsistentPagination,
				"requested page %d, got page %d", page, list.Meta.CurrentPage)
		}
		orders = append(orders, list.Rows...)
	}
	return orders, nil
}

// pause sleeps between sequential bulk requests, honoring cancellation.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
