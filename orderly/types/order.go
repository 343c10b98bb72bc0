package types

import (
	"errors"
	"fmt"
)

// CreateOrderRequest is the body of POST /v1/order.
//
// Zero-valued optional fields are omitted from the JSON so the exchange's
// mutually-exclusive parameter rules (quantity vs amount) are not tripped
// by accidental zeros.
type CreateOrderRequest struct {
	Symbol          string    `json:"symbol"`
	OrderType       OrderType `json:"order_type"`
	Side            Side      `json:"side"`
	OrderPrice      *float64  `json:"order_price,omitempty"`
	OrderQuantity   *float64  `json:"order_quantity,omitempty"`
	OrderAmount     *float64  `json:"order_amount,omitempty"`
	VisibleQuantity *float64  `json:"visible_quantity,omitempty"`
	ReduceOnly      bool      `json:"reduce_only"`
	Slippage        *float64  `json:"slippage,omitempty"`
	ClientOrderID   string    `json:"client_order_id,omitempty"`
	OrderTag        string    `json:"order_tag,omitempty"`
	Level           *int      `json:"level,omitempty"`
}

// CreateOrderResult is the data payload of a successful order creation.
type CreateOrderResult struct {
	OrderID       int64   `json:"order_id"`
	ClientOrderID string  `json:"client_order_id"`
	OrderType     string  `json:"order_type"`
	OrderPrice    float64 `json:"order_price"`
	OrderQuantity float64 `json:"order_quantity"`
	OrderAmount   float64 `json:"order_amount"`
}

// Order is an order row from GET /v1/orders.
type Order struct {
	OrderID       int64       `json:"order_id"`
	ClientOrderID string      `json:"client_order_id"`
	Symbol        string      `json:"symbol"`
	Side          Side        `json:"side"`
	Type          OrderType   `json:"type"`
	Status        OrderStatus `json:"status"`
	Price         float64     `json:"price"`
	Quantity      float64     `json:"quantity"`
	Executed      float64     `json:"executed"`
	AverageExec   float64     `json:"average_executed_price"`
	ReduceOnly    bool        `json:"reduce_only"`
	CreatedTime   float64     `json:"created_time"`
	UpdatedTime   float64     `json:"updated_time"`
}

// OrderList is the data payload of GET /v1/orders.
type OrderList struct {
	Rows []Order `json:"rows"`
	Meta Meta    `json:"meta"`
}

// GetOrdersFilter narrows GET /v1/orders. Zero values are not sent.
type GetOrdersFilter struct {
	Symbol    string
	Side      Side
	OrderType OrderType
	Status    OrderStatus
	OrderTag  string
	StartTime int64
	EndTime   int64
	Page      int
	Size      int
	SortBy    string
}

// CancelOrderResult is the data payload of DELETE /v1/order.
type CancelOrderResult struct {
	Status string `json:"status"`
}

// Validate enforces the exchange's parameter rules before anything is
// signed or sent.
func (r *CreateOrderRequest) Validate() error {
	if r.Symbol == "" {
		return errors.New("symbol is required")
	}
	switch r.Side {
	case SideBuy, SideSell:
	default:
		return fmt.Errorf("invalid side %q: must be BUY or SELL", r.Side)
	}
	switch r.OrderType {
	case OrderTypeLimit, OrderTypeMarket, OrderTypeIOC, OrderTypeFOK, OrderTypePostOnly, OrderTypeAsk, OrderTypeBid:
	default:
		return fmt.Errorf("invalid order type %q", r.OrderType)
	}

	switch r.OrderType {
	case OrderTypeLimit, OrderTypeIOC, OrderTypeFOK, OrderTypePostOnly:
		if r.OrderPrice == nil {
			return fmt.Errorf("order_price is required for %s orders", r.OrderType)
		}
	}
	if r.OrderQuantity == nil && r.OrderAmount == nil {
		return errors.New("either order_quantity or order_amount must be provided")
	}
	// MARKET/BID/ASK: SELL is sized in base quantity, BUY in quote amount
	// unless reduce-only, which always takes a quantity.
	switch r.OrderType {
	case OrderTypeMarket, OrderTypeBid, OrderTypeAsk:
		if r.Side == SideSell && r.OrderAmount != nil {
			return fmt.Errorf("order_amount is not supported for SELL %s orders", r.OrderType)
		}
		if r.Side == SideBuy && r.OrderQuantity != nil && !r.ReduceOnly {
			return fmt.Errorf("order_quantity is not supported for BUY %s orders", r.OrderType)
		}
	}
	return nil
}
