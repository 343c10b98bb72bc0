package types

import "encoding/json"

// Side is the order direction.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderType is the order execution type.
type OrderType string

const (
	OrderTypeLimit    OrderType = "LIMIT"
	OrderTypeMarket   OrderType = "MARKET"
	OrderTypeIOC      OrderType = "IOC"
	OrderTypeFOK      OrderType = "FOK"
	OrderTypePostOnly OrderType = "POST_ONLY"
	OrderTypeAsk      OrderType = "ASK"
	OrderTypeBid      OrderType = "BID"
)

// OrderStatus as reported by the exchange.
type OrderStatus string

const (
	OrderStatusNew           OrderStatus = "NEW"
	OrderStatusPartialFilled OrderStatus = "PARTIAL_FILLED"
	OrderStatusFilled        OrderStatus = "FILLED"
	OrderStatusCancelled     OrderStatus = "CANCELLED"
	OrderStatusRejected      OrderStatus = "REJECTED"
	OrderStatusIncomplete    OrderStatus = "INCOMPLETE"
	OrderStatusCompleted     OrderStatus = "COMPLETED"
)

// Live reports whether an order in this status can still be cancelled.
func (s OrderStatus) Live() bool {
	return s == OrderStatusNew || s == OrderStatusPartialFilled
}

// Envelope is the response wrapper every Orderly endpoint uses:
// {"success": bool, "data": ..., "code": ..., "message": ...}.
type Envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Timestamp int64           `json:"timestamp"`
}

// Meta is the pagination block returned by list endpoints.
type Meta struct {
	Total          int `json:"total"`
	RecordsPerPage int `json:"records_per_page"`
	CurrentPage    int `json:"current_page"`
}
