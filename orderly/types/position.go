package types

// Position is a row from GET /v1/positions.
type Position struct {
	Symbol           string  `json:"symbol"`
	PositionQty      float64 `json:"position_qty"`
	CostPosition     float64 `json:"cost_position"`
	AverageOpenPrice float64 `json:"average_open_price"`
	MarkPrice        float64 `json:"mark_price"`
	UnrealizedPnl    float64 `json:"unsettled_pnl"`
	PnL24H           float64 `json:"pnl_24_h"`
	EstLiqPrice      float64 `json:"est_liq_price"`
	Timestamp        float64 `json:"timestamp"`
}

// Open reports whether the position carries exposure.
func (p Position) Open() bool {
	return p.PositionQty != 0
}

// PositionList is the data payload of GET /v1/positions.
type PositionList struct {
	Rows []Position `json:"rows"`
}

// Holding is a row from GET /v1/client/holding.
type Holding struct {
	Token        string  `json:"token"`
	Holding      float64 `json:"holding"`
	Frozen       float64 `json:"frozen"`
	PendingShort float64 `json:"pending_short"`
	UpdatedTime  float64 `json:"updated_time"`
}

// HoldingList is the data payload of GET /v1/client/holding.
type HoldingList struct {
	Holding []Holding `json:"holding"`
}
