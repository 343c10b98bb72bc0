package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/starchild/orderlybot/internal/ops"
	"github.com/starchild/orderlybot/orderly/client"
	"github.com/starchild/orderlybot/orderly/types"
)

// statusFor maps flow errors onto HTTP statuses. Exchange rejections keep
// their remote flavor as 502; local validation problems are the caller's
// 400.
func statusFor(err error) int {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.Is(err, client.ErrNonceUnavailable),
		errors.Is(err, client.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, ops.ErrNoTradingKey):
		return http.StatusConflict
	case errors.Is(err, ops.ErrUnsupportedToken),
		errors.Is(err, ops.ErrAmountTooSmall),
		errors.Is(err, ops.ErrAmountNotScalable),
		errors.Is(err, ops.ErrFaucetUnavailable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	accountID, err := s.svc.Register(c.Request.Context())
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, gin.H{"account_id": accountID})
}

func (s *Server) handleAddKey(c *gin.Context) {
	key, err := s.svc.AddKey(c.Request.Context())
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, gin.H{"orderly_key": key})
}

func (s *Server) handleGetKey(c *gin.Context) {
	key, err := s.svc.TradingKey(c.Request.Context())
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, gin.H{"orderly_key": key})
}

func (s *Server) handleDeleteKey(c *gin.Context) {
	existed, err := s.svc.DeleteKey(c.Request.Context())
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, gin.H{"deleted": existed})
}

func (s *Server) handleFaucet(c *gin.Context) {
	if err := s.svc.RequestFaucet(c.Request.Context()); err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, gin.H{"status": "requested"})
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	var req types.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	res, err := s.svc.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, res)
}

func (s *Server) handleListOrders(c *gin.Context) {
	f := types.GetOrdersFilter{
		Symbol:    c.Query("symbol"),
		Side:      types.Side(c.Query("side")),
		OrderType: types.OrderType(c.Query("order_type")),
		Status:    types.OrderStatus(c.Query("status")),
	}
	if v := c.Query("page"); v != "" {
		f.Page, _ = strconv.Atoi(v)
	}
	if v := c.Query("size"); v != "" {
		f.Size, _ = strconv.Atoi(v)
	}
	res, err := s.svc.Orders(c.Request.Context(), f)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, res)
}

func (s *Server) handleCancelOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderID"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	symbol := c.Query("symbol")
	res, err := s.svc.CancelOrder(c.Request.Context(), symbol, orderID)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, res)
}

func (s *Server) handleListPositions(c *gin.Context) {
	res, err := s.svc.Positions(c.Request.Context())
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, res)
}

func (s *Server) handleHolding(c *gin.Context) {
	res, err := s.svc.Holding(c.Request.Context())
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, res)
}

type withdrawBody struct {
	Token    string `json:"token"`
	Amount   string `json:"amount"`
	Receiver string `json:"receiver"`
}

func (s *Server) handleWithdraw(c *gin.Context) {
	var body withdrawBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	id, err := s.svc.Withdraw(c.Request.Context(), ops.WithdrawParams{
		Token:    body.Token,
		Amount:   amount,
		Receiver: body.Receiver,
	})
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, gin.H{"withdraw_id": id})
}

func (s *Server) handleSettlePnl(c *gin.Context) {
	if err := s.svc.SettlePnl(c.Request.Context()); err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, gin.H{"status": "requested"})
}

func (s *Server) handleCancelAll(c *gin.Context) {
	summary, err := s.svc.CancelAll(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, summary)
}

func (s *Server) handleCloseAll(c *gin.Context) {
	summary, err := s.svc.CloseAll(c.Request.Context())
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	respond(c, summary)
}
