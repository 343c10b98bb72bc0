// Package server exposes the wallet operations over a small HTTP control
// plane. It is an operator surface, not a public API: no auth beyond
// network placement, JSON in and out.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/starchild/orderlybot/internal/ops"
)

type Server struct {
	svc *ops.Service
}

func New(svc *ops.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")
	api.POST("/register", s.handleRegister)
	api.POST("/add-key", s.handleAddKey)
	api.GET("/key", s.handleGetKey)
	api.DELETE("/key", s.handleDeleteKey)

	api.POST("/orders", s.handleCreateOrder)
	api.GET("/orders", s.handleListOrders)
	api.DELETE("/orders/:orderID", s.handleCancelOrder)
	api.GET("/positions", s.handleListPositions)
	api.GET("/holding", s.handleHolding)

	api.POST("/withdraw", s.handleWithdraw)
	api.POST("/settle-pnl", s.handleSettlePnl)
	api.POST("/faucet", s.handleFaucet)
	api.POST("/cancel-all", s.handleCancelAll)
	api.POST("/close-all", s.handleCloseAll)

	return r
}

// respond mirrors the exchange's own envelope shape so operators read
// one format everywhere.
func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
