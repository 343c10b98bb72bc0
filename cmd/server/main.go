package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/starchild/orderlybot/internal/app"
	"github.com/starchild/orderlybot/internal/server"
	"github.com/starchild/orderlybot/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv("ORDERLYBOT_CONFIG"), "path to YAML config (optional)")
		listen     = flag.String("listen", "", "HTTP listen address (overrides config)")
	)
	flag.Parse()

	ctx := context.Background()
	a, err := app.Bootstrap(ctx, *configPath)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer a.Close()

	addr := a.Cfg.Server.Listen
	if *listen != "" {
		addr = *listen
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           server.New(a.Service).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infof("control plane listening on %s (env %s, broker %s)",
			addr, a.Cfg.Exchange.Environment, a.Cfg.Exchange.BrokerID)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("http server error: %v", err)
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-stopCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)

	fmt.Println("server stopped")
}
