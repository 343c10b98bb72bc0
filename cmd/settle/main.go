// settle requests a PnL settlement for the exchange account.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/starchild/orderlybot/internal/app"
)

func main() {
	configPath := flag.String("config", os.Getenv("ORDERLYBOT_CONFIG"), "path to YAML config (optional)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	a, err := app.Bootstrap(ctx, *configPath)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer a.Close()

	if err := a.Service.SettlePnl(ctx); err != nil {
		log.Fatalf("settle failed: %v", err)
	}
	fmt.Println("settlement requested")
}
