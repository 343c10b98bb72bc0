// cancel-all sweeps and cancels every live order on the account.
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
	var (
		configPath = flag.String("config", os.Getenv("ORDERLYBOT_CONFIG"), "path to YAML config (optional)")
		symbol     = flag.String("symbol", "", "restrict to one symbol (optional)")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	a, err := app.Bootstrap(ctx, *configPath)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer a.Close()

	summary, err := a.Service.CancelAll(ctx, *symbol)
	if err != nil {
		log.Fatalf("cancel-all failed: %v", err)
	}
	fmt.Printf("attempted %d, succeeded %d, failed %d\n",
		summary.Attempted, summary.Succeeded, summary.Failed)
	for _, item := range summary.Items {
		if item.Error != "" {
			fmt.Printf("  order %d (%s): %s\n", item.OrderID, item.Symbol, item.Error)
		}
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
