// close-all flattens every open position with reduce-only market orders.
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	a, err := app.Bootstrap(ctx, *configPath)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer a.Close()

	summary, err := a.Service.CloseAll(ctx)
	if err != nil {
		log.Fatalf("close-all failed: %v", err)
	}
	fmt.Printf("attempted %d, succeeded %d, failed %d\n",
		summary.Attempted, summary.Succeeded, summary.Failed)
	for _, item := range summary.Items {
		if item.Error != "" {
			fmt.Printf("  %s: %s\n", item.Symbol, item.Error)
		}
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
