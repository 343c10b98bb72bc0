// faucet requests test USDC for the custody wallet from the testnet
// faucet.
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

	if err := a.Service.RequestFaucet(ctx); err != nil {
		log.Fatalf("faucet request failed: %v", err)
	}
	fmt.Println("faucet credit requested")
}
