// addkey provisions a fresh trading key: generates it, announces it to
// the exchange under the custody wallet's signature, and stores it in
// the vault.
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

	key, err := a.Service.AddKey(ctx)
	if err != nil {
		log.Fatalf("add key failed: %v", err)
	}
	fmt.Printf("orderly_key: %s\n", key)
}
