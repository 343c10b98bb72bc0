// withdraw submits an on-chain withdrawal from the exchange account.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/starchild/orderlybot/internal/app"
	"github.com/starchild/orderlybot/internal/ops"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv("ORDERLYBOT_CONFIG"), "path to YAML config (optional)")
		token      = flag.String("token", "USDC", "token to withdraw")
		amountStr  = flag.String("amount", "", "amount in token units (e.g. 12.5)")
		receiver   = flag.String("receiver", "", "receiving address (defaults to the custody wallet)")
	)
	flag.Parse()

	if *amountStr == "" {
		log.Fatal("-amount is required")
	}
	amount, err := decimal.NewFromString(*amountStr)
	if err != nil {
		log.Fatalf("invalid amount %q: %v", *amountStr, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	a, err := app.Bootstrap(ctx, *configPath)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer a.Close()

	id, err := a.Service.Withdraw(ctx, ops.WithdrawParams{
		Token:    *token,
		Amount:   amount,
		Receiver: *receiver,
	})
	if err != nil {
		log.Fatalf("withdraw failed: %v", err)
	}
	fmt.Printf("withdraw_id: %d\n", id)
}
