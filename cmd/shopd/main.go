package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/FrankoBuyern/Proekt2/internal/app/game"
)

func main() {
	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	// `shopd fast` shortens the customer interval for quick play sessions.
	if len(os.Args) > 1 && strings.EqualFold(os.Args[1], "fast") {
		cfg.ArrivalInterval = game.FastArrivalInterval
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := game.Run(ctx, cfg); err != nil {
		log.Fatalf("shop exited with error: %v", err)
	}
}
