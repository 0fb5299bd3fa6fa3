// Command availctl is an interactive shell in which a candidate stages
// availability slots locally and submits them to the API in one batch.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/recruitflow/availability/internal/availability"
	"github.com/recruitflow/availability/internal/client"
	"github.com/recruitflow/availability/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "availctl:", err)
		os.Exit(2)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	policy, err := availability.PolicyForZone(cfg.SlotTimezone)
	if err != nil {
		fmt.Fprintln(os.Stderr, "availctl:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(cfg.APIURL, cfg.UserID, client.WithRate(cfg.RPS))
	sh := newShell(availability.NewWorkspace(api, policy, logger), api, policy, os.Stdout)

	if err := sh.run(ctx, os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, "availctl:", err)
		os.Exit(1)
	}
}
