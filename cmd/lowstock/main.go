// Command lowstock scans the inventory and raises a low-stock notification
// for every item below the configured threshold. It is intended to be invoked
// by an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/okothnm/woodline-backend/internal/adapter/postgres"
	notificationrepo "github.com/okothnm/woodline-backend/internal/adapter/postgres/notification"
	stockrepo "github.com/okothnm/woodline-backend/internal/adapter/postgres/stock"
	userrepo "github.com/okothnm/woodline-backend/internal/adapter/postgres/user"
	"github.com/okothnm/woodline-backend/internal/app"
	"github.com/okothnm/woodline-backend/internal/config"
	notificationsvc "github.com/okothnm/woodline-backend/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := notificationsvc.NewService(
		logger,
		notificationrepo.New(pool),
		userrepo.New(pool),
		nil, // submissions not needed for the scan
		stockrepo.New(pool),
		nil, // no live channel in a one-shot run
		cfg.Inventory.LowStockThreshold,
	)

	created, err := svc.EmitLowStockBatch(ctx)
	if err != nil {
		logger.Error("low-stock scan failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("low-stock scan completed",
		slog.Int("notifications", len(created)),
		slog.Int("threshold", cfg.Inventory.LowStockThreshold),
	)
}
