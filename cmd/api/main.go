// Contacts API server.
//
// @title        Contacts API
// @version      1.0
// @description  Personal contact store with per-user scoping, name and email
// @description  filters, and upcoming-birthday queries.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DDjog/RestAPIz14/internal/api"
	"github.com/DDjog/RestAPIz14/internal/infrastructure/config"
	"github.com/DDjog/RestAPIz14/internal/infrastructure/db/postgres"
	"github.com/DDjog/RestAPIz14/internal/infrastructure/db/redis"
	"github.com/DDjog/RestAPIz14/internal/infrastructure/queue"
	"github.com/DDjog/RestAPIz14/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		logg.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:          cfg.Postgres.DSN,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		Timeout:      cfg.Postgres.Timeout,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer db.Close()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	e := api.NewRouter(cfg, db, rdb, logg)

	if cfg.Reminder.Enabled {
		reminderLog := logger.Component("reminder")
		dispatcher := queue.NewDispatcher(cfg.Reminder.Workers,
			redis.NewReminderDedup(rdb),
			queue.NewLogNotifier(reminderLog),
			reminderLog)
		dispatcher.Start(ctx)

		scanner := queue.NewScanner(postgres.NewContactRepository(db), dispatcher,
			cfg.Reminder.HorizonDays, cfg.Reminder.ScanInterval, reminderLog)
		go scanner.Run(ctx)
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logg.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("shutdown error")
	}
}
