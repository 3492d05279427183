// The scheduler posts due recurring expenses on a fixed interval. It runs
// as a separate process so API replicas never race each other over the
// same templates.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hearth/internal/config"
	"hearth/internal/database"
	"hearth/internal/events"
	"hearth/internal/hlock"
	"hearth/internal/logger"
	"hearth/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		defer publisher.Close()
	}

	db := dbManager.DB()
	locks := hlock.NewRegistry()
	ticks := services.TickSource(services.DefaultTickSource)
	balances := services.NewBalanceService(db)
	categories := services.NewCategoryService(db)
	expenses := services.NewExpenseService(db, locks, ticks, balances, categories, publisher)

	ticker := time.NewTicker(cfg.SchedulerInterval)
	defer ticker.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	log.Infof("Scheduler started, posting due recurring expenses every %s", cfg.SchedulerInterval)
	for {
		select {
		case <-ticker.C:
			n, err := expenses.PostDueRecurring(ticks())
			if err != nil {
				log.Errorw("recurring posting run failed", "error", err)
				continue
			}
			if n > 0 {
				log.Infow("posted recurring expenses", "count", n)
			}
		case sig := <-stop:
			log.Infof("Received %s, shutting down", sig)
			return nil
		}
	}
}
