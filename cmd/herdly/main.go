// Package main is the entry point for herdly.
package main

import (
	"context"
	"fmt"
	"os"

	"herdly-go/application"
	"herdly-go/core/event"
	"herdly-go/core/eventbus"
	domainherd "herdly-go/domain/herd"
	"herdly-go/infrastructure/config"
	"herdly-go/infrastructure/logging"
	"herdly-go/infrastructure/repository"
	"herdly-go/presentation"
)

func main() {
	// The config path must be known before the CLI is wired, so it
	// comes from the environment rather than a cobra flag.
	configPath := os.Getenv("HERDLY_CONFIG")

	cfg, err := config.Load(configPath)
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logging (dev: console only, prod: rotating file)
	logger, closeLog, err := logging.Setup(cfg.Logging)
	if err != nil {
		// Fallback to stderr if logging setup fails
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("Starting herdly")

	// Carry the logger on the context so downstream layers can pick it
	// up with logging.From.
	ctx := logging.With(context.Background(), logger)

	// Initialize MongoDB
	mongoDB, err := repository.NewMongoDB(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Close(ctx)
	logger.Info("Connected to MongoDB", "database", mongoDB.Database().Name())

	// Initialize store and domain service; the Mongo store is both the
	// record store and the transaction coordinator.
	herdStore := repository.NewMongoHerdStore(mongoDB, logger)
	herdService := domainherd.NewService(herdStore, herdStore)

	// Initialize event bus with a debug-log subscriber
	eventBus := eventbus.New(100)
	defer eventBus.Close()
	eventBus.Subscribe(func(e event.Event) {
		logger.Debug("Event", "event", e.EventName())
	})

	// Initialize coordinator
	coordinator := application.NewCoordinator(&application.CoordinatorConfig{
		Service:  herdService,
		EventBus: eventBus,
	})

	rootCmd := presentation.NewRootCmd(coordinator)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
