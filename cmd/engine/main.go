package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/muhammadchandra19/trade-engine/internal/app/engine"
	commandreader "github.com/muhammadchandra19/trade-engine/internal/usecase/command-reader"
	marketpublisher "github.com/muhammadchandra19/trade-engine/internal/usecase/market-publisher"
	"github.com/muhammadchandra19/trade-engine/internal/usecase/snapshot"
	storepublisher "github.com/muhammadchandra19/trade-engine/internal/usecase/store-publisher"
	"github.com/muhammadchandra19/trade-engine/pkg/config"
	"github.com/muhammadchandra19/trade-engine/pkg/logger"
	"github.com/muhammadchandra19/trade-engine/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg = &config.Config{}
	err = config.Load(cfg)
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	log = logger
}

func main() {
	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	redisConfig := redis.DefaultConfig()
	redisConfig.Addrs = []string{cfg.RedisConfig.Addrs}
	redisConfig.Password = cfg.RedisConfig.Password
	redisConfig.Username = cfg.RedisConfig.Username
	redisConfig.DB = cfg.RedisConfig.DB
	// Initialize Redis client
	rclient := redis.NewClient(log, redisConfig)

	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "connect_redis",
		})
		return
	}

	// Initialize components
	reader := commandreader.NewReader(cfg.KafkaConfig, log)
	market := marketpublisher.NewPublisher(rclient, log)
	store := storepublisher.NewPublisher(cfg.KafkaConfig, log)
	snapshotStore := snapshot.NewSnapshotStore(rclient, cfg.SnapshotConfig.Key, log)
	engine := app.NewEngineWithOptions(
		reader,
		market,
		store,
		snapshotStore,
		log,
		cfg,
		&app.Options{
			SnapshotInterval: cfg.SnapshotConfig.Interval,
		},
	)

	// Start the engine
	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Trade engine started successfully", logger.Field{
		Key:   "markets",
		Value: cfg.Markets,
	})

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	// Cancel the main context to signal shutdown
	cancel()

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the engine gracefully
	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	// Flush the store producer before dropping the Redis connection
	if err := store.Close(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "close_store_publisher",
		})
	}

	if err := rclient.Disconnect(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "disconnect_redis",
		})
	}

	log.Info("Trade engine shutdown complete")
}
