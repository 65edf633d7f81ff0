package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rankchoice/vote/internal/bootstrap"
	"github.com/rankchoice/vote/internal/config"
	"github.com/rankchoice/vote/internal/polls"
	"github.com/rankchoice/vote/internal/scheduler"
	"github.com/rankchoice/vote/internal/storage"
	"github.com/rankchoice/vote/internal/voters"
	"github.com/rankchoice/vote/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open stores: %v", err)
	}
	defer stores.Close(context.Background())
	if !stores.Durable {
		// the sweep only sees polls created in this process
		logger.Warnf("scheduler running against in-memory repositories")
	}

	var archiver scheduler.Archiver
	if cfg.MinIO.Endpoint != "" {
		st, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("archiving disabled: %v", err)
		} else {
			archiver = st
			logger.Infof("archiving closed polls to bucket %q", cfg.MinIO.Bucket)
		}
	}

	s := scheduler.New(polls.NewService(stores.Polls), voters.NewService(stores.Voters), archiver, cfg.Scheduler.Interval)
	s.Run(ctx)
}
