package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/notifydispatch/pkg/config"
	"github.com/dmitrymomot/notifydispatch/pkg/logger"
	"github.com/dmitrymomot/notifydispatch/pkg/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractor(requestid.LogAttr),
	)
	slog.SetDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.LogAttrs(ctx, slog.LevelError, "Dispatcher stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
