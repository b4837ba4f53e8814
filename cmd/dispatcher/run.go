package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/notifydispatch/pkg/config"
	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
	"github.com/dmitrymomot/notifydispatch/pkg/httpserver"
	"github.com/dmitrymomot/notifydispatch/pkg/ingest"
	"github.com/dmitrymomot/notifydispatch/pkg/logger"
)

func run(ctx context.Context, app appConfig, log *slog.Logger) (err error) {
	c := &components{log: log, registry: newRegistry()}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.ShutdownTimeout)
		defer cancel()
		err = errors.Join(err, c.close(shutdownCtx))
	}()

	var (
		dispatchCfg dispatch.Config
		ingestCfg   ingest.Config
		httpCfg     httpserver.Config
	)
	if err := errors.Join(
		config.Load(&dispatchCfg),
		config.Load(&ingestCfg),
		config.Load(&httpCfg),
		config.Load(&c.natsCfg),
	); err != nil {
		return err
	}

	dir, err := buildDirectory(ctx, c)
	if err != nil {
		return err
	}
	pub, err := buildPublisher(ctx, c)
	if err != nil {
		return err
	}
	asm, err := buildAssembler(ctx, c)
	if err != nil {
		return err
	}
	diag, err := buildDiagnostics(ctx, c, app, dispatchCfg.DiagnosticsEnabled)
	if err != nil {
		return err
	}

	handler, err := dispatch.NewHandler(dir, asm, pub, append(dispatchCfg.Options(),
		dispatch.WithDiagnostics(diag),
		dispatch.WithLogger(log.With(logger.Component(dispatch.HandlerName))),
	)...)
	if err != nil {
		return err
	}

	if app.NATSIngest {
		conn, err := c.nats(ctx)
		if err != nil {
			return err
		}
		sub, err := ingest.NewSubscriber(conn, handler,
			ingest.WithSubscriberLogger(log),
			ingest.WithMessageTimeout(ingestCfg.HandleTimeout),
			ingest.WithBaseContext(context.WithoutCancel(ctx)),
		).Subscribe(ingestCfg.NATSSubject, ingestCfg.NATSQueue)
		if err != nil {
			return err
		}
		log.LogAttrs(ctx, slog.LevelInfo, "Consuming events from NATS",
			slog.String("subject", ingestCfg.NATSSubject),
			slog.String("queue", ingestCfg.NATSQueue),
			slog.String("url", c.natsCfg.URL))
		c.onClose(func(context.Context) error { return sub.Unsubscribe() })
	}

	router := ingest.NewRouter(handler,
		ingest.WithRouterLogger(log),
		ingest.WithReadinessChecks(c.checks...),
		ingest.WithMetrics(c.registry),
		ingest.WithMaxBodyBytes(ingestCfg.MaxBodyBytes),
		ingest.WithHandleTimeout(ingestCfg.HandleTimeout),
	)

	log.LogAttrs(ctx, slog.LevelInfo, "Dispatcher started",
		slog.String("handler", handler.Name()),
		slog.String("addr", httpCfg.Addr))

	return httpserver.New(httpCfg, httpserver.WithLogger(log)).Run(ctx, router)
}
