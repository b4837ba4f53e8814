package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	natsgo "github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/notifydispatch/pkg/config"
	"github.com/dmitrymomot/notifydispatch/pkg/diagnostic"
	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
	"github.com/dmitrymomot/notifydispatch/pkg/httpserver"
	"github.com/dmitrymomot/notifydispatch/pkg/logger"
	"github.com/dmitrymomot/notifydispatch/pkg/mongo"
	"github.com/dmitrymomot/notifydispatch/pkg/nats"
	"github.com/dmitrymomot/notifydispatch/pkg/opensearch"
	"github.com/dmitrymomot/notifydispatch/pkg/orgdir"
	"github.com/dmitrymomot/notifydispatch/pkg/pg"
	"github.com/dmitrymomot/notifydispatch/pkg/redis"
	"github.com/dmitrymomot/notifydispatch/pkg/s3"
	"github.com/dmitrymomot/notifydispatch/pkg/stream"
	"github.com/dmitrymomot/notifydispatch/pkg/templates"
)

// components owns everything built at startup. closers run in reverse order.
type components struct {
	log      *slog.Logger
	registry *prometheus.Registry
	checks   []httpserver.Check
	closers  []func(context.Context) error

	natsCfg  nats.Config
	natsConn *natsgo.Conn
}

func (c *components) onClose(fn func(context.Context) error) {
	c.closers = append(c.closers, fn)
}

func (c *components) close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// nats connects lazily; the publisher and the subscriber share one connection.
func (c *components) nats(ctx context.Context) (*natsgo.Conn, error) {
	if c.natsConn != nil {
		return c.natsConn, nil
	}
	conn, err := nats.Connect(ctx, c.natsCfg)
	if err != nil {
		return nil, err
	}
	c.natsConn = conn
	c.checks = append(c.checks, httpserver.Check{Name: "nats", Probe: nats.Healthcheck(conn)})
	c.onClose(func(context.Context) error { return conn.Drain() })
	return conn, nil
}

func buildDirectory(ctx context.Context, c *components) (dispatch.OrganizationDirectory, error) {
	var cfg orgdir.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	var dir orgdir.Directory
	switch cfg.Backend {
	case orgdir.BackendPostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		c.onClose(func(context.Context) error { pool.Close(); return nil })
		c.checks = append(c.checks, httpserver.Check{Name: "postgres", Probe: pg.Healthcheck(pool)})

		if pgCfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, pgCfg, orgdir.Migrations(), c.log); err != nil {
				return nil, err
			}
		}
		dir = orgdir.NewPostgresDirectory(pool)

	case orgdir.BackendMongo:
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return nil, err
		}
		client, err := mongo.New(ctx, mongoCfg)
		if err != nil {
			return nil, err
		}
		c.onClose(client.Disconnect)
		c.checks = append(c.checks, httpserver.Check{Name: "mongo", Probe: mongo.Healthcheck(client)})
		dir = orgdir.NewMongoDirectory(client.Database(mongoCfg.Database).Collection(orgdir.DefaultCollection))

	case orgdir.BackendStatic:
		dir = orgdir.ParseStatic(cfg.Static)

	default:
		return nil, fmt.Errorf("unknown organization directory %q", cfg.Backend)
	}

	cached := orgdir.NewCachedDirectory(dir,
		orgdir.WithTTL(cfg.CacheTTL),
		orgdir.WithMaxSize(cfg.CacheSize),
	)
	c.onClose(func(context.Context) error { return cached.Close() })
	if err := c.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "notify",
		Name:      "org_cache_entries",
		Help:      "Organization ids currently held by the directory cache.",
	}, func() float64 { return float64(cached.Len()) })); err != nil {
		return nil, err
	}

	c.log.LogAttrs(ctx, slog.LevelInfo, "Organization directory ready",
		logger.Component(cfg.Backend),
		slog.Duration("cache_ttl", cfg.CacheTTL))
	return cached, nil
}

func buildPublisher(ctx context.Context, c *components) (dispatch.Publisher, error) {
	var cfg stream.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	var pub dispatch.Publisher
	switch cfg.Transport {
	case stream.TransportRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		c.onClose(func(context.Context) error { return client.Close() })
		c.checks = append(c.checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
		pub = stream.NewRedisPublisher(client,
			stream.WithKeyPrefix(cfg.RedisKeyPrefix),
			stream.WithMaxLen(cfg.RedisMaxLen),
		)

	case stream.TransportNATS:
		conn, err := c.nats(ctx)
		if err != nil {
			return nil, err
		}
		pub = stream.NewNATSPublisher(conn, cfg.NATSSubject)

	case stream.TransportMemory:
		c.log.LogAttrs(ctx, slog.LevelWarn, "Envelopes are kept in memory and never delivered",
			logger.Transport(cfg.Transport))
		mem := stream.NewMemoryPublisher()
		c.onClose(func(ctx context.Context) error {
			c.log.LogAttrs(ctx, slog.LevelWarn, "Discarding in-memory envelopes",
				slog.Int("count", len(mem.Envelopes())))
			return nil
		})
		pub = mem

	default:
		return nil, fmt.Errorf("%w: %q", stream.ErrUnknownTransport, cfg.Transport)
	}

	c.log.LogAttrs(ctx, slog.LevelInfo, "Stream transport ready", logger.Transport(cfg.Transport))
	return stream.NewInstrumentedPublisher(pub, cfg.Transport, c.registry)
}

func buildDiagnostics(ctx context.Context, c *components, app appConfig, enabled bool) (*diagnostic.Emitter, error) {
	var osCfg opensearch.Config
	if err := config.Load(&osCfg); err != nil {
		return nil, err
	}

	var sink diagnostic.Sink = diagnostic.NewLogSink(c.log, slog.LevelInfo)
	if osCfg.Enabled() {
		client, err := opensearch.New(ctx, osCfg)
		if err != nil {
			return nil, err
		}
		c.checks = append(c.checks, httpserver.Check{Name: "opensearch", Probe: opensearch.Healthcheck(client)})
		sink = diagnostic.MultiSink{diagnostic.NewIndexSink(client, osCfg.Index), sink}
	}

	async := diagnostic.NewAsyncSink(sink, diagnostic.AsyncOptions{
		BufferSize:   app.DiagnosticsBuffer,
		WriteTimeout: app.DiagnosticsWrite,
	}, c.log)
	c.onClose(async.Close)

	return diagnostic.NewEmitter(async,
		diagnostic.WithEnabled(enabled),
		diagnostic.WithLogger(c.log),
	), nil
}

func buildAssembler(ctx context.Context, c *components) (dispatch.Assembler, error) {
	var cfg templates.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	var s3Cfg s3.Config
	if err := config.Load(&s3Cfg); err != nil {
		return nil, err
	}

	var (
		catalog []dispatch.Template
		source  string
		err     error
	)
	switch {
	case s3Cfg.Enabled():
		client, cerr := s3.New(ctx, s3Cfg)
		if cerr != nil {
			return nil, cerr
		}
		c.checks = append(c.checks, httpserver.Check{Name: "s3", Probe: s3.Healthcheck(client, s3Cfg.Bucket)})
		source = "s3://" + s3Cfg.Bucket + "/" + cfg.S3Prefix
		catalog, err = templates.LoadS3(ctx, client, s3Cfg.Bucket, cfg.S3Prefix)
	case cfg.Path != "":
		source = cfg.Path
		catalog, err = templates.LoadPath(ctx, cfg.Path)
	default:
		source = "embedded"
		catalog = templates.DefaultCatalog()
	}
	if err != nil {
		return nil, err
	}

	store, err := templates.NewStore(cfg.DefaultLocale, catalog)
	if err != nil {
		return nil, err
	}

	c.log.LogAttrs(ctx, slog.LevelInfo, "Template catalog loaded",
		slog.String("source", source),
		slog.Any("types", store.Types()),
		slog.String("default_locale", cfg.DefaultLocale))

	return templates.NewAssembler(store,
		templates.WithSendFrom(cfg.SendFrom),
		templates.WithLogger(c.log),
	), nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
