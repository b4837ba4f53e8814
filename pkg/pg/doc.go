// Package pg opens the PostgreSQL pool used by the organization directory,
// applies embedded goose migrations and exposes a readiness probe.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if cfg.AutoMigrate {
//	    if err := pg.Migrate(ctx, pool, cfg, orgdir.Migrations(), log); err != nil {
//	        return err
//	    }
//	}
//
// Config is populated from PG_* environment variables. All errors are joined
// with a package sentinel and can be matched with errors.Is.
package pg
