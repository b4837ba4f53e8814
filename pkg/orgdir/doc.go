// Package orgdir resolves a tenant domain to the identifier of the
// organization that owns it.
//
// Backends:
//
//   - PostgresDirectory queries the organizations table created by
//     Migrations (run it through pg.Migrate).
//   - MongoDirectory queries the organizations collection.
//   - StaticDirectory serves a fixed map, typically from ORG_STATIC_DOMAINS.
//
// Any of them can be wrapped in a CachedDirectory, which keeps successful
// lookups for a TTL and evicts the least recently used entry once full:
//
//	dir := orgdir.NewCachedDirectory(
//		orgdir.NewPostgresDirectory(pool),
//		orgdir.WithTTL(cfg.CacheTTL),
//		orgdir.WithMaxSize(cfg.CacheSize),
//	)
//	defer dir.Close()
//
// Unknown tenants yield ErrOrganizationNotFound; backend failures are
// joined with ErrLookupFailed.
package orgdir
