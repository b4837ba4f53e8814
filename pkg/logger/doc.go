// Package logger builds the slog.Logger used across the dispatcher and
// provides attribute helpers that keep key names consistent.
//
//	log := logger.New(logger.WithEnvironment(cfg.Env, "notify-dispatcher"))
//	slog.SetDefault(log)
//
//	log.LogAttrs(ctx, slog.LevelInfo, "Notification published",
//	    logger.Event(ev.Name),
//	    logger.StreamID(streamID),
//	    logger.TenantDomain(tenant),
//	)
//
// Error, TenantDomain and OrganizationID return an empty attribute for zero
// input, so callers can pass them unconditionally.
package logger
