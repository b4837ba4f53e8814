// Package httpserver runs the dispatcher's HTTP surface with graceful
// shutdown and exposes liveness and readiness handlers.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run returns once ctx is cancelled and in-flight requests have drained, or
// when Config.ShutdownTimeout elapses, in which case the error wraps
// ErrShutdown.
package httpserver
