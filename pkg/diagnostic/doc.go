// Package diagnostic records best-effort traces of decisions taken while
// handling notification events.
//
// An Emitter stamps each Record with an id and timestamp and hands it to a
// Sink. Failures are logged and swallowed, so emission never changes the
// outcome of the operation being traced. Callers check Enabled before
// building a record to keep disabled diagnostics free.
//
// Sinks:
//
//   - LogSink writes records through slog.
//   - IndexSink indexes records in OpenSearch.
//   - AsyncSink buffers records and writes them from a background goroutine,
//     dropping records when the buffer is full.
//   - MultiSink fans out to several sinks.
//
// Usage:
//
//	async := diagnostic.NewAsyncSink(diagnostic.NewIndexSink(client, ""), diagnostic.AsyncOptions{}, log)
//	defer async.Close(context.Background())
//
//	emitter := diagnostic.NewEmitter(async, diagnostic.WithEnabled(cfg.DiagnosticsEnabled))
package diagnostic
