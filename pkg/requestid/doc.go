// Package requestid correlates one inbound event across the HTTP and NATS
// ingest paths and the logs they produce.
//
// An incoming X-Request-ID is reused when it is at most 128 characters of
// letters, digits, '_' or '-'; anything else is replaced by a fresh UUID.
//
//	log := logger.New(logger.WithContextExtractor(requestid.LogAttr))
//	r.Use(requestid.Middleware)
package requestid
