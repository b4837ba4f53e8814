// Package ingest feeds identity events into the dispatch handler.
//
// NewRouter exposes the events endpoint together with health probes and
// optional Prometheus metrics. Subscriber consumes the same JSON event
// shape from a NATS subject inside a queue group:
//
//	{"name": "POST_ADD_USER", "channel": "email",
//	 "properties": {"tenantDomain": "acme.com", "templateType": "AccountConfirmation"}}
//
// Handler errors map to HTTP statuses: organization resolution and
// assembly failures answer 422, timeouts 504, anything else 502.
package ingest
