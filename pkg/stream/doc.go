// Package stream delivers dispatch envelopes to the notification stream.
//
// Three transports implement dispatch.Publisher:
//
//   - RedisPublisher appends to a Redis stream keyed by the stream id. Each
//     entry carries a "timestamp" field and a JSON "payload" field.
//   - NATSPublisher publishes the JSON payload on "<prefix>.<token>" with
//     Stream-Id and Timestamp headers. The token is the stream id with '.',
//     wildcards and whitespace replaced by '_', so "<prefix>.*" matches
//     every stream.
//   - MemoryPublisher keeps envelopes in process.
//
// InstrumentedPublisher wraps any of them with Prometheus counters and a
// latency histogram. Decode reverses the payload encoding for consumers.
package stream
