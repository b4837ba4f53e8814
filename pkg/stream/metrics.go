package stream

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// InstrumentedPublisher records publish counts and latency per stream.
type InstrumentedPublisher struct {
	next      dispatch.Publisher
	transport string
	published *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewInstrumentedPublisher wraps next and registers its collectors with reg.
// Collectors already registered by an earlier instance are reused.
func NewInstrumentedPublisher(next dispatch.Publisher, transport string, reg prometheus.Registerer) (*InstrumentedPublisher, error) {
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "notify",
		Name:      "envelopes_published_total",
		Help:      "Envelopes handed to the stream transport.",
	}, []string{"transport", "stream", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "notify",
		Name:      "publish_duration_seconds",
		Help:      "Duration of stream publish calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"transport", "stream"})

	var err error
	if published, err = register(reg, published); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &InstrumentedPublisher{
		next:      next,
		transport: transport,
		published: published,
		duration:  duration,
	}, nil
}

func (p *InstrumentedPublisher) Publish(ctx context.Context, env dispatch.Envelope) error {
	start := time.Now()
	err := p.next.Publish(ctx, env)
	p.duration.WithLabelValues(p.transport, env.StreamID).Observe(time.Since(start).Seconds())

	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
	}
	p.published.WithLabelValues(p.transport, env.StreamID, outcome).Inc()

	return err
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
