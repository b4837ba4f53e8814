package stream

import (
	"context"
	"maps"
	"sync"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
)

// MemoryPublisher keeps published envelopes in memory. It backs local runs
// and tests.
type MemoryPublisher struct {
	mu        sync.RWMutex
	envelopes []dispatch.Envelope
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(ctx context.Context, env dispatch.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if env.StreamID == "" {
		return ErrEmptyStreamID
	}

	env.Placeholders = maps.Clone(env.Placeholders)

	p.mu.Lock()
	p.envelopes = append(p.envelopes, env)
	p.mu.Unlock()
	return nil
}

// Envelopes returns everything published so far, in order.
func (p *MemoryPublisher) Envelopes() []dispatch.Envelope {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]dispatch.Envelope, len(p.envelopes))
	copy(out, p.envelopes)
	return out
}
