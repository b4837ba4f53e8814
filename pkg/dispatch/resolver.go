package dispatch

import (
	"context"
	"errors"
	"strings"
)

// DefaultStreamID is the stream envelopes are published to when no
// subscription-level stream is configured.
const DefaultStreamID = "id_gov_notify_stream:1.0.0"

// TemplateOverride yields the subscription-configured template type for an
// event. An empty result means the event's own template type is used.
type TemplateOverride interface {
	TemplateOverride(ctx context.Context, ev Event) string
}

// TemplateOverrideFunc adapts an ordinary function to TemplateOverride.
type TemplateOverrideFunc func(ctx context.Context, ev Event) string

// TemplateOverride calls f.
func (f TemplateOverrideFunc) TemplateOverride(ctx context.Context, ev Event) string {
	return f(ctx, ev)
}

// StreamResolver yields the subscription-configured stream id for an event.
// An empty result selects DefaultStreamID.
type StreamResolver interface {
	ResolveStreamID(ctx context.Context, ev Event) (string, error)
}

// StreamResolverFunc adapts an ordinary function to StreamResolver.
type StreamResolverFunc func(ctx context.Context, ev Event) (string, error)

// ResolveStreamID calls f.
func (f StreamResolverFunc) ResolveStreamID(ctx context.Context, ev Event) (string, error) {
	return f(ctx, ev)
}

// SubscriptionValues holds a per-event-name value with a fallback.
// It backs both the static template override and the static stream resolver.
type SubscriptionValues struct {
	Default string
	ByEvent map[string]string
}

// Lookup returns the value configured for the event name, then the default.
func (s SubscriptionValues) Lookup(eventName string) string {
	if v := s.ByEvent[eventName]; v != "" {
		return v
	}
	return s.Default
}

// StaticTemplateOverride reads template overrides from configuration.
type StaticTemplateOverride SubscriptionValues

func (s StaticTemplateOverride) TemplateOverride(_ context.Context, ev Event) string {
	return SubscriptionValues(s).Lookup(ev.Name)
}

// StaticStreamResolver reads stream ids from configuration.
type StaticStreamResolver SubscriptionValues

func (s StaticStreamResolver) ResolveStreamID(_ context.Context, ev Event) (string, error) {
	return SubscriptionValues(s).Lookup(ev.Name), nil
}

// ResolveTemplate applies the configured template override to ph and returns it.
// The override always wins over the template type carried by the event.
// It returns "" and leaves ph untouched when no override is configured.
func ResolveTemplate(ctx context.Context, o TemplateOverride, ev Event, ph Placeholders) string {
	if o == nil {
		return ""
	}
	tmpl := o.TemplateOverride(ctx, ev)
	if tmpl == "" {
		return ""
	}
	ph[KeyTemplateType] = tmpl
	return tmpl
}

// ResolveStreamTarget returns the stream id for ev. The result is never empty.
func ResolveStreamTarget(ctx context.Context, r StreamResolver, ev Event) (string, error) {
	if r == nil {
		return DefaultStreamID, nil
	}
	id, err := r.ResolveStreamID(ctx, ev)
	if err != nil {
		return "", errors.Join(ErrStreamResolution, err)
	}
	if strings.TrimSpace(id) == "" {
		return DefaultStreamID, nil
	}
	return id, nil
}
