package dispatch

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Envelope is the unit of work published to the notification stream.
type Envelope struct {
	// Timestamp is the publish time in Unix milliseconds.
	Timestamp    int64             `json:"timestamp"`
	StreamID     string            `json:"streamId"`
	Placeholders map[string]string `json:"placeholders"`
}

// Time returns the envelope timestamp as a time.Time.
func (e Envelope) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Publisher hands envelopes to the stream transport.
type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
}

// PublisherFunc adapts an ordinary function to the Publisher interface.
type PublisherFunc func(ctx context.Context, env Envelope) error

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, env Envelope) error {
	return f(ctx, env)
}

// identityKeys are seeded from the placeholder map before subscription data.
var identityKeys = [...]string{KeyUserName, KeyUserStoreDomain, KeyTenantDomain}

// BuildEnvelope assembles the outbound envelope for n.
//
// Fields are layered in a fixed order: event type, identity fields and the
// sender first, then every entry of ph, then the template and rendered
// notification fields. Later layers overwrite earlier ones, so the rendered
// notification always wins over subscription data.
func BuildEnvelope(now time.Time, streamID string, n *Notification, ph Placeholders) Envelope {
	out := make(map[string]string, len(ph)+len(identityKeys)+12)

	out[KeyEventType] = NormalizeName(n.Template.DisplayName)
	for _, key := range identityKeys {
		if v, ok := ph.Get(key); ok {
			out[key] = v
		}
	}
	out[KeySendFrom] = n.SendFrom

	for k, v := range ph {
		out[k] = v
	}

	out[KeySubjectTemplate] = n.Template.Subject
	out[KeyBodyTemplate] = n.Template.Body
	out[KeyFooterTemplate] = n.Template.Footer
	out[KeyLocale] = n.Template.Locale
	out[KeyContentType] = n.Template.ContentType
	out[KeySendTo] = n.SendTo
	out[KeySubject] = n.Subject
	out[KeyBody] = n.Body
	out[KeyFooter] = n.Footer

	return Envelope{
		Timestamp:    now.UnixMilli(),
		StreamID:     streamID,
		Placeholders: out,
	}
}

// NormalizeName strips all whitespace from name and case-folds it, so
// "Account Confirmation" and "accountconfirmation" normalize identically
// regardless of locale.
func NormalizeName(name string) string {
	compact := strings.Join(strings.Fields(name), "")
	// Casers keep state and must not be shared across goroutines.
	return cases.Fold().String(compact)
}
