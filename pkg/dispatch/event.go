package dispatch

// Channel identifies the delivery channel an event was raised for.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Event is a domain event produced by the identity pipeline.
// Property values may be of any type; only strings reach the placeholder map.
type Event struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
	Channel    Channel        `json:"channel,omitempty"`
}

// Property returns the string stored under key, or "" when the key is absent
// or holds a non-string value.
func (e Event) Property(key string) string {
	if v, ok := e.Properties[key].(string); ok {
		return v
	}
	return ""
}
