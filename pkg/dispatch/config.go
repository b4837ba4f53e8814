package dispatch

// Config holds the subscription-level settings of the dispatch handler.
//
// Per-event overrides are given as comma-separated name=value pairs, e.g.
// NOTIFY_STREAM_OVERRIDES="passwordReset=id_gov_sms_stream:1.0.0".
type Config struct {
	TemplateOverride   string            `env:"NOTIFY_TEMPLATE_OVERRIDE"`
	TemplateOverrides  map[string]string `env:"NOTIFY_TEMPLATE_OVERRIDES" envKeyValSeparator:"="`
	StreamID           string            `env:"NOTIFY_STREAM_ID"`
	StreamOverrides    map[string]string `env:"NOTIFY_STREAM_OVERRIDES" envKeyValSeparator:"="`
	DiagnosticsEnabled bool              `env:"NOTIFY_DIAGNOSTICS_ENABLED" envDefault:"false"`
}

// Options translates the configuration into handler options.
func (c Config) Options() []Option {
	return []Option{
		WithTemplateOverride(StaticTemplateOverride{Default: c.TemplateOverride, ByEvent: c.TemplateOverrides}),
		WithStreamResolver(StaticStreamResolver{Default: c.StreamID, ByEvent: c.StreamOverrides}),
	}
}
